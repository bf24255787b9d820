// Package codes provides the codes command, which lists markup error codes.
package codes

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/view"
	"github.com/open-cli-collective/loctag/pkg/markup"
)

type codesOptions struct {
	codes   []string
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdCodes creates the codes command.
func NewCmdCodes() *cobra.Command {
	opts := &codesOptions{}

	cmd := &cobra.Command{
		Use:   "codes [code...]",
		Short: "List markup error codes",
		Long: `List the markup error codes reported by check and scan. Pass codes by
number or name to show only those.`,
		Example: `  # All codes
  loctag codes

  # Look up codes from a report
  loctag codes 03 link_tag_invalid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.codes = args
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCodes(opts)
		},
	}

	return cmd
}

func runCodes(opts *codesOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	selected := markup.AllCodes
	if len(opts.codes) > 0 {
		selected = make([]markup.Code, 0, len(opts.codes))
		for _, s := range opts.codes {
			c, err := markup.ParseCode(s)
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, validCodes())
			}
			selected = append(selected, c)
		}
	}

	headers := []string{"Code", "Name", "Description"}
	rows := make([][]string, 0, len(selected))
	for _, c := range selected {
		rows = append(rows, []string{c.Number(), c.String(), c.Description()})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

func validCodes() string {
	numbers := make([]string, 0, len(markup.AllCodes))
	for _, c := range markup.AllCodes {
		numbers = append(numbers, c.Number())
	}
	return strings.Join(numbers, ", ")
}
