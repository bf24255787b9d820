// Package scan provides the scan command, which checks the markup of a
// single translation file.
package scan

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/config"
	"github.com/open-cli-collective/loctag/internal/report"
	"github.com/open-cli-collective/loctag/internal/view"
	"github.com/open-cli-collective/loctag/pkg/compare"
	"github.com/open-cli-collective/loctag/pkg/tsv"
)

type scanOptions struct {
	file         string
	configPath   string
	output       string
	noColor      bool
	contextWidth int

	stdout io.Writer
	stderr io.Writer
}

// NewCmdScan creates the scan command.
func NewCmdScan() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Check markup in a single translation file",
		Long: `Scan one translation file for broken markup without comparing it to a
reference. Every finding is blocking. Defaults to the primary file from
the config.`,
		Example: `  # Scan the configured primary file
  loctag scan

  # Scan a specific file as plain rows
  loctag scan translation_en.tsv -o plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runScan(opts)
		},
	}

	cmd.Flags().IntVar(&opts.contextWidth, "context-width", report.DefaultContextWidth, "Maximum width of the context excerpt")

	return cmd
}

func runScan(opts *scanOptions) error {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	file := opts.file
	if file == "" {
		file = cfg.Primary
	}
	if file == "" {
		return fmt.Errorf("no file given (pass a file or run 'loctag init')")
	}

	output := opts.output
	if output == "" {
		output = cfg.OutputFormat
	}
	if err := view.ValidateFormat(output); err != nil {
		return err
	}
	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	if opts.stderr != nil {
		renderer.SetErrWriter(opts.stderr)
	}

	renderer.Info(fmt.Sprintf("Scanning %s...", file))
	f, err := tsv.ReadFile(file)
	if err != nil {
		return err
	}
	corpus := compare.ScanRecords(f.Records)
	renderer.Info(fmt.Sprintf("%s: %d entries, %d with markup errors", file, corpus.Len(), len(corpus.Codes)))

	rep := report.Build(compare.Compare(corpus.CodeMap(), nil), corpus, nil, report.Options{
		PrimaryLabel:   cfg.PrimaryLabel,
		ReferenceLabel: cfg.ReferenceLabel,
		ContextWidth:   opts.contextWidth,
	})
	if err := rep.Render(renderer); err != nil {
		return err
	}
	return rep.Err()
}
