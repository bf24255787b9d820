// Package validate provides the validate command, which checks the
// structure of translation files before their markup is scanned.
package validate

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/config"
	"github.com/open-cli-collective/loctag/internal/view"
	"github.com/open-cli-collective/loctag/pkg/tsv"
)

// ErrInvalidFormat is returned when a file has structural errors.
var ErrInvalidFormat = errors.New("translation file has format errors")

type validateOptions struct {
	files      []string
	configPath string
	output     string
	noColor    bool
	strict     bool

	stdout io.Writer
	stderr io.Writer
}

type fileResult struct {
	Path     string    `json:"path"`
	Records  int       `json:"records"`
	Problems []problem `json:"problems"`

	found []tsv.Problem
}

type problem struct {
	Line     int    `json:"line"`
	ID       string `json:"id,omitempty"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// NewCmdValidate creates the validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check the TSV structure of translation files",
		Long: `Check that translation files follow the expected layout: a header line,
records that start with a 16-character hex ID and a tab, and no stray
lines between records.

Errors exit with status 1. Warnings (empty text, an ID-like line inside
a record) are reported but do not fail unless --strict is set.
Defaults to the primary and reference files from the config.`,
		Example: `  # Validate the configured files
  loctag validate

  # Validate specific files as JSON
  loctag validate translation_ru.tsv translation_en.tsv -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.files = args
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runValidate(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func runValidate(opts *validateOptions) error {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files := opts.files
	if len(files) == 0 {
		if cfg.Primary != "" {
			files = append(files, cfg.Primary)
		}
		if cfg.Reference != "" {
			files = append(files, cfg.Reference)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files given (pass files or run 'loctag init')")
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

	results := make([]fileResult, 0, len(files))
	failed := false
	for _, path := range files {
		res, err := validateFile(path, cfg.Header)
		if err != nil {
			return err
		}
		if tsv.HasErrors(res.found) || (opts.strict && len(res.found) > 0) {
			failed = true
		}
		results = append(results, res)
	}

	switch renderer.Format() {
	case view.FormatJSON:
		if err := renderer.RenderJSON(results); err != nil {
			return err
		}
	case view.FormatPlain:
		var rows [][]string
		for _, res := range results {
			for _, p := range res.Problems {
				rows = append(rows, []string{res.Path, strconv.Itoa(p.Line), p.Severity, p.Kind, p.ID})
			}
		}
		renderer.RenderTable(nil, rows)
	case view.FormatMarkdown, view.FormatHTML:
		if err := renderer.RenderMarkdown(markdown(results)); err != nil {
			return err
		}
	default:
		renderTable(renderer, results)
	}

	if failed {
		return ErrInvalidFormat
	}
	return nil
}

func validateFile(path, header string) (fileResult, error) {
	res := fileResult{Path: path, Problems: []problem{}}

	var lines []string
	f, err := tsv.ReadFile(path)
	switch {
	case errors.Is(err, tsv.ErrEmptyFile):
	case err != nil:
		return res, err
	default:
		lines = f.Lines
		res.Records = len(f.Records)
	}

	res.found = tsv.Validate(lines, tsv.ValidateOptions{Header: header})
	for _, p := range res.found {
		res.Problems = append(res.Problems, problem{
			Line:     p.Line,
			ID:       p.ID,
			Kind:     string(p.Kind),
			Severity: p.Severity.String(),
			Message:  p.Message,
		})
	}
	return res, nil
}

func renderTable(r *view.Renderer, results []fileResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	w := r.Writer()

	for _, res := range results {
		errs, warns := 0, 0
		for _, p := range res.Problems {
			if p.Severity == tsv.SeverityError.String() {
				errs++
				_, _ = red.Fprint(w, "✗ ")
			} else {
				warns++
				_, _ = yellow.Fprint(w, "⚠ ")
			}
			fmt.Fprintf(w, "%s: line %d", res.Path, p.Line)
			if p.ID != "" {
				fmt.Fprintf(w, ", ID %s", p.ID)
			}
			fmt.Fprintf(w, ": %s\n", p.Message)
		}
		switch {
		case errs > 0:
			r.Error(fmt.Sprintf("%s: %d errors, %d warnings in %d records", res.Path, errs, warns, res.Records))
		case warns > 0:
			r.RenderText(fmt.Sprintf("⚠ %s: %d warnings in %d records", res.Path, warns, res.Records))
		default:
			r.Success(fmt.Sprintf("%s: format is valid (%d records)", res.Path, res.Records))
		}
	}
}

func markdown(results []fileResult) string {
	md := "# Format validation report\n\n"
	for _, res := range results {
		md += "## " + view.EscapeMarkdownCell(res.Path) + "\n\n"
		if len(res.Problems) == 0 {
			md += fmt.Sprintf("Format is valid (%d records).\n\n", res.Records)
			continue
		}
		rows := make([][]string, 0, len(res.Problems))
		for _, p := range res.Problems {
			rows = append(rows, []string{strconv.Itoa(p.Line), p.Severity, p.Kind, p.ID, p.Message})
		}
		md += view.MarkdownTable([]string{"Line", "Severity", "Kind", "ID", "Message"}, rows) + "\n"
	}
	return md
}
