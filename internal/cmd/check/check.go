// Package check provides the check command, which compares the markup of a
// primary-language file against a reference-language file.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/loctag/internal/config"
	"github.com/open-cli-collective/loctag/internal/report"
	"github.com/open-cli-collective/loctag/internal/view"
	"github.com/open-cli-collective/loctag/pkg/compare"
	"github.com/open-cli-collective/loctag/pkg/tsv"
)

type checkOptions struct {
	primary        string
	reference      string
	configPath     string
	output         string
	noColor        bool
	failOnAdvisory bool
	contextWidth   int

	stdout io.Writer
	stderr io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [primary] [reference]",
		Short: "Compare markup errors between two translation files",
		Long: `Scan the primary and reference translation files for broken markup
(color tags, link tags and brace variables) and classify every finding:

  [P]    only in the primary file - blocking, exits with status 1
  [P\R]  in both files            - warning
  [R]    only in the reference    - warning

P and R are the primary_label and reference_label from the config
(RU and EN by default). Files default to the paths in the config file
(see 'loctag init').
A missing reference file is reported as a warning and only the primary
file is checked.`,
		Example: `  # Use files from config
  loctag check

  # Explicit files
  loctag check translation_ru.tsv translation_en.tsv

  # Fail on inherited errors too, as JSON
  loctag check --fail-on-advisory -o json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.primary = args[0]
			}
			if len(args) > 1 {
				opts.reference = args[1]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCheck(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.reference, "reference", "r", "", "Reference file (overrides config)")
	cmd.Flags().BoolVar(&opts.failOnAdvisory, "fail-on-advisory", false, "Exit with status 1 on inherited errors too")
	cmd.Flags().IntVar(&opts.contextWidth, "context-width", report.DefaultContextWidth, "Maximum width of the context excerpt")

	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.primary != "" {
		cfg.Primary = opts.primary
	}
	if opts.reference != "" {
		cfg.Reference = opts.reference
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (pass files as arguments or run 'loctag init')", err)
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

	if _, err := os.Stat(cfg.Primary); err != nil {
		return fmt.Errorf("primary file not found: %w", err)
	}

	referencePath := cfg.Reference
	if referencePath != "" {
		if _, err := os.Stat(referencePath); errors.Is(err, os.ErrNotExist) {
			renderer.Warning(fmt.Sprintf("Reference file %s not found, checking only %s", referencePath, cfg.Primary))
			referencePath = ""
		}
	}

	renderer.Info(fmt.Sprintf("Scanning %s...", cfg.Primary))
	if referencePath != "" {
		renderer.Info(fmt.Sprintf("Scanning %s...", referencePath))
	}

	var primary, reference *compare.Corpus
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := scanFile(gctx, cfg.Primary)
		primary = c
		return err
	})
	if referencePath != "" {
		g.Go(func() error {
			c, err := scanFile(gctx, referencePath)
			reference = c
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	renderer.Info(scanned(cfg.Primary, primary))
	if referencePath != "" {
		renderer.Info(scanned(referencePath, reference))
	}

	results := compare.Compare(primary.CodeMap(), reference.CodeMap())
	rep := report.Build(results, primary, reference, report.Options{
		PrimaryLabel:   cfg.PrimaryLabel,
		ReferenceLabel: cfg.ReferenceLabel,
		ContextWidth:   opts.contextWidth,
		FailOnAdvisory: opts.failOnAdvisory,
	})
	if err := rep.Render(renderer); err != nil {
		return err
	}
	return rep.Err()
}

func scanFile(ctx context.Context, path string) (*compare.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := tsv.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return compare.ScanRecords(f.Records), nil
}

func scanned(path string, c *compare.Corpus) string {
	return fmt.Sprintf("%s: %d entries, %d with markup errors", path, c.Len(), len(c.CodeMap()))
}
