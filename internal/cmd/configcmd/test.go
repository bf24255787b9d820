package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test that the configured files can be read",
		Long: `Test that the configured translation files exist, decode as UTF-8 and
start with the expected header.`,
		Example: `  # Test configured files
  loctag config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(os.Stdout, config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

func runTest(w io.Writer, configPath string, noColor bool, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = config.LoadWithEnv(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'loctag init' to configure)", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'loctag init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	check := func(label, path string) error {
		fmt.Fprintf(w, "Testing %s file %s...\n", label, path)
		f, err := config.CheckFile(path, cfg.Header)
		if err != nil {
			_, _ = red.Fprintln(w, "✗", err)
			fmt.Fprintln(w, "\nCheck your files with: loctag config show")
			fmt.Fprintln(w, "Reconfigure with: loctag init")
			return err
		}
		_, _ = green.Fprintf(w, "✓ %d records read\n", len(f.Records))
		return nil
	}

	if err := check("primary", cfg.Primary); err != nil {
		return err
	}
	if cfg.Reference == "" {
		_, _ = yellow.Fprintln(w, "⚠ No reference file configured; check will scan the primary file only")
		return nil
	}
	if _, err := os.Stat(cfg.Reference); os.IsNotExist(err) {
		_, _ = yellow.Fprintf(w, "⚠ Reference file %s not found; check will scan the primary file only\n", cfg.Reference)
		return nil
	}
	return check("reference", cfg.Reference)
}
