package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/config"
	"github.com/open-cli-collective/loctag/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current loctag configuration with source indicators.`,
		Example: `  # Show current config
  loctag config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(os.Stdout, config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Fprintf(w, "%-17s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, view.Escape(value))

		// Determine source
		source := "config"
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "default"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Primary", cfg.Primary, fileCfg.Primary, "LOCTAG_PRIMARY")
	printField("Reference", cfg.Reference, fileCfg.Reference, "LOCTAG_REFERENCE")
	printField("Primary label", cfg.PrimaryLabel, fileCfg.PrimaryLabel, "LOCTAG_PRIMARY_LABEL")
	printField("Reference label", cfg.ReferenceLabel, fileCfg.ReferenceLabel, "LOCTAG_REFERENCE_LABEL")
	printField("Header", cfg.Header, fileCfg.Header)
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat)

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
