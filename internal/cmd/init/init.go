// Package init provides the init command for loctag.
package init

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		primary   string
		reference string
		noVerify  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize loctag configuration",
		Long: `Initialize loctag with the translation files to check.

This command will guide you through setting up the primary file (the
translation being edited), the reference file (the source language) and
the labels used in reports. The configuration will be saved to
~/.config/loctag/config.yml.`,
		Example: `  # Interactive setup
  loctag init

  # Pre-populate file paths
  loctag init --primary translation_ru.tsv --reference translation_en.tsv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInit(config.ResolvePath(configPath), primary, reference, noVerify)
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "Primary translation file (e.g., translation_ru.tsv)")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference translation file (e.g., translation_en.tsv)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip file verification")

	return cmd
}

func runInit(configPath, prefillPrimary, prefillReference string, noVerify bool) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		Primary:        prefillPrimary,
		Reference:      prefillReference,
		PrimaryLabel:   config.DefaultPrimaryLabel,
		ReferenceLabel: config.DefaultReferenceLabel,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Primary file").
				Description("The translation being edited; its errors block the run").
				Placeholder("translation_ru.tsv").
				Value(&cfg.Primary).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("primary file is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Reference file (optional)").
				Description("The source-language file errors are compared against").
				Placeholder("translation_en.tsv").
				Value(&cfg.Reference),

			huh.NewInput().
				Title("Primary label").
				Value(&cfg.PrimaryLabel),

			huh.NewInput().
				Title("Reference label").
				Value(&cfg.ReferenceLabel),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify files unless skipped
	if !noVerify {
		fmt.Print("Verifying files... ")
		if err := verifyFiles(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("file verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  loctag validate")
	fmt.Println("  loctag check")

	return nil
}

// verifyFiles checks that the configured files exist and carry the
// expected header.
func verifyFiles(cfg *config.Config) error {
	if _, err := config.CheckFile(cfg.Primary, cfg.Header); err != nil {
		return err
	}
	if cfg.Reference == "" {
		return nil
	}
	if _, err := config.CheckFile(cfg.Reference, cfg.Header); err != nil {
		return err
	}
	return nil
}
