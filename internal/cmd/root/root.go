// Package root provides the root command for the loctag CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/loctag/internal/cmd/check"
	"github.com/open-cli-collective/loctag/internal/cmd/codes"
	"github.com/open-cli-collective/loctag/internal/cmd/completion"
	"github.com/open-cli-collective/loctag/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/loctag/internal/cmd/init"
	"github.com/open-cli-collective/loctag/internal/cmd/scan"
	"github.com/open-cli-collective/loctag/internal/cmd/validate"
	"github.com/open-cli-collective/loctag/internal/version"
)

// NewCmdRoot creates the root command for loctag.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loctag",
		Short: "Validate inline markup in game translation files",
		Long: `loctag checks color tags (#G ... #E), link tags (<a|b|c|d>) and brace
variables ({name}) in tab-separated translation files.

Errors found only in the primary translation fail the run; errors the
translation inherited from the reference file are reported as warnings.

Get started by running: loctag init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/loctag/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain, markdown, html (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("loctag version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(scan.NewCmdScan())
	cmd.AddCommand(validate.NewCmdValidate())
	cmd.AddCommand(codes.NewCmdCodes())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
