package main

import (
	"errors"
	"os"

	"github.com/fatih/color"

	"github.com/open-cli-collective/loctag/internal/cmd/root"
	"github.com/open-cli-collective/loctag/internal/cmd/validate"
	"github.com/open-cli-collective/loctag/internal/report"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		// Findings were already printed.
		if !errors.Is(err, report.ErrBlocking) && !errors.Is(err, validate.ErrInvalidFormat) {
			_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
