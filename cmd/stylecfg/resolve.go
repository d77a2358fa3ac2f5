package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylecfg"
	"github.com/yacobolo/stylecfg/internal/report"
)

// errInvalidConfig makes the process exit 1 once the report is printed.
var errInvalidConfig = errors.New("configuration is invalid")

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the configuration and print it",
	Long: `Load the config file, locate content files, merge the theme and report
the resolved configuration together with every problem found.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runResolve(cmd.OutOrStdout(), buildSettings("full"))
	},
}

// runResolve is shared between `stylecfg`, `stylecfg resolve` and
// `stylecfg check`.
func runResolve(w io.Writer, s settings) error {
	cfg, rep, err := stylecfg.ResolveFile(s.ConfigPath, stylecfg.Default(), s.Options)
	if err != nil {
		return err
	}

	if !s.Quiet {
		if err := report.Write(w, cfg, rep, s.OutputFormat, s.Report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	// Only errors fail the run; warnings never do.
	if !rep.OK() {
		return errInvalidConfig
	}
	return nil
}
