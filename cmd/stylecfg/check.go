package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration (CI mode)",
	Long: `Resolve the configuration and print only problems and a summary.
Exits 1 when any error is found.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runResolve(cmd.OutOrStdout(), buildSettings("text"))
	},
}
