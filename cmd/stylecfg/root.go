package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stylecfg",
	Short: "Resolve and validate utility-class CSS configuration",
	Long: `Resolve a stylecfg.yaml file into one immutable configuration:
content files located on disk, the project theme merged over the default
design tokens, the dark-mode strategy and the registered plugins.
Every problem in the file is reported in a single pass.`,
	// Default behavior: run resolve when no subcommand is given.
	// We must call loadConfig here because PreRunE of resolveCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runResolve(cmd.OutOrStdout(), buildSettings("full"))
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("config", defaultConfigFile, "Config file path")
	f.String("root", "", "Content root (default: the config file's directory)")
	f.String("mode-fallback", "", "Dark-mode strategy when the file sets none: media|class")
	f.Bool("respect-gitignore", false, "Drop content files ignored by <root>/.gitignore")
	f.String("output-format", "", "Output format: text|full|json|yaml|markdown")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
