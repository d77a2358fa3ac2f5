package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default stylecfg.yaml config file",
	Long:  `Create a stylecfg.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# stylecfg configuration
# Docs: https://github.com/yacobolo/stylecfg

# Template and script files scanned for class names, relative to this file
content:
  - "./templates/**/*.html"
  - "./static/js/**/*.js"

theme:
  # Keys merged over the default theme
  extend:
    colors:
      primary:
        500: "#667eea"
        600: "#5568d3"
        700: "#4453b8"

darkMode: class              # media | class

plugins: []

# Tool settings
stylecfg:
  respect-gitignore: false
  output-format: full        # text | full | json | yaml | markdown
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
