package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/stylecfg"
	"github.com/yacobolo/stylecfg/internal/report"
)

const defaultConfigFile = "stylecfg.yaml"

// Tool settings share the declarative file under this key.
const settingsKey = "stylecfg"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, interface{}) {
		if !flags.Changed(key) {
			return "", nil
		}
		return key, value
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	_ = k.Set("config", configPath)

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers). A missing file is
	// reported by the resolver, not here.
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLECFG_* prefix)
	if err := k.Load(env.Provider("STYLECFG_", ".", func(s string) string {
		// STYLECFG_ROOT -> stylecfg.root
		// STYLECFG_MODE_FALLBACK -> stylecfg.mode-fallback
		return settingsKey + "." + strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLECFG_")),
			"_", "-",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// settings is everything a command needs from koanf state.
type settings struct {
	ConfigPath   string
	Options      stylecfg.Options
	OutputFormat report.OutputFormat
	Quiet        bool
	Report       report.Settings
}

// buildSettings constructs command settings from koanf state. defaultFormat
// applies when neither a flag nor the file selects one.
func buildSettings(defaultFormat string) settings {
	s := settings{
		ConfigPath: getStringWithFallback("config", "config", defaultConfigFile),
		Options: stylecfg.Options{
			Root:             getStringWithFallback("root", settingsKey+".root", ""),
			ModeFallback:     getStringWithFallback("mode-fallback", settingsKey+".mode-fallback", ""),
			RespectGitignore: getBoolWithFallback("respect-gitignore", settingsKey+".respect-gitignore", false),
		},
		Quiet: getBoolWithFallback("quiet", settingsKey+".quiet", false),
		Report: report.Settings{
			UseColors: getBoolWithFallback("color", settingsKey+".color", false),
			Verbose:   getBoolWithFallback("verbose", settingsKey+".verbose", false),
		},
	}
	s.OutputFormat = report.DetermineOutputFormat(
		getStringWithFallback("output-format", settingsKey+".output-format", defaultFormat),
		s.Quiet,
	)
	s.Options.Logger = newLogger(s.Report.Verbose)
	return s
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
