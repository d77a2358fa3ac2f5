// Package report renders resolution results for people and for tools.
package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/stylecfg/internal/validator"
)

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputText shows problems and a summary line (default)
	OutputText OutputFormat = "text"
	// OutputFull shows problems plus the resolved configuration
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputYAML exports the same structure as YAML
	OutputYAML OutputFormat = "yaml"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)

// DetermineOutputFormat selects the output format from flags.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return OutputText
	}

	switch formatFlag {
	case "text":
		return OutputText
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "yaml", "yml":
		return OutputYAML
	case "markdown", "md":
		return OutputMarkdown
	}
	return OutputText
}

// Settings control human-readable output.
type Settings struct {
	UseColors bool // Force colors on
	Verbose   bool // Text output includes the resolved configuration
}

// Write renders report and cfg (nil when resolution failed) in format.
func Write(w io.Writer, cfg *validator.Configuration, rep validator.Report, format OutputFormat, settings Settings) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, cfg, rep)
	case OutputYAML:
		return WriteYAML(w, cfg, rep)
	case OutputMarkdown:
		return WriteMarkdown(w, cfg, rep)
	case OutputFull:
		settings.Verbose = true
		fallthrough
	case OutputText:
		r := NewReporter(w, settings)
		r.PrintProblems(rep)
		if settings.Verbose && cfg != nil {
			r.PrintConfiguration(cfg)
		}
		r.PrintSummary(rep)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
