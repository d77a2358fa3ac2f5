package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylecfg/internal/problem"
	"github.com/yacobolo/stylecfg/internal/validator"
)

// Output represents the structured export schema shared by JSON and YAML
type Output struct {
	Version   string              `json:"version" yaml:"version"`
	Timestamp string              `json:"timestamp" yaml:"timestamp"`
	Summary   Summary             `json:"summary" yaml:"summary"`
	Errors    []Problem           `json:"errors" yaml:"errors"`
	Warnings  []Problem           `json:"warnings" yaml:"warnings"`
	Patterns  map[string]int      `json:"patterns,omitempty" yaml:"patterns,omitempty"` // Files matched per content pattern
	Config    *validator.Snapshot `json:"config,omitempty" yaml:"config,omitempty"`
}

// Summary contains high-level counts
type Summary struct {
	Valid           bool `json:"valid" yaml:"valid"`
	Errors          int  `json:"errors" yaml:"errors"`
	Warnings        int  `json:"warnings" yaml:"warnings"`
	Categories      int  `json:"categories" yaml:"categories"`
	Tokens          int  `json:"tokens" yaml:"tokens"`
	ContentFiles    int  `json:"content_files" yaml:"content_files"`
	FilesDiscovered int  `json:"files_discovered" yaml:"files_discovered"`
	FilesSkipped    int  `json:"files_skipped" yaml:"files_skipped"`
	Plugins         int  `json:"plugins" yaml:"plugins"`
}

// Problem is one error or warning
type Problem struct {
	Kind    string `json:"kind" yaml:"kind"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// WriteJSON writes the result as indented JSON
func WriteJSON(w io.Writer, cfg *validator.Configuration, rep validator.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(cfg, rep))
}

// WriteYAML writes the result as YAML
func WriteYAML(w io.Writer, cfg *validator.Configuration, rep validator.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildOutput(cfg, rep)); err != nil {
		return err
	}
	return encoder.Close()
}

// BuildOutput converts a resolution result to Output
func BuildOutput(cfg *validator.Configuration, rep validator.Report) Output {
	out := Output{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Errors:    make([]Problem, 0, len(rep.Errors)),
		Warnings:  make([]Problem, 0, len(rep.Warnings)),
		Summary: Summary{
			Valid:    rep.OK(),
			Errors:   len(rep.Errors),
			Warnings: len(rep.Warnings),
		},
	}

	for _, err := range rep.Errors {
		out.Errors = append(out.Errors, toProblem(err))
	}
	for _, w := range rep.Warnings {
		out.Warnings = append(out.Warnings, Problem{Kind: w.Code, Message: w.Message})
	}

	if cfg != nil {
		snap := cfg.Snapshot()
		out.Config = &snap
		out.Summary.Categories = len(snap.Theme)
		out.Summary.Tokens = snap.Theme.Len()
		out.Summary.ContentFiles = len(snap.Content)
		out.Summary.Plugins = len(snap.Plugins)

		stats := cfg.Stats()
		out.Summary.FilesDiscovered = stats.FilesDiscovered
		out.Summary.FilesSkipped = stats.FilesSkipped
		out.Patterns = stats.PatternMatches
	}

	return out
}

func toProblem(err error) Problem {
	if pe, ok := err.(*problem.Error); ok {
		return Problem{Kind: string(pe.Kind), Subject: pe.Subject, Message: pe.Detail}
	}
	if kind, ok := problem.KindOf(err); ok {
		return Problem{Kind: string(kind), Message: err.Error()}
	}
	return Problem{Kind: "Error", Message: err.Error()}
}

// WriteMarkdown writes a shareable Markdown report
func WriteMarkdown(w io.Writer, cfg *validator.Configuration, rep validator.Report) error {
	var b strings.Builder

	b.WriteString("# Style Configuration Report\n\n")
	status := "✅ Valid"
	if !rep.OK() {
		status = "❌ Invalid"
	}
	fmt.Fprintf(&b, "**Status:** %s (%s)\n\n", status, rep.Summary())

	if len(rep.Errors) > 0 {
		b.WriteString("## Errors\n\n| Kind | Subject | Message |\n|------|---------|---------|\n")
		for _, err := range rep.Errors {
			p := toProblem(err)
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Kind, escapeCell(p.Subject), escapeCell(p.Message))
		}
		b.WriteString("\n")
	}

	if len(rep.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "- **%s**: %s\n", w.Code, w.Message)
		}
		b.WriteString("\n")
	}

	if cfg != nil {
		def := cfg.Theme()
		b.WriteString("## Theme\n\n| Category | Tokens |\n|----------|--------|\n")
		for _, category := range def.Categories() {
			fmt.Fprintf(&b, "| %s | %d |\n", category, len(def[category]))
		}

		fmt.Fprintf(&b, "\n## Content (%d files)\n\n", len(cfg.Content()))
		for _, p := range cfg.RelativeContent() {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		if stats := cfg.Stats(); len(stats.PatternMatches) > 0 {
			b.WriteString("\n| Pattern | Matches |\n|---------|---------|\n")
			for _, pattern := range sortedPatterns(stats.PatternMatches) {
				fmt.Fprintf(&b, "| `%s` | %d |\n", escapeCell(pattern), stats.PatternMatches[pattern])
			}
		}

		fmt.Fprintf(&b, "\n## Dark Mode\n\n`%s`: `%s`\n", cfg.Mode(), cfg.Mode().Activation())

		plugins := cfg.Plugins()
		if len(plugins) > 0 {
			b.WriteString("\n## Plugins\n\n")
			for i, p := range plugins {
				fmt.Fprintf(&b, "%d. `%s`\n", i+1, p.Name)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sortedPatterns(m map[string]int) []string {
	patterns := make([]string, 0, len(m))
	for p := range m {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
