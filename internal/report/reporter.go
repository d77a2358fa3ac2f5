package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/problem"
	"github.com/yacobolo/stylecfg/internal/validator"
)

// Reporter handles formatting and outputting resolution results
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a new reporter with the given settings
func NewReporter(w io.Writer, settings Settings) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(settings),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(settings Settings) bool {
	// Explicit flag wins
	if settings.UseColors {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintProblems outputs errors then warnings, one per line
func (r *Reporter) PrintProblems(rep validator.Report) {
	for _, err := range rep.Errors {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "error:", r.useColors), err)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleYellow, "warning:", r.useColors), w)
	}
}

// PrintConfiguration outputs the resolved configuration
func (r *Reporter) PrintConfiguration(cfg *validator.Configuration) {
	def := cfg.Theme()

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Theme", r.useColors))
	fmt.Fprintln(r.w, "-----")
	for _, category := range def.Categories() {
		fmt.Fprintf(r.w, "%-14s %s\n", category, pluralizeCount(len(def[category]), "token", "tokens"))
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Content", r.useColors))
	fmt.Fprintln(r.w, "-------")
	fmt.Fprintf(r.w, "Root: %s\n", cfg.Root())
	for _, p := range cfg.RelativeContent() {
		fmt.Fprintf(r.w, "  %s\n", p)
	}
	stats := cfg.Stats()
	for _, pattern := range sortedPatterns(stats.PatternMatches) {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGray, pattern+":", r.useColors),
			pluralizeCount(stats.PatternMatches[pattern], "match", "matches"))
	}
	fmt.Fprintf(r.w, "%s discovered, %s skipped by .gitignore\n",
		pluralizeCount(stats.FilesDiscovered, "file", "files"),
		pluralizeCount(stats.FilesSkipped, "file", "files"))

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Dark Mode", r.useColors))
	fmt.Fprintln(r.w, "---------")
	fmt.Fprintf(r.w, "%s %s\n", cfg.Mode(), RenderStyle(StyleGray, "("+cfg.Mode().Activation()+")", r.useColors))

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Plugins", r.useColors))
	fmt.Fprintln(r.w, "-------")
	names := plugin.Names(cfg.Plugins())
	if len(names) == 0 {
		fmt.Fprintln(r.w, "(none)")
	}
	for i, name := range names {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, name)
	}
}

// PrintSummary outputs the problem count summary
func (r *Reporter) PrintSummary(rep validator.Report) {
	fmt.Fprintln(r.w, "")

	if rep.OK() {
		msg := "Configuration is valid"
		if len(rep.Warnings) > 0 {
			msg += " (" + pluralizeCount(len(rep.Warnings), "warning", "warnings") + ")"
		}
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, msg, r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s:\n", rep.Summary())

	// Group by kind, in order of first appearance
	var order []string
	counts := make(map[string]int)
	for _, err := range rep.Errors {
		kind := "Other"
		if k, ok := problem.KindOf(err); ok {
			kind = string(k)
		}
		if counts[kind] == 0 {
			order = append(order, kind)
		}
		counts[kind]++
	}
	for _, kind := range order {
		fmt.Fprintf(r.w, "* %s: %d\n", kind, counts[kind])
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format json for machine-readable output", r.useColors))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
