// Package validator assembles component outputs into one immutable
// Configuration. It is the only producer of a Configuration and the one
// place where failures from independent components are aggregated.
package validator

import (
	"errors"
	"fmt"

	"github.com/yacobolo/stylecfg/internal/content"
	"github.com/yacobolo/stylecfg/internal/mode"
	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/problem"
	"github.com/yacobolo/stylecfg/internal/theme"
)

// Components are the values and failures produced by one resolution run.
type Components struct {
	Theme   theme.Definition // Merged theme
	Root    string           // Absolute content root
	Content []string         // Resolved content paths
	Stats   content.ScanStats
	Mode    mode.Strategy
	Plugins []plugin.Ref

	// Errs are component failures from the same run. Joined errors are
	// flattened so each structural error is reported on its own.
	Errs []error
}

// Report lists everything found in one pass.
type Report struct {
	Errors   []error
	Warnings []problem.Warning
}

// OK reports whether the run produced no errors.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil.
func (r Report) Err() error {
	return errors.Join(r.Errors...)
}

// Merge appends other's findings to r.
func (r Report) Merge(other Report) Report {
	return Report{
		Errors:   append(append([]error{}, r.Errors...), other.Errors...),
		Warnings: append(append([]problem.Warning{}, r.Warnings...), other.Warnings...),
	}
}

// Assemble cross-checks the components. It returns a Configuration only when
// no errors were found; warnings never block one.
func Assemble(c Components) (*Configuration, Report) {
	var report Report
	for _, err := range c.Errs {
		report.add(err)
	}

	if len(c.Theme) == 0 {
		report.add(problem.New(problem.EmptyTheme, "", "theme has no categories after merge"))
	} else {
		report.recheck(theme.Validate(c.Theme))
	}

	if !c.Mode.Valid() && !hasKind(report.Errors, problem.UnknownModeStrategy) {
		report.add(problem.New(problem.UnknownModeStrategy, c.Mode.String(), "no valid dark-mode strategy selected"))
	}

	plugins, err := plugin.Register(c.Plugins)
	report.recheck(err)

	if len(c.Content) == 0 && !hasKind(report.Errors, problem.InvalidPattern, problem.PathEscape) {
		report.Warnings = append(report.Warnings, problem.Warning{
			Code:    problem.WarnEmptyContent,
			Message: "content patterns matched no files; no utility classes will be generated",
		})
	}

	if !report.OK() {
		return nil, report
	}

	return &Configuration{
		theme:   c.Theme.Clone(),
		root:    c.Root,
		content: append([]string{}, c.Content...),
		stats:   cloneStats(c.Stats),
		mode:    c.Mode,
		plugins: plugins,
	}, report
}

// add flattens err into the report. Every component error is kept, even
// when two entries read the same.
func (r *Report) add(err error) {
	r.Errors = append(r.Errors, problem.Flatten(err)...)
}

// recheck adds errors from a cross-check, skipping those already reported
// for the same kind and subject before the check ran.
func (r *Report) recheck(err error) {
	prior := r.Errors[:len(r.Errors):len(r.Errors)]
	for _, e := range problem.Flatten(err) {
		if !reported(prior, e) {
			r.Errors = append(r.Errors, e)
		}
	}
}

func reported(prior []error, target error) bool {
	var want *problem.Error
	if !errors.As(target, &want) {
		return false
	}
	for _, e := range prior {
		var got *problem.Error
		if errors.As(e, &got) && got.Kind == want.Kind && got.Subject == want.Subject {
			return true
		}
	}
	return false
}

func hasKind(errs []error, kinds ...problem.Kind) bool {
	for _, err := range errs {
		k, ok := problem.KindOf(err)
		if !ok {
			continue
		}
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
	}
	return false
}

// Summary renders the report counts, e.g. "2 errors, 1 warning".
func (r Report) Summary() string {
	return fmt.Sprintf("%s, %s",
		pluralize(len(r.Errors), "error", "errors"),
		pluralize(len(r.Warnings), "warning", "warnings"))
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
