// Package stylecfg resolves the configuration of a utility-class CSS
// generation pipeline: where template sources live, how the project theme
// extends the default design tokens, which dark-mode strategy is active, and
// which generator plugins are registered.
//
// # Resolution
//
// Resolve runs every component on in-memory input and returns one immutable
// Configuration plus a Report of all errors and warnings found:
//
//	cfg, report := stylecfg.Resolve(stylecfg.Default(), stylecfg.Input{
//		Root:     ".",
//		Content:  []string{"templates/**/*.html"},
//		Extend:   theme.Definition{"colors": {"primary.500": "#667eea"}},
//		DarkMode: "class",
//	})
//	if !report.OK() {
//		return report.Err()
//	}
//	v, _ := cfg.Token("colors.primary.500")
//
// ResolveFile does the same starting from a stylecfg.yaml file.
//
// # CLI Tool
//
// stylecfg also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/stylecfg/cmd/stylecfg@latest
package stylecfg

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/stylecfg/internal/content"
	"github.com/yacobolo/stylecfg/internal/mode"
	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/source"
	"github.com/yacobolo/stylecfg/internal/theme"
	"github.com/yacobolo/stylecfg/internal/validator"
)

// Configuration is the resolved, immutable configuration.
type Configuration = validator.Configuration

// Report lists every error and warning of one resolution run.
type Report = validator.Report

// Input is the declarative configuration in memory.
type Input struct {
	Root     string           // Directory content patterns are relative to
	Content  []string         // Glob patterns
	Override theme.Definition // Base categories replaced wholesale
	Extend   theme.Definition // Key-level overrides merged over base
	DarkMode string           // "media" or "class"
	Plugins  []plugin.Ref

	// ModeFallback applies when DarkMode is empty.
	ModeFallback string
	// RespectGitignore drops content files matched by <Root>/.gitignore.
	RespectGitignore bool
	// Problems found before resolution, such as decode errors of a
	// configuration file. They are reported with the rest of the run.
	Problems []error

	Logger logrus.FieldLogger
}

// Options carry the settings ResolveFile cannot read from the file itself.
type Options struct {
	Root             string // Defaults to the config file's directory
	ModeFallback     string
	RespectGitignore bool
	Logger           logrus.FieldLogger
}

// Default returns a copy of the built-in base theme.
func Default() theme.Definition {
	return theme.Default()
}

// Resolve runs all components and assembles the result. base is read-only.
// The configuration is nil whenever the report holds errors.
func Resolve(base theme.Definition, in Input) (*Configuration, Report) {
	log := in.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	root := in.Root
	if root == "" {
		root = "."
	}

	var (
		merged     theme.Definition
		themeErr   error
		located    content.Result
		contentErr error
	)

	// Theme merge and content scan are independent.
	var g errgroup.Group
	g.Go(func() error {
		merged, themeErr = resolveTheme(base, in.Override, in.Extend)
		return nil
	})
	g.Go(func() error {
		locator := &content.Locator{RespectGitignore: in.RespectGitignore, Logger: log}
		located, contentErr = locator.Resolve(in.Content, root)
		return nil
	})
	_ = g.Wait()

	strategy, modeErr := mode.Select(in.DarkMode, in.ModeFallback)

	absRoot := located.Root
	if absRoot == "" {
		absRoot, _ = filepath.Abs(root)
	}

	cfg, report := validator.Assemble(validator.Components{
		Theme:   merged,
		Root:    absRoot,
		Content: located.Paths,
		Stats:   located.Stats,
		Mode:    strategy,
		Plugins: in.Plugins,
		Errs:    append(append([]error{}, in.Problems...), themeErr, contentErr, modeErr),
	})

	log.WithFields(logrus.Fields{
		"categories": len(merged),
		"tokens":     merged.Len(),
		"files":      len(located.Paths),
		"darkMode":   in.DarkMode,
		"plugins":    len(in.Plugins),
		"errors":     len(report.Errors),
		"warnings":   len(report.Warnings),
	}).Debug("resolved configuration")

	return cfg, report
}

// resolveTheme validates both layers, replaces then merges.
func resolveTheme(base, override, extend theme.Definition) (theme.Definition, error) {
	var errs []error
	if err := theme.Validate(override); err != nil {
		errs = append(errs, err)
	}
	if err := theme.Validate(extend); err != nil {
		errs = append(errs, err)
	}
	merged := theme.Merge(theme.Replace(base, override), extend)
	if len(errs) > 0 {
		return merged, errors.Join(errs...)
	}
	return merged, nil
}

// ResolveFile loads path and resolves it. err is non-nil only when the file
// cannot be read or parsed; structural problems are in the report.
func ResolveFile(path string, base theme.Definition, opts Options) (*Configuration, Report, error) {
	f, err := source.Load(path)
	if err != nil {
		return nil, Report{}, err
	}

	root := opts.Root
	if root == "" {
		root = filepath.Dir(path)
	}

	cfg, report := Resolve(base, Input{
		Root:             root,
		Content:          f.Content,
		Override:         f.Override,
		Extend:           f.Extend,
		DarkMode:         f.DarkMode,
		Plugins:          f.Plugins,
		ModeFallback:     opts.ModeFallback,
		RespectGitignore: opts.RespectGitignore,
		Problems:         f.Errs,
		Logger:           opts.Logger,
	})
	return cfg, report, nil
}
