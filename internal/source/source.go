// Package source reads the declarative configuration file.
//
// Recognized top-level fields:
//
//	content:      ordered list of glob patterns
//	theme.extend: category → key → token value, merged over the base theme
//	theme.<name>: category replaced wholesale (non-extend form)
//	darkMode:     "media" or "class"
//	plugins:      ordered list of names or {name, options} mappings
//
// Anything else at the top level is ignored, so newer files still load.
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/problem"
	"github.com/yacobolo/stylecfg/internal/theme"
)

// Field names
const (
	KeyContent  = "content"
	KeyTheme    = "theme"
	KeyExtend   = "extend"
	KeyDarkMode = "darkMode"
	KeyPlugins  = "plugins"
)

// File is a decoded configuration file.
type File struct {
	Path     string
	Content  []string
	Override theme.Definition // theme.<category>
	Extend   theme.Definition // theme.extend
	DarkMode string
	Plugins  []plugin.Ref

	// Errs holds shape problems of recognized fields. They are structural
	// configuration errors, reported alongside the rest of the run.
	Errs []error
}

// Load reads and decodes path. Only I/O and syntax failures are returned as
// err; shape problems land in File.Errs.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	f := FromMap(k.Raw())
	f.Path = path
	return f, nil
}

// FromMap decodes an already-parsed configuration mapping.
func FromMap(raw map[string]any) *File {
	f := &File{
		Override: theme.Definition{},
		Extend:   theme.Definition{},
	}

	f.Content = decodeContent(raw[KeyContent], &f.Errs)
	decodeTheme(raw[KeyTheme], f)

	switch v := raw[KeyDarkMode].(type) {
	case nil:
	case string:
		f.DarkMode = v
	default:
		f.Errs = append(f.Errs, problem.New(problem.UnknownModeStrategy, fmt.Sprint(v), "darkMode must be a string"))
	}

	switch v := raw[KeyPlugins].(type) {
	case nil:
	case []any:
		refs, err := plugin.Decode(v)
		f.Plugins = refs
		f.Errs = append(f.Errs, problem.Flatten(err)...)
	default:
		f.Errs = append(f.Errs, problem.New(problem.InvalidPluginReference, "", "plugins must be a list"))
	}

	return f
}

func decodeContent(v any, errs *[]error) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case string:
		return []string{list}
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				*errs = append(*errs, problem.New(problem.InvalidPattern, fmt.Sprint(item), "content entry %d must be a string", i))
				continue
			}
			out = append(out, s)
		}
		return out
	}
	*errs = append(*errs, problem.New(problem.InvalidPattern, fmt.Sprint(v), "content must be a list of glob patterns"))
	return nil
}

func decodeTheme(v any, f *File) {
	if v == nil {
		return
	}
	section, ok := v.(map[string]any)
	if !ok {
		f.Errs = append(f.Errs, problem.New(problem.InvalidTokenValue, KeyTheme, "theme must be a mapping"))
		return
	}

	override := make(map[string]any, len(section))
	for name, value := range section {
		if name == KeyExtend {
			continue
		}
		override[name] = value
	}

	var err error
	f.Override, err = theme.Decode(override)
	f.Errs = append(f.Errs, problem.Flatten(err)...)

	switch ext := section[KeyExtend].(type) {
	case nil:
	case map[string]any:
		f.Extend, err = theme.Decode(ext)
		f.Errs = append(f.Errs, problem.Flatten(err)...)
	default:
		f.Errs = append(f.Errs, problem.New(problem.InvalidTokenValue, KeyTheme+"."+KeyExtend, "theme.extend must be a mapping"))
	}
}

// Err joins the decode problems, or returns nil.
func (f *File) Err() error {
	return errors.Join(f.Errs...)
}
