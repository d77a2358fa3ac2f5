package validator

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/yacobolo/stylecfg/internal/content"
	"github.com/yacobolo/stylecfg/internal/mode"
	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/theme"
)

// Configuration is the resolved, immutable aggregate handed to the
// generation engine. It is created only by Assemble; every accessor
// returns a copy.
type Configuration struct {
	theme   theme.Definition
	root    string
	content []string
	stats   content.ScanStats
	mode    mode.Strategy
	plugins []plugin.Ref
}

// Theme returns a copy of the merged theme.
func (c *Configuration) Theme() theme.Definition {
	return c.theme.Clone()
}

// Token resolves a dotted token path such as "colors.primary.500".
func (c *Configuration) Token(path string) (string, bool) {
	return c.theme.Lookup(path)
}

// Root returns the absolute content root.
func (c *Configuration) Root() string {
	return c.root
}

// Content returns the resolved absolute content paths in lexicographic order.
func (c *Configuration) Content() []string {
	return slices.Clone(c.content)
}

// Stats returns the discovery statistics of the content scan.
func (c *Configuration) Stats() content.ScanStats {
	return cloneStats(c.stats)
}

func cloneStats(s content.ScanStats) content.ScanStats {
	out := s
	out.PatternMatches = maps.Clone(s.PatternMatches)
	return out
}

// RelativeContent returns the content paths relative to Root, slash-separated.
func (c *Configuration) RelativeContent() []string {
	out := make([]string, len(c.content))
	for i, p := range c.content {
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			rel = p
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

// Mode returns the dark-mode strategy.
func (c *Configuration) Mode() mode.Strategy {
	return c.mode
}

// Plugins returns the plugin references in declaration order.
func (c *Configuration) Plugins() []plugin.Ref {
	out := make([]plugin.Ref, len(c.plugins))
	for i, p := range c.plugins {
		out[i] = plugin.Ref{Name: p.Name}
		if p.Options != nil {
			out[i].Options = make(map[string]any, len(p.Options))
			for k, v := range p.Options {
				out[i].Options[k] = v
			}
		}
	}
	return out
}

// Equal reports structural equality. Plugin options are opaque and
// compared by name only.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.root == other.root &&
		c.mode == other.mode &&
		slices.Equal(c.content, other.content) &&
		slices.Equal(plugin.Names(c.plugins), plugin.Names(other.plugins)) &&
		c.theme.Equal(other.theme)
}

// Snapshot is a plain, serializable view of a Configuration.
type Snapshot struct {
	Theme    theme.Definition `json:"theme" yaml:"theme"`
	Root     string           `json:"root" yaml:"root"`
	Content  []string         `json:"content" yaml:"content"`
	DarkMode string           `json:"darkMode" yaml:"darkMode"`
	Plugins  []plugin.Ref     `json:"plugins" yaml:"plugins"`
}

// Snapshot returns a detached copy suitable for encoding.
func (c *Configuration) Snapshot() Snapshot {
	return Snapshot{
		Theme:    c.Theme(),
		Root:     c.root,
		Content:  c.Content(),
		DarkMode: c.mode.String(),
		Plugins:  c.Plugins(),
	}
}
