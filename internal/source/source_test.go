package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/stylecfg/internal/plugin"
	"github.com/yacobolo/stylecfg/internal/problem"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stylecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
content:
  - './templates/**/*.html'
  - './users/templates/**/*.html'
  - './static/js/**/*.js'
theme:
  extend:
    colors:
      primary:
        500: '#667eea'
        600: '#5568d3'
      secondary:
        500: '#764ba2'
plugins: []
darkMode: class
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, f.Errs)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, []string{
		"./templates/**/*.html",
		"./users/templates/**/*.html",
		"./static/js/**/*.js",
	}, f.Content)
	assert.Equal(t, "class", f.DarkMode)
	assert.Empty(t, f.Plugins)
	assert.Empty(t, f.Override)
	assert.Equal(t, map[string]string{
		"primary.500":   "#667eea",
		"primary.600":   "#5568d3",
		"secondary.500": "#764ba2",
	}, f.Extend["colors"])
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := writeConfig(t, `
content: ["templates/*.html"]
darkMode: media
prefix: tw-
important: true
future:
  hoverOnlyWhenSupported: true
stylecfg:
  root: web
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, f.Errs)
	assert.Equal(t, []string{"templates/*.html"}, f.Content)
	assert.Equal(t, "media", f.DarkMode)
}

func TestLoadThemeOverride(t *testing.T) {
	path := writeConfig(t, `
theme:
  screens:
    tablet: 640px
    desktop: 1280px
  extend:
    spacing:
      "72": 18rem
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, f.Errs)
	assert.Equal(t, map[string]string{"tablet": "640px", "desktop": "1280px"}, f.Override["screens"])
	assert.Equal(t, map[string]string{"72": "18rem"}, f.Extend["spacing"])
}

func TestLoadPlugins(t *testing.T) {
	path := writeConfig(t, `
plugins:
  - "@tailwindcss/typography"
  - name: "@tailwindcss/forms"
    options:
      strategy: class
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, f.Errs)
	assert.Equal(t, []string{"@tailwindcss/typography", "@tailwindcss/forms"}, plugin.Names(f.Plugins))
	assert.Equal(t, "class", f.Plugins[1].Options["strategy"])
}

func TestLoadCollectsShapeErrors(t *testing.T) {
	path := writeConfig(t, `
content:
  - templates/*.html
  - 42
theme:
  extend:
    colors:
      primary:
        500: ""
    zIndex:
      "60": 60
darkMode: [class]
plugins: forms
`)

	f, err := Load(path)
	require.NoError(t, err, "shape problems are not load failures")

	kinds := make([]problem.Kind, 0, len(f.Errs))
	for _, e := range f.Errs {
		k, _ := problem.KindOf(e)
		kinds = append(kinds, k)
	}
	assert.ElementsMatch(t, []problem.Kind{
		problem.InvalidPattern,
		problem.InvalidTokenValue,
		problem.InvalidTokenValue,
		problem.UnknownModeStrategy,
		problem.InvalidPluginReference,
	}, kinds)
	assert.Equal(t, []string{"templates/*.html"}, f.Content)
	assert.Error(t, f.Err())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "content: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stylecfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "content": ["templates/**/*.html"],
  "theme": {"extend": {"colors": {"primary": {"500": "#667eea"}}}},
  "darkMode": "class",
  "plugins": []
}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, f.Errs)
	assert.Equal(t, "#667eea", f.Extend["colors"]["primary.500"])
}

func TestFromMapSingleContentString(t *testing.T) {
	f := FromMap(map[string]any{"content": "templates/**/*.html"})
	assert.Equal(t, []string{"templates/**/*.html"}, f.Content)
	assert.Empty(t, f.Errs)
}
