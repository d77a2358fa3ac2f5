package theme

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_theme.yaml
var defaultThemeYAML []byte

var (
	defaultOnce  sync.Once
	defaultTheme Definition
	defaultErr   error
)

// Default returns a copy of the built-in base theme. The embedded tokens
// are decoded once; every caller gets its own clone, so the shared copy is
// never mutated.
func Default() Definition {
	def, err := loadDefault()
	if err != nil {
		// The embedded file is part of the binary; a decode failure is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("theme: decoding built-in defaults: %v", err))
	}
	return def.Clone()
}

func loadDefault() (Definition, error) {
	defaultOnce.Do(func() {
		defaultTheme, defaultErr = Parse(defaultThemeYAML)
	})
	return defaultTheme, defaultErr
}

// Parse decodes a YAML (or JSON) token document into a Definition.
func Parse(data []byte) (Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	return Decode(raw)
}
