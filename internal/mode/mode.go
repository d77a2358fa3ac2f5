// Package mode selects the dark-mode activation strategy.
package mode

import (
	"fmt"

	"github.com/yacobolo/stylecfg/internal/problem"
)

// Strategy is the mechanism that activates the alternate token set.
type Strategy int

const (
	// Unset is the zero value; it is never a valid selection.
	Unset Strategy = iota
	// Media follows the user agent's prefers-color-scheme media query.
	Media
	// Selector activates dark tokens under an explicit class on an ancestor.
	Selector
)

// Literal identifiers accepted in configuration.
const (
	LiteralMedia    = "media"
	LiteralSelector = "class"
)

// DarkClass is the class name the selector strategy keys off.
const DarkClass = "dark"

// Select parses a strategy literal. Only the exact literals are accepted.
// An empty raw value falls back to the caller-supplied fallback; the package
// itself never assumes a default.
func Select(raw, fallback string) (Strategy, error) {
	value := raw
	if value == "" {
		value = fallback
	}

	switch value {
	case LiteralMedia:
		return Media, nil
	case LiteralSelector:
		return Selector, nil
	case "":
		return Unset, problem.New(problem.UnknownModeStrategy, "", "no dark-mode strategy configured and no fallback supplied")
	}
	return Unset, problem.New(problem.UnknownModeStrategy, value, "expected %q or %q", LiteralMedia, LiteralSelector)
}

// Valid reports whether s is one of the selectable strategies.
func (s Strategy) Valid() bool {
	return s == Media || s == Selector
}

// String returns the configuration literal.
func (s Strategy) String() string {
	switch s {
	case Media:
		return LiteralMedia
	case Selector:
		return LiteralSelector
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Activation returns the wrapper the engine emits dark variants under.
func (s Strategy) Activation() string {
	switch s {
	case Media:
		return "@media (prefers-color-scheme: dark)"
	case Selector:
		return "." + DarkClass
	}
	return ""
}

// MarshalText encodes the strategy as its literal.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("mode: cannot marshal invalid strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a literal without fallback.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := Select(string(text), "")
	if err != nil {
		return err
	}
	*s = v
	return nil
}
