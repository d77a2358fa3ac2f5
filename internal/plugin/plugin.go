// Package plugin keeps the ordered list of generator plugin references.
// References are opaque: they are validated for shape and ordering, never
// loaded or executed here.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yacobolo/stylecfg/internal/problem"
)

// Ref identifies one plugin. Name is the identity; Options is handed to the
// consuming engine untouched.
type Ref struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Register validates refs and returns them in declaration order. Later
// entries take precedence downstream, so a repeated name is ambiguous and
// fails with DuplicatePlugin; every repeat is reported.
func Register(refs []Ref) ([]Ref, error) {
	out := make([]Ref, 0, len(refs))
	firstSeen := make(map[string]int, len(refs))
	var errs []error

	for i, ref := range refs {
		name := strings.TrimSpace(ref.Name)
		if name == "" {
			errs = append(errs, problem.New(problem.InvalidPluginReference, "", "plugin at position %d has no name", i))
			continue
		}
		if first, dup := firstSeen[name]; dup {
			errs = append(errs, problem.New(problem.DuplicatePlugin, name, "declared at positions %d and %d", first, i))
			continue
		}
		firstSeen[name] = i
		out = append(out, Ref{Name: name, Options: copyOptions(ref.Options)})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Names returns the plugin names in order.
func Names(refs []Ref) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

// Decode converts raw list entries from a configuration file. Each entry is
// either a name string or a mapping with "name" and optional "options".
func Decode(raw []any) ([]Ref, error) {
	refs := make([]Ref, 0, len(raw))
	var errs []error

	for i, entry := range raw {
		switch v := entry.(type) {
		case string:
			refs = append(refs, Ref{Name: v})
		case map[string]any:
			ref, err := decodeMapping(i, v)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			refs = append(refs, ref)
		default:
			errs = append(errs, problem.New(problem.InvalidPluginReference, fmt.Sprint(entry),
				"plugin at position %d must be a name or a {name, options} mapping", i))
		}
	}

	return refs, errors.Join(errs...)
}

func decodeMapping(i int, m map[string]any) (Ref, error) {
	name, ok := m["name"].(string)
	if !ok {
		return Ref{}, problem.New(problem.InvalidPluginReference, "", "plugin at position %d has no string \"name\"", i)
	}
	ref := Ref{Name: name}
	if raw, present := m["options"]; present && raw != nil {
		opts, ok := raw.(map[string]any)
		if !ok {
			return Ref{}, problem.New(problem.InvalidPluginReference, name, "options must be a mapping")
		}
		ref.Options = opts
	}
	return ref, nil
}

func copyOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}
