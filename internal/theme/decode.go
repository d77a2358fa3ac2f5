package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yacobolo/stylecfg/internal/problem"
)

// Decode converts a nested mapping (as produced by a YAML or JSON parser)
// into a Definition. Mappings below a category flatten into dotted keys.
// Every invalid entry is reported in the returned joined error; valid
// entries are still decoded so callers can keep going.
func Decode(raw map[string]any) (Definition, error) {
	def := make(Definition, len(raw))
	var errs []error

	for _, category := range sortedKeys(raw) {
		if err := ValidateCategory(category); err != nil {
			errs = append(errs, err)
			continue
		}

		value := raw[category]
		if value == nil {
			// "colors:" with nothing under it, same as an empty mapping
			continue
		}
		nested, ok := asMap(value)
		if !ok {
			errs = append(errs, problem.New(problem.InvalidTokenValue, category,
				"category must be a mapping of keys to values, got %s", describe(value)))
			continue
		}

		tokens := make(map[string]string)
		errs = append(errs, flatten(category, "", 1, nested, tokens)...)
		if len(tokens) > 0 {
			def[category] = tokens
		}
	}

	return def, errors.Join(errs...)
}

func flatten(category, prefix string, depth int, m map[string]any, out map[string]string) []error {
	var errs []error
	for _, k := range sortedKeys(m) {
		key := k
		if prefix != "" {
			key = prefix + PathSeparator + k
		}
		path := category + PathSeparator + key

		if k == "" {
			errs = append(errs, problem.New(problem.InvalidTokenValue, path, "key has an empty segment"))
			continue
		}

		switch v := m[k].(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				errs = append(errs, problem.New(problem.InvalidTokenValue, path, "value must be a non-empty string"))
				continue
			}
			out[key] = v
		default:
			nested, ok := asMap(v)
			if !ok {
				errs = append(errs, problem.New(problem.InvalidTokenValue, path,
					"value must be a non-empty string, got %s", describe(v)))
				continue
			}
			if depth >= MaxKeyDepth {
				errs = append(errs, problem.New(problem.InvalidTokenValue, path,
					"key nests deeper than %d levels", MaxKeyDepth))
				continue
			}
			errs = append(errs, flatten(category, key, depth+1, nested, out)...)
		}
	}
	return errs
}

// asMap normalizes the mapping types YAML decoders produce. yaml.v3 yields
// map[any]any when a mapping has non-string keys such as shade numbers.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}
	return nil, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64, uint64, float64, float32:
		return "number"
	case []any:
		return "list"
	case string:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
