// Package theme holds design-token definitions and merges project
// extensions over the built-in defaults.
//
// A Definition is two levels deep: category → key → value. Keys may be
// dotted (`primary.500`) because nested input below a category is
// flattened, so the token path `colors.primary.500` addresses category
// `colors`, key `primary.500`. Category names themselves can never contain
// the path separator.
package theme

import (
	"errors"
	"sort"
	"strings"

	"github.com/yacobolo/stylecfg/internal/problem"
)

// PathSeparator joins the segments of a token path.
const PathSeparator = "."

// MaxKeyDepth bounds the number of segments in a key below a category.
const MaxKeyDepth = 3

// Definition maps category name to key to token value.
type Definition map[string]map[string]string

// Merge overlays extension onto base at key granularity and returns a new
// Definition. Neither argument is modified. Extension values always win;
// categories absent from extension pass through from base, and extension
// categories with zero keys are no-ops.
func Merge(base, extension Definition) Definition {
	out := base.Clone()
	for category, tokens := range extension {
		if len(tokens) == 0 {
			continue
		}
		merged, ok := out[category]
		if !ok {
			merged = make(map[string]string, len(tokens))
			out[category] = merged
		}
		for key, value := range tokens {
			merged[key] = value
		}
	}
	return out
}

// Replace swaps whole categories of base for those in override. It is the
// non-extend form of a theme section and runs before Merge. Empty override
// categories are no-ops, as in Merge.
func Replace(base, override Definition) Definition {
	out := base.Clone()
	for category, tokens := range override {
		if len(tokens) == 0 {
			continue
		}
		replaced := make(map[string]string, len(tokens))
		for key, value := range tokens {
			replaced[key] = value
		}
		out[category] = replaced
	}
	return out
}

// Validate reports every invalid category name and token value in def as
// one joined error, or nil.
func Validate(def Definition) error {
	var errs []error
	for _, category := range def.Categories() {
		if err := ValidateCategory(category); err != nil {
			errs = append(errs, err)
			continue
		}

		tokens := def[category]
		keys := make([]string, 0, len(tokens))
		for key := range tokens {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			path := category + PathSeparator + key
			if err := validateKey(path, key); err != nil {
				errs = append(errs, err)
				continue
			}
			if strings.TrimSpace(tokens[key]) == "" {
				errs = append(errs, problem.New(problem.InvalidTokenValue, path, "value must be a non-empty string"))
			}
		}
	}
	return errors.Join(errs...)
}

// ValidateCategory checks one category name.
func ValidateCategory(name string) error {
	if name == "" {
		return problem.New(problem.InvalidCategoryName, name, "category name is empty")
	}
	if strings.Contains(name, PathSeparator) {
		return problem.New(problem.InvalidCategoryName, name, "category name contains reserved separator %q", PathSeparator)
	}
	return nil
}

func validateKey(path, key string) error {
	segments := strings.Split(key, PathSeparator)
	if len(segments) > MaxKeyDepth {
		return problem.New(problem.InvalidTokenValue, path, "key nests %d levels, limit is %d", len(segments), MaxKeyDepth)
	}
	for _, s := range segments {
		if s == "" {
			return problem.New(problem.InvalidTokenValue, path, "key has an empty segment")
		}
	}
	return nil
}

// Lookup resolves a dotted token path such as "colors.primary.500".
func (d Definition) Lookup(path string) (string, bool) {
	category, key, ok := strings.Cut(path, PathSeparator)
	if !ok {
		return "", false
	}
	tokens, ok := d[category]
	if !ok {
		return "", false
	}
	value, ok := tokens[key]
	return value, ok
}

// Categories returns the category names in lexicographic order.
func (d Definition) Categories() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of tokens across all categories.
func (d Definition) Len() int {
	n := 0
	for _, tokens := range d {
		n += len(tokens)
	}
	return n
}

// Clone returns a deep copy. Cloning nil yields an empty, non-nil Definition.
func (d Definition) Clone() Definition {
	out := make(Definition, len(d))
	for category, tokens := range d {
		copied := make(map[string]string, len(tokens))
		for key, value := range tokens {
			copied[key] = value
		}
		out[category] = copied
	}
	return out
}

// Equal reports whether d and other hold the same tokens.
func (d Definition) Equal(other Definition) bool {
	if len(d) != len(other) {
		return false
	}
	for category, tokens := range d {
		theirs, ok := other[category]
		if !ok || len(theirs) != len(tokens) {
			return false
		}
		for key, value := range tokens {
			if v, ok := theirs[key]; !ok || v != value {
				return false
			}
		}
	}
	return true
}
