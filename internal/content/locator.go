// Package content resolves content glob patterns into the set of source
// files the generation engine scans for utility-class names.
package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/stylecfg/internal/problem"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int            // Files matched by at least one pattern
	FilesMatched    int            // Files kept in the result
	FilesSkipped    int            // Files dropped by the gitignore filter
	PatternMatches  map[string]int // Files matched per pattern (before dedup)
}

// Result is the resolved content set.
type Result struct {
	Root  string   // Absolute root directory
	Paths []string // Absolute file paths, deduplicated, lexicographic order
	Stats ScanStats
}

// Locator expands content patterns relative to a root directory.
type Locator struct {
	// RespectGitignore skips files matched by <root>/.gitignore.
	RespectGitignore bool
	Logger           logrus.FieldLogger
}

// Resolve expands patterns below rootDir. Patterns that match nothing are
// not an error and an empty result is valid. Every malformed or escaping
// pattern is reported in the returned joined error.
func (l *Locator) Resolve(patterns []string, rootDir string) (Result, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root %s: %w", rootDir, err)
	}
	root = filepath.Clean(root)
	result := Result{Root: root, Paths: []string{}, Stats: ScanStats{PatternMatches: map[string]int{}}}

	// Validate everything up front so one pass reports all bad patterns.
	normalized := make([]string, len(patterns))
	var errs []error
	for i, p := range patterns {
		n, err := normalizePattern(p, root)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		normalized[i] = n
	}
	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	// Nothing to expand, so the root is never consulted.
	if len(normalized) == 0 {
		return result, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		return result, fmt.Errorf("content root %s: %w", root, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("content root %s is not a directory", root)
	}

	matches := make([][]string, len(normalized))
	fsys := os.DirFS(root)

	var g errgroup.Group
	for i, pattern := range normalized {
		g.Go(func() error {
			found, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return problem.Wrap(problem.InvalidPattern, patterns[i], err)
			}
			matches[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	var gi *ignore.GitIgnore
	if l.RespectGitignore {
		gi = loadGitIgnore(root)
	}

	log := l.logger()
	seen := make(map[string]bool)
	for i, found := range matches {
		result.Stats.PatternMatches[patterns[i]] = len(found)
		log.WithFields(logrus.Fields{
			"pattern": patterns[i],
			"matches": len(found),
		}).Debug("expanded content pattern")

		for _, rel := range found {
			if seen[rel] {
				continue
			}
			seen[rel] = true
			result.Stats.FilesDiscovered++

			if gi != nil && gi.MatchesPath(rel) {
				result.Stats.FilesSkipped++
				continue
			}
			result.Paths = append(result.Paths, filepath.Join(root, filepath.FromSlash(rel)))
			result.Stats.FilesMatched++
		}
	}
	sort.Strings(result.Paths)

	return result, nil
}

func (l *Locator) logger() logrus.FieldLogger {
	if l.Logger == nil {
		lg := logrus.New()
		lg.SetOutput(io.Discard)
		return lg
	}
	return l.Logger
}

// globMeta are the characters that start glob syntax.
const globMeta = "*?[{\\"

// normalizePattern turns a user pattern into a slash-separated pattern
// relative to root, rejecting malformed patterns and traversal out of root.
// Only the literal directory prefix is cleaned; glob text is never rewritten.
func normalizePattern(pattern, root string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", problem.New(problem.InvalidPattern, pattern, "pattern is empty")
	}
	if strings.HasPrefix(pattern, "!") {
		return "", problem.New(problem.InvalidPattern, pattern, "negated patterns are not supported; content patterns are a pure union")
	}

	p := filepath.ToSlash(pattern)
	if filepath.IsAbs(pattern) {
		prefix := filepath.ToSlash(root)
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		if !strings.HasPrefix(p, prefix) {
			return "", problem.New(problem.PathEscape, pattern, "absolute pattern lies outside root %s", root)
		}
		p = strings.TrimPrefix(p, prefix)
	}

	static, glob := splitStatic(p)
	if static != "" {
		static = path.Clean(static)
		if escapes(static) {
			return "", problem.New(problem.PathEscape, pattern, "pattern traverses outside root %s", root)
		}
	}
	// A ".." after glob syntax can climb any number of directories that
	// "**" or an alternative descended, so it is never allowed.
	if hasParentSegment(glob) {
		return "", problem.New(problem.PathEscape, pattern, "traversal segment inside glob syntax may leave root %s", root)
	}

	switch {
	case static == "" || static == ".":
		p = glob
	case glob == "":
		p = static
	default:
		p = static + "/" + glob
	}
	if p == "" {
		return "", problem.New(problem.InvalidPattern, pattern, "pattern names the root itself")
	}

	if !doublestar.ValidatePattern(p) {
		return "", problem.New(problem.InvalidPattern, pattern, "malformed glob syntax")
	}
	return p, nil
}

// splitStatic splits p at the last "/" before the first glob
// metacharacter. A pattern without glob syntax is all static.
func splitStatic(p string) (static, glob string) {
	meta := strings.IndexAny(p, globMeta)
	if meta < 0 {
		return p, ""
	}
	slash := strings.LastIndex(p[:meta], "/")
	if slash < 0 {
		return "", p
	}
	return p[:slash], p[slash+1:]
}

// hasParentSegment reports whether any path segment of any brace
// alternative in glob is "..".
func hasParentSegment(glob string) bool {
	depth := 0
	start := 0
	for i := 0; i <= len(glob); i++ {
		var c byte
		if i < len(glob) {
			c = glob[i]
		}
		switch {
		case i == len(glob), c == '/', c == '{', c == '}', c == ',' && depth > 0:
			if glob[start:i] == ".." {
				return true
			}
			start = i + 1
			if c == '{' {
				depth++
			} else if c == '}' && depth > 0 {
				depth--
			}
		case c == '\\':
			i++
		}
	}
	return false
}

func escapes(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}

// loadGitIgnore compiles <root>/.gitignore. A missing file disables filtering.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
