package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/stylecfg/internal/problem"
)

// writeTree creates files (and their parent directories) below root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("<div class=\"p-4\"></div>"), 0o644))
	}
}

func abs(root string, rels ...string) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = filepath.Join(root, filepath.FromSlash(r))
	}
	return out
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"templates/index.html",
		"templates/sub/page.html",
		"users/templates/users/list.html",
		"static/js/app.js",
		"static/js/vendor/lib.js",
		"static/css/site.css",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "templates", "empty.html"), 0o755))

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "double star crosses segments",
			patterns: []string{"templates/**/*.html"},
			want:     []string{"templates/index.html", "templates/sub/page.html"},
		},
		{
			name:     "single star stays within a segment",
			patterns: []string{"templates/*.html"},
			want:     []string{"templates/index.html"},
		},
		{
			name:     "leading dot slash",
			patterns: []string{"./static/js/**/*.js"},
			want:     []string{"static/js/app.js", "static/js/vendor/lib.js"},
		},
		{
			name:     "overlapping patterns deduplicate",
			patterns: []string{"**/*.html", "templates/**/*.html", "templates/index.html"},
			want:     []string{"templates/index.html", "templates/sub/page.html", "users/templates/users/list.html"},
		},
		{
			name:     "brace alternation",
			patterns: []string{"static/**/*.{js,css}"},
			want:     []string{"static/css/site.css", "static/js/app.js", "static/js/vendor/lib.js"},
		},
		{
			name:     "directories are excluded",
			patterns: []string{"templates/*"},
			want:     []string{"templates/index.html"},
		},
		{
			name:     "zero-match pattern is not an error",
			patterns: []string{"accounts/templates/**/*.html", "static/js/*.js"},
			want:     []string{"static/js/app.js"},
		},
		{
			name:     "no patterns",
			patterns: nil,
			want:     []string{},
		},
		{
			name:     "inner traversal that stays inside root",
			patterns: []string{"static/css/../js/*.js"},
			want:     []string{"static/js/app.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Locator{}
			got, err := l.Resolve(tt.patterns, root)
			require.NoError(t, err)
			assert.Equal(t, abs(root, tt.want...), got.Paths)
			assert.Equal(t, len(tt.want), got.Stats.FilesMatched)
		})
	}
}

func TestResolveOrderIndependent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/x.html", "b/y.html", "c/z.js")

	l := &Locator{}
	first, err := l.Resolve([]string{"c/*.js", "**/*.html", "a/*.html"}, root)
	require.NoError(t, err)
	second, err := l.Resolve([]string{"a/*.html", "**/*.html", "c/*.js"}, root)
	require.NoError(t, err)

	assert.Equal(t, first.Paths, second.Paths)
	assert.Equal(t, abs(root, "a/x.html", "b/y.html", "c/z.js"), first.Paths)
}

func TestResolveAbsolutePatternInsideRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "templates/index.html")

	l := &Locator{}
	got, err := l.Resolve([]string{filepath.Join(root, "templates", "*.html")}, root)
	require.NoError(t, err)
	assert.Equal(t, abs(root, "templates/index.html"), got.Paths)
}

func TestResolveErrors(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	tests := []struct {
		name     string
		patterns []string
		want     []problem.Kind
	}{
		{
			name:     "malformed bracket",
			patterns: []string{"templates/[a-"},
			want:     []problem.Kind{problem.InvalidPattern},
		},
		{
			name:     "empty pattern",
			patterns: []string{"  "},
			want:     []problem.Kind{problem.InvalidPattern},
		},
		{
			name:     "negation",
			patterns: []string{"!templates/**/*.html"},
			want:     []problem.Kind{problem.InvalidPattern},
		},
		{
			name:     "leading parent traversal",
			patterns: []string{"../other/**/*.html"},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "inner traversal out of root",
			patterns: []string{"templates/../../other/*.html"},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "traversal inside brace alternative",
			patterns: []string{"{templates,../outside}/*.html"},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "nested traversal inside brace alternative",
			patterns: []string{"templates/{a,../../outside}/*.html"},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "traversal after double star",
			patterns: []string{"templates/**/../../outside/*.html"},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "absolute pattern outside root",
			patterns: []string{filepath.Join(outside, "*.html")},
			want:     []problem.Kind{problem.PathEscape},
		},
		{
			name:     "all problems reported together",
			patterns: []string{"ok/*.html", "../x/*.html", "bad/[", "!neg"},
			want:     []problem.Kind{problem.PathEscape, problem.InvalidPattern, problem.InvalidPattern},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Locator{}
			_, err := l.Resolve(tt.patterns, root)
			require.Error(t, err)

			errs := problem.Flatten(err)
			require.Len(t, errs, len(tt.want))
			for i, e := range errs {
				kind, ok := problem.KindOf(e)
				require.True(t, ok, "error %v has no kind", e)
				assert.Equal(t, tt.want[i], kind)
			}
		})
	}
}

func TestResolveBraceTraversalDoesNotLeak(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "app")
	writeTree(t, root, "templates/a.html")
	writeTree(t, parent, "outside/secret.html")

	l := &Locator{}
	got, err := l.Resolve([]string{"{templates,../outside}/*.html"}, root)
	require.ErrorIs(t, err, problem.ErrPathEscape)
	assert.Empty(t, got.Paths)
}

func TestResolveNoPatternsMissingRoot(t *testing.T) {
	l := &Locator{}
	got, err := l.Resolve(nil, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, got.Paths)
}

func TestResolveMissingRoot(t *testing.T) {
	l := &Locator{}
	_, err := l.Resolve([]string{"*.html"}, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	_, isProblem := problem.KindOf(err)
	assert.False(t, isProblem, "a missing root is an environment error, not a pattern error")
}

func TestResolveRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"templates/index.html",
		"templates/generated/out.html",
		"build/page.html",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\ntemplates/generated/\n"), 0o644))

	patterns := []string{"**/*.html"}

	plain := &Locator{}
	all, err := plain.Resolve(patterns, root)
	require.NoError(t, err)
	assert.Len(t, all.Paths, 3)

	filtered := &Locator{RespectGitignore: true}
	got, err := filtered.Resolve(patterns, root)
	require.NoError(t, err)
	assert.Equal(t, abs(root, "templates/index.html"), got.Paths)
	assert.Equal(t, 3, got.Stats.FilesDiscovered)
	assert.Equal(t, 2, got.Stats.FilesSkipped)
}

func TestResolveGitignoreMissingFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "templates/index.html")

	l := &Locator{RespectGitignore: true}
	got, err := l.Resolve([]string{"**/*.html"}, root)
	require.NoError(t, err)
	assert.Len(t, got.Paths, 1)
}

func TestResolveStats(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.html", "b.html")

	l := &Locator{}
	got, err := l.Resolve([]string{"*.html", "a.html", "none/*.html"}, root)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"*.html": 2, "a.html": 1, "none/*.html": 0}, got.Stats.PatternMatches)
	assert.Equal(t, 2, got.Stats.FilesDiscovered)
	assert.Equal(t, 2, got.Stats.FilesMatched)
}

func TestNormalizePattern(t *testing.T) {
	root := filepath.FromSlash("/srv/app")

	tests := []struct {
		pattern string
		want    string
	}{
		{"./templates/**/*.html", "templates/**/*.html"},
		{"templates//x/*.html", "templates/x/*.html"},
		{"a/./b/*.js", "a/b/*.js"},
		{"./static/{js,css}/**/*.{js,css}", "static/{js,css}/**/*.{js,css}"},
		{"static/css/../js/*.js", "static/js/*.js"},
		{"templates/index.html", "templates/index.html"},
		{filepath.Join(root, "templates", "*.html"), "templates/*.html"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := normalizePattern(tt.pattern, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
