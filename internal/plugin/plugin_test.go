package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/stylecfg/internal/problem"
)

func refs(names ...string) []Ref {
	out := make([]Ref, len(names))
	for i, n := range names {
		out[i] = Ref{Name: n}
	}
	return out
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		in        []Ref
		want      []string
		wantKinds []problem.Kind
	}{
		{name: "empty", in: nil, want: []string{}},
		{name: "preserves order", in: refs("typography", "forms", "aspect-ratio"), want: []string{"typography", "forms", "aspect-ratio"}},
		{name: "duplicate", in: refs("pluginA", "pluginB", "pluginA"), wantKinds: []problem.Kind{problem.DuplicatePlugin}},
		{
			name:      "every duplicate reported",
			in:        refs("a", "b", "a", "b", "a"),
			wantKinds: []problem.Kind{problem.DuplicatePlugin, problem.DuplicatePlugin, problem.DuplicatePlugin},
		},
		{name: "whitespace does not hide a duplicate", in: refs("forms", " forms "), wantKinds: []problem.Kind{problem.DuplicatePlugin}},
		{name: "empty name", in: refs("forms", ""), wantKinds: []problem.Kind{problem.InvalidPluginReference}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Register(tt.in)
			if len(tt.wantKinds) > 0 {
				require.Error(t, err)
				assert.Nil(t, got)
				errs := problem.Flatten(err)
				require.Len(t, errs, len(tt.wantKinds))
				for i, e := range errs {
					kind, _ := problem.KindOf(e)
					assert.Equal(t, tt.wantKinds[i], kind)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, Names(got))
		})
	}
}

func TestRegisterCopiesOptions(t *testing.T) {
	in := []Ref{{Name: "forms", Options: map[string]any{"strategy": "class"}}}
	got, err := Register(in)
	require.NoError(t, err)

	got[0].Options["strategy"] = "base"
	assert.Equal(t, "class", in[0].Options["strategy"])
}

func TestDecode(t *testing.T) {
	got, err := Decode([]any{
		"@tailwindcss/typography",
		map[string]any{"name": "@tailwindcss/forms", "options": map[string]any{"strategy": "class"}},
		map[string]any{"name": "line-clamp", "options": nil},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "@tailwindcss/typography", got[0].Name)
	assert.Equal(t, "class", got[1].Options["strategy"])
	assert.Nil(t, got[2].Options)
}

func TestDecodeErrors(t *testing.T) {
	got, err := Decode([]any{
		"ok",
		42,
		map[string]any{"options": map[string]any{}},
		map[string]any{"name": "bad-options", "options": "x"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, problem.ErrInvalidPluginReference)
	assert.Len(t, problem.Flatten(err), 3)
	assert.Equal(t, []string{"ok"}, Names(got))
}
