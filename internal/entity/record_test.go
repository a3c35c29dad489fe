package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contextYAML = `
project:
  name: unittest
  root: /tmp/unittest
sequence:
  name: "101"
  parent: project
Shot:
  name: "001"
  cut_in: 1001
  parent: sequence
version: 3
`

func TestLoadRecords(t *testing.T) {
	ctx, err := LoadRecords([]byte(contextYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"project", "sequence", "shot", "version"}, ctx.Keys())
	assert.Equal(t, 3, ctx["version"])

	shot, ok := ctx["shot"].(*Record)
	require.True(t, ok)
	assert.Equal(t, "shot", shot.Kind())
	assert.Equal(t, 1001, shot.Attrs["cut_in"])
	assert.NotContains(t, shot.Attrs, "parent")

	// Named parents are shared, not copied.
	assert.Same(t, ctx["sequence"], shot.Parent())
	assert.Same(t, ctx["project"], shot.Parent().Parent())
}

func TestLoadRecordsInlineParents(t *testing.T) {
	ctx, err := LoadRecords([]byte(`
project:
  name: unittest
  root: /tmp/unittest
shot:
  name: "001"
  parent:
    type: Sequence
    name: "101"
    parent: project
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"project", "shot"}, ctx.Keys())

	out, _, err := Expand(ctx, Options{})
	require.NoError(t, err)

	seq, ok := out["sequence"].(*Record)
	require.True(t, ok)
	assert.Equal(t, "101", seq.Attrs["name"])
	assert.Same(t, ctx["project"], seq.Parent())
}

func TestLoadRecordsTypeOverride(t *testing.T) {
	ctx, err := LoadRecords([]byte("hero:\n  type: asset\n  name: hero\n"))
	require.NoError(t, err)

	rec := ctx["hero"].(*Record)
	assert.Equal(t, "asset", rec.Kind())
	assert.NotContains(t, rec.Attrs, "type")
}

func TestLoadRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown parent", "shot:\n  parent: sequence\n", `parent "sequence" is not a context entry`},
		{"scalar parent entry", "version: 3\nshot:\n  parent: version\n", `parent "version" is not a context entry`},
		{"loop", "a:\n  parent: b\nb:\n  parent: a\n", "is its own ancestor"},
		{"bad parent", "shot:\n  parent: [a]\n", "parent must be a name or a mapping"},
		{"inline without type", "shot:\n  parent:\n    name: x\n", "inline parent needs a type"},
		{"empty type", "shot:\n  type: \"\"\n", "type must be a non-empty string"},
		{"not yaml", "shot: [", "decoding context"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecords([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRecordsEmpty(t *testing.T) {
	ctx, err := LoadRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, ctx)
}
