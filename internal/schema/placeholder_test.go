package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	flat := "<Project.root>/seq/<sequence.name>/<shot.sequence.project.root>/<shot>"

	ps := Placeholders(flat)
	require.Len(t, ps, 4)

	assert.Equal(t, "<Project.root>", ps[0].Raw)
	assert.Equal(t, "project", ps[0].Entity)
	assert.Equal(t, []string{"root"}, ps[0].Attrs)
	assert.Equal(t, 0, ps[0].Start)
	assert.Equal(t, len("<Project.root>"), ps[0].End)

	assert.Equal(t, "shot", ps[2].Entity)
	assert.Equal(t, []string{"sequence", "project", "root"}, ps[2].Attrs)
	assert.Equal(t, "shot.sequence.project.root", ps[2].Path())

	assert.Equal(t, "shot", ps[3].Entity)
	assert.Empty(t, ps[3].Attrs)

	for _, p := range ps {
		assert.Equal(t, p.Raw, flat[p.Start:p.End])
	}
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		flat string
		want []string
	}{
		{"none", "/literal/path", nil},
		{"single", "<project.root>", []string{"project"}},
		{"ordered and distinct", "<project.root>/<sequence.name>/<shot.name>/<sequence.id>", []string{"project", "sequence", "shot"}},
		{"case folded", "<Shot.name>/<SHOT.id>", []string{"shot"}},
		{"deep chain", "<shot.sequence.project.root>", []string{"shot"}},
		{"key refs are not fields", "$shot_root/<task.name>", []string{"task"}},
		{"malformed tokens ignored", "<shot.>/<1shot>/< shot >/<shot..name>", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiredFields(tt.flat))
		})
	}
}

func TestParsePlaceholder(t *testing.T) {
	p, err := ParsePlaceholder("<Shot.sequence.name>")
	require.NoError(t, err)
	assert.Equal(t, "shot", p.Entity)
	assert.Equal(t, []string{"sequence", "name"}, p.Attrs)

	p, err = ParsePlaceholder("task.stage")
	require.NoError(t, err)
	assert.Equal(t, "<task.stage>", p.Raw)

	for _, bad := range []string{"<>", "<shot.>", "<.name>", "<shot..name>", "<1shot>", "<shot name>", "<shot-name>"} {
		_, err := ParsePlaceholder(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeyRefs(t *testing.T) {
	assert.Equal(t, []string{"project_root", "shot"}, KeyRefs("$Project_Root/$shot.name/$project_root"))
	assert.Nil(t, KeyRefs("<shot.name>/$"))
}
