package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathschema/internal/errors"
)

func mustDoc(t *testing.T, entries map[string]string) *Document {
	t.Helper()

	doc, err := NewDocument("test", entries)
	require.NoError(t, err)

	return doc
}

func TestFlatten(t *testing.T) {
	doc := mustDoc(t, map[string]string{
		"project_root":  "<project.root>",
		"sequence_root": "$project_root/sequence/<sequence.name>",
		"shot_root":     "$Sequence_Root/<shot.name>",
		"shot_pub":      "$shot_root/pub",
		"both":          "$shot_pub|$shot_pub",
		"literal":       "fixed",
		"money":         "$5 and $",
	})

	tests := []struct {
		key  string
		want string
	}{
		{"project_root", "<project.root>"},
		{"shot_pub", "<project.root>/sequence/<sequence.name>/<shot.name>/pub"},
		{"SHOT_ROOT", "<project.root>/sequence/<sequence.name>/<shot.name>"},
		{"both", "<project.root>/sequence/<sequence.name>/<shot.name>/pub|<project.root>/sequence/<sequence.name>/<shot.name>/pub"},
		{"literal", "fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := Flatten(doc, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "$")

			assert.Empty(t, KeyRefs(got))

			again, err := Flatten(mustDoc(t, map[string]string{"flat": got}), "flat")
			require.NoError(t, err)
			assert.Equal(t, got, again, "flattening flat text must be a no-op")
		})
	}

	// "$5" is a reference to key "5", which does not exist.
	_, err := Flatten(doc, "money")
	var unknown *UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "5", unknown.Key)
	assert.Equal(t, "money", unknown.Referrer)
}

func TestFlattenRoundTrip(t *testing.T) {
	doc := mustDoc(t, map[string]string{"a": "<x.name>/$b", "b": "fixed"})

	got, err := Flatten(doc, "a")
	require.NoError(t, err)
	assert.Equal(t, "<x.name>/fixed", got)
}

func TestFlattenCycles(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		key     string
		path    []string
	}{
		{"self", map[string]string{"a": "x/$a"}, "a", []string{"a", "a"}},
		{"mutual", map[string]string{"a": "$b", "b": "$a"}, "a", []string{"a", "b", "a"}},
		{"entered from outside", map[string]string{"c": "$a", "a": "$b", "b": "$a"}, "c", []string{"a", "b", "a"}},
		{"long", map[string]string{"a": "$b", "b": "$c", "c": "$d", "d": "$b"}, "a", []string{"b", "c", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(mustDoc(t, tt.entries), tt.key)
			require.Error(t, err)

			var cyc *CyclicKeyError
			require.True(t, errors.As(err, &cyc), "expected CyclicKeyError, got %v", err)
			assert.Equal(t, tt.path, cyc.Path)
			assert.Equal(t, "test", cyc.Schema)
			assert.Contains(t, err.Error(), strings.Join(tt.path, " -> "))
		})
	}
}

func TestFlattenUnknownKey(t *testing.T) {
	doc := mustDoc(t, map[string]string{
		"shot_root": "<shot.name>",
		"shot_pub":  "$shot_rot/pub",
	})

	_, err := Flatten(doc, "nope")
	var unknown *UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Key)
	assert.Equal(t, "test", unknown.Schema)
	assert.Equal(t, `unknown key "nope" in schema "test"`, unknown.Error())

	_, err = Flatten(doc, "shot_pub")
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "shot_rot", unknown.Key)
	assert.Equal(t, "shot_pub", unknown.Referrer)
	assert.Equal(t, `did you mean "shot_root"?`, errors.FlattenHints(err))
}

func TestFlattenSharedReferenceIsNotACycle(t *testing.T) {
	doc := mustDoc(t, map[string]string{
		"root": "/r",
		"a":    "$root/a",
		"b":    "$root/b",
		"both": "$a:$b:$root",
	})

	got, err := Flatten(doc, "both")
	require.NoError(t, err)
	assert.Equal(t, "/r/a:/r/b:/r", got)
}

func TestFlattenRejectsJoinedReferences(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		token   string
	}{
		{"dollar before reference", map[string]string{"a": "$$b", "b": "x"}, "$x"},
		{"dollar from referenced key", map[string]string{"a": "$b$c", "b": "$", "c": "x"}, "$x"},
		{"nested", map[string]string{"top": "/r/$a", "a": "$$b", "b": "x"}, "$x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.entries)
			key := "a"
			if _, ok := doc.Template("top"); ok {
				key = "top"
			}

			got, err := Flatten(doc, key)
			require.Error(t, err, "flattened to %q", got)

			var malformed *MalformedSchemaError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, "test", malformed.Name)
			assert.Contains(t, malformed.Reason, `key "a"`)
			assert.Contains(t, malformed.Reason, tt.token)
		})
	}

	// A lone '$' that joins nothing is literal text.
	got, err := Flatten(mustDoc(t, map[string]string{"a": "$b/$", "b": "x"}), "a")
	require.NoError(t, err)
	assert.Equal(t, "x/$", got)
}
