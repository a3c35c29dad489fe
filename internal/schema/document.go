package schema

import (
	"fmt"
	"maps"
	"slices"

	"pathschema/internal/common"
	"pathschema/internal/errors"
)

// Document is one named schema: an immutable table of lower-cased keys to
// raw templates.
type Document struct {
	name    string
	entries map[string]string
	keys    []string
}

// NewDocument builds a Document from entries, folding keys to lower case.
// Keys that collide after folding are a MalformedSchemaError.
func NewDocument(name string, entries map[string]string) (*Document, error) {
	folded := make(map[string]string, len(entries))
	original := make(map[string]string, len(entries))

	// Sorted so the reported collision is deterministic.
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		fk := common.FoldName(k)
		if fk == "" {
			return nil, errors.WithStack(&MalformedSchemaError{Name: name, Reason: "empty key"})
		}

		if prev, ok := original[fk]; ok {
			return nil, errors.WithStack(&MalformedSchemaError{
				Name:   name,
				Reason: fmt.Sprintf("keys %q and %q differ only by case", prev, k),
			})
		}

		original[fk] = k
		folded[fk] = entries[k]
	}

	return &Document{
		name:    name,
		entries: folded,
		keys:    slices.Sorted(maps.Keys(folded)),
	}, nil
}

// Name returns the schema name.
func (d *Document) Name() string { return d.name }

// Len returns the number of keys.
func (d *Document) Len() int { return len(d.entries) }

// Template returns the raw template for key, compared case-insensitively.
func (d *Document) Template(key string) (string, bool) {
	t, ok := d.entries[common.FoldName(key)]
	return t, ok
}

// Keys returns the sorted keys.
func (d *Document) Keys() []string {
	return slices.Clone(d.keys)
}

// Map returns a copy of the key -> raw template table.
func (d *Document) Map() map[string]string {
	return maps.Clone(d.entries)
}
