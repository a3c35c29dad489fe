package entity

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pathschema/internal/common"
	"pathschema/internal/errors"
)

// Record is a generic entity: a kind, a bag of attributes and an optional
// parent.
type Record struct {
	Type  string
	Attrs map[string]any
	Up    Entity
}

// Kind implements Entity.
func (r *Record) Kind() string { return common.FoldName(r.Type) }

// Parent implements Entity.
func (r *Record) Parent() Entity {
	if IsAbsent(r.Up) {
		return nil
	}

	return r.Up
}

// Attr implements Attributer. Besides its attributes a record answers
// "kind" and "parent".
func (r *Record) Attr(name string) (any, bool) {
	if v, ok := Attr(r.Attrs, name); ok {
		return v, true
	}

	switch common.FoldName(name) {
	case "kind", "type":
		return r.Kind(), true
	case "parent":
		return r.Parent(), true
	default:
		return nil, false
	}
}

func (r *Record) GoString() string {
	return fmt.Sprintf("Record(%s %v)", r.Kind(), r.Attrs["name"])
}

// Reserved keys of a record in a context file.
const (
	recordTypeKey   = "type"
	recordParentKey = "parent"
)

// LoadRecords decodes a YAML context file into a Context of Records.
//
// Each top-level key is a context name. Its mapping holds attributes plus
// two reserved keys: "type" (defaults to the context name) and "parent",
// which is either the name of another top-level entry or an inline mapping
// describing the parent record. Inline parents are not added to the context;
// Expand finds them. Top-level scalars pass through as plain values.
//
//	project:
//	  name: demo
//	  root: /mnt/projects/demo
//	shot:
//	  name: "010"
//	  parent:
//	    type: sequence
//	    name: "101"
//	    parent: project
func LoadRecords(data []byte) (Context, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding context")
	}

	l := &recordLoader{
		raw:     make(map[string]any, len(raw)),
		records: make(map[string]*Record, len(raw)),
		linking: make(map[string]bool),
	}

	for k, v := range raw {
		l.raw[common.FoldName(k)] = v
	}

	ctx := make(Context, len(l.raw))
	names := common.SortedKeys(l.raw)

	for _, name := range names {
		if _, isMap := l.raw[name].(map[string]any); !isMap {
			ctx[name] = l.raw[name]
			continue
		}

		rec, err := l.named(name)
		if err != nil {
			return nil, err
		}

		ctx[name] = rec
	}

	return ctx, nil
}

type recordLoader struct {
	raw     map[string]any
	records map[string]*Record
	linking map[string]bool
}

func (l *recordLoader) named(name string) (*Record, error) {
	if rec, ok := l.records[name]; ok {
		return rec, nil
	}

	if l.linking[name] {
		return nil, errors.Newf("context entry %q is its own ancestor", name)
	}

	body, ok := l.raw[name].(map[string]any)
	if !ok {
		return nil, errors.WithHintf(
			errors.Newf("parent %q is not a context entry", name),
			"known entries: %s", strings.Join(common.SortedKeys(l.raw), ", "))
	}

	l.linking[name] = true
	defer delete(l.linking, name)

	rec, err := l.build(name, body)
	if err != nil {
		return nil, err
	}

	l.records[name] = rec

	return rec, nil
}

func (l *recordLoader) build(name string, body map[string]any) (*Record, error) {
	rec := &Record{Type: name, Attrs: make(map[string]any, len(body))}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v := body[k]

		switch common.FoldName(k) {
		case recordTypeKey:
			t, ok := v.(string)
			if !ok || strings.TrimSpace(t) == "" {
				return nil, errors.Newf("context entry %q: type must be a non-empty string", name)
			}

			rec.Type = t
		case recordParentKey:
			up, err := l.parent(name, v)
			if err != nil {
				return nil, err
			}

			rec.Up = up
		default:
			rec.Attrs[k] = v
		}
	}

	return rec, nil
}

func (l *recordLoader) parent(child string, v any) (Entity, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case string:
		rec, err := l.named(common.FoldName(p))
		if err != nil {
			return nil, errors.Wrapf(err, "context entry %q", child)
		}

		return rec, nil
	case map[string]any:
		inline := child + ".parent"
		if _, ok := p[recordTypeKey]; !ok {
			return nil, errors.Newf("context entry %q: inline parent needs a type", child)
		}

		return l.build(inline, p)
	default:
		return nil, errors.Newf("context entry %q: parent must be a name or a mapping, found %T", child, v)
	}
}
