package entity

import (
	"reflect"

	"pathschema/internal/common"
)

// Entity is anything that can appear in a resolution context and has a place
// in the production hierarchy.
type Entity interface {
	// Kind is the entity's type name, matched case-insensitively against
	// placeholder names ("shot", "sequence").
	Kind() string
	// Parent returns the next entity up, or nil at the top.
	Parent() Entity
}

// Attributer lets a value answer attribute lookups itself instead of through
// reflection.
type Attributer interface {
	Attr(name string) (any, bool)
}

// Context maps lower-cased entity names to values.
type Context map[string]any

// Keys returns the context's keys in sorted order.
func (c Context) Keys() []string {
	return common.SortedKeys(c)
}

// KindOf returns the folded kind of e.
func KindOf(e Entity) string {
	return common.FoldName(e.Kind())
}

// IsAbsent reports whether v carries no value: nil, a nil pointer, map,
// slice, interface, func or chan.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

// Same reports whether a and b are the same entity. Entities of one kind
// that both carry a non-zero id attribute compare by id, so two loads of the
// same row agree. Otherwise pointers compare by address and values compare
// with == when their types allow it.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if same, ok := sameByID(a, b); ok {
		return same
	}

	return equalValues(a, b)
}

// sameByID compares two entities by kind and id. ok is false unless both are
// present entities with a non-zero id.
func sameByID(a, b any) (same, ok bool) {
	ea, okA := a.(Entity)
	eb, okB := b.(Entity)

	if !okA || !okB || IsAbsent(ea) || IsAbsent(eb) {
		return false, false
	}

	ida, okA := Attr(ea, "id")
	idb, okB := Attr(eb, "id")

	if !okA || !okB || IsAbsent(ida) || IsAbsent(idb) {
		return false, false
	}

	if reflect.ValueOf(ida).IsZero() || reflect.ValueOf(idb).IsZero() {
		return false, false
	}

	return KindOf(ea) == KindOf(eb) && equalValues(ida, idb), true
}

func equalValues(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}

	return va.Equal(vb)
}

// parentChain returns e's ancestors nearest first. It fails once the chain
// grows past limit, which also catches parent loops.
func parentChain(start string, e Entity, limit int) ([]Entity, error) {
	var chain []Entity

	for cur := e.Parent(); !IsAbsent(cur); cur = cur.Parent() {
		if len(chain) == limit {
			return nil, &HierarchyTooDeepError{Start: start, Limit: limit}
		}

		chain = append(chain, cur)
	}

	return chain, nil
}
