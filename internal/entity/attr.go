package entity

import (
	"reflect"
	"sort"
	"strings"

	"pathschema/internal/match"
)

// AttrTag is the struct tag that renames a field for template lookups.
const AttrTag = "attr"

// Attr looks up one attribute of v. A value implementing Attributer answers
// alone. Otherwise Attr tries, in order:
//   - string map keys (exact, then case-insensitive),
//   - exported struct fields by `attr` tag, which replaces the Go name,
//   - other exported struct fields and zero-argument, single-result methods by
//     name, ignoring case and underscores ("cut_in" finds CutIn).
//
// Absent values have no attributes.
func Attr(v any, name string) (any, bool) {
	if IsAbsent(v) {
		return nil, false
	}

	if a, ok := v.(Attributer); ok {
		return a.Attr(name)
	}

	rv := reflect.ValueOf(v)
	elem := reflect.Indirect(rv)

	switch elem.Kind() {
	case reflect.Map:
		if elem.Type().Key().Kind() == reflect.String {
			return mapAttr(elem, name)
		}
	case reflect.Struct:
		if out, ok := fieldAttr(elem, name); ok {
			return out, true
		}
	default:
	}

	return methodAttr(rv, name)
}

func mapAttr(m reflect.Value, name string) (any, bool) {
	if v := m.MapIndex(reflect.ValueOf(name).Convert(m.Type().Key())); v.IsValid() {
		return v.Interface(), true
	}

	var folded []string

	for _, k := range m.MapKeys() {
		if strings.EqualFold(k.String(), name) {
			folded = append(folded, k.String())
		}
	}

	if len(folded) == 0 {
		return nil, false
	}

	sort.Strings(folded)

	return m.MapIndex(reflect.ValueOf(folded[0]).Convert(m.Type().Key())).Interface(), true
}

func fieldAttr(s reflect.Value, name string) (any, bool) {
	fields := reflect.VisibleFields(s.Type())
	want := match.NormalizeName(name)

	for _, f := range fields {
		if !f.IsExported() {
			continue
		}

		if tag, ok := f.Tag.Lookup(AttrTag); ok && tag != "-" && strings.EqualFold(tag, name) {
			return fieldValue(s, f)
		}
	}

	for _, f := range fields {
		if !f.IsExported() || f.Anonymous || f.Tag.Get(AttrTag) != "" {
			continue
		}

		if match.NormalizeName(f.Name) == want {
			return fieldValue(s, f)
		}
	}

	return nil, false
}

// fieldValue reads a possibly promoted field. A nil embedded pointer on the
// way makes the field unreachable.
func fieldValue(s reflect.Value, f reflect.StructField) (any, bool) {
	v, err := s.FieldByIndexErr(f.Index)
	if err != nil {
		return nil, false
	}

	return v.Interface(), true
}

func methodAttr(rv reflect.Value, name string) (any, bool) {
	want := match.NormalizeName(name)
	t := rv.Type()

	for i := range t.NumMethod() {
		m := t.Method(i)
		if match.NormalizeName(m.Name) != want {
			continue
		}

		fn := rv.Method(i)
		if fn.Type().NumIn() != 0 || fn.Type().NumOut() != 1 {
			return nil, false
		}

		return fn.Call(nil)[0].Interface(), true
	}

	return nil, false
}
