package entity

import (
	"fmt"
	"reflect"
	"strconv"
)

// Render turns a resolved value into path text. Strings pass through,
// Stringers use String, numbers print in base 10 (floats in shortest form),
// and bools print as true or false. An Entity without String renders its
// "name" attribute.
func Render(v any) (string, bool) {
	if IsAbsent(v) {
		return "", false
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}

	if e, ok := v.(Entity); ok {
		name, found := Attr(e, "name")
		if !found || IsAbsent(name) {
			return "", false
		}

		if _, nested := name.(Entity); nested {
			return "", false
		}

		return Render(name)
	}

	rv := reflect.Indirect(reflect.ValueOf(v))

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	default:
		return "", false
	}
}
