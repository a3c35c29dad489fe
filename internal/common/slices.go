package common

import "sort"

// Unique returns the distinct elements of s in first-appearance order.
// The input is not modified.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// Subtract returns the elements of s that are not keys of m, keeping order.
func Subtract[S ~[]E, E comparable, V any](s S, m map[E]V) S {
	var out S

	for _, v := range s {
		if _, ok := m[v]; !ok {
			out = append(out, v)
		}
	}

	return out
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
