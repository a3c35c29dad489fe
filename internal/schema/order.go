package schema

import (
	"sort"

	"pathschema/internal/errors"
)

// KeyOrder returns the keys of doc so that every key comes after the keys its
// template references. When several keys are ready, the alphabetically
// smallest goes first, so the order is deterministic.
//
// References to undefined keys are ignored here; Validate reports them. If
// keys reference each other in a cycle, the keys that could be ordered are
// returned along with an error naming the rest.
func KeyOrder(doc *Document) ([]string, error) {
	keys := doc.Keys()
	n := len(keys)

	index := make(map[string]int, n)
	for i, k := range keys {
		index[k] = i
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i, k := range keys {
		raw, _ := doc.Template(k)
		for _, ref := range KeyRefs(raw) {
			d, ok := index[ref]
			if !ok {
				continue
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, keys[i])
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var stuck []string

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, keys[i])
			}
		}

		return order, errors.Newf("cycle detected among keys %v", stuck)
	}

	return order, nil
}
