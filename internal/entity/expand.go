package entity

import (
	"sort"

	"pathschema/internal/common"
)

// DefaultMaxDepth bounds parent walks when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

// Options tunes Expand.
type Options struct {
	// MaxDepth is the longest parent chain accepted; 0 means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}

// Collision records an ancestor that was not added because its kind was
// already taken by a different value.
type Collision struct {
	Kind string
	// Kept is the value already in the context.
	Kept any
	// Dropped is the ancestor that lost.
	Dropped Entity
	// Via is the context key whose parent chain reached Dropped.
	Via string
}

// Expand returns a new context holding everything in ctx, keys lower-cased,
// plus every ancestor reachable through Entity.Parent, keyed by its kind.
//
// Values supplied by the caller always win. Inputs are walked deepest first,
// ties broken by key, so when two chains disagree about an ancestor the one
// from the deeper entity is kept and the other reported as a Collision. A
// walk stops at the first kind already held by an entity, whose own chain is
// walked separately; a plain value under a kind is skipped over and the walk
// climbs on. ctx itself is not modified.
func Expand(ctx Context, opts Options) (Context, []Collision, error) {
	out := make(Context, len(ctx))

	for _, k := range common.SortedKeys(ctx) {
		folded := common.FoldName(k)
		if _, taken := out[folded]; taken && k != folded {
			continue
		}

		out[folded] = ctx[k]
	}

	type start struct {
		key   string
		chain []Entity
	}

	limit := opts.maxDepth()

	var starts []start

	for _, k := range common.SortedKeys(out) {
		e, ok := out[k].(Entity)
		if !ok || IsAbsent(e) {
			continue
		}

		chain, err := parentChain(k, e, limit)
		if err != nil {
			return nil, nil, err
		}

		starts = append(starts, start{key: k, chain: chain})
	}

	sort.SliceStable(starts, func(i, j int) bool {
		return len(starts[i].chain) > len(starts[j].chain)
	})

	var collisions []Collision

	for _, s := range starts {
		for _, anc := range s.chain {
			kind := KindOf(anc)

			kept, present := out[kind]
			if !present {
				out[kind] = anc
				continue
			}

			// A plain value under the kind hides anc but not anc's ancestors.
			keptEntity, ok := kept.(Entity)
			if !ok || IsAbsent(keptEntity) {
				continue
			}

			if !Same(kept, anc) {
				collisions = append(collisions, Collision{Kind: kind, Kept: kept, Dropped: anc, Via: s.key})
			}

			break
		}
	}

	return out, collisions, nil
}
