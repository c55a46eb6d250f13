package dictionary

import (
	"context"
	"fmt"
	"slices"

	"github.com/querykit/dicthier/pkg/columnar"
)

// WalkChain resolves the full ancestor chain of a single key through the
// given lookup: [key, parent(key), ...], stopping at the first RootKey or
// the first repeated value. A repeated value marks a cycle in the backing
// data; the chain is truncated there rather than surfaced as an error.
func WalkChain(ctx context.Context, pl ParentLookup, key columnar.Key) ([]columnar.Key, error) {
	var chain []columnar.Key
	id := key
	for id != columnar.RootKey && !slices.Contains(chain, id) {
		chain = append(chain, id)
		parents, err := pl.ToParents(ctx, []columnar.Key{id})
		if err != nil {
			return nil, err
		}
		if len(parents) != 1 {
			return nil, fmt.Errorf("parent lookup returned %d ids for 1", len(parents))
		}
		id = parents[0]
	}
	return chain, nil
}

// IsInVectorVector is a generic element-wise ancestry test built only on
// ToParents, for backends without a native batched implementation. It walks
// all rows breadth-synchronously, issuing one lookup per round over the
// whole frontier, and freezes each row once it has answered or its chain
// repeats.
func IsInVectorVector(ctx context.Context, pl ParentLookup, childIDs, ancestorIDs []columnar.Key) ([]bool, error) {
	if len(childIDs) != len(ancestorIDs) {
		return nil, fmt.Errorf("child and ancestor batches differ in length: %d != %d", len(childIDs), len(ancestorIDs))
	}

	size := len(childIDs)
	out := make([]bool, size)
	frontier := slices.Clone(childIDs)
	chains := make([][]columnar.Key, size)

	for {
		progressed := false
		for i, id := range frontier {
			if id == columnar.RootKey {
				continue
			}
			if id == ancestorIDs[i] {
				out[i] = true
				frontier[i] = columnar.RootKey
				continue
			}
			if slices.Contains(chains[i], id) {
				frontier[i] = columnar.RootKey
				continue
			}
			chains[i] = append(chains[i], id)
			progressed = true
		}
		if !progressed {
			return out, nil
		}

		next, err := pl.ToParents(ctx, frontier)
		if err != nil {
			return nil, err
		}
		if len(next) != size {
			return nil, fmt.Errorf("parent lookup returned %d ids for %d", len(next), size)
		}
		frontier = next
	}
}

// IsInVectorConstant is the generic vector×constant ancestry test.
func IsInVectorConstant(ctx context.Context, pl ParentLookup, childIDs []columnar.Key, ancestorID columnar.Key) ([]bool, error) {
	ancestorIDs := make([]columnar.Key, len(childIDs))
	for i := range ancestorIDs {
		ancestorIDs[i] = ancestorID
	}
	return IsInVectorVector(ctx, pl, childIDs, ancestorIDs)
}

// IsInConstantVector is the generic constant×vector ancestry test: the
// single child's chain is resolved once and each ancestor is tested for
// membership in it.
func IsInConstantVector(ctx context.Context, pl ParentLookup, childID columnar.Key, ancestorIDs []columnar.Key) ([]bool, error) {
	chain, err := WalkChain(ctx, pl, childID)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(ancestorIDs))
	for i, ancestorID := range ancestorIDs {
		out[i] = ancestorID != columnar.RootKey && slices.Contains(chain, ancestorID)
	}
	return out, nil
}

// IsInConstantConstant is the generic constant×constant ancestry test.
func IsInConstantConstant(ctx context.Context, pl ParentLookup, childID, ancestorID columnar.Key) (bool, error) {
	out, err := IsInConstantVector(ctx, pl, childID, []columnar.Key{ancestorID})
	if err != nil {
		return false, err
	}
	return out[0], nil
}
