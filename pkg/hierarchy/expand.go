// Package hierarchy resolves ancestor chains and ancestry tests over a
// dictionary backend's parent relation, producing columnar results aligned
// with the input block.
package hierarchy

import (
	"context"
	"fmt"
	"slices"

	"github.com/querykit/dicthier/internal/logging"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// NewExpander returns an Expander reading the given dictionary backend.
func NewExpander(dict dictionary.Hierarchy) *Expander {
	return &Expander{dict: dict}
}

// Expander computes full ancestor chains for batches of keys. Each call owns
// its frontier and chain buffers, so independent batches may expand
// concurrently against the same backend.
type Expander struct {
	dict dictionary.Hierarchy
}

// ExpandColumn expands every row of the input column into its ancestor
// chain. A constant input is expanded once and broadcast: backend lookups do
// not scale with the column's row count.
func (ex *Expander) ExpandColumn(ctx context.Context, col columnar.KeyColumn) (columnar.Ragged, error) {
	if !ex.dict.HasHierarchy() {
		return columnar.Ragged{}, NewNoHierarchyErr()
	}

	logging.Ctx(ctx).Trace().Object("expand", col).Send()

	if col.IsConstant() {
		data, _, err := ex.expandKeys(ctx, []columnar.Key{col.Constant()})
		if err != nil {
			return columnar.Ragged{}, err
		}
		return columnar.NewConstantRagged(data, col.Rows()), nil
	}

	data, offsets, err := ex.expandKeys(ctx, col.Values())
	if err != nil {
		return columnar.Ragged{}, err
	}
	return columnar.NewRagged(data, offsets), nil
}

// Expand expands a plain batch of keys, one chain per row.
func (ex *Expander) Expand(ctx context.Context, keys []columnar.Key) (columnar.Ragged, error) {
	return ex.ExpandColumn(ctx, columnar.NewKeyVector(keys))
}

// expandKeys walks the parent relation breadth-synchronously across all rows
// at once: every round appends each live row's frontier value to that row's
// chain, then resolves the entire frontier with a single batched lookup.
// A row freezes when its frontier reaches the root key or repeats a value
// already in its own chain; a repeat means the backing data contains a
// cycle, and the chain is truncated there so malformed data cannot hang the
// walk. Frozen rows stay in the lookup batch at the root key, which the
// backend maps back to itself.
func (ex *Expander) expandKeys(ctx context.Context, keys []columnar.Key) ([]columnar.Key, []uint64, error) {
	size := len(keys)
	frontier := slices.Clone(keys)
	chains := make([][]columnar.Key, size)

	// Total non-root entries across all chains, so the flat result can be
	// allocated in one piece.
	totalCount := 0

	for {
		progressed := false

		for i, id := range frontier {
			if id == columnar.RootKey {
				continue
			}

			// Cycle check: a linear scan of the row's own chain. Hierarchies
			// are expected shallow, so this beats a per-row set.
			if slices.Contains(chains[i], id) {
				frontier[i] = columnar.RootKey
				continue
			}

			chains[i] = append(chains[i], id)
			totalCount++
			progressed = true
		}

		if !progressed {
			break
		}

		next, err := ex.dict.ToParents(ctx, frontier)
		if err != nil {
			return nil, nil, NewLookupFailureErr(err)
		}
		if len(next) != size {
			return nil, nil, NewLookupFailureErr(fmt.Errorf("parent lookup returned %d ids for %d", len(next), size))
		}
		frontier = next
	}

	data := make([]columnar.Key, 0, totalCount)
	offsets := make([]uint64, size)
	for i, chain := range chains {
		data = append(data, chain...)
		offsets[i] = uint64(len(data))
	}
	return data, offsets, nil
}
