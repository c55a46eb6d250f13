// Package hashed implements an in-memory dictionary backend holding the
// parent relation in a plain map. It is the reference backend: its ancestry
// walks define the semantics other backends must agree with.
package hashed

import (
	"context"
	"fmt"
	"slices"

	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// Dictionary is a hashed key→parent dictionary. The zero-valued map entry
// rules apply: a key absent from the map has no parent.
type Dictionary struct {
	parents      map[columnar.Key]columnar.Key
	hasHierarchy bool
}

var _ dictionary.Hierarchy = (*Dictionary)(nil)

// New builds a hierarchical dictionary over the given parent relation. The
// dictionary takes ownership of the map.
func New(parents map[columnar.Key]columnar.Key) *Dictionary {
	return &Dictionary{parents: parents, hasHierarchy: true}
}

// NewWithoutHierarchy builds a dictionary carrying no hierarchical
// structure. Every traversal against it fails fast.
func NewWithoutHierarchy() *Dictionary {
	return &Dictionary{}
}

// FromSource builds a hierarchical dictionary by draining the given source.
func FromSource(ctx context.Context, src dictionary.Source) (*Dictionary, error) {
	parents := make(map[columnar.Key]columnar.Key)
	err := src.LoadParents(ctx, func(id, parent columnar.Key) error {
		if id != columnar.RootKey {
			parents[id] = parent
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(parents), nil
}

// Len returns the number of keys with a recorded parent entry.
func (d *Dictionary) Len() int { return len(d.parents) }

// HasHierarchy implements dictionary.Hierarchy.
func (d *Dictionary) HasHierarchy() bool { return d.hasHierarchy }

// ToParents implements dictionary.ParentLookup. Unknown keys and the root
// key resolve to the root key.
func (d *Dictionary) ToParents(_ context.Context, ids []columnar.Key) ([]columnar.Key, error) {
	out := make([]columnar.Key, len(ids))
	for i, id := range ids {
		out[i] = d.parents[id]
	}
	return out, nil
}

// isIn walks child's chain upward until it meets ancestor, the root, or a
// repeated value. The repeat check keeps cyclic data finite, matching the
// expander's truncation rule.
func (d *Dictionary) isIn(child, ancestor columnar.Key) bool {
	if ancestor == columnar.RootKey {
		return false
	}

	var seen []columnar.Key
	for id := child; id != columnar.RootKey && !slices.Contains(seen, id); id = d.parents[id] {
		if id == ancestor {
			return true
		}
		seen = append(seen, id)
	}
	return false
}

// IsInVectorVector implements dictionary.Hierarchy.
func (d *Dictionary) IsInVectorVector(_ context.Context, childIDs, ancestorIDs []columnar.Key) ([]bool, error) {
	if len(childIDs) != len(ancestorIDs) {
		return nil, fmt.Errorf("child and ancestor batches differ in length: %d != %d", len(childIDs), len(ancestorIDs))
	}
	out := make([]bool, len(childIDs))
	for i := range childIDs {
		out[i] = d.isIn(childIDs[i], ancestorIDs[i])
	}
	return out, nil
}

// IsInVectorConstant implements dictionary.Hierarchy.
func (d *Dictionary) IsInVectorConstant(_ context.Context, childIDs []columnar.Key, ancestorID columnar.Key) ([]bool, error) {
	out := make([]bool, len(childIDs))
	for i, childID := range childIDs {
		out[i] = d.isIn(childID, ancestorID)
	}
	return out, nil
}

// IsInConstantVector implements dictionary.Hierarchy.
func (d *Dictionary) IsInConstantVector(ctx context.Context, childID columnar.Key, ancestorIDs []columnar.Key) ([]bool, error) {
	// The single child's chain is shared by every row, so resolve it once.
	chain, err := dictionary.WalkChain(ctx, d, childID)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(ancestorIDs))
	for i, ancestorID := range ancestorIDs {
		out[i] = ancestorID != columnar.RootKey && slices.Contains(chain, ancestorID)
	}
	return out, nil
}

// IsInConstantConstant implements dictionary.Hierarchy.
func (d *Dictionary) IsInConstantConstant(_ context.Context, childID, ancestorID columnar.Key) (bool, error) {
	return d.isIn(childID, ancestorID), nil
}
