// Package dictionary defines the capability surface a dictionary backend
// exposes to the hierarchy resolution core, along with generic
// implementations of the ancestry primitives for backends that only provide
// a batched parent lookup.
package dictionary

import (
	"context"

	"github.com/querykit/dicthier/pkg/columnar"
)

// ParentLookup is the minimal capability needed to walk a hierarchy: a
// batched element-wise "parent of" resolution.
type ParentLookup interface {
	// ToParents resolves each id to its immediate parent, returning a slice
	// of the same length. columnar.RootKey maps to itself, so frozen rows in
	// a synchronized batch walk can be passed through harmlessly.
	//
	// The result must be deterministic for a given dictionary snapshot.
	ToParents(ctx context.Context, ids []columnar.Key) ([]columnar.Key, error)
}

// Hierarchy is the full capability a hierarchical dictionary backend exposes.
// All methods are safe for concurrent use across independent batches; no
// method may be invoked concurrently for the same in-flight batch.
type Hierarchy interface {
	ParentLookup

	// HasHierarchy reports whether the dictionary carries a hierarchical
	// structure at all. Callers must check it before any traversal.
	HasHierarchy() bool

	// IsInVectorVector tests, element-wise, whether ancestorIDs[i] appears
	// in childIDs[i]'s ancestor chain. Both slices must have equal length.
	IsInVectorVector(ctx context.Context, childIDs, ancestorIDs []columnar.Key) ([]bool, error)

	// IsInVectorConstant tests each childIDs[i] against a single ancestor.
	IsInVectorConstant(ctx context.Context, childIDs []columnar.Key, ancestorID columnar.Key) ([]bool, error)

	// IsInConstantVector tests a single child against each ancestorIDs[i].
	IsInConstantVector(ctx context.Context, childID columnar.Key, ancestorIDs []columnar.Key) ([]bool, error)

	// IsInConstantConstant tests a single child against a single ancestor.
	IsInConstantConstant(ctx context.Context, childID, ancestorID columnar.Key) (bool, error)
}

// Source streams the key→parent pairs a dictionary is built from. Sources
// own storage and transport concerns; the emit callback receives each pair
// exactly once, in unspecified order. Returning an error from emit aborts
// the load and propagates the error.
type Source interface {
	LoadParents(ctx context.Context, emit func(id, parent columnar.Key) error) error
}
