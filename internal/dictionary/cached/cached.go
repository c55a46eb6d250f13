// Package cached implements a dictionary backend decorator holding a
// bounded per-key parent cache in front of another backend. Ancestry tests
// run through the cached parent lookup, so repeated walks over hot keys stop
// reaching the delegate.
package cached

import (
	"context"

	"github.com/querykit/dicthier/internal/logging"
	"github.com/querykit/dicthier/pkg/cache"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// Each cached entry is a key/parent pair of uint64s.
const entryCost = 16

// Dictionary caches parent resolutions of a delegate backend.
type Dictionary struct {
	delegate dictionary.Hierarchy
	parents  cache.Cache[columnar.Key, columnar.Key]
}

var _ dictionary.Hierarchy = (*Dictionary)(nil)

// New builds a caching decorator around delegate. The name registers the
// cache's metrics; it must be unique within the process.
func New(delegate dictionary.Hierarchy, name string, config *cache.Config) (*Dictionary, error) {
	parents, err := cache.NewTheineCacheWithMetrics[columnar.Key, columnar.Key](name, config)
	if err != nil {
		return nil, err
	}
	logging.Debug().Str("name", name).Object("config", config).Msg("created dictionary parent cache")
	return &Dictionary{delegate: delegate, parents: parents}, nil
}

// Close releases the cache.
func (d *Dictionary) Close() {
	d.parents.Close()
}

// HasHierarchy implements dictionary.Hierarchy.
func (d *Dictionary) HasHierarchy() bool { return d.delegate.HasHierarchy() }

// ToParents implements dictionary.ParentLookup. Hits are answered from the
// cache; the misses of a batch are resolved with a single delegate call.
func (d *Dictionary) ToParents(ctx context.Context, ids []columnar.Key) ([]columnar.Key, error) {
	out := make([]columnar.Key, len(ids))

	var missing []columnar.Key
	var missingAt []int
	for i, id := range ids {
		if id == columnar.RootKey {
			continue
		}
		if parent, ok := d.parents.Get(id); ok {
			out[i] = parent
			continue
		}
		missing = append(missing, id)
		missingAt = append(missingAt, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	resolved, err := d.delegate.ToParents(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, parent := range resolved {
		out[missingAt[j]] = parent
		d.parents.Set(missing[j], parent, entryCost)
	}
	return out, nil
}

// IsInVectorVector implements dictionary.Hierarchy via the generic walk over
// the cached parent lookup.
func (d *Dictionary) IsInVectorVector(ctx context.Context, childIDs, ancestorIDs []columnar.Key) ([]bool, error) {
	return dictionary.IsInVectorVector(ctx, d, childIDs, ancestorIDs)
}

// IsInVectorConstant implements dictionary.Hierarchy.
func (d *Dictionary) IsInVectorConstant(ctx context.Context, childIDs []columnar.Key, ancestorID columnar.Key) ([]bool, error) {
	return dictionary.IsInVectorConstant(ctx, d, childIDs, ancestorID)
}

// IsInConstantVector implements dictionary.Hierarchy.
func (d *Dictionary) IsInConstantVector(ctx context.Context, childID columnar.Key, ancestorIDs []columnar.Key) ([]bool, error) {
	return dictionary.IsInConstantVector(ctx, d, childID, ancestorIDs)
}

// IsInConstantConstant implements dictionary.Hierarchy.
func (d *Dictionary) IsInConstantConstant(ctx context.Context, childID, ancestorID columnar.Key) (bool, error) {
	return dictionary.IsInConstantConstant(ctx, d, childID, ancestorID)
}
