// Package cache provides a generic bounded cache used by dictionary
// backends to hold resolved key→parent entries.
package cache

import (
	"time"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Config for caching.
type Config struct {
	// MaxCost can be considered as the cache capacity, in whatever units you
	// choose to use. If new items are accepted, the eviction process will
	// take care of making room for the new item and not overflowing the
	// MaxCost value.
	MaxCost int64

	// DefaultTTL configures a default deadline on the lifetime of any keys
	// set to the cache. Zero disables expiration.
	DefaultTTL time.Duration
}

func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	maxCost, _ := safecast.Convert[uint64](c.MaxCost)
	e.
		Str("maxCost", humanize.IBytes(maxCost)).
		Dur("defaultTTL", c.DefaultTTL)
}

// Cache defines an interface for a generic cache.
type Cache[K comparable, V any] interface {
	// Get returns the value for the given key in the cache, if it exists.
	Get(key K) (V, bool)

	// Set sets a value for the key in the cache, with the given cost.
	Set(key K, entry V, cost int64) bool

	// Close closes the cache's background workers (if any).
	Close()

	// GetMetrics returns the metrics block for the cache.
	GetMetrics() Metrics

	zerolog.LogObjectMarshaler
}

// Metrics defines metrics exposed by a cache.
type Metrics interface {
	// Hits returns the number of cache hits.
	Hits() uint64

	// Misses returns the number of cache misses.
	Misses() uint64

	// CostAdded returns the total cost of entries added to the cache.
	CostAdded() uint64
}
