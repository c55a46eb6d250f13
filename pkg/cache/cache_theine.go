package cache

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/ccoveille/go-safecast/v2"
	"github.com/rs/zerolog"
)

// NewTheineCache creates an unregistered theine-backed cache.
func NewTheineCache[K comparable, V any](config *Config) (Cache[K, V], error) {
	return newTheineCache[K, V]("", config)
}

// NewTheineCacheWithMetrics creates a theine-backed cache registered under
// the given name with the process-wide prometheus collector.
func NewTheineCacheWithMetrics[K comparable, V any](name string, config *Config) (Cache[K, V], error) {
	cc, err := newTheineCache[K, V](name, config)
	if err != nil {
		return nil, err
	}
	mustRegisterCache(name, cc)
	return cc, nil
}

func newTheineCache[K comparable, V any](name string, config *Config) (*theineCache[K, V], error) {
	built, err := theine.NewBuilder[K, V](config.MaxCost).Build()
	if err != nil {
		return nil, err
	}
	return &theineCache[K, V]{
		name:       name,
		cache:      built,
		defaultTTL: config.DefaultTTL,
		metrics:    theineMetrics[K, V]{cache: built},
	}, nil
}

type theineCache[K comparable, V any] struct {
	name       string
	cache      *theine.Cache[K, V]
	defaultTTL time.Duration
	closed     sync.Once
	metrics    theineMetrics[K, V]
}

func (tc *theineCache[K, V]) Get(key K) (V, bool) {
	return tc.cache.Get(key)
}

func (tc *theineCache[K, V]) Set(key K, value V, cost int64) bool {
	uintCost, err := safecast.Convert[uint64](cost)
	if err != nil {
		// We make an assumption that if the cast fails, it's because the
		// value was too big, so we set to maxint in that case.
		uintCost = math.MaxUint32
	}
	tc.metrics.costAdded.Add(uintCost)
	if tc.defaultTTL <= 0 {
		return tc.cache.Set(key, value, cost)
	}
	return tc.cache.SetWithTTL(key, value, cost, tc.defaultTTL)
}

func (tc *theineCache[K, V]) Close() {
	tc.closed.Do(func() {
		tc.cache.Close()
	})
	if tc.name != "" {
		unregisterCache(tc.name)
	}
}

func (tc *theineCache[K, V]) GetMetrics() Metrics { return &tc.metrics }

func (tc *theineCache[K, V]) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("theine", true).Str("name", tc.name)
}

type theineMetrics[K comparable, V any] struct {
	costAdded atomic.Uint64
	cache     *theine.Cache[K, V]
}

func (tm *theineMetrics[K, V]) CostAdded() uint64 { return tm.costAdded.Load() }
func (tm *theineMetrics[K, V]) Hits() uint64      { return tm.cache.Stats().Hits() }
func (tm *theineMetrics[K, V]) Misses() uint64    { return tm.cache.Stats().Misses() }
