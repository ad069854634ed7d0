// Package cache provides a bounded in-memory TTL cache for analysis results.
package cache

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/flowd/internal/core/domain"
	"go.trai.ch/flowd/internal/core/ports"
)

var _ ports.ResultCache = (*Cache[domain.AnalysisResult])(nil)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a generic key-value store with lazy TTL expiry and
// oldest-first batch eviction. A single mutex guards the table; per-key
// locking is not worth it at the traffic this service sees.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	ttl        time.Duration
	capacity   int
	evictBatch int
	hits       uint64
	misses     uint64
	now        func() time.Time
}

// New creates a Cache holding at most capacity entries, each living for ttl.
// When a new key arrives at capacity, the evictBatch oldest entries are
// dropped to make room.
func New[V any](ttl time.Duration, capacity, evictBatch int) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		capacity:   capacity,
		evictBatch: evictBatch,
		now:        time.Now,
	}
}

// Get returns the value stored under key. An entry older than the TTL is
// treated as absent and evicted on the spot. Every call counts as a hit or
// a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return zero, false
	}

	c.hits++
	return e.value, true
}

// Set inserts or overwrites the entry for key. Inserting a new key into a
// full table first evicts the oldest-by-insertion entries.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

// evictOldest removes the evictBatch entries with the oldest insertion
// timestamps. Caller holds the lock.
func (c *Cache[V]) evictOldest() {
	type aged struct {
		key      string
		storedAt time.Time
	}

	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, storedAt: e.storedAt})
	}
	slices.SortFunc(all, func(a, b aged) int {
		return a.storedAt.Compare(b.storedAt)
	})

	n := min(c.evictBatch, len(all))
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
}

// Clear drops all entries. Hit and miss counters survive; they describe the
// process lifetime, not the current table.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := domain.CacheStats{
		Size:   len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}
