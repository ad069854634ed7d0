package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowd/internal/adapters/cache"
	"go.trai.ch/flowd/internal/core/domain"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.New[string](time.Minute, 10, 2)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCache_Overwrite(t *testing.T) {
	c := cache.New[string](time.Minute, 10, 2)

	c.Set("k", "one")
	c.Set("k", "two")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "two", got)
	assert.Equal(t, 1, c.Stats().Size)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := cache.New[string](time.Minute, 10, 2)

	now := time.Unix(1_700_000_000, 0)
	c.SetNowFunc(func() time.Time { return now })

	c.Set("k", "v")

	// Still fresh just inside the TTL.
	now = now.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	// Expired past the TTL; the entry is gone and the lookup is a miss.
	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Size)
}

func TestCache_EvictsOldestBatch(t *testing.T) {
	c := cache.New[string](time.Minute, 4, 2)

	now := time.Unix(1_700_000_000, 0)
	c.SetNowFunc(func() time.Time { return now })

	for i := range 4 {
		c.Set(fmt.Sprintf("k%d", i), "v")
		now = now.Add(time.Second)
	}

	// Inserting a fifth key evicts the two oldest.
	c.Set("k4", "v")

	for _, key := range []string{"k0", "k1"} {
		_, ok := c.Get(key)
		assert.False(t, ok, "expected %s evicted", key)
	}
	for _, key := range []string{"k2", "k3", "k4"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "expected %s retained", key)
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := cache.New[string](time.Minute, 2, 1)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")

	_, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Size)
}

func TestCache_Stats(t *testing.T) {
	c := cache.New[string](time.Minute, 10, 2)

	s := c.Stats()
	assert.Zero(t, s.HitRate)

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	s = c.Stats()
	assert.Equal(t, 1, s.Size)
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 66.66, s.HitRate, 0.01)
}

func TestCache_ClearKeepsCounters(t *testing.T) {
	c := cache.New[string](time.Minute, 10, 2)

	c.Set("k", "v")
	c.Get("k")
	c.Get("missing")

	c.Clear()

	s := c.Stats()
	assert.Zero(t, s.Size)
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
}

func TestCache_HoldsAnalysisResults(t *testing.T) {
	c := cache.New[domain.AnalysisResult](time.Minute, 10, 2)

	c.Set("fp", domain.AnalysisResult{
		NumNodes: 3,
		NumEdges: 3,
		IsDAG:    false,
		Cycle:    []string{"a", "b", "c", "a"},
	})

	got, ok := c.Get("fp")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "a"}, got.Cycle)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := cache.New[int](time.Minute, 100, 10)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", j%20)
				c.Set(key, i)
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	s := c.Stats()
	assert.LessOrEqual(t, s.Size, 100)
	assert.Equal(t, uint64(800), s.Hits+s.Misses)
}
