package ports

import "go.trai.ch/flowd/internal/core/domain"

// ResultCache stores analysis results keyed by pipeline fingerprint.
// All methods are safe for concurrent use.
type ResultCache interface {
	// Get returns the cached result for key. Expired entries count as
	// misses and are evicted lazily.
	Get(key string) (domain.AnalysisResult, bool)

	// Set inserts or overwrites the entry for key, evicting the oldest
	// entries first when the cache is full.
	Set(key string, value domain.AnalysisResult)

	// Clear drops all entries. Counters are kept.
	Clear()

	// Stats returns a read-only snapshot of size and hit/miss counters.
	Stats() domain.CacheStats
}
