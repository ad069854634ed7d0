package domain

import "time"

// AnalysisResult is the outcome of analyzing a single pipeline. It is a value
// type: immutable once produced and safe to share across concurrent readers.
// Cycle is nil when the graph is acyclic; otherwise it is a closed walk of
// node identifiers (first element repeated at the end).
type AnalysisResult struct {
	NumNodes int
	NumEdges int
	IsDAG    bool
	Cycle    []string
}

// AnalysisReport is what the orchestrator hands back to the transport:
// the result plus per-request bookkeeping.
type AnalysisReport struct {
	AnalysisResult
	CacheHit bool
	Elapsed  time.Duration
}

// CacheStats is a read-only snapshot of result-cache counters.
type CacheStats struct {
	Size    int
	Hits    uint64
	Misses  uint64
	HitRate float64 // percentage, 0 when no lookups have occurred
}
