package ports

import "go.trai.ch/flowd/internal/core/domain"

// Analyzer performs structural validation and cycle detection on a validated
// pipeline. Implementations must be pure: same pipeline in, same verdict out,
// no side effects beyond computation time.
type Analyzer interface {
	// Analyze returns the analysis result, or a structural error when the
	// pipeline contains a self-loop or a dangling edge reference.
	Analyze(p *domain.Pipeline) (domain.AnalysisResult, error)
}
