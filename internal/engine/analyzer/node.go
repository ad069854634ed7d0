package analyzer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flowd/internal/core/ports"
)

// NodeID is the unique identifier for the analyzer Graft node.
const NodeID graft.ID = "engine.analyzer"

func init() {
	graft.Register(graft.Node[ports.Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Analyzer, error) {
			return New(), nil
		},
	})
}
