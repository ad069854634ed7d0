// Package domain contains the core domain models and business logic for
// pipeline graph analysis.
package domain

import (
	"go.trai.ch/zerr"
)

// Node is a single pipeline node as submitted by a client.
// Identity is the ID; Data is an opaque metadata bag the core never inspects.
type Node struct {
	ID   string
	Type string
	Data map[string]any
}

// Edge is a directed connection between two nodes. Handles label the
// attachment points on either side and only participate in fingerprinting.
type Edge struct {
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
}

// Limits bounds the size of an acceptable pipeline.
type Limits struct {
	MaxNodes    int
	MaxEdges    int
	MaxIDLength int
}

// Pipeline is a validated node/edge graph. Construct it with NewPipeline;
// a zero Pipeline is valid and represents the empty graph.
type Pipeline struct {
	Nodes []Node
	Edges []Edge
}

// NewPipeline validates raw nodes and edges against the given limits and
// returns a Pipeline ready for analysis. All violations it reports are
// client-attributable validation errors.
//
// Self-loop and dangling-reference checks need the full node-identifier set
// and stay with the analyzer.
func NewPipeline(nodes []Node, edges []Edge, limits Limits) (*Pipeline, error) {
	if len(nodes) > limits.MaxNodes {
		return nil, zerr.With(ErrTooManyNodes, "max_nodes", limits.MaxNodes)
	}
	if len(edges) > limits.MaxEdges {
		return nil, zerr.With(ErrTooManyEdges, "max_edges", limits.MaxEdges)
	}

	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrEmptyNodeID
		}
		if len(n.ID) > limits.MaxIDLength {
			return nil, zerr.With(ErrNodeIDTooLong, "max_length", limits.MaxIDLength)
		}
		if n.Type == "" {
			return nil, zerr.With(ErrEmptyNodeType, "node", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, zerr.With(ErrDuplicateNodeID, "node", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	for _, e := range edges {
		if e.Source == "" || e.Target == "" {
			return nil, ErrEmptyEdgeRef
		}
		if len(e.Source) > limits.MaxIDLength || len(e.Target) > limits.MaxIDLength {
			return nil, zerr.With(ErrEdgeRefTooLong, "max_length", limits.MaxIDLength)
		}
	}

	return &Pipeline{Nodes: nodes, Edges: edges}, nil
}
