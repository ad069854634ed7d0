package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowd/internal/core/domain"
)

func testLimits() domain.Limits {
	return domain.Limits{MaxNodes: 10, MaxEdges: 20, MaxIDLength: 16}
}

func TestNewPipeline_Valid(t *testing.T) {
	nodes := []domain.Node{
		{ID: "a", Type: "input"},
		{ID: "b", Type: "transform", Data: map[string]any{"label": "step"}},
	}
	edges := []domain.Edge{
		{Source: "a", Target: "b", SourceHandle: "out", TargetHandle: "in"},
	}

	p, err := domain.NewPipeline(nodes, edges, testLimits())
	require.NoError(t, err)
	assert.Len(t, p.Nodes, 2)
	assert.Len(t, p.Edges, 1)
}

func TestNewPipeline_Empty(t *testing.T) {
	p, err := domain.NewPipeline(nil, nil, testLimits())
	require.NoError(t, err)
	assert.Empty(t, p.Nodes)
	assert.Empty(t, p.Edges)
}

func TestNewPipeline_Violations(t *testing.T) {
	longID := ""
	for range 17 {
		longID += "x"
	}

	tests := []struct {
		name    string
		nodes   []domain.Node
		edges   []domain.Edge
		wantErr error
	}{
		{
			name:    "empty node id",
			nodes:   []domain.Node{{ID: "", Type: "input"}},
			wantErr: domain.ErrEmptyNodeID,
		},
		{
			name:    "node id too long",
			nodes:   []domain.Node{{ID: longID, Type: "input"}},
			wantErr: domain.ErrNodeIDTooLong,
		},
		{
			name:    "empty node type",
			nodes:   []domain.Node{{ID: "a", Type: ""}},
			wantErr: domain.ErrEmptyNodeType,
		},
		{
			name: "duplicate node id",
			nodes: []domain.Node{
				{ID: "a", Type: "input"},
				{ID: "a", Type: "output"},
			},
			wantErr: domain.ErrDuplicateNodeID,
		},
		{
			name: "too many nodes",
			nodes: func() []domain.Node {
				ns := make([]domain.Node, 11)
				for i := range ns {
					ns[i] = domain.Node{ID: string(rune('a' + i)), Type: "t"}
				}
				return ns
			}(),
			wantErr: domain.ErrTooManyNodes,
		},
		{
			name:  "too many edges",
			nodes: []domain.Node{{ID: "a", Type: "t"}, {ID: "b", Type: "t"}},
			edges: func() []domain.Edge {
				es := make([]domain.Edge, 21)
				for i := range es {
					es[i] = domain.Edge{Source: "a", Target: "b"}
				}
				return es
			}(),
			wantErr: domain.ErrTooManyEdges,
		},
		{
			name:    "empty edge source",
			nodes:   []domain.Node{{ID: "a", Type: "t"}},
			edges:   []domain.Edge{{Source: "", Target: "a"}},
			wantErr: domain.ErrEmptyEdgeRef,
		},
		{
			name:    "empty edge target",
			nodes:   []domain.Node{{ID: "a", Type: "t"}},
			edges:   []domain.Edge{{Source: "a", Target: ""}},
			wantErr: domain.ErrEmptyEdgeRef,
		},
		{
			name:    "edge reference too long",
			nodes:   []domain.Node{{ID: "a", Type: "t"}},
			edges:   []domain.Edge{{Source: "a", Target: longID}},
			wantErr: domain.ErrEdgeRefTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPipeline(tt.nodes, tt.edges, testLimits())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestNewPipeline_EdgeRefsNotResolved(t *testing.T) {
	// Dangling references pass construction; resolving them needs the full
	// identifier set and belongs to the analyzer.
	nodes := []domain.Node{{ID: "a", Type: "t"}}
	edges := []domain.Edge{{Source: "a", Target: "ghost"}}

	_, err := domain.NewPipeline(nodes, edges, testLimits())
	assert.NoError(t, err)
}
