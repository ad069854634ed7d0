package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowd/internal/core/domain"
)

func mustPipeline(t *testing.T, nodes []domain.Node, edges []domain.Edge) *domain.Pipeline {
	t.Helper()
	p, err := domain.NewPipeline(nodes, edges, domain.Limits{MaxNodes: 100, MaxEdges: 100, MaxIDLength: 64})
	require.NoError(t, err)
	return p
}

func TestFingerprint_Format(t *testing.T) {
	p := mustPipeline(t,
		[]domain.Node{{ID: "a", Type: "input"}},
		nil,
	)

	fp := domain.Fingerprint(p)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), fp)
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	p1 := mustPipeline(t,
		[]domain.Node{{ID: "a", Type: "input"}, {ID: "b", Type: "output"}},
		[]domain.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	)
	p2 := mustPipeline(t,
		[]domain.Node{{ID: "b", Type: "output"}, {ID: "a", Type: "input"}},
		[]domain.Edge{
			{Source: "b", Target: "a"},
			{Source: "a", Target: "b"},
		},
	)

	assert.Equal(t, domain.Fingerprint(p1), domain.Fingerprint(p2))
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	base := mustPipeline(t,
		[]domain.Node{{ID: "a", Type: "input"}, {ID: "b", Type: "output"}},
		[]domain.Edge{{Source: "a", Target: "b", SourceHandle: "out"}},
	)

	tests := []struct {
		name  string
		nodes []domain.Node
		edges []domain.Edge
	}{
		{
			name:  "different node type",
			nodes: []domain.Node{{ID: "a", Type: "transform"}, {ID: "b", Type: "output"}},
			edges: []domain.Edge{{Source: "a", Target: "b", SourceHandle: "out"}},
		},
		{
			name:  "different handle",
			nodes: []domain.Node{{ID: "a", Type: "input"}, {ID: "b", Type: "output"}},
			edges: []domain.Edge{{Source: "a", Target: "b", SourceHandle: "aux"}},
		},
		{
			name:  "missing handle",
			nodes: []domain.Node{{ID: "a", Type: "input"}, {ID: "b", Type: "output"}},
			edges: []domain.Edge{{Source: "a", Target: "b"}},
		},
		{
			name:  "extra edge",
			nodes: []domain.Node{{ID: "a", Type: "input"}, {ID: "b", Type: "output"}},
			edges: []domain.Edge{
				{Source: "a", Target: "b", SourceHandle: "out"},
				{Source: "b", Target: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPipeline(t, tt.nodes, tt.edges)
			assert.NotEqual(t, domain.Fingerprint(base), domain.Fingerprint(p))
		})
	}
}

func TestFingerprint_IgnoresNodeData(t *testing.T) {
	p1 := mustPipeline(t,
		[]domain.Node{{ID: "a", Type: "input", Data: map[string]any{"label": "one"}}},
		nil,
	)
	p2 := mustPipeline(t,
		[]domain.Node{{ID: "a", Type: "input", Data: map[string]any{"label": "two", "x": 3}}},
		nil,
	)

	assert.Equal(t, domain.Fingerprint(p1), domain.Fingerprint(p2))
}
