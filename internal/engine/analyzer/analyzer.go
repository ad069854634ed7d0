// Package analyzer implements structural validation and cycle detection for
// pipeline graphs.
package analyzer

import (
	"go.trai.ch/flowd/internal/core/domain"
	"go.trai.ch/flowd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Analyzer = (*Analyzer)(nil)

const (
	unvisited = iota
	visiting
	visited
)

// Analyzer is a stateless implementation of ports.Analyzer.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze validates edge references and runs cycle detection over the
// pipeline's multigraph. Edge checks run in input order before any cycle
// search; the first violation wins. A pipeline with zero nodes is acyclic by
// definition.
func (a *Analyzer) Analyze(p *domain.Pipeline) (domain.AnalysisResult, error) {
	res := domain.AnalysisResult{
		NumNodes: len(p.Nodes),
		NumEdges: len(p.Edges),
		IsDAG:    true,
	}

	if len(p.Nodes) == 0 {
		return res, nil
	}

	known := make(map[string]struct{}, len(p.Nodes))
	for _, n := range p.Nodes {
		known[n.ID] = struct{}{}
	}

	// Adjacency in edge input order keeps the reported cycle stable across
	// calls. Parallel edges are allowed and need no deduplication: a second
	// identical edge cannot change the verdict.
	adj := make(map[string][]string, len(p.Nodes))
	for _, e := range p.Edges {
		if e.Source == e.Target {
			return domain.AnalysisResult{}, zerr.With(domain.ErrSelfLoop, "node", e.Source)
		}
		if _, ok := known[e.Source]; !ok {
			return domain.AnalysisResult{}, zerr.With(domain.ErrUnknownNode, "node", e.Source)
		}
		if _, ok := known[e.Target]; !ok {
			return domain.AnalysisResult{}, zerr.With(domain.ErrUnknownNode, "node", e.Target)
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	if cycle := findCycle(p.Nodes, adj); cycle != nil {
		res.IsDAG = false
		res.Cycle = cycle
	}

	return res, nil
}

// findCycle runs a three-color depth-first search rooted at every node in
// input order. It returns one cycle as a closed walk (first identifier
// repeated at the end), or nil when the graph is acyclic.
func findCycle(nodes []domain.Node, adj map[string][]string) []string {
	state := make(map[string]int, len(nodes))
	var path []string
	var cycle []string

	var visit func(u string) bool
	visit = func(u string) bool {
		state[u] = visiting
		path = append(path, u)

		for _, v := range adj[u] {
			if state[v] == visiting {
				cycle = closeWalk(path, v)
				return true
			}
			if state[v] == unvisited && visit(v) {
				return true
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		return false
	}

	for _, n := range nodes {
		if state[n.ID] == unvisited && visit(n.ID) {
			return cycle
		}
	}
	return nil
}

// closeWalk extracts the cycle from the DFS path, starting at the node that
// closed it, and repeats that node at the end.
func closeWalk(path []string, start string) []string {
	idx := 0
	for i, id := range path {
		if id == start {
			idx = i
			break
		}
	}

	walk := make([]string, 0, len(path)-idx+1)
	walk = append(walk, path[idx:]...)
	return append(walk, start)
}
