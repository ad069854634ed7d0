package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives the deterministic cache key for a pipeline. It depends
// only on pipeline content, never on input ordering: node and edge encodings
// are sorted before hashing. Node Data is intentionally excluded because the
// analysis result does not depend on it.
//
// Encoding: sorted "id:type" strings joined by "|", then "::", then sorted
// "source:sourceHandle->target:targetHandle" strings joined by "|". A missing
// handle encodes as the empty string. The digest is lowercase hex SHA-256.
func Fingerprint(p *Pipeline) string {
	nodes := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, n.ID+":"+n.Type)
	}
	sort.Strings(nodes)

	edges := make([]string, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, e.Source+":"+e.SourceHandle+"->"+e.Target+":"+e.TargetHandle)
	}
	sort.Strings(edges)

	var b strings.Builder
	b.WriteString(strings.Join(nodes, "|"))
	b.WriteString("::")
	b.WriteString(strings.Join(edges, "|"))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
