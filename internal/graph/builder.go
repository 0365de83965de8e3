// Package graph assembles the node/edge list from scanned documents.
package graph

import (
	"fmt"

	"github.com/starford/vaultgraph/internal/models"
)

// Build resolves refs against docs. Every document becomes a node; every
// reference whose target is a known identity becomes an edge and bumps the
// link count of both endpoints (a self-link counts twice). Unknown targets
// are dropped without a trace. Edges follow document order, then text order.
func Build(docs []models.Document, refs map[string][]string) *models.Graph {
	g := &models.Graph{
		Nodes: make([]models.Node, len(docs)),
		Links: []models.Edge{},
	}
	pos := make(map[string]int, len(docs))
	for i, d := range docs {
		g.Nodes[i] = models.Node{ID: d.ID, Label: d.Label, URL: d.URL}
		pos[d.ID] = i
	}

	for _, d := range docs {
		src, ok := pos[d.ID]
		if !ok {
			continue
		}
		for _, target := range refs[d.ID] {
			dst, ok := pos[target]
			if !ok {
				continue
			}
			g.Links = append(g.Links, models.Edge{Source: d.ID, Target: target})
			g.Nodes[src].LinkCount++
			g.Nodes[dst].LinkCount++
		}
	}
	return g
}

// Validate checks the output contract: unique node identities and no
// dangling edge endpoints.
func Validate(g *models.Graph) error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("graph: duplicate node %q", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for _, e := range g.Links {
		if _, ok := ids[e.Source]; !ok {
			return fmt.Errorf("graph: edge source %q not in node set", e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return fmt.Errorf("graph: edge target %q not in node set", e.Target)
		}
	}
	return nil
}
