package graph

import "github.com/starford/vaultgraph/internal/models"

// Node returns the node with the given identity.
func Node(g *models.Graph, id string) (models.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Node{}, false
}

// Backlinks returns the sources of every edge pointing at id, one entry per edge.
func Backlinks(g *models.Graph, id string) []string {
	out := []string{}
	for _, e := range g.Links {
		if e.Target == id {
			out = append(out, e.Source)
		}
	}
	return out
}

// Outlinks returns the targets of every edge leaving id, one entry per edge.
func Outlinks(g *models.Graph, id string) []string {
	out := []string{}
	for _, e := range g.Links {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}
