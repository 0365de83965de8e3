// Package models defines the domain types for vaultgraph.
package models

// Document is one eligible file in the vault.
type Document struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Content string `json:"-"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// Reference is a wiki-link token found in a document.
// Target is normalised; Raw, Alias and Section are kept as written.
type Reference struct {
	Target  string `json:"target"`
	Raw     string `json:"raw"`
	Alias   string `json:"alias,omitempty"`
	Section string `json:"section,omitempty"`
}

// Node is a document in the built graph.
type Node struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	LinkCount int    `json:"link_count"`
}

// Edge is a resolved reference between two documents.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the node/edge list handed to the artifact emitter.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}
