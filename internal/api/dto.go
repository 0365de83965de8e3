package api

import (
	"time"

	"github.com/starford/vaultgraph/internal/models"
)

// NodeDetail is a node with its incoming and outgoing edges.
type NodeDetail struct {
	Node      models.Node `json:"node"`
	Backlinks []string    `json:"backlinks"`
	Outlinks  []string    `json:"outlinks"`
}

// RebuildResponse summarises a completed rebuild.
type RebuildResponse struct {
	Nodes   int       `json:"nodes"`
	Links   int       `json:"links"`
	ETag    string    `json:"etag"`
	BuiltAt time.Time `json:"built_at"`
}
