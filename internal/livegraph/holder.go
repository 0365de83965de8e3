// Package livegraph keeps the most recent successfully built graph available
// to concurrent readers while rebuilds happen.
package livegraph

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/starford/vaultgraph/internal/checksum"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/render"
)

// ErrNotBuilt is returned by Current before the first successful build.
var ErrNotBuilt = errors.New("livegraph: graph not built yet")

// BuildFunc produces a complete graph or fails.
type BuildFunc func(ctx context.Context) (*models.Graph, error)

// Snapshot is an immutable built graph with its serialized form.
type Snapshot struct {
	Graph   *models.Graph
	JSON    []byte
	ETag    string
	BuiltAt time.Time
}

// Holder serializes rebuilds and publishes snapshots atomically.
type Holder struct {
	build BuildFunc

	buildMu sync.Mutex

	mu   sync.RWMutex
	snap *Snapshot
}

// NewHolder creates a Holder that rebuilds with build.
func NewHolder(build BuildFunc) *Holder {
	return &Holder{build: build}
}

// Rebuild runs a full build. On failure the previous snapshot stays current.
func (h *Holder) Rebuild(ctx context.Context) (*Snapshot, error) {
	h.buildMu.Lock()
	defer h.buildMu.Unlock()

	g, err := h.build(ctx)
	if err != nil {
		return nil, err
	}
	data, err := render.JSON(g)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Graph:   g,
		JSON:    data,
		ETag:    checksum.ETag(data),
		BuiltAt: time.Now(),
	}

	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()
	return snap, nil
}

// Current returns the latest snapshot.
func (h *Holder) Current() (*Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return nil, ErrNotBuilt
	}
	return h.snap, nil
}
