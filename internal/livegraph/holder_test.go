package livegraph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/vaultgraph/internal/models"
)

func TestHolder_NotBuilt(t *testing.T) {
	h := NewHolder(func(context.Context) (*models.Graph, error) { return &models.Graph{}, nil })
	_, err := h.Current()
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestHolder_RebuildPublishesSnapshot(t *testing.T) {
	g := &models.Graph{Nodes: []models.Node{{ID: "a.md", Label: "A"}}}
	h := NewHolder(func(context.Context) (*models.Graph, error) { return g, nil })

	snap, err := h.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Same(t, g, snap.Graph)
	assert.Contains(t, string(snap.JSON), `"id":"a.md"`)
	assert.Regexp(t, `^"[0-9a-f]{64}"$`, snap.ETag)

	cur, err := h.Current()
	require.NoError(t, err)
	assert.Same(t, snap, cur)
}

func TestHolder_FailedRebuildKeepsPrevious(t *testing.T) {
	fail := false
	h := NewHolder(func(context.Context) (*models.Graph, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &models.Graph{}, nil
	})

	first, err := h.Rebuild(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = h.Rebuild(context.Background())
	require.Error(t, err)

	cur, err := h.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)
}

func TestHolder_SameGraphSameETag(t *testing.T) {
	h := NewHolder(func(context.Context) (*models.Graph, error) {
		return &models.Graph{Links: []models.Edge{{Source: "a.md", Target: "a.md"}}}, nil
	})
	a, err := h.Rebuild(context.Background())
	require.NoError(t, err)
	b, err := h.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.ETag, b.ETag)
}
