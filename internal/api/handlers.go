package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/graph"
	"github.com/starford/vaultgraph/internal/identity"
	"github.com/starford/vaultgraph/internal/livegraph"
	"github.com/starford/vaultgraph/internal/render"
)

// Source provides graph snapshots. *livegraph.Holder satisfies it.
type Source interface {
	Current() (*livegraph.Snapshot, error)
	Rebuild(ctx context.Context) (*livegraph.Snapshot, error)
}

// Handler holds API route handlers.
type Handler struct {
	src  Source
	page render.PageOptions
}

// NewHandler creates a new Handler.
func NewHandler(src Source, page render.PageOptions) *Handler {
	return &Handler{src: src, page: page}
}

// nodeID extracts the node identity from the URL (everything after /nodes/)
// and folds it the same way document identities are folded.
func nodeID(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return identity.ID(raw)
}

func (h *Handler) current(w http.ResponseWriter) (*livegraph.Snapshot, bool) {
	snap, err := h.src.Current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "graph not built yet")
		return nil, false
	}
	return snap, true
}

// Graph handles GET /api/graph. The body is the serialized node/edge list;
// If-None-Match is honoured against the content checksum.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}
	w.Header().Set("ETag", snap.ETag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.JSON)
}

// Page handles GET /api/graph.html.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, snap.JSON, h.page); err != nil {
		slog.Error("render page failed", slog.String("error", err.Error()))
	}
}

// Node handles GET /api/nodes/*.
func (h *Handler) Node(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}
	id := nodeID(r)
	n, found := graph.Node(snap.Graph, id)
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, NodeDetail{
		Node:      n,
		Backlinks: graph.Backlinks(snap.Graph, id),
		Outlinks:  graph.Outlinks(snap.Graph, id),
	})
}

// Rebuild handles POST /api/graph/rebuild.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	snap, err := h.src.Rebuild(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrDocumentRead), errors.Is(err, apperr.ErrDuplicateIdentity):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("rebuild failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, RebuildResponse{
		Nodes:   len(snap.Graph.Nodes),
		Links:   len(snap.Graph.Links),
		ETag:    snap.ETag,
		BuiltAt: snap.BuiltAt,
	})
}
