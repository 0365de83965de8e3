package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vaultgraph/internal/render"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(src Source, authEnabled bool, token string, sseHandler http.Handler, page render.PageOptions) chi.Router {
	h := NewHandler(src, page)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/graph", h.Graph)
	r.Get("/graph.html", h.Page)
	r.Post("/graph/rebuild", h.Rebuild)
	r.Get("/nodes/*", h.Node)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
