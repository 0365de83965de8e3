// Package internal provides the application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/vaultgraph/internal/api"
	"github.com/starford/vaultgraph/internal/livegraph"
	"github.com/starford/vaultgraph/internal/mcpserver"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/pipeline"
	"github.com/starford/vaultgraph/internal/render"
	"github.com/starford/vaultgraph/internal/sse"
	"github.com/starford/vaultgraph/internal/storage"
	"github.com/starford/vaultgraph/internal/watcher"
)

func setup(opts []Option) (*application, *slog.Logger, error) {
	app := &application{logOutput: os.Stdout, version: "dev"}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("suffix", cfg.Vault.Suffix),
		slog.String("base_url", cfg.Site.BaseURL),
		slog.String("output_dir", cfg.Output.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, logger, nil
}

func (a *application) buildFunc(logger *slog.Logger) livegraph.BuildFunc {
	cfg := a.config
	return func(ctx context.Context) (*models.Graph, error) {
		return pipeline.Build(ctx, pipeline.Options{
			VaultPath: cfg.Vault.Path,
			Scan:      cfg.ScanOptions(),
			Logger:    logger,
		})
	}
}

// Build scans the vault once and writes the self-contained graph page.
func Build(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	g, err := app.buildFunc(logger)(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}
	if err := render.WriteArtifact(out, cfg.Output.File, g, render.PageOptions{Title: cfg.Output.Title}); err != nil {
		return err
	}

	logger.Info("Graph artifact written",
		slog.String("path", filepath.Join(out.Root(), cfg.Output.File)),
		slog.Int("nodes", len(g.Nodes)),
		slog.Int("links", len(g.Links)))
	return nil
}

// announcingSource rebuilds through the holder and tells SSE clients.
type announcingSource struct {
	*livegraph.Holder
	broker *sse.Broker
	logger *slog.Logger
}

func (s *announcingSource) Rebuild(ctx context.Context) (*livegraph.Snapshot, error) {
	snap, err := s.Holder.Rebuild(ctx)
	if err != nil {
		s.logger.Warn("rebuild failed", slog.String("error", err.Error()))
		s.broker.PublishBuildFailed(err)
		return nil, err
	}
	s.broker.PublishGraphUpdated(sse.GraphStats{
		Nodes: len(snap.Graph.Nodes),
		Links: len(snap.Graph.Links),
		ETag:  snap.ETag,
	})
	return snap, nil
}

// Serve builds the graph, serves it over HTTP and rebuilds it whenever a
// document in the vault changes.
func Serve(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	src := &announcingSource{
		Holder: livegraph.NewHolder(app.buildFunc(logger)),
		broker: broker,
		logger: logger,
	}

	// Initial build failures are fatal: there is nothing to serve yet.
	if _, err := src.Rebuild(ctx); err != nil {
		return err
	}

	apiRouter := api.NewRouter(src, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, render.PageOptions{
		Title:     cfg.Output.Title,
		EventsURL: "/api/events",
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := src.Current(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"building"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/graph.html", http.StatusFound)
	})

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Watch(gCtx, watcher.Options{
			Root:   cfg.Vault.Path,
			Suffix: cfg.Vault.Suffix,
			Logger: logger,
		}, func() {
			_, _ = src.Rebuild(gCtx)
		})
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// ServeMCP builds the graph and serves MCP tools over stdio.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}

	holder := livegraph.NewHolder(app.buildFunc(logger))
	if _, err := holder.Rebuild(ctx); err != nil {
		return err
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(holder, app.version).ServeStdio()
}
