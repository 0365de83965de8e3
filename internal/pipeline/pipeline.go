// Package pipeline runs the vault-to-graph construction end to end.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/graph"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/storage"
	"github.com/starford/vaultgraph/internal/vault"
)

// Options is the explicit configuration for one pipeline run.
type Options struct {
	VaultPath string
	Scan      vault.Options
	Logger    *slog.Logger
}

// Build scans the vault at opts.VaultPath and returns its complete graph.
// Failures wrap one of apperr.ErrInputNotFound, apperr.ErrDocumentRead or
// apperr.ErrDuplicateIdentity; no partial graph is ever returned.
func Build(ctx context.Context, opts Options) (*models.Graph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := storage.NewFS(opts.VaultPath)
	if err != nil {
		return nil, &apperr.PathError{Kind: apperr.ErrInputNotFound, Path: opts.VaultPath, Err: err}
	}
	return BuildFrom(ctx, store, opts.Scan, logger)
}

// BuildFrom is Build over an already opened provider.
func BuildFrom(ctx context.Context, store storage.Provider, scanOpts vault.Options, logger *slog.Logger) (*models.Graph, error) {
	res, err := vault.NewScanner(store, scanOpts, logger).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: scan: %w", err)
	}

	g := graph.Build(res.Documents, res.Refs)
	if err := graph.Validate(g); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	logger.Info("graph built",
		slog.String("vault_path", store.Root()),
		slog.Int("nodes", len(g.Nodes)),
		slog.Int("links", len(g.Links)))
	return g, nil
}
