// Package vault walks a vault directory, loads every document and extracts
// its outbound wiki-link references.
package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/identity"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/parser"
	"github.com/starford/vaultgraph/internal/storage"
)

// Duplicate identity policies.
const (
	DuplicatesWarn      = "warn"
	DuplicatesOverwrite = "overwrite"
	DuplicatesReject    = "reject"
)

// Read failure policies.
const (
	ReadErrorFail = "fail"
	ReadErrorSkip = "skip"
)

// Options configures a Scanner.
type Options struct {
	Suffix      string
	BaseURL     string
	Workers     int
	Duplicates  string
	OnReadError string
}

// Result is the outcome of a complete scan.
type Result struct {
	// Documents in walk order, unique by identity.
	Documents []models.Document
	// Refs maps every document identity to its normalised targets in text order.
	Refs map[string][]string
	// Duplicates lists identities that more than one file normalised to.
	Duplicates []string
	// Skipped lists relative paths dropped under the skip read policy.
	Skipped []string
}

// Scanner builds a Result from a storage.Provider.
type Scanner struct {
	store     storage.Provider
	opts      Options
	addresser identity.Addresser
	extractor parser.Extractor
	logger    *slog.Logger
}

// NewScanner creates a Scanner reading documents from store.
func NewScanner(store storage.Provider, opts Options, logger *slog.Logger) *Scanner {
	if opts.Suffix == "" {
		opts.Suffix = identity.DefaultSuffix
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Duplicates == "" {
		opts.Duplicates = DuplicatesWarn
	}
	if opts.OnReadError == "" {
		opts.OnReadError = ReadErrorFail
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		store:     store,
		opts:      opts,
		addresser: identity.NewAddresser(opts.BaseURL, opts.Suffix),
		extractor: parser.NewExtractor(opts.Suffix),
		logger:    logger,
	}
}

type loaded struct {
	rel     string
	content string
	err     error
}

// Scan enumerates, reads and extracts every document. Reads run concurrently;
// identities are assigned in a single pass afterwards so the result only
// depends on walk order.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	var paths []string
	err := s.store.Walk("", s.opts.Suffix, func(rel string) error {
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, &apperr.PathError{Kind: apperr.ErrInputNotFound, Path: s.store.Root(), Err: err}
	}

	files, err := s.readAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	res := &Result{Refs: make(map[string][]string, len(files))}
	pos := make(map[string]int, len(files))
	for _, f := range files {
		if f.err != nil {
			s.logger.Warn("scan: skipping unreadable document",
				slog.String("path", f.rel),
				slog.String("error", f.err.Error()))
			res.Skipped = append(res.Skipped, f.rel)
			continue
		}

		id := identity.ID(f.rel)
		doc := models.Document{
			ID:      id,
			Path:    f.rel,
			Content: f.content,
			Label:   identity.Label(id, s.opts.Suffix),
			URL:     s.addresser.Address(f.rel),
		}

		if i, dup := pos[id]; dup {
			switch s.opts.Duplicates {
			case DuplicatesReject:
				return nil, &apperr.PathError{
					Kind: apperr.ErrDuplicateIdentity,
					Path: f.rel,
					Err:  fmt.Errorf("identity %q already taken by %s", id, res.Documents[i].Path),
				}
			case DuplicatesWarn:
				s.logger.Warn("scan: duplicate identity, later document wins",
					slog.String("id", id),
					slog.String("previous", res.Documents[i].Path),
					slog.String("path", f.rel))
			}
			if !slices.Contains(res.Duplicates, id) {
				res.Duplicates = append(res.Duplicates, id)
			}
			res.Documents[i] = doc
		} else {
			pos[id] = len(res.Documents)
			res.Documents = append(res.Documents, doc)
		}
		res.Refs[id] = slices.Collect(s.extractor.Targets(f.content))
	}

	s.logger.Debug("scan: complete",
		slog.String("root", s.store.Root()),
		slog.Int("documents", len(res.Documents)),
		slog.Int("duplicates", len(res.Duplicates)),
		slog.Int("skipped", len(res.Skipped)))

	return res, nil
}

func (s *Scanner) readAll(ctx context.Context, paths []string) ([]loaded, error) {
	files := make([]loaded, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, rel := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			files[i] = loaded{rel: rel}
			content, err := s.readText(rel)
			if err != nil {
				if s.opts.OnReadError == ReadErrorSkip {
					files[i].err = err
					return nil
				}
				return &apperr.PathError{Kind: apperr.ErrDocumentRead, Path: rel, Err: err}
			}
			files[i].content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

var errNotText = errors.New("content is not valid UTF-8")

func (s *Scanner) readText(rel string) (string, error) {
	data, err := s.store.Read(rel)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errNotText
	}
	return string(data), nil
}
