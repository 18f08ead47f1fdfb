package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage"
)

var (
	// ErrMissing is returned for required documents that are absent or corrupt.
	ErrMissing = errors.New("document missing")
	// ErrNotCanonical is returned by Save when asked to persist a malformed document.
	ErrNotCanonical = errors.New("document is not in canonical shape")
)

// Repository loads and saves collection documents through a storage.Store.
type Repository struct {
	store storage.Store
	log   *slog.Logger
}

func NewRepository(store storage.Store, log *slog.Logger) *Repository {
	return &Repository{store: store, log: log}
}

func (r *Repository) Store() storage.Store { return r.store }

// Load returns the canonical document for shape. Missing or unparsable
// documents read as the zero document; a stored document that had to be
// reshaped is written back before returning.
func (r *Repository) Load(ctx context.Context, shape *Shape) (any, error) {
	doc, applied, err := r.read(ctx, shape)
	if err != nil || len(applied) == 0 {
		return doc, err
	}

	if err := r.Save(ctx, shape, doc); err != nil {
		// The caller still gets the canonical view; the next read retries the fix.
		logging.FromContext(ctx, r.log, "load").Warn("failed to persist normalized document",
			"document", shape.Name, "error", err)
	}
	return doc, nil
}

// Heal rewrites the stored document in canonical shape when it needs
// migrating and reports whether a write happened. Unlike Load, a failed
// write is returned to the caller.
func (r *Repository) Heal(ctx context.Context, shape *Shape) (bool, error) {
	doc, applied, err := r.read(ctx, shape)
	if err != nil || len(applied) == 0 {
		return false, err
	}
	if err := r.Save(ctx, shape, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) read(ctx context.Context, shape *Shape) (any, []string, error) {
	log := logging.FromContext(ctx, r.log, "load").With("document", shape.Name)

	raw, err := r.store.Read(ctx, shape.Name)
	if errors.Is(err, storage.ErrNotFound) {
		if shape.Required {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissing, shape.Name)
		}
		return shape.Zero(), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	doc, err := Parse(raw)
	if err != nil {
		log.Warn("stored document is corrupt, treating as empty", "error", err)
		if shape.Required {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrMissing, shape.Name, err)
		}
		return shape.Zero(), nil, nil
	}

	normalized, applied := shape.Normalize(doc)
	if len(applied) > 0 {
		log.Info("normalized legacy document", "migrations", applied)
	}
	return normalized, applied, nil
}

// Save marshals doc and writes it after confirming it is canonical.
func (r *Repository) Save(ctx context.Context, shape *Shape, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", shape.Name, err)
	}

	check, err := Parse(data)
	if err != nil {
		return fmt.Errorf("re-parse %s: %w", shape.Name, err)
	}
	if !shape.IsCanonical(check) {
		return fmt.Errorf("%w: %s", ErrNotCanonical, shape.Name)
	}

	return r.store.Write(ctx, shape.Name, data)
}

// Into re-decodes a generic document value into a typed value.
func Into[T any](doc any) (T, error) {
	var out T
	data, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
