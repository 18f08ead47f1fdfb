package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/content/repository"
	"github.com/clubsite/site-api/internal/logging"
)

// Spec tells a Collection how to identify its entities.
type Spec[T any] struct {
	// Name is used in log lines and error messages, e.g. "sponsor".
	Name string
	Key  func(T) string
	// SetID assigns a generated id. Collections without one are keyed by a
	// natural key and Create becomes an upsert.
	SetID func(*T, string)
}

// Collection implements list/create/update/delete over one entity list.
type Collection[T any] struct {
	repo  *repository.ListRepository[T]
	spec  Spec[T]
	newID func() string
	log   *slog.Logger
}

func NewCollection[T any](repo *repository.ListRepository[T], spec Spec[T], log *slog.Logger) *Collection[T] {
	return &Collection[T]{repo: repo, spec: spec, newID: NewID, log: log}
}

// NewID returns a time-ordered identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (c *Collection[T]) Name() string { return c.spec.Name }

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.repo.List(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	items, err := c.repo.List(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.indexOf(items, key); i >= 0 {
		return items[i], nil
	}
	return zero, fmt.Errorf("%s %q: %w", c.spec.Name, key, domain.ErrNotFound)
}

// Create validates item, assigns an id when it has none and appends it. For
// natural-key collections an existing entry with the same key is replaced.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := domain.Validate(item); err != nil {
		return zero, err
	}

	items, err := c.repo.List(ctx)
	if err != nil {
		return zero, err
	}

	if c.spec.SetID == nil {
		if i := c.indexOf(items, c.spec.Key(item)); i >= 0 {
			items[i] = item
		} else {
			items = append(items, item)
		}
	} else {
		if key := c.spec.Key(item); key == "" {
			c.spec.SetID(&item, c.newID())
		} else if c.indexOf(items, key) >= 0 {
			return zero, fmt.Errorf("%s %q: %w", c.spec.Name, key, domain.ErrConflict)
		}
		items = append(items, item)
	}

	if err := c.repo.Replace(ctx, items); err != nil {
		return zero, err
	}
	logging.FromContext(ctx, c.log, "create").Info("entity saved", "collection", c.spec.Name, "key", c.spec.Key(item))
	return item, nil
}

// Update merges patch (a JSON object) onto the stored entity and replaces it.
// The key of the entity never changes.
func (c *Collection[T]) Update(ctx context.Context, key string, patch json.RawMessage) (T, error) {
	var zero T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return zero, domain.Invalid("", "body must be a JSON object")
	}

	items, err := c.repo.List(ctx)
	if err != nil {
		return zero, err
	}
	i := c.indexOf(items, key)
	if i < 0 {
		return zero, fmt.Errorf("%s %q: %w", c.spec.Name, key, domain.ErrNotFound)
	}

	merged, err := merge(items[i], fields)
	if err != nil {
		return zero, err
	}
	if c.spec.SetID != nil {
		c.spec.SetID(&merged, key)
	}
	if err := domain.Validate(merged); err != nil {
		return zero, err
	}
	if c.spec.SetID == nil && c.spec.Key(merged) != key {
		return zero, domain.Invalid("", "natural key fields cannot be changed")
	}

	items[i] = merged
	if err := c.repo.Replace(ctx, items); err != nil {
		return zero, err
	}
	logging.FromContext(ctx, c.log, "update").Info("entity updated", "collection", c.spec.Name, "key", key)
	return merged, nil
}

// Delete removes the entity with key. Deleting a missing key succeeds without
// touching the store.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	items, err := c.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if c.spec.Key(it) != key {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	if err := c.repo.Replace(ctx, kept); err != nil {
		return err
	}
	logging.FromContext(ctx, c.log, "delete").Info("entity deleted", "collection", c.spec.Name, "key", key)
	return nil
}

// ReplaceAll validates a full list and persists it only when every element
// passes. Missing ids are generated; duplicate keys reject the batch.
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	return c.ReplaceAllWith(ctx, items, nil)
}

// ReplaceAllWith is ReplaceAll that also writes envelope fields beside the
// list, so both land together or not at all.
func (c *Collection[T]) ReplaceAllWith(ctx context.Context, items []T, siblings map[string]any) error {
	seen := make(map[string]int, len(items))
	for i := range items {
		if err := domain.Validate(items[i]); err != nil {
			if ve, ok := domain.IsValidation(err); ok {
				ve.Index = i
			}
			return err
		}
		if c.spec.SetID != nil && c.spec.Key(items[i]) == "" {
			c.spec.SetID(&items[i], c.newID())
		}
		key := c.spec.Key(items[i])
		if j, dup := seen[key]; dup {
			field := "id"
			if c.spec.SetID == nil {
				field = ""
			}
			return &domain.ValidationError{Index: i, Field: field, Reason: fmt.Sprintf("duplicates the key of item %d", j)}
		}
		seen[key] = i
	}

	if err := c.repo.ReplaceWith(ctx, items, siblings); err != nil {
		return err
	}
	logging.FromContext(ctx, c.log, "replace").Info("collection replaced", "collection", c.spec.Name, "count", len(items))
	return nil
}

func (c *Collection[T]) indexOf(items []T, key string) int {
	for i, it := range items {
		if c.spec.Key(it) == key {
			return i
		}
	}
	return -1
}

func merge[T any](current T, fields map[string]json.RawMessage) (T, error) {
	var zero T
	base, err := json.Marshal(current)
	if err != nil {
		return zero, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return zero, err
	}
	for k, v := range fields {
		obj[k] = v
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return zero, err
	}
	return domain.Decode[T](raw)
}
