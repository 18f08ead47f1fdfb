// Package storage defines the document store used for every persisted blob:
// collection documents under data/ and uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by Read when no object exists under the name.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps every backend failure (network, permission,
	// misconfiguration).
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidName is returned for names that are empty or escape the root.
	ErrInvalidName = errors.New("invalid object name")
)

// Object describes one stored blob as returned by List.
type Object struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime,omitempty"`
}

// Store is a flat namespace of named blobs. Names use forward slashes.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	// Delete removes the object; deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
	// List returns every object whose name starts with prefix, sorted by name.
	List(ctx context.Context, prefix string) ([]Object, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Backend() string
}

// CleanName validates and canonicalizes an object name.
func CleanName(name string) (string, error) {
	n := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if n == "" || strings.HasPrefix(n, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(n, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	n = path.Clean(n)
	if n == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return n, nil
}

// Unavailable wraps a backend error so callers only need errors.Is(err, ErrUnavailable).
func Unavailable(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, op, name, err)
}
