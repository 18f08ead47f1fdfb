// Package files stores uploaded team photos and the resource file tree, and
// serves both back under /files/.
package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage"
)

const (
	ResourceRoot = "resources"
	TeamPhotoDir = "uploads/team"
	// URLPrefix is the public path stored objects are served under.
	URLPrefix = "/files/"

	keepFile = ".keep"
)

// servable lists the object prefixes GET /files/ may read from.
var servable = []string{ResourceRoot + "/", "uploads/"}

type Service struct {
	store storage.Store
	log   *slog.Logger
}

func NewService(store storage.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// URL returns the public access path of a stored object.
func URL(name string) string { return URLPrefix + name }

// SaveTeamPhoto stores an image under a name derived from id and returns its
// public URL. Uploading again for the same id replaces the image.
func (s *Service) SaveTeamPhoto(ctx context.Context, id string, data []byte) (string, error) {
	id = strings.TrimSpace(id)
	if !isSafeID(id) {
		return "", domain.Invalid("id", "must contain only letters, digits, '-' or '_'")
	}
	if len(data) == 0 {
		return "", domain.Invalid("file", "is empty")
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", domain.Invalid("file", "must be an image, got "+mt.String())
	}

	name := path.Join(TeamPhotoDir, id+mt.Extension())
	if err := s.store.Write(ctx, name, data); err != nil {
		return "", err
	}
	logging.FromContext(ctx, s.log, "team_photo").Info("team photo stored", "name", name, "bytes", len(data))
	return URL(name), nil
}

// Upload stores data as filename inside folder ("" for the resource root).
func (s *Service) Upload(ctx context.Context, folder, filename string, data []byte) (*Node, error) {
	dir, err := CleanPath(folder, true)
	if err != nil {
		return nil, err
	}
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if base == "." || base == "/" || base == ".." || base == keepFile {
		return nil, domain.Invalid("file", "has an invalid file name")
	}

	rel := path.Join(dir, base)
	name := path.Join(ResourceRoot, rel)
	if err := s.store.Write(ctx, name, data); err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.log, "resource_upload").Info("resource stored", "name", name, "bytes", len(data))
	return &Node{Name: base, Path: rel, Type: TypeFile, Size: int64(len(data)), URL: URL(name)}, nil
}

// CreateFolder records an empty folder with a marker object.
func (s *Service) CreateFolder(ctx context.Context, folder string) (*Node, error) {
	rel, err := CleanPath(folder, false)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, path.Join(ResourceRoot, rel, keepFile), []byte{}); err != nil {
		return nil, err
	}
	return &Node{Name: path.Base(rel), Path: rel, Type: TypeFolder}, nil
}

// Delete removes a file, or a folder with everything below it. Deleting a
// path that does not exist succeeds.
func (s *Service) Delete(ctx context.Context, target string) error {
	rel, err := CleanPath(target, false)
	if err != nil {
		return err
	}
	name := path.Join(ResourceRoot, rel)

	objects, err := s.store.List(ctx, name+"/")
	if err != nil {
		return err
	}
	for _, obj := range objects {
		if err := s.store.Delete(ctx, obj.Name); err != nil {
			return err
		}
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	logging.FromContext(ctx, s.log, "resource_delete").Info("resource deleted", "name", name, "children", len(objects))
	return nil
}

// Open reads a servable object and detects its content type.
func (s *Service) Open(ctx context.Context, name string) ([]byte, string, error) {
	clean, err := storage.CleanName(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, "", err
	}
	if !isServable(clean) || path.Base(clean) == keepFile {
		return nil, "", fmt.Errorf("file %q: %w", clean, storage.ErrNotFound)
	}
	data, err := s.store.Read(ctx, clean)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("file %q: %w", clean, err)
		}
		return nil, "", err
	}
	return data, mimetype.Detect(data).String(), nil
}

// CleanPath validates a slash-separated path relative to the resource root.
// Absolute paths, empty segments and "." or ".." segments are rejected.
func CleanPath(p string, allowEmpty bool) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		if allowEmpty {
			return "", nil
		}
		return "", fmt.Errorf("%w: path is required", storage.ErrInvalidName)
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q is absolute", storage.ErrInvalidName, p)
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			return "", fmt.Errorf("%w: %q has an empty segment", storage.ErrInvalidName, p)
		case ".", "..", keepFile:
			return "", fmt.Errorf("%w: %q has a reserved segment", storage.ErrInvalidName, p)
		}
	}
	return p, nil
}

func isServable(name string) bool {
	for _, prefix := range servable {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func isSafeID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
