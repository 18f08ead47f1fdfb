// Package filestore keeps documents as plain files under a root directory.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clubsite/site-api/internal/storage"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, storage.Unavailable("init", abs, err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Backend() string { return "fs" }

func (s *Store) path(name string) (string, string, error) {
	clean, err := storage.CleanName(name)
	if err != nil {
		return "", "", err
	}
	return clean, filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	clean, p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.Unavailable("read", clean, err)
	}
	return data, nil
}

// Write replaces the file atomically via a temp file in the same directory.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	clean, p, err := s.path(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storage.Unavailable("write", clean, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return storage.Unavailable("write", clean, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storage.Unavailable("write", clean, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storage.Unavailable("write", clean, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return storage.Unavailable("write", clean, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	clean, p, err := s.path(name)
	if err != nil {
		return err
	}
	remove := os.Remove
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		// Folder deletes leave empty directories behind once their files are gone.
		remove = os.RemoveAll
	}
	if err := remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storage.Unavailable("delete", clean, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	out := []storage.Object{}
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, storage.Object{Name: name, Size: info.Size(), ModTime: info.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, storage.Unavailable("list", prefix, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return storage.Unavailable("ping", s.root, err)
	}
	return nil
}
