// Package storagetest provides an in-memory storage.Store for tests.
package storagetest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/clubsite/site-api/internal/storage"
)

type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	writes  int
	// FailWrites makes every Write return ErrUnavailable.
	FailWrites bool
	// FailReads makes every Read return ErrUnavailable.
	FailReads bool
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Backend() string { return "memory" }

// Seed stores raw bytes without counting a write.
func (m *Memory) Seed(name, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = []byte(data)
}

// Get returns the raw stored bytes and whether they exist.
func (m *Memory) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[name]
	return string(data), ok
}

// Writes reports how many successful writes happened.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Read(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, storage.Unavailable("read", name, errors.New("injected failure"))
	}
	data, ok := m.objects[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Write(ctx context.Context, name string, data []byte) error {
	clean, err := storage.CleanName(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return storage.Unavailable("write", name, errors.New("injected failure"))
	}
	m.objects[clean] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, name)
	return nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []storage.Object{}
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.Object{Name: k, Size: int64(len(v))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
