// Package redisstore keeps documents as plain string values in Redis.
package redisstore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/clubsite/site-api/internal/storage"
)

const scanBatch = 200

// globEscaper quotes the characters SCAN MATCH treats as pattern syntax.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Store maps object name -> key {prefix}{name}. Values never expire.
type Store struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Backend() string { return "redis" }

func (s *Store) key(name string) (string, string, error) {
	clean, err := storage.CleanName(name)
	if err != nil {
		return "", "", err
	}
	return clean, s.prefix + clean, nil
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	clean, key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.Unavailable("read", clean, err)
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	clean, key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return storage.Unavailable("write", clean, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	clean, key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return storage.Unavailable("delete", clean, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	keys := []string{}
	iter := s.client.Scan(ctx, 0, globEscaper.Replace(s.prefix+prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, storage.Unavailable("list", prefix, err)
	}

	out := make([]storage.Object, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	pipe := s.client.Pipeline()
	lens := make([]*redis.IntCmd, len(keys))
	for i, k := range keys {
		lens[i] = pipe.StrLen(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storage.Unavailable("list", prefix, err)
	}

	for i, k := range keys {
		name := strings.TrimPrefix(k, s.prefix)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		out = append(out, storage.Object{Name: name, Size: lens[i].Val()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storage.Unavailable("ping", s.prefix, err)
	}
	return nil
}
