package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubsite/site-api/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    body       BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DocumentStore keeps every object as one row of the documents table.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore ensures the documents table exists.
func NewDocumentStore(ctx context.Context, pool *pgxpool.Pool) (*DocumentStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, storage.Unavailable("migrate", "documents", err)
	}
	return &DocumentStore{pool: pool}, nil
}

func (s *DocumentStore) Backend() string { return "postgres" }

func (s *DocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	clean, err := storage.CleanName(name)
	if err != nil {
		return nil, err
	}
	const q = `SELECT body FROM documents WHERE name = $1;`

	var body []byte
	err = s.pool.QueryRow(ctx, q, clean).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.Unavailable("read", clean, err)
	}
	return body, nil
}

func (s *DocumentStore) Write(ctx context.Context, name string, data []byte) error {
	clean, err := storage.CleanName(name)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO documents (name, body, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now();
`
	if _, err := s.pool.Exec(ctx, q, clean, data); err != nil {
		return storage.Unavailable("write", clean, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, name string) error {
	clean, err := storage.CleanName(name)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE name = $1;`, clean); err != nil {
		return storage.Unavailable("delete", clean, err)
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	const q = `
SELECT name, octet_length(body), updated_at
FROM documents
WHERE starts_with(name, $1)
ORDER BY name;
`
	rows, err := s.pool.Query(ctx, q, prefix)
	if err != nil {
		return nil, storage.Unavailable("list", prefix, err)
	}
	defer rows.Close()

	out := make([]storage.Object, 0, 16)
	for rows.Next() {
		var o storage.Object
		if err := rows.Scan(&o.Name, &o.Size, &o.ModTime); err != nil {
			return nil, storage.Unavailable("list", prefix, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("list", prefix, err)
	}
	return out, nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storage.Unavailable("ping", "documents", err)
	}
	return nil
}
