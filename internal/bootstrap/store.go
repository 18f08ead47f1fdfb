package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/clubsite/site-api/config"
	"github.com/clubsite/site-api/internal/storage"
	"github.com/clubsite/site-api/internal/storage/filestore"
	"github.com/clubsite/site-api/internal/storage/postgres"
	"github.com/clubsite/site-api/internal/storage/redisstore"
	"github.com/clubsite/site-api/internal/storage/s3store"
)

// OpenStore builds the document store selected by cfg.Backend. The returned
// close function releases backend connections and is never nil.
func OpenStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendFS:
		st, err := filestore.New(cfg.DataRoot)
		if err != nil {
			return nil, noop, err
		}
		log.Info("document store ready", "backend", st.Backend(), "root", cfg.DataRoot)
		return st, noop, nil

	case config.BackendS3:
		client, err := s3store.NewClient(ctx, s3store.Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			UsePathStyle:    cfg.S3.UsePathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("s3 client: %w", err)
		}
		log.Info("document store ready", "backend", "s3", "bucket", cfg.S3.Bucket)
		return s3store.New(client, cfg.S3.Bucket), noop, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		st := redisstore.New(client, cfg.Redis.Prefix)
		if err := st.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		log.Info("document store ready", "backend", "redis", "addr", cfg.Redis.Addr)
		return st, func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := OpenDB(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, noop, err
		}
		st, err := postgres.NewDocumentStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info("document store ready", "backend", "postgres")
		return st, pool.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
