package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubsite/site-api/config"
	"github.com/clubsite/site-api/internal/storage"
)

const dbPingTimeout = 2 * time.Second

// OpenDB opens the pool behind the postgres document store and checks it
// answers before the server starts accepting requests.
func OpenDB(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		// The DSN may carry a password, so only the parse error is kept.
		return nil, errors.New("DB_DSN is not a valid connection string")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, storage.Unavailable("connect", poolCfg.ConnConfig.Database, err)
	}

	pctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, storage.Unavailable("ping", poolCfg.ConnConfig.Database, err)
	}

	log.Info("postgres pool open",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns)
	return pool, nil
}
