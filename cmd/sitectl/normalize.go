package main

import (
	"context"
	"errors"
	"log"

	"github.com/clubsite/site-api/config"
	"github.com/clubsite/site-api/internal/bootstrap"
	"github.com/clubsite/site-api/internal/documents"
	"github.com/clubsite/site-api/internal/logging"
)

// RunNormalize loads every collection document once so legacy layouts are
// rewritten in canonical form. It uses the same configuration as the API.
func RunNormalize(args []string) {
	if len(args) > 0 {
		log.Fatal("usage: sitectl normalize")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.App.Environment, cfg.App.LogLevel)

	ctx := context.Background()
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Storage, logger.Component("storage"))
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	failed := normalizeAll(ctx, documents.NewRepository(store, logger.Component("documents")))
	if failed > 0 {
		closeStore()
		log.Fatalf("%d documents could not be normalized", failed)
	}
}

func normalizeAll(ctx context.Context, repo *documents.Repository) int {
	failed := 0
	for _, shape := range documents.All {
		healed, err := repo.Heal(ctx, shape)
		switch {
		case err == nil && healed:
			log.Printf("healed   %s", shape.Name)
		case err == nil:
			log.Printf("ok       %s", shape.Name)
		case errors.Is(err, documents.ErrMissing):
			log.Printf("missing  %s", shape.Name)
		default:
			log.Printf("error    %s: %v", shape.Name, err)
			failed++
		}
	}
	return failed
}
