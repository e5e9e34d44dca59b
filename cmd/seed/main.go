// Command seed plants the default super_admin, admin and user accounts.
// Running it again only creates the accounts that are missing.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/psikobank/user-registry/internal/core/service"
	"github.com/psikobank/user-registry/internal/infrastructure/config"
	"github.com/psikobank/user-registry/internal/infrastructure/db"
	"github.com/psikobank/user-registry/pkg/logger"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := run(ctx); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

// run seeds the configured store and returns how many accounts were created.
func run(ctx context.Context) (int, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return 0, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-registry-seed",
	})

	store, err := db.Open(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("open %s user store: %w", cfg.Store.Driver, err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	created, err := service.NewSeeder(store.Users, log).Seed(ctx, cfg.SeedPassword)
	if err != nil {
		return created, err
	}
	log.Info().Int("created", created).Msg("seed complete")
	return created, nil
}
