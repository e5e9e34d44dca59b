// @title                       PSIKOBANK User Registry API
// @version                     1.0
// @description                 Role-based user registry: super_admin, admin and user accounts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/psikobank/user-registry/internal/api"
	"github.com/psikobank/user-registry/internal/api/handler"
	"github.com/psikobank/user-registry/internal/infrastructure/config"
	"github.com/psikobank/user-registry/internal/infrastructure/db"
	"github.com/psikobank/user-registry/internal/infrastructure/db/redis"
	"github.com/psikobank/user-registry/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("user registry stopped")
	}
}

// run serves the API until ctx is cancelled or the server fails.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-registry",
	})

	store, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s user store: %w", cfg.Store.Driver, err)
	}
	defer func() { _ = store.Close(context.Background()) }()
	log.Info().Str("driver", store.Driver).Msg("user store ready")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connection established")

	e := api.NewRouter(api.Dependencies{
		Users:     store.Users,
		Denylist:  redis.NewTokenDenylist(rdb),
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
		HealthChecks: []handler.Check{
			{Name: store.Driver, Ping: store.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
