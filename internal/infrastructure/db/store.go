// Package db opens the user store selected by STORE_DRIVER.
package db

import (
	"context"
	"fmt"

	"github.com/psikobank/user-registry/internal/core/ports"
	"github.com/psikobank/user-registry/internal/infrastructure/config"
	"github.com/psikobank/user-registry/internal/infrastructure/db/mongo"
	"github.com/psikobank/user-registry/internal/infrastructure/db/sql"
)

// Store is a connected user repository plus the hooks main needs around it.
type Store struct {
	Driver string
	Users  ports.UserRepository
	Ping   func(ctx context.Context) error
	Close  func(ctx context.Context) error
}

// Open connects to the configured driver. Indexes are ensured as part of the
// connection so a running store always enforces unique emails.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		s, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "user-registry",
		})
		if err != nil {
			return nil, err
		}
		return &Store{Driver: cfg.Store.Driver, Users: s.Users, Ping: s.Ping, Close: s.Close}, nil

	case config.DriverPostgres, config.DriverSQLite:
		dialect := sql.DialectPostgres
		if cfg.Store.Driver == config.DriverSQLite {
			dialect = sql.DialectSQLite
		}
		s, err := sql.Open(ctx, sql.Config{
			Dialect:    dialect,
			DSN:        cfg.Store.DSN,
			LogQueries: cfg.LogLevel == "debug" || cfg.LogLevel == "trace",
		})
		if err != nil {
			return nil, err
		}
		return &Store{Driver: cfg.Store.Driver, Users: s.Users, Ping: s.Ping, Close: s.Close}, nil
	}
	return nil, fmt.Errorf("db: unknown driver %q", cfg.Store.Driver)
}
