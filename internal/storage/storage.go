// Package storage picks the storage backend once at startup.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/config"
	"github.com/jenny-yujl/marketingTrain/internal/db"
	"github.com/jenny-yujl/marketingTrain/internal/db/migrations"
	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/repository"
	"github.com/jenny-yujl/marketingTrain/internal/storage/memory"
	"github.com/jenny-yujl/marketingTrain/internal/storage/seed"
)

// ErrMySQLUnsupported is returned when only MYSQL_DATABASE_URL is set.
var ErrMySQLUnsupported = errors.New("MYSQL_DATABASE_URL is set but MySQL is not supported; set DATABASE_URL to a postgres:// or sqlite:// URL, or unset it for in-memory storage")

// Handle is an opened backend. Close releases the database pool, if any.
type Handle struct {
	Storage interfaces.Storage
	Close   func() error
}

// Open selects the backend from cfg. An empty DATABASE_URL gives the
// in-memory store seeded with sample products. Otherwise the database must
// be reachable and migrated; there is no fallback to memory.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Handle, error) {
	if cfg.DatabaseURL == "" {
		if cfg.LegacyMySQLURL != "" {
			return nil, ErrMySQLUnsupported
		}
		products, err := seed.Products()
		if err != nil {
			return nil, err
		}
		logger.Info("using in-memory storage; data is lost on restart",
			zap.Int("seed_products", len(products)))
		return &Handle{Storage: memory.New(products...), Close: func() error { return nil }}, nil
	}

	database, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(ctx, database, logger); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := repository.NewStore(database)
	logger.Info("using persistent storage",
		zap.String("backend", store.Backend()),
		zap.String("database", cfg.Redacted()))
	return &Handle{Storage: store, Close: store.Close}, nil
}

// OpenDatabase connects to DATABASE_URL, creating the postgres database
// first when DB_CREATE_IF_MISSING is set.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.Database, error) {
	opts := cfg.DBOptions()
	if cfg.CreateIfMissing {
		target, err := db.ParseURL(opts.URL, opts.PostgresDriver)
		if err != nil {
			return nil, err
		}
		if err := db.CreateDatabaseIfNotExists(ctx, target); err != nil {
			return nil, fmt.Errorf("failed to ensure database exists: %w", err)
		}
	}

	database, err := db.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("database connected",
		zap.String("dialect", string(database.Dialect)),
		zap.String("driver", database.Target.Driver),
		zap.String("host", database.Target.Host))
	return database, nil
}

// Migrate applies migrations and, when seedProducts is set, loads the
// sample catalogue into an empty products table.
func Migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger, seedProducts bool) error {
	if cfg.DatabaseURL == "" {
		if cfg.LegacyMySQLURL != "" {
			return ErrMySQLUnsupported
		}
		return errors.New("DATABASE_URL is not set; the in-memory backend has nothing to migrate")
	}

	database, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.RunMigrations(ctx, database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if !seedProducts {
		return nil
	}

	n, err := seed.SeedProducts(ctx, repository.NewStore(database))
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	logger.Info("seeded products", zap.Int("count", n))
	return nil
}

// MigrateDown reverts the newest steps migrations on DATABASE_URL.
func MigrateDown(ctx context.Context, cfg *config.Config, logger *zap.Logger, steps int) error {
	if cfg.DatabaseURL == "" {
		if cfg.LegacyMySQLURL != "" {
			return ErrMySQLUnsupported
		}
		return errors.New("DATABASE_URL is not set; the in-memory backend has nothing to migrate")
	}

	database, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := migrations.Rollback(ctx, database, logger, steps)
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	logger.Info("rolled back migrations", zap.Int("count", n))
	return nil
}
