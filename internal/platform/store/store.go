package store

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"github.com/SscSPs/ledger_core/pkg/database"
)

// Open builds the repository provider selected by cfg.Store. The returned
// close func releases the underlying pool and is safe to call once.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Info("Using in-memory store")
		return memory.NewRepositoryProvider(memory.New()), func() {}, nil
	case config.StorePostgres:
		if migrate {
			logger.Info("Running database migrations...")
			changed, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp)
			if err != nil {
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
			if changed {
				logger.Info("Database migrations applied successfully.")
			} else {
				logger.Info("No new migrations to apply.")
			}
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
