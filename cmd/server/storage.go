package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/gotill/internal/adapter/repository/postgres"
	sqliteRepo "github.com/iho/gotill/internal/adapter/repository/sqlite"
	"github.com/iho/gotill/internal/infrastructure/config"
	"github.com/iho/gotill/internal/infrastructure/postgres"
	"github.com/iho/gotill/internal/usecase"
)

// storage bundles the repositories of one backend.
type storage struct {
	name       string
	txManager  usecase.TransactionManager
	sessions   usecase.SessionRepository
	operations usecase.OperationRepository
	ledger     usecase.LedgerRepository
	outbox     usecase.OutboxRepository
	audit      usecase.AuditRepository
	retrier    usecase.Retrier
	ping       func(ctx context.Context) error
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		return openSQLite(cfg)
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &storage{
		name:       config.StoragePostgres,
		txManager:  postgresRepo.NewTxManager(pool),
		sessions:   postgresRepo.NewSessionRepository(pool),
		operations: postgresRepo.NewOperationRepository(pool),
		ledger:     postgresRepo.NewLedgerRepository(pool),
		outbox:     postgresRepo.NewOutboxRepository(pool),
		audit:      postgresRepo.NewAuditRepository(pool),
		retrier:    postgresRepo.NewRetrier(cfg.ConflictRetries, logger),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}

func openSQLite(cfg *config.Config) (*storage, error) {
	store, err := sqliteRepo.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	return &storage{
		name:       config.StorageSQLite,
		txManager:  store.TxManager(),
		sessions:   store.Sessions(),
		operations: store.Operations(),
		ledger:     store.Ledger(),
		outbox:     store.Outbox(),
		audit:      store.Audit(),
		retrier:    usecase.NewConflictRetrier(cfg.ConflictRetries),
		ping:       store.Ping,
		close:      func() { _ = store.Close() },
	}, nil
}
