package cmd

import (
	"context"
	"fmt"

	"helix/config"
	"helix/database"
	"helix/repository"

	log "github.com/sirupsen/logrus"
)

// openStores opens the backend named by STORAGE_BACKEND. The returned func releases it.
func openStores(ctx context.Context, cfg *config.Config) (repository.Stores, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendFile:
		return repository.NewFileStores(cfg.DataDir), noop, nil

	case config.BackendMemory:
		log.Warn("Using in-memory storage; nothing will survive a restart")
		return repository.NewMemoryStores(), noop, nil

	case config.BackendSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return repository.Stores{}, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Errorf("Error closing sqlite database: %v", err)
			}
		}
		return repository.NewSQLiteStores(db), closeDB, nil

	case config.BackendPostgres:
		databaseURL := cfg.GetDatabaseURL()
		if err := database.RunMigrationsWithURL(databaseURL); err != nil {
			return repository.Stores{}, nil, err
		}
		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return repository.Stores{}, nil, err
		}
		return repository.NewPostgresStores(db), db.Close, nil

	default:
		return repository.Stores{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
