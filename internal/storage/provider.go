// internal/storage/provider.go
package storage

import (
	"context"
	"fmt"

	"github.com/hodu/storefront/internal/config"
	"github.com/hodu/storefront/internal/database"
)

// NewProvider builds the backend selected by cfg.Storage.Backend.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryProvider(), nil
	case config.BackendFile:
		return NewFileProvider(cfg.Storage.Path)
	case config.BackendRedis:
		client, err := DialRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisProvider(client, cfg.Redis.Prefix), nil
	case config.BackendPostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, err
		}
		return NewGormProvider(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
