package storage

import (
	"context"
	"fmt"

	"github.com/urbanexpress/storefront/pkg/config"
	"github.com/urbanexpress/storefront/pkg/db"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/migrate"
	"github.com/urbanexpress/storefront/pkg/redis"
)

// Storage is the flat key/value surface every store persists through.
// Values are opaque strings; callers own the encoding.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Backend is a Storage that holds resources which must be released.
type Backend interface {
	Storage
	Close() error
}

// Open builds the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	switch cfg.Storage.Backend {
	case config.StorageBackendFile, "":
		return OpenFile(cfg.Storage.FilePath)
	case config.StorageBackendMemory:
		return NewMemory(), nil
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("redis backend: %w", err)
		}
		return client, nil
	case config.StorageBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("sql backend: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg.DB, logg, client); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("sql backend migrations: %w", err)
		}
		return NewSQL(client), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
