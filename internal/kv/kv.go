// Package kv provides the durable key-value stores that back the job history
// and the language preference.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ziadkadry99/layoutgen/internal/config"
	"github.com/ziadkadry99/layoutgen/internal/db"
)

// Store is a small durable key-value store. Writes are whole-value overwrites.
type Store interface {
	// Get returns the stored value, or nil with no error if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var errEmptyKey = errors.New("key cannot be empty")

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageSQLite:
		database, err := db.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(database), nil

	case config.StorageFile:
		return NewFileStore(cfg.Path)

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client, cfg.RedisPrefix), nil

	case config.StorageMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
