// Package localstore persists small opaque values under string keys so the
// client can run without a session and survive restarts.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/growth-tracker/internal/config"
)

var ErrNotFound = errors.New("localstore: key not found")

type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Open builds the backend selected by client.local_backend.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Client.LocalBackend {
	case "", BackendSQLite:
		return NewSQLiteStore(cfg.Client.LocalPath)
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("can not connect Redis for local store: %w", err)
		}
		return NewRedisStore(rdb, ""), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown local backend %q", cfg.Client.LocalBackend)
	}
}
