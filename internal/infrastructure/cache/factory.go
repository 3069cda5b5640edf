package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/gstbill/internal/domain/catalog"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/catering/gstbill/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// StoreFactory picks Redis-backed or local stores depending on whether a
// Redis client is available
type StoreFactory struct {
	client                *redis.Client
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory. client may be nil.
func NewStoreFactory(client *redis.Client, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		client:                client,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateIdempotencyStore returns a Redis store when a client is configured,
// otherwise an in-memory one if fallback is allowed
func (f *StoreFactory) CreateIdempotencyStore() (shared.IdempotencyStore, error) {
	if f.client != nil {
		f.logger.Info("using Redis idempotency store")
		return NewRedisIdempotencyStoreWithClient(f.client, ""), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but not configured")
	}

	// WARNING: in-memory keys are not shared between API instances
	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store. " +
		"Duplicate submissions across instances will not be detected.")
	return NewInMemoryIdempotencyStore(), nil
}

// CreateCatalogStore returns the catalog store for backend. The database
// store is used when backend is "database", or when "redis" is asked for
// without a client and fallback is allowed. "memory" keeps the catalog in
// this process only.
func (f *StoreFactory) CreateCatalogStore(backend string, database catalog.Store) (catalog.Store, error) {
	switch backend {
	case config.CatalogBackendDatabase, "":
		return database, nil
	case config.CatalogBackendRedis:
		if f.client != nil {
			f.logger.Info("using Redis item catalog")
			return NewRedisCatalogStore(f.client, ""), nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis catalog backend requested but Redis is not configured")
		}
		f.logger.Warn("Redis unavailable, keeping the item catalog in the database")
		return database, nil
	case config.CatalogBackendMemory:
		f.logger.Warn("using in-memory item catalog; entries are lost on restart")
		return NewMemoryCatalogStore(), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", backend)
	}
}
