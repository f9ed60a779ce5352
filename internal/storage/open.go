// Package storage opens the key-value backend selected by configuration.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/startuphub/startuphub/internal/config"
	"github.com/startuphub/startuphub/internal/database"
	"github.com/startuphub/startuphub/internal/kv"
	"github.com/startuphub/startuphub/pkg/logger"
)

// Backend is an opened kv store plus the handles needed to probe and close it.
type Backend struct {
	Name  string
	KV    kv.Store
	Redis *redis.Client

	ping    func(context.Context) error
	closers []func(context.Context) error
}

// Ping reports whether the backing service answers. Memory always does.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases every connection in reverse opening order.
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i](ctx))
	}
	return errors.Join(errs...)
}

func retryConfig() database.RetryConfig {
	return database.RetryConfig{MaxAttempts: 5}
}

// OpenRedis connects and pings with backoff.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
	err := database.Retry(ctx, retryConfig(), logger.Warnf, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// Open builds the kv store for cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{Name: cfg.Storage.Backend}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		b.KV = kv.NewMemoryStore()

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		s, err := kv.NewSQLiteStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		b.KV = s
		b.ping = db.PingContext
		b.closers = append(b.closers, func(context.Context) error { return s.Close() })

	case config.BackendRedis:
		client, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.KV = kv.NewRedisStore(client, cfg.Redis.Prefix)
		b.Redis = client
		b.ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })

	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, retryConfig(), logger.Warnf)
		if err != nil {
			return nil, err
		}
		s := kv.NewMongoStore(client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection))
		if err := s.EnsureIndex(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo index: %w", err)
		}
		b.KV = s
		b.ping = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		b.closers = append(b.closers, client.Disconnect)

	case config.BackendMinIO:
		s, err := kv.NewMinIOStore(ctx, kv.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
		})
		if err != nil {
			return nil, err
		}
		b.KV = s

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	logger.Infof("storage: using %s backend", b.Name)
	return b, nil
}
