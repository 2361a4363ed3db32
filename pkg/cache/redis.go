package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/liveboard/pkg/config"
)

// RedisClient wraps redis.Client behind the pool settings this service needs.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to the Redis instance backing the entity cache
// and verifies connectivity before returning.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	// Cache traffic here is many short GETs from request handlers plus
	// occasional SETs from the worker. Fail fast on a saturated pool
	// instead of queueing handlers behind it.
	opts.PoolSize = 20
	opts.MinIdleConns = 4
	opts.PoolTimeout = 2 * time.Second
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb}, nil
}

// Ping reports Redis connection health for the /health endpoint.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close drains the connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the underlying redis.Client for the entity cache.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
