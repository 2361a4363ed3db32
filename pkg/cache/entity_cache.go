package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EntityCacheTTL is the time-to-live for cached entities.
const EntityCacheTTL = 24 * time.Hour

// Cache is a JSON read-model cache for one resource kind.
// Keys follow "{prefix}:{id}", e.g. "project:4f6e…". It satisfies the
// crud.Cacher contract, so a crud.Service can use it read-through.
type Cache[T any] struct {
	client *RedisClient
	prefix string
	ttl    time.Duration
}

// New returns a Cache for the given key prefix with the default TTL.
func New[T any](r *RedisClient, prefix string) *Cache[T] {
	return &Cache[T]{client: r, prefix: prefix, ttl: EntityCacheTTL}
}

// Get retrieves a cached entity. The second return reports whether the key
// existed; expired or absent keys return (zero, false, nil).
func (c *Cache[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var v T
	raw, err := c.client.Client().Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("cache decode: %w", err)
	}
	return v, true, nil
}

// Set writes an entity as JSON with the cache TTL.
func (c *Cache[T]) Set(ctx context.Context, id string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(id), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts a cached entity.
func (c *Cache[T]) Delete(ctx context.Context, id string) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *Cache[T]) key(id string) string {
	return c.prefix + ":" + id
}
