package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
)

// RedisCache keeps product snapshots in Redis. The client is shared with the
// rate limiter and closed by main.
type RedisCache struct {
	client     redis.Cmdable
	defaultTTL time.Duration
}

func NewRedisCache(client redis.Cmdable, cfg *config.CacheConfig) *RedisCache {
	return &RedisCache{client: client, defaultTTL: cfg.DefaultTTL}
}

func (c *RedisCache) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheLookup(family(key), false)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		// An entry written by an older model shape; drop it so the next read reloads.
		c.client.Del(ctx, key)
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	metrics.RecordCacheLookup(family(key), true)

	return true, nil
}

// Set stores value as JSON; a non-positive ttl falls back to the configured default.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys %v from redis: %w", keys, err)
	}

	return nil
}
