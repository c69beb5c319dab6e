// internal/adapter/cache/redis.go

// Package cache provides a Redis-backed cache for aggregated search
// responses. With no Redis host configured the cache is a no-op and
// every lookup misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"showscout/internal/config"
	"showscout/internal/domain/event"
)

// ErrMiss indicates the key was not cached.
var ErrMiss = errors.New("cache miss")

// RedisCache provides caching using Redis
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Host == "" {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &RedisCache{
		client:  client,
		ttl:     cfg.TTL,
		enabled: true,
	}, nil
}

// Enabled reports whether the cache is backed by a live Redis connection
func (c *RedisCache) Enabled() bool {
	return c != nil && c.enabled
}

// GetSearch retrieves a cached aggregated result. Returns ErrMiss when
// the key is absent or the cache is disabled. A nil cache always misses.
func (c *RedisCache) GetSearch(ctx context.Context, key string, result *event.AggregatedResult) error {
	if c == nil || !c.enabled {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrMiss
		}
		return errors.Wrap(err, "failed to get value from Redis")
	}

	if err := json.Unmarshal(data, result); err != nil {
		return errors.Wrap(err, "failed to unmarshal cached value")
	}

	return nil
}

// SetSearch stores an aggregated result under the given key
func (c *RedisCache) SetSearch(ctx context.Context, key string, result event.AggregatedResult) error {
	if c == nil || !c.enabled {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value for caching")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}

	return nil
}

// SearchKey generates a cache key for a search request. Params are
// hashed so arbitrary keyword input cannot produce unbounded key names.
func SearchKey(params event.SearchParams) string {
	raw, _ := json.Marshal(params)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("search:%s", hex.EncodeToString(sum[:16]))
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c == nil || !c.enabled || c.client == nil {
		return nil
	}

	return c.client.Close()
}
