// Package cache adapts Redis to the cache and webhook de-duplication ports.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/config"
)

const (
	serviceName = "redis"

	// eventKeyPrefix namespaces processed payment event IDs.
	eventKeyPrefix = "events:"
)

// NewClient builds a go-redis client from config.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Cache implements ports.Cache on Redis strings.
type Cache struct {
	rdb redis.UniversalClient
}

// NewCache wraps rdb.
func NewCache(rdb redis.UniversalClient) *Cache {
	return &Cache{rdb: rdb}
}

// Get returns domain.ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return val, nil
}

// Set stores value. A zero TTL keeps the key until deleted.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Delete is idempotent.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return serviceName }

// Optional implements ports.OptionalChecker. Location lookups and webhook
// de-duplication both degrade gracefully without Redis.
func (c *Cache) Optional() bool { return true }

// Check pings the server.
func (c *Cache) Check(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Deduplicator implements ports.EventDeduplicator with SET NX.
type Deduplicator struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewDeduplicator remembers event IDs for ttl, which should outlast the
// payment processor's redelivery window.
func NewDeduplicator(rdb redis.UniversalClient, ttl time.Duration) *Deduplicator {
	return &Deduplicator{rdb: rdb, ttl: ttl}
}

// FirstSeen atomically records id and reports whether it was new.
func (d *Deduplicator) FirstSeen(ctx context.Context, id string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, eventKeyPrefix+id, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", id, err)
	}

	return ok, nil
}

// Forget drops id so the event can be processed on redelivery.
func (d *Deduplicator) Forget(ctx context.Context, id string) error {
	if err := d.rdb.Del(ctx, eventKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}

	return nil
}
