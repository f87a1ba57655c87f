// Package cache stores raw report text in Redis, keyed by normalized plant
// name. Only the raw model output is ever cached — structured documents are
// rebuilt from it on demand.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a get/set store for raw report text. When Redis is unconfigured
// or unreachable the cache degrades to a no-op so the service keeps working
// without it.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// New connects to Redis at addr. An empty addr, or a failed ping, yields a
// disabled cache rather than an error.
func New(addr, password, prefix string, ttl time.Duration, log *slog.Logger) *Cache {
	c := &Cache{prefix: prefix, ttl: ttl, log: log}
	if addr == "" {
		log.Info("redis not configured, caching disabled")
		return c
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, caching disabled", "addr", addr, "error", err)
		rdb.Close()
		return c
	}

	c.rdb = rdb
	log.Info("redis connected", "addr", addr)
	return c
}

// Enabled reports whether a Redis connection is live.
func (c *Cache) Enabled() bool {
	return c.rdb != nil
}

func (c *Cache) key(subject string) string {
	return c.prefix + subject
}

// Get returns the cached text for subject, and whether it was found. Cache
// failures are treated as misses.
func (c *Cache) Get(ctx context.Context, subject string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, c.key(subject)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("cache get failed", "key", c.key(subject), "error", err)
		}
		return "", false
	}
	return val, true
}

// Set stores text for subject, honoring the configured TTL (0 keeps it
// forever).
func (c *Cache) Set(ctx context.Context, subject, text string) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, c.key(subject), text, c.ttl).Err(); err != nil {
		return err
	}
	c.log.Debug("cache set", "key", c.key(subject), "bytes", len(text))
	return nil
}

// Delete removes the cached text for subject.
func (c *Cache) Delete(ctx context.Context, subject string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key(subject)).Err()
}

// Exists reports whether subject has a cached entry.
func (c *Cache) Exists(ctx context.Context, subject string) bool {
	if c.rdb == nil {
		return false
	}
	n, err := c.rdb.Exists(ctx, c.key(subject)).Result()
	if err != nil {
		c.log.Debug("cache exists failed", "key", c.key(subject), "error", err)
		return false
	}
	return n > 0
}

// Close releases the Redis connection.
func (c *Cache) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}
