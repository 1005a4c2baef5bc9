package infra

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a best-effort string cache on Redis. A nil client disables it:
// every Get misses and every Set is dropped. Redis failures are logged and
// reported as misses; they never reach the caller.
type Cache struct {
	rdb     *redis.Client
	breaker *CircuitBreaker
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, breaker: NewCircuitBreaker(DefaultCBConfig())}
}

// Enabled reports whether a Redis client is configured.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get returns the cached value and whether it was found.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	var val string
	err := c.breaker.Execute(func() error {
		v, err := c.rdb.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		val = v
		return err
	})
	if err != nil {
		c.logFailure("get", key, err)
		return "", false
	}
	return val, val != ""
}

// Set stores val under key for ttl. A zero ttl keeps the key without expiry.
func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	err := c.breaker.Execute(func() error {
		return c.rdb.Set(ctx, key, val, ttl).Err()
	})
	if err != nil {
		c.logFailure("set", key, err)
	}
}

func (c *Cache) logFailure(op, key string, err error) {
	if errors.Is(err, ErrCircuitOpen) {
		log.Debug().Str("op", op).Str("key", key).Msg("cache skipped: circuit open")
		return
	}
	log.Warn().Err(err).Str("op", op).Str("key", key).Str("circuit", c.breaker.State().String()).Msg("cache failure")
}
