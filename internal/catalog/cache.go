package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var cacheLogger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "catalog-cache").Logger()

const listCacheKey = "catalog:sneakers"

// RedisAPI is the subset of the redis client the cache uses.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ListCache holds a snapshot of the full sneaker list in Redis. It backs the
// public listing and the filter pipeline so they operate on a cached copy of
// the catalog rather than scanning the table per request.
type ListCache struct {
	rdb RedisAPI
	ttl time.Duration
}

// NewListCache returns a cache with the given snapshot TTL.
func NewListCache(rdb RedisAPI, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached list and true, or (nil, false) on miss.
// Redis failures are treated as misses; the caller falls back to the store.
func (c *ListCache) Get(ctx context.Context) ([]Sneaker, bool) {
	raw, err := c.rdb.Get(ctx, listCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cacheLogger.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}
	var list []Sneaker
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		cacheLogger.Warn().Err(err).Msg("cache payload corrupt, dropping")
		_ = c.rdb.Del(ctx, listCacheKey).Err()
		return nil, false
	}
	return list, true
}

// Set stores a fresh snapshot. Best-effort: a failed write only costs the
// next reader a table scan.
func (c *ListCache) Set(ctx context.Context, list []Sneaker) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, listCacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot; called after every catalog mutation.
func (c *ListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		cacheLogger.Warn().Err(err).Msg("cache invalidation failed")
	}
}
