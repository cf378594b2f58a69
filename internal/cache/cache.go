// FilePath: internal/cache/cache.go

// Package cache provides a small read-through cache for computed stats
// payloads. A miss or an unreachable Redis never fails a query; callers
// fall through to the store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/config"
)

// StatsCache caches serialized stats payloads with a short TTL. The TTL
// bounds staleness instead of invalidation: ingest rates are low and the
// payloads are cheap to recompute.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a StatsCache, or nil when no Redis host is configured.
// A nil *StatsCache is safe to call; every method degrades to a miss.
func New(cfg config.RedisConfig) *StatsCache {
	if cfg.Host == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	nuts.L.Infof("[StatsCache] Caching stats payloads via %s:%d (ttl %v)", cfg.Host, cfg.Port, cfg.StatsTTL)
	return &StatsCache{client: client, ttl: cfg.StatsTTL}
}

// Key builds the cache key for a resolved query: scope, device, and the
// effective window in UTC seconds.
func Key(scope, deviceID string, start, end time.Time) string {
	return fmt.Sprintf("netcell:stats:%s:%s:%d-%d", scope, deviceID, start.UTC().Unix(), end.UTC().Unix())
}

// Get returns the cached payload for key, reporting whether it was found.
func (c *StatsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		nuts.L.Warnf("[StatsCache] Get %s failed: %v", key, err)
		return nil, false
	}
	return data, true
}

// Set stores the payload for key with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[StatsCache] Set %s failed: %v", key, err)
	}
}

// Close releases the underlying client.
func (c *StatsCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
