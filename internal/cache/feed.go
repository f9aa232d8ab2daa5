package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/voyagen/dramarail/internal/fetcher"
)

const railPrefix = "rail:"

// RailKey is the cache key for a list request. url.Values.Encode sorts keys,
// so parameter order does not matter.
func RailKey(r fetcher.Request) string {
	key := railPrefix + r.Path
	if q := r.Query(); q != "" {
		key += "?" + q
	}
	return key
}

// CachedFeed wraps a Lister with a Redis cache. Only successful results are
// stored; a failed fetch always goes back to the inner Lister next time.
// Redis errors are logged and never fail the fetch.
type CachedFeed struct {
	inner fetcher.Lister
	cache *Redis
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedFeed creates a CachedFeed.
func NewCachedFeed(inner fetcher.Lister, c *Redis, ttl time.Duration, log *zap.Logger) *CachedFeed {
	return &CachedFeed{inner: inner, cache: c, ttl: ttl, log: log}
}

func (f *CachedFeed) FetchList(ctx context.Context, r fetcher.Request) (fetcher.Result, error) {
	key := RailKey(r)
	v, err := Get[fetcher.Result](ctx, f.cache, key)
	if err == nil {
		f.log.Debug("rail cache hit", zap.String("key", key), zap.Int("items", len(v.Items)))
		return v, nil
	}
	if !errors.Is(err, redis.Nil) {
		f.log.Warn("rail cache get", zap.String("key", key), zap.Error(err))
	}

	res, err := f.inner.FetchList(ctx, r)
	if err != nil {
		return res, err
	}
	if err := Set(ctx, f.cache, key, res, f.ttl); err != nil {
		f.log.Warn("rail cache set", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}

// Purge removes every cached rail and returns the number of keys deleted.
func (f *CachedFeed) Purge(ctx context.Context) (int, error) {
	return DelPattern(ctx, f.cache, railPrefix+"*")
}
