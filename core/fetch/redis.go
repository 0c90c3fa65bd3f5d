package fetch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache keeps fetched bytes in Redis. Redis failures are logged and the
// wrapped fetcher is used instead.
type RedisCache struct {
	next   Fetcher
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithRedisPrefix sets the key prefix. Default "assets:blob".
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisCache) { c.prefix = strings.Trim(prefix, ":") }
}

// WithRedisTTL sets the key expiry. Default one hour.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(c *RedisCache) { c.ttl = d }
}

// WithRedisLogger sets the logger used for cache failures.
func WithRedisLogger(l *zap.Logger) RedisOption {
	return func(c *RedisCache) { c.logger = l }
}

// NewRedisCache wraps next. A nil rdb turns the cache into a pass-through.
func NewRedisCache(next Fetcher, rdb *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		next:   next,
		rdb:    rdb,
		prefix: "assets:blob",
		ttl:    time.Hour,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(url string) string {
	return c.prefix + ":" + url
}

// Fetch returns the cached bytes for url or loads and stores them.
func (c *RedisCache) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.rdb == nil {
		return c.next.Fetch(ctx, url)
	}

	data, err := c.rdb.Get(ctx, c.key(url)).Bytes()
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Redis cache read failed", zap.String("url", url), zap.Error(err))
	}

	data, err = c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, c.key(url), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis cache write failed", zap.String("url", url), zap.Error(err))
	}
	return data, nil
}
