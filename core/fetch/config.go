package fetch

import "time"

// CacheConfig holds configuration for the blob caches in front of the fetchers.
type CacheConfig struct {
	// MemoryTTLSeconds keeps fetched blobs in process memory. Zero disables the memory cache.
	MemoryTTLSeconds int `mapstructure:"memory_ttl_seconds" default:"300"`
	// RedisAddr enables the shared redis cache when set (host:port).
	RedisAddr string `mapstructure:"redis_addr" default:""`
	// RedisPassword authenticates against redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the redis database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// RedisTTLSeconds is the expiry of cached blobs in redis.
	RedisTTLSeconds int `mapstructure:"redis_ttl_seconds" default:"3600"`
	// RedisPrefix namespaces the cache keys.
	RedisPrefix string `mapstructure:"redis_prefix" default:"assets:blob"`
}

// MemoryTTL returns the memory cache TTL.
func (c CacheConfig) MemoryTTL() time.Duration {
	return time.Duration(c.MemoryTTLSeconds) * time.Second
}

// RedisTTL returns the redis cache TTL.
func (c CacheConfig) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLSeconds) * time.Second
}
