package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	data  []byte
	built time.Time
}

// MemoryCache keeps fetched bytes in process for a TTL. Concurrent misses for
// one URL share a single load, and expired entries are evicted.
type MemoryCache struct {
	next Fetcher
	ttl  time.Duration
	sf   singleflight.Group

	mu        sync.RWMutex
	entries   map[string]cacheEntry
	lastSweep time.Time
}

// NewMemoryCache wraps next. A zero ttl disables caching.
func NewMemoryCache(next Fetcher, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns the cached bytes for url or loads them through the wrapped fetcher.
func (c *MemoryCache) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.ttl <= 0 {
		return c.next.Fetch(ctx, url)
	}
	if data, ok := c.lookup(url); ok {
		return data, nil
	}

	data, _, err := flight(ctx, &c.sf, url, 0, func(ctx context.Context) ([]byte, error) {
		if data, ok := c.lookup(url); ok {
			return data, nil
		}
		data, err := c.next.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		c.store(url, data)
		return data, nil
	})
	return data, err
}

func (c *MemoryCache) lookup(url string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(e.built) <= c.ttl {
		return e.data, true
	}

	c.mu.Lock()
	if cur, ok := c.entries[url]; ok && cur.built.Equal(e.built) {
		delete(c.entries, url)
	}
	c.mu.Unlock()
	return nil, false
}

// store adds data for url and, at most once per TTL, drops every expired entry.
func (c *MemoryCache) store(url string, data []byte) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = cacheEntry{data: data, built: now}
	if now.Sub(c.lastSweep) < c.ttl {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if now.Sub(e.built) > c.ttl {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of entries held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate drops url, or every entry when url is empty.
func (c *MemoryCache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if url == "" {
		c.entries = make(map[string]cacheEntry)
		return
	}
	delete(c.entries, url)
}
