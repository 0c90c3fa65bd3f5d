package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// Config holds configuration for the rate limiter.
type Config struct {
	// RequestsPerSecond is the sustained rate per key.
	RequestsPerSecond float64
	// Burst is the number of requests a key may send at once.
	Burst int
	// IdleTTL drops limiters of keys not seen for this long. Defaults to 15 minutes.
	IdleTTL time.Duration
	// KeyFunc picks the key of a request. Defaults to the client IP.
	KeyFunc func(c *fiber.Ctx) string
}

// Store keeps one token bucket per key.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewStore creates a store handing out limiters of rps and burst.
func NewStore(rps float64, burst int, idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = 15 * time.Minute
	}
	return &Store{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the limiter of key, creating it on first use.
func (s *Store) Get(key string) *rate.Limiter {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.lastSeen = now
		return e.lim
	}

	lim := rate.NewLimiter(s.limit, s.burst)
	s.entries[key] = &entry{lim: lim, lastSeen: now}
	return lim
}

// Len returns the number of tracked keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup drops keys idle for longer than the TTL.
func (s *Store) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// New returns a middleware answering 429 once a key exceeds its rate.
func New(store *Store, cfg Config) fiber.Handler {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *fiber.Ctx) string { return c.IP() }
	}

	return func(c *fiber.Ctx) error {
		lim := store.Get(keyFunc(c))
		r := lim.Reserve()
		if !r.OK() {
			return tooMany(c, 0)
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			return tooMany(c, delay)
		}
		return c.Next()
	}
}

// NewFromConfig builds a store from cfg and returns its middleware.
func NewFromConfig(cfg Config) (fiber.Handler, *Store) {
	store := NewStore(cfg.RequestsPerSecond, cfg.Burst, cfg.IdleTTL)
	return New(store, cfg), store
}

func tooMany(c *fiber.Ctx, retry time.Duration) error {
	if retry > 0 {
		secs := int((retry + time.Second - 1) / time.Second)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
	}
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
}
