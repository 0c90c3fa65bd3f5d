package fetch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Router dispatches URLs to fetchers by scheme.
type Router struct {
	routes   map[string]Fetcher
	fallback Fetcher
	logger   *zap.Logger
	timeout  time.Duration
	sf       singleflight.Group
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRoute registers f for scheme. "http" also covers "https".
func WithRoute(scheme string, f Fetcher) RouterOption {
	return func(r *Router) {
		scheme = strings.ToLower(scheme)
		r.routes[scheme] = f
		if scheme == "http" {
			if _, ok := r.routes["https"]; !ok {
				r.routes["https"] = f
			}
		}
	}
}

// WithLogger sets the router's logger.
func WithLogger(l *zap.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// WithFetchTimeout bounds each shared fetch. Zero leaves it unbounded.
func WithFetchTimeout(d time.Duration) RouterOption {
	return func(r *Router) { r.timeout = d }
}

// NewRouter creates a router that sends unmatched URLs to fallback.
func NewRouter(fallback Fetcher, opts ...RouterOption) *Router {
	r := &Router{
		routes:   make(map[string]Fetcher),
		fallback: fallback,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch loads url through the matching fetcher. Callers asking for the same URL
// at the same time share one request. The shared request outlives any single
// caller's cancellation; each caller stops waiting when its own ctx is done.
func (r *Router) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, shared, err := flight(ctx, &r.sf, url, r.timeout, func(ctx context.Context) ([]byte, error) {
		return r.route(url).Fetch(ctx, url)
	})
	if shared {
		r.logger.Debug("Fetch shared", zap.String("url", url))
	}
	return data, err
}

func (r *Router) route(url string) Fetcher {
	if scheme, _, ok := strings.Cut(url, "://"); ok {
		if f, ok := r.routes[strings.ToLower(scheme)]; ok {
			return f
		}
	}
	return r.fallback
}

// flight runs fn once per key among concurrent callers. fn gets a context
// that keeps ctx's values but not its cancellation, bounded by timeout when
// positive.
func flight(ctx context.Context, g *singleflight.Group, key string, timeout time.Duration, fn func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	ch := g.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, timeout)
			defer cancel()
		}
		return fn(fctx)
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		return res.Val.([]byte), res.Shared, nil
	}
}
