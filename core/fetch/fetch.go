package fetch

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the URL does not resolve to any resource.
var ErrNotFound = errors.New("fetch: resource not found")

// Fetcher loads the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Func adapts a function to Fetcher.
type Func func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
