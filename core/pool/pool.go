package pool

import (
	"context"
	"errors"
	"sync"
)

// DefaultSize is the slot count used when none is configured.
const DefaultSize = 3

var (
	// ErrNotOwned is returned by Release for a handle the pool does not own or
	// that is not currently in use.
	ErrNotOwned = errors.New("pool: handle not owned or not in use")
	// ErrNoHandles is returned by New when no handles are given.
	ErrNoHandles = errors.New("pool: at least one handle is required")
	// ErrDuplicateHandle is returned by New when a handle is listed twice.
	ErrDuplicateHandle = errors.New("pool: duplicate handle")
)

type slot[T comparable] struct {
	handle T
	busy   bool
}

type waiter[T comparable] struct {
	granted func(T)
}

// Pool is a fixed set of handles with a FIFO waiter queue.
type Pool[T comparable] struct {
	mu      sync.Mutex
	slots   []*slot[T]
	index   map[T]*slot[T]
	waiters []*waiter[T]
}

// New builds a pool with one slot per handle.
func New[T comparable](handles ...T) (*Pool[T], error) {
	if len(handles) == 0 {
		return nil, ErrNoHandles
	}

	p := &Pool[T]{
		slots: make([]*slot[T], 0, len(handles)),
		index: make(map[T]*slot[T], len(handles)),
	}
	for _, h := range handles {
		if _, dup := p.index[h]; dup {
			return nil, ErrDuplicateHandle
		}
		s := &slot[T]{handle: h}
		p.slots = append(p.slots, s)
		p.index[h] = s
	}
	return p, nil
}

// NewN builds a pool of size handles created by newHandle. A size below one
// falls back to DefaultSize.
func NewN[T comparable](size int, newHandle func(i int) T) (*Pool[T], error) {
	if size < 1 {
		size = DefaultSize
	}
	handles := make([]T, size)
	for i := range handles {
		handles[i] = newHandle(i)
	}
	return New(handles...)
}

// Acquire invokes granted with a handle. When a slot is free the call happens
// synchronously on the caller's goroutine; otherwise granted is queued and runs
// on the goroutine that releases a slot.
func (p *Pool[T]) Acquire(granted func(T)) {
	p.acquire(granted)
}

// acquire returns the queued waiter, or nil when granted already ran.
func (p *Pool[T]) acquire(granted func(T)) *waiter[T] {
	p.mu.Lock()
	for _, s := range p.slots {
		if !s.busy {
			s.busy = true
			p.mu.Unlock()
			granted(s.handle)
			return nil
		}
	}
	w := &waiter[T]{granted: granted}
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()
	return w
}

// Get blocks until a handle is granted or ctx is done.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	ch := make(chan T, 1)
	w := p.acquire(func(h T) { ch <- h })
	if w == nil {
		return <-ch, nil
	}

	select {
	case h := <-ch:
		return h, nil
	case <-ctx.Done():
	}

	if p.dequeue(w) {
		return zero, ctx.Err()
	}
	// Granted between cancellation and removal; hand the slot back.
	_ = p.Release(<-ch)
	return zero, ctx.Err()
}

// dequeue removes w from the queue. It reports false when w was already granted.
func (p *Pool[T]) dequeue(w *waiter[T]) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, queued := range p.waiters {
		if queued == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Release returns h to the pool. If a request is waiting, the slot passes
// directly to the oldest waiter, which is invoked on the caller's goroutine.
func (p *Pool[T]) Release(h T) error {
	p.mu.Lock()
	s, ok := p.index[h]
	if !ok || !s.busy {
		p.mu.Unlock()
		return ErrNotOwned
	}

	if len(p.waiters) == 0 {
		s.busy = false
		p.mu.Unlock()
		return nil
	}

	next := p.waiters[0]
	p.waiters[0] = nil
	p.waiters = p.waiters[1:]
	p.mu.Unlock()

	next.granted(s.handle)
	return nil
}

// InUse reports the number of busy slots.
func (p *Pool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, s := range p.slots {
		if s.busy {
			n++
		}
	}
	return n
}

// Waiting reports the number of queued requests.
func (p *Pool[T]) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// Size reports the slot count.
func (p *Pool[T]) Size() int {
	return len(p.slots)
}

// Idle reports whether no slot is busy and nobody is waiting.
func (p *Pool[T]) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.waiters) > 0 {
		return false
	}
	for _, s := range p.slots {
		if s.busy {
			return false
		}
	}
	return true
}
