package pool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scene-toolkit/core/pool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loader struct{ id int }

func newPool(t *testing.T, size int) (*pool.Pool[*loader], []*loader) {
	t.Helper()
	handles := make([]*loader, size)
	for i := range handles {
		handles[i] = &loader{id: i}
	}
	p, err := pool.New(handles...)
	require.NoError(t, err)
	return p, handles
}

func TestNew(t *testing.T) {
	t.Run("NoHandles", func(t *testing.T) {
		_, err := pool.New[*loader]()
		assert.ErrorIs(t, err, pool.ErrNoHandles)
	})

	t.Run("Duplicate", func(t *testing.T) {
		l := &loader{}
		_, err := pool.New(l, l)
		assert.ErrorIs(t, err, pool.ErrDuplicateHandle)
	})

	t.Run("DefaultSize", func(t *testing.T) {
		p, err := pool.NewN(0, func(i int) *loader { return &loader{id: i} })
		require.NoError(t, err)
		assert.Equal(t, pool.DefaultSize, p.Size())
	})
}

func TestAcquireGrantsSynchronously(t *testing.T) {
	p, handles := newPool(t, 2)

	var got []*loader
	p.Acquire(func(l *loader) { got = append(got, l) })
	p.Acquire(func(l *loader) { got = append(got, l) })

	assert.Equal(t, handles, got)
	assert.Equal(t, 2, p.InUse())
	assert.Equal(t, 0, p.Waiting())
}

func TestReleaseHandsOffFIFO(t *testing.T) {
	p, handles := newPool(t, 1)

	var order []string
	p.Acquire(func(*loader) { order = append(order, "first") })
	p.Acquire(func(*loader) { order = append(order, "second") })
	p.Acquire(func(*loader) { order = append(order, "third") })
	assert.Equal(t, 2, p.Waiting())

	require.NoError(t, p.Release(handles[0]))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, p.InUse(), "handed-off slot stays busy")

	require.NoError(t, p.Release(handles[0]))
	require.NoError(t, p.Release(handles[0]))
	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.True(t, p.Idle())
}

func TestReleaseErrors(t *testing.T) {
	p, handles := newPool(t, 1)

	assert.ErrorIs(t, p.Release(&loader{id: 99}), pool.ErrNotOwned)
	assert.ErrorIs(t, p.Release(handles[0]), pool.ErrNotOwned)
}

func TestGet(t *testing.T) {
	t.Run("Free", func(t *testing.T) {
		p, handles := newPool(t, 1)
		h, err := p.Get(context.Background())
		require.NoError(t, err)
		assert.Same(t, handles[0], h)
	})

	t.Run("WaitsForRelease", func(t *testing.T) {
		p, handles := newPool(t, 1)
		h, err := p.Get(context.Background())
		require.NoError(t, err)

		done := make(chan *loader)
		go func() {
			got, err := p.Get(context.Background())
			assert.NoError(t, err)
			done <- got
		}()

		require.Eventually(t, func() bool { return p.Waiting() == 1 }, time.Second, time.Millisecond)
		require.NoError(t, p.Release(h))
		assert.Same(t, handles[0], <-done)
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, handles := newPool(t, 1)
		_, err := p.Get(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err = p.Get(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 0, p.Waiting())

		require.NoError(t, p.Release(handles[0]))
		assert.True(t, p.Idle())
	})
}

func TestConcurrencyBound(t *testing.T) {
	const size, jobs = 3, 50
	p, _ := newPool(t, size)

	var active, peak int32
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := p.Get(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&active, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			assert.NoError(t, p.Release(h))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(size))
	assert.True(t, p.Idle())
}
