package assets

import "sync"

// ProgressFunc receives the completed fraction of a run, in (0, 1].
type ProgressFunc func(fraction float64)

// progress counts completed items across all stages of one run. Calls to the
// callback are serialized.
type progress struct {
	mu    sync.Mutex
	done  int
	total int
	fn    ProgressFunc
}

func newProgress(total int, fn ProgressFunc) *progress {
	return &progress{total: total, fn: fn}
}

func (p *progress) step() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.fn != nil && p.total > 0 {
		p.fn(float64(p.done) / float64(p.total))
	}
}
