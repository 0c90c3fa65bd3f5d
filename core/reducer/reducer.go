package reducer

import (
	"math"
	"sync"
)

// Call limits in milliseconds.
const (
	NoLimit          float64 = -1
	Call1PerSecond   float64 = 1000
	Call15PerSecond  float64 = 1000.0 / 15
	Call30PerSecond  float64 = 1000.0 / 30
	Call45PerSecond  float64 = 1000.0 / 45
	Call60PerSecond  float64 = 1000.0 / 60
	Call120PerSecond float64 = 1000.0 / 120
)

// Params describes one throttled call.
type Params struct {
	// ID keys the throttling state.
	ID string
	// Callback receives Param as given.
	Callback func(param any)
	// Limit is the minimum gap between runs, or NoLimit.
	Limit float64
	// Elapsed is the caller's clock. Zero means "not started" and is ignored.
	Elapsed float64
	// Param is forwarded unchanged, so 0, "" and false reach the callback
	// as themselves. It is nil only when unset.
	Param any
	// ForceCount switches to catch-up mode.
	ForceCount bool
}

type callData struct {
	started    bool
	lastUpdate float64
	callCount  int
}

// Reducer holds per-id throttling state. The zero value is ready to use.
type Reducer struct {
	mu   sync.Mutex
	data map[string]*callData
}

// New creates an empty Reducer.
func New() *Reducer {
	return &Reducer{data: make(map[string]*callData)}
}

// Call runs p.Callback according to p's limit and the state kept for p.ID.
// The callback is invoked with the reducer's lock released.
func (r *Reducer) Call(p Params) {
	if p.Elapsed == 0 {
		return
	}

	runs := r.plan(p)
	for i := 0; i < runs; i++ {
		p.Callback(p.Param)
	}
}

// plan updates the state for p and returns how many times to run the callback.
func (r *Reducer) plan(p Params) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		r.data = make(map[string]*callData)
	}
	d, ok := r.data[p.ID]
	if !ok {
		d = &callData{lastUpdate: -1}
		r.data[p.ID] = d
	}

	if p.Limit == NoLimit {
		return 1
	}

	if p.ForceCount {
		runs := 0
		if p.Limit <= 0 {
			runs = 1
			d.callCount++
		} else {
			expected := int(math.Floor(p.Elapsed / (p.Limit * 1000)))
			for !d.started || expected > d.callCount {
				d.started = true
				d.lastUpdate += p.Limit
				d.callCount++
				runs++
			}
		}
		d.started = true
		d.lastUpdate = p.Elapsed
		return runs
	}

	if !d.started || p.Elapsed-d.lastUpdate >= p.Limit {
		d.started = true
		d.lastUpdate = p.Elapsed
		return 1
	}
	return 0
}

// Clear drops the state for id. It always reports true, including for unknown ids.
func (r *Reducer) Clear(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return true
}

// ClearAll drops all state.
func (r *Reducer) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string]*callData)
}

// CallCount returns how many times the callback ran for id in ForceCount mode.
func (r *Reducer) CallCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.data[id]; ok {
		return d.callCount
	}
	return 0
}

var defaultReducer = New()

// Call runs p against the package-level reducer.
func Call(p Params) { defaultReducer.Call(p) }

// Clear drops the package-level state for id.
func Clear(id string) bool { return defaultReducer.Clear(id) }

// ClearAll drops all package-level state.
func ClearAll() { defaultReducer.ClearAll() }
