package reducer_test

import (
	"testing"

	"scene-toolkit/core/reducer"

	"github.com/stretchr/testify/assert"
)

func counter() (*int, func(any)) {
	n := 0
	return &n, func(any) { n++ }
}

func TestCallNormalMode(t *testing.T) {
	r := reducer.New()
	n, cb := counter()

	for _, elapsed := range []float64{50, 100, 200} {
		r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 100, Elapsed: elapsed})
	}

	// runs at 50 (first call) and 200 (150ms after the last run)
	assert.Equal(t, 2, *n)
}

func TestCallIgnoresZeroElapsed(t *testing.T) {
	r := reducer.New()
	n, cb := counter()

	r.Call(reducer.Params{ID: "a", Callback: cb, Limit: reducer.NoLimit, Elapsed: 0})

	assert.Equal(t, 0, *n)
}

func TestCallNoLimit(t *testing.T) {
	r := reducer.New()
	n, cb := counter()

	for i := 1; i <= 5; i++ {
		r.Call(reducer.Params{ID: "a", Callback: cb, Limit: reducer.NoLimit, Elapsed: 1})
	}

	assert.Equal(t, 5, *n)
}

func TestCallForceCount(t *testing.T) {
	t.Run("CatchesUp", func(t *testing.T) {
		r := reducer.New()
		n, cb := counter()

		r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 0.1, Elapsed: 250, ForceCount: true})

		assert.Equal(t, 2, *n)
		assert.Equal(t, 2, r.CallCount("a"))
	})

	t.Run("FirstCallAlwaysRuns", func(t *testing.T) {
		r := reducer.New()
		n, cb := counter()

		r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 0.1, Elapsed: 50, ForceCount: true})

		assert.Equal(t, 1, *n)
	})

	t.Run("BatchedMatchesOneShot", func(t *testing.T) {
		batched := reducer.New()
		nb, cbb := counter()
		for elapsed := 100.0; elapsed <= 1000; elapsed += 100 {
			batched.Call(reducer.Params{ID: "a", Callback: cbb, Limit: 0.1, Elapsed: elapsed, ForceCount: true})
		}

		oneShot := reducer.New()
		no, cbo := counter()
		oneShot.Call(reducer.Params{ID: "a", Callback: cbo, Limit: 0.1, Elapsed: 1000, ForceCount: true})

		assert.Equal(t, 10, *nb)
		assert.Equal(t, *nb, *no)
	})

	t.Run("NeverFewerThanExpected", func(t *testing.T) {
		r := reducer.New()
		n, cb := counter()
		for _, elapsed := range []float64{30, 70, 420, 430, 990} {
			r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 0.1, Elapsed: elapsed, ForceCount: true})
			assert.GreaterOrEqual(t, *n, int(elapsed/100))
		}
	})
}

func TestCallPassesParam(t *testing.T) {
	r := reducer.New()
	var got []any

	r.Call(reducer.Params{ID: "a", Callback: func(p any) { got = append(got, p) }, Limit: reducer.NoLimit, Elapsed: 1, Param: "x"})
	r.Call(reducer.Params{ID: "b", Callback: func(p any) { got = append(got, p) }, Limit: reducer.NoLimit, Elapsed: 1})

	assert.Equal(t, []any{"x", nil}, got)
}

func TestCallForwardsFalsyParams(t *testing.T) {
	tests := []struct {
		name  string
		param any
	}{
		{"Zero", 0},
		{"ZeroFloat", 0.0},
		{"EmptyString", ""},
		{"False", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reducer.New()
			var got []any
			r.Call(reducer.Params{ID: "a", Callback: func(p any) { got = append(got, p) }, Limit: reducer.NoLimit, Elapsed: 1, Param: tt.param})

			assert.Equal(t, []any{tt.param}, got)
		})
	}
}

func TestIndependentIDs(t *testing.T) {
	r := reducer.New()
	na, cba := counter()
	nb, cbb := counter()

	r.Call(reducer.Params{ID: "a", Callback: cba, Limit: 100, Elapsed: 10})
	r.Call(reducer.Params{ID: "b", Callback: cbb, Limit: 100, Elapsed: 10})
	r.Call(reducer.Params{ID: "a", Callback: cba, Limit: 100, Elapsed: 20})

	assert.Equal(t, 1, *na)
	assert.Equal(t, 1, *nb)
}

func TestClear(t *testing.T) {
	r := reducer.New()
	n, cb := counter()

	r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 100, Elapsed: 10})
	assert.True(t, r.Clear("a"))
	assert.True(t, r.Clear("unknown"))
	r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 100, Elapsed: 20})
	assert.Equal(t, 2, *n)

	r.ClearAll()
	r.Call(reducer.Params{ID: "a", Callback: cb, Limit: 100, Elapsed: 30})
	assert.Equal(t, 3, *n)
}

func TestPackageLevelReducer(t *testing.T) {
	reducer.ClearAll()
	n, cb := counter()

	reducer.Call(reducer.Params{ID: "pkg", Callback: cb, Limit: reducer.Call1PerSecond, Elapsed: 1})
	reducer.Call(reducer.Params{ID: "pkg", Callback: cb, Limit: reducer.Call1PerSecond, Elapsed: 500})
	assert.True(t, reducer.Clear("pkg"))
	reducer.Call(reducer.Params{ID: "pkg", Callback: cb, Limit: reducer.Call1PerSecond, Elapsed: 600})

	assert.Equal(t, 2, *n)
}
