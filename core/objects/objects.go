package objects

import (
	"math"
	"reflect"
	"sort"

	"scene-toolkit/core/utils"
)

// Option configures a reconciliation call.
type Option func(*config)

type config struct {
	skipped      map[string]struct{}
	applyToFirst bool
}

// WithSkippedProperties excludes the given keys at every nesting level.
func WithSkippedProperties(keys ...string) Option {
	return func(c *config) {
		for _, k := range keys {
			c.skipped[k] = struct{}{}
		}
	}
}

// WithApplyToFirst writes reconciled values back into the first map.
// Diff ignores it.
func WithApplyToFirst() Option {
	return func(c *config) { c.applyToFirst = true }
}

func newConfig(opts []Option) *config {
	c := &config{skipped: make(map[string]struct{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) skip(key string) bool {
	_, ok := c.skipped[key]
	return ok
}

// Diff returns the entries of a that change when b is reconciled onto it.
// Nested maps appear only when their own diff is non-empty.
func Diff(a, b map[string]any, opts ...Option) map[string]any {
	return diff(a, b, newConfig(opts))
}

func diff(a, b map[string]any, cfg *config) map[string]any {
	result := make(map[string]any)
	for _, key := range sortedKeys(a) {
		if cfg.skip(key) {
			continue
		}
		av, bv := a[key], b[key]
		if am, ok := nestedMap(av, bv); ok {
			bm, _ := bv.(map[string]any)
			if nested := diff(am, bm, cfg); len(nested) > 0 {
				result[key] = nested
			}
			continue
		}

		merged := av
		if utils.IsZeroNumber(bv) || utils.IsTruthy(bv) {
			merged = bv
		}
		if !valuesEqual(merged, av) {
			result[key] = merged
		}
	}
	return result
}

// Merge reconciles b onto a over the union of their keys.
// Either map may be nil.
func Merge(a, b map[string]any, opts ...Option) map[string]any {
	return merge(a, b, newConfig(opts), true)
}

// Patch reconciles b onto a over the keys of a only.
func Patch(a, b map[string]any, opts ...Option) map[string]any {
	return merge(a, b, newConfig(opts), false)
}

func merge(a, b map[string]any, cfg *config, union bool) map[string]any {
	result := make(map[string]any)

	keys := sortedKeys(a)
	if union {
		for _, key := range sortedKeys(b) {
			if _, ok := a[key]; !ok {
				keys = append(keys, key)
			}
		}
	}

	for _, key := range keys {
		if cfg.skip(key) {
			continue
		}
		av, bv := a[key], b[key]
		if am, ok := nestedMap(av, bv); ok {
			bm, _ := bv.(map[string]any)
			result[key] = merge(am, bm, cfg, union)
			continue
		}

		result[key] = pick(av, bv)
		if cfg.applyToFirst && a != nil {
			a[key] = result[key]
		}
	}
	return result
}

// pick returns b when it carries an explicit value, a otherwise.
func pick(a, b any) any {
	if utils.IsZeroNumber(b) {
		return b
	}
	if v, ok := b.(bool); ok && !v {
		return false
	}
	if utils.IsTruthy(b) {
		return b
	}
	return a
}

// nestedMap reports whether a is a map to recurse into given b.
func nestedMap(a, b any) (map[string]any, bool) {
	am, ok := a.(map[string]any)
	if !ok || am == nil || !utils.IsTruthy(b) {
		return nil, false
	}
	return am, true
}

// valuesEqual compares leaf values numerically across numeric types. NaN
// equals NaN, including inside slices and maps.
func valuesEqual(x, y any) bool {
	xf, xok := utils.ToFloat(x)
	yf, yok := utils.ToFloat(y)
	if xok && yok {
		return xf == yf || (math.IsNaN(xf) && math.IsNaN(yf))
	}

	switch xv := x.(type) {
	case []any:
		yv, ok := y.([]any)
		if !ok || len(xv) != len(yv) || (xv == nil) != (yv == nil) {
			return false
		}
		for i := range xv {
			if !valuesEqual(xv[i], yv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		yv, ok := y.(map[string]any)
		if !ok || len(xv) != len(yv) || (xv == nil) != (yv == nil) {
			return false
		}
		for k, v := range xv {
			w, ok := yv[k]
			if !ok || !valuesEqual(v, w) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(x, y)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
