// Package objects provides key-wise reconciliation helpers for dynamic value trees
// (map[string]any), such as material or entity configuration decoded from JSON/YAML.
//
// # Operations
//
//   - Diff: the keys of A whose reconciled value differs from A.
//   - Merge: reconcile over the union of the keys of A and B.
//   - Patch: reconcile over the keys of A only; B-only keys are dropped.
//
// # Reconciliation Rule
//
// Nested maps are reconciled recursively when B holds a truthy value for the key.
// Any other value is atomic (slices are never merged element-wise). For atomic values
// B wins when it is truthy or a numeric zero; otherwise A is kept. Merge and Patch
// also keep an explicit false from B, Diff does not: a false in B never shows up in a
// diff. This asymmetry is kept for compatibility with existing configuration data.
//
// # Usage
//
//	cfg := objects.Merge(defaults, overrides, objects.WithSkippedProperties("id"))
//	changed := objects.Diff(previous, current)
package objects
