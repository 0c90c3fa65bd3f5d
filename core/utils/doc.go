// Package utils provides common utility functions for the scene-toolkit application.
// It includes helpers for numeric conversion and the loose truthiness rules used by
// the object reconciliation helpers, and other shared logic that doesn't fit into
// domain-specific packages.
package utils
