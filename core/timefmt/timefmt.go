// Package timefmt renders millisecond durations with simple clock patterns
// such as "HH:MM:SS" or "MM:SS.MS".
package timefmt

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Supported patterns.
const (
	HHMMSS = "HH:MM:SS"
	MMSS   = "MM:SS"
	MMSSMS = "MM:SS.MS"
)

type parts struct {
	hours, minutes, seconds, milliseconds int
}

type token struct {
	pattern string
	render  func(parts) string
}

// tokens are substituted in order, each at most once.
var tokens = []token{
	{"HH", func(p parts) string { return fmt.Sprintf("%02d", p.hours) }},
	{"MM", func(p parts) string { return fmt.Sprintf("%02d", p.minutes) }},
	{"SS", func(p parts) string { return fmt.Sprintf("%02d", p.seconds) }},
	{"MS", func(p parts) string { return fmt.Sprintf("%03d", p.milliseconds) }},
}

// Format renders ms with pattern. Hours wrap every 24.
func Format(ms float64, pattern string) string {
	totalMinutes := math.Floor(ms / 1000 / 60)
	p := parts{
		milliseconds: int(math.Floor(math.Mod(ms, 1000))),
		seconds:      int(math.Floor(math.Mod(ms/1000, 60))),
		minutes:      int(math.Floor(math.Mod(totalMinutes, 60))),
		hours:        int(math.Floor(math.Mod(totalMinutes/60, 24))),
	}

	result := pattern
	for _, t := range tokens {
		result = strings.Replace(result, t.pattern, t.render(p), 1)
	}
	return result
}

// FormatDuration is Format for a time.Duration.
func FormatDuration(d time.Duration, pattern string) string {
	return Format(float64(d)/float64(time.Millisecond), pattern)
}
