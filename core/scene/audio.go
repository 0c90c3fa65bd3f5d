package scene

import (
	"time"

	"github.com/faiface/beep"
)

// AudioBuffer is a fully decoded sound held in memory.
type AudioBuffer struct {
	Name   string
	Format beep.Format
	Data   *beep.Buffer
}

// Len returns the number of samples in the buffer.
func (b *AudioBuffer) Len() int {
	if b == nil || b.Data == nil {
		return 0
	}
	return b.Data.Len()
}

// Duration returns the playback length at the buffer's own sample rate.
func (b *AudioBuffer) Duration() time.Duration {
	if b.Len() == 0 {
		return 0
	}
	return b.Format.SampleRate.D(b.Len())
}

// Streamer returns a fresh seekable stream over the whole buffer.
func (b *AudioBuffer) Streamer() beep.StreamSeeker {
	return b.Data.Streamer(0, b.Data.Len())
}
