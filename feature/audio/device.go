package audio

import (
	"errors"
	"fmt"
	"sync"

	"scene-toolkit/core/scene"
)

// ErrEmptyBuffer is returned when a voice is requested for a buffer without samples.
var ErrEmptyBuffer = errors.New("audio: empty buffer")

// Voice is one playable instance of an audio buffer.
type Voice interface {
	// Play starts the voice from the beginning.
	Play() error
	Stop()
	IsPlaying() bool
	SetLoop(loop bool)
	SetVolume(volume float64)
}

// Device creates voices.
type Device interface {
	NewVoice(buf *scene.AudioBuffer) (Voice, error)
}

// NullDevice creates voices that track their state but produce no sound.
type NullDevice struct{}

// NewVoice returns a *NullVoice for buf.
func (NullDevice) NewVoice(buf *scene.AudioBuffer) (Voice, error) {
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, bufferName(buf))
	}
	return &NullVoice{buffer: buf}, nil
}

// NullVoice is the Voice of a NullDevice.
type NullVoice struct {
	mu      sync.Mutex
	buffer  *scene.AudioBuffer
	playing bool
	loop    bool
	volume  float64
	plays   int
}

// Play marks the voice as playing.
func (v *NullVoice) Play() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = true
	v.plays++
	return nil
}

// Stop marks the voice as stopped.
func (v *NullVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
}

// IsPlaying reports whether Play was called since the last Stop.
func (v *NullVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

// SetLoop sets the loop flag.
func (v *NullVoice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loop = loop
}

// SetVolume sets the linear volume.
func (v *NullVoice) SetVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
}

// Loop returns the loop flag.
func (v *NullVoice) Loop() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loop
}

// Volume returns the last volume set.
func (v *NullVoice) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

// Plays returns how many times Play was called.
func (v *NullVoice) Plays() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plays
}

// Buffer returns the buffer the voice was created for.
func (v *NullVoice) Buffer() *scene.AudioBuffer {
	return v.buffer
}

func bufferName(buf *scene.AudioBuffer) string {
	if buf == nil {
		return "<nil>"
	}
	return buf.Name
}
