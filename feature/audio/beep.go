package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"scene-toolkit/core/scene"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const resampleQuality = 4

// BeepDevice plays voices through the system speaker.
type BeepDevice struct {
	rate beep.SampleRate
}

// NewBeepDevice initializes the speaker at sampleRate with the given buffer length.
// The speaker is process-wide; only one BeepDevice should be open at a time.
func NewBeepDevice(sampleRate int, buffer time.Duration) (*BeepDevice, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &BeepDevice{rate: sr}, nil
}

// Close stops all playback and releases the speaker.
func (d *BeepDevice) Close() {
	speaker.Close()
}

// NewVoice returns a voice streaming buf.
func (d *BeepDevice) NewVoice(buf *scene.AudioBuffer) (Voice, error) {
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, bufferName(buf))
	}
	return &beepVoice{rate: d.rate, buffer: buf, volume: 1}, nil
}

// beepVoice locks the speaker before its own mutex; speaker callbacks run with
// the speaker locked and then take the voice mutex.
type beepVoice struct {
	rate   beep.SampleRate
	buffer *scene.AudioBuffer

	mu      sync.Mutex
	loop    bool
	volume  float64
	playing bool
	gen     int
	ctrl    *beep.Ctrl
	gain    *effects.Volume
}

func (v *beepVoice) Play() error {
	speaker.Lock()
	v.mu.Lock()
	v.stopLocked()
	v.gen++
	gen := v.gen

	var s beep.Streamer
	if v.loop {
		s = beep.Loop(-1, v.buffer.Streamer())
	} else {
		s = v.buffer.Streamer()
	}
	if src := v.buffer.Format.SampleRate; src != v.rate {
		s = beep.Resample(resampleQuality, src, v.rate, s)
	}

	v.ctrl = &beep.Ctrl{Streamer: s}
	v.gain = &effects.Volume{Streamer: v.ctrl, Base: 2}
	applyGain(v.gain, v.volume)
	v.playing = true
	stream := beep.Seq(v.gain, beep.Callback(func() { v.finished(gen) }))
	v.mu.Unlock()
	speaker.Unlock()

	speaker.Play(stream)
	return nil
}

func (v *beepVoice) Stop() {
	speaker.Lock()
	defer speaker.Unlock()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

func (v *beepVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *beepVoice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loop = loop
}

func (v *beepVoice) SetVolume(volume float64) {
	speaker.Lock()
	defer speaker.Unlock()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
	if v.gain != nil {
		applyGain(v.gain, volume)
	}
}

// stopLocked drops the current stream; the speaker removes a drained Ctrl on its next pass.
func (v *beepVoice) stopLocked() {
	if v.ctrl != nil {
		v.ctrl.Streamer = nil
		v.ctrl = nil
	}
	v.gain = nil
	v.playing = false
}

func (v *beepVoice) finished(gen int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen == gen {
		v.playing = false
	}
}

// applyGain maps a linear volume onto a base-2 effects.Volume.
func applyGain(g *effects.Volume, volume float64) {
	if volume <= 0 {
		g.Silent = true
		return
	}
	g.Silent = false
	g.Volume = math.Log2(volume)
}
