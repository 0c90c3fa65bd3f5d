package audio

import (
	"fmt"
	"sync"
	"time"

	"scene-toolkit/core/scene"

	"go.uber.org/zap"
)

// DefaultRadius is the reference distance of positional voices without a radius.
const DefaultRadius float32 = 1

// sphereSegments matches the resolution of the container sphere.
const sphereSegments = 32

// SoundConfig is the per-sound playback configuration.
type SoundConfig struct {
	Loop    bool    `json:"loop" yaml:"loop" mapstructure:"loop"`
	Volume  float64 `json:"volume" yaml:"volume" mapstructure:"volume"`
	IsMusic bool    `json:"is_music" yaml:"is_music" mapstructure:"is_music"`
}

// Volumes are the shared mixer levels.
type Volumes struct {
	Master  float64 `json:"master"`
	Music   float64 `json:"music"`
	Effects float64 `json:"effects"`
}

// DefaultVolumes has every level at 1.
var DefaultVolumes = Volumes{Master: 1, Music: 1, Effects: 1}

// PlayParams describes one Play call. The voice is positional only when
// Position, Scene and Listener are all set.
type PlayParams struct {
	AudioID  string
	Position *scene.Vector3
	Radius   float32
	Scene    *scene.Object3D
	Listener *scene.Object3D
	CacheID  string
}

// CacheEntry is a live voice kept under a cache key.
// The zero value stands for a missing entry.
type CacheEntry struct {
	Voice      Voice
	AudioID    string
	Container  *scene.Object3D
	LastPlayed time.Time
}

// BufferSource looks up decoded audio buffers by id.
type BufferSource interface {
	AudioBuffer(id string) (*scene.AudioBuffer, bool)
}

type cached struct {
	CacheEntry
	listener *scene.Object3D
	radius   float32
}

// Mixer plays audio buffers and keeps one live voice per cache key.
type Mixer struct {
	mu      sync.Mutex
	device  Device
	buffers BufferSource
	logger  *zap.Logger
	now     func() time.Time

	sounds  map[string]SoundConfig
	volumes Volumes
	cache   map[string]*cached
}

// NewMixer creates a mixer playing buffers from buffers on device.
func NewMixer(device Device, buffers BufferSource, logger *zap.Logger) *Mixer {
	return &Mixer{
		device:  device,
		buffers: buffers,
		logger:  logger,
		now:     time.Now,
		sounds:  make(map[string]SoundConfig),
		volumes: DefaultVolumes,
		cache:   make(map[string]*cached),
	}
}

// SetConfig replaces the per-sound configuration. Sounds without an entry
// play once at volume 1 as effects.
func (m *Mixer) SetConfig(config map[string]SoundConfig) {
	sounds := make(map[string]SoundConfig, len(config))
	for id, c := range config {
		sounds[id] = c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds = sounds
}

// Play starts AudioID under the key CacheID, or AudioID when CacheID is empty.
//
// A key seen before restarts its voice in place and moves its container to
// Position if both exist. A new key needs a registered buffer; without one
// Play logs a warning and does nothing.
func (m *Mixer) Play(p PlayParams) error {
	key := p.CacheID
	if key == "" {
		key = p.AudioID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.cache[key]; ok {
		if e.Voice.IsPlaying() {
			e.Voice.Stop()
		}
		if e.Container != nil && p.Position != nil {
			e.Container.Position = *p.Position
			m.applyVolume(e)
		}
		e.LastPlayed = m.now()
		return e.Voice.Play()
	}

	buf, ok := m.buffers.AudioBuffer(p.AudioID)
	if !ok {
		m.logger.Warn("Audio buffer not found", zap.String("audio_id", p.AudioID))
		return nil
	}

	voice, err := m.device.NewVoice(buf)
	if err != nil {
		return fmt.Errorf("failed to create voice for %s: %w", p.AudioID, err)
	}

	e := &cached{
		CacheEntry: CacheEntry{Voice: voice, AudioID: p.AudioID, LastPlayed: m.now()},
	}

	if p.Position != nil && p.Scene != nil && p.Listener != nil {
		radius := p.Radius
		if radius <= 0 {
			radius = DefaultRadius
		}
		e.radius = radius
		e.listener = p.Listener
		e.Container = newContainer(key, p.AudioID, *p.Position, radius)
		p.Scene.Add(e.Container)
	}

	voice.SetLoop(m.sound(p.AudioID).Loop)
	m.applyVolume(e)
	m.cache[key] = e

	return voice.Play()
}

// Stop stops the voice under cacheID if it is playing.
func (m *Mixer) Stop(cacheID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.cache[cacheID]; ok && e.Voice.IsPlaying() {
		e.Voice.Stop()
	}
}

// Cache returns the entry under cacheID, or the zero CacheEntry.
func (m *Mixer) Cache(cacheID string) CacheEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.cache[cacheID]; ok {
		return e.CacheEntry
	}
	return CacheEntry{}
}

// Keys returns the number of cached voices.
func (m *Mixer) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}

// SetMasterVolume sets the master level and updates every cached voice.
func (m *Mixer) SetMasterVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes.Master = v
	m.refresh()
}

// SetMusicVolume sets the music level and updates every cached voice.
func (m *Mixer) SetMusicVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes.Music = v
	m.refresh()
}

// SetEffectsVolume sets the effects level and updates every cached voice.
func (m *Mixer) SetEffectsVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes.Effects = v
	m.refresh()
}

// SetVolumes replaces all three levels at once.
func (m *Mixer) SetVolumes(v Volumes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = v
	m.refresh()
}

// Volumes returns the current levels.
func (m *Mixer) Volumes() Volumes {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumes
}

// MoveListener places listener at pos and updates the positional voices it hears.
func (m *Mixer) MoveListener(listener *scene.Object3D, pos scene.Vector3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listener.Position = pos
	m.refresh()
}

// Clear stops every voice, detaches the containers and empties the cache.
func (m *Mixer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.cache {
		if e.Voice.IsPlaying() {
			e.Voice.Stop()
		}
		if e.Container != nil {
			scene.Dispose(e.Container)
		}
		delete(m.cache, key)
	}
}

// EffectiveVolume returns the volume a voice of audioID plays at before distance falloff.
func (m *Mixer) EffectiveVolume(audioID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.effective(audioID)
}

func (m *Mixer) sound(audioID string) SoundConfig {
	if c, ok := m.sounds[audioID]; ok {
		return c
	}
	return SoundConfig{Volume: 1}
}

func (m *Mixer) effective(audioID string) float64 {
	c := m.sound(audioID)
	volume := c.Volume
	if volume == 0 {
		volume = 1
	}
	group := m.volumes.Effects
	if c.IsMusic {
		group = m.volumes.Music
	}
	return volume * m.volumes.Master * group
}

func (m *Mixer) refresh() {
	for _, e := range m.cache {
		m.applyVolume(e)
	}
}

func (m *Mixer) applyVolume(e *cached) {
	v := m.effective(e.AudioID)
	if e.Container != nil && e.listener != nil {
		d := e.Container.WorldPosition().Sub(e.listener.WorldPosition()).Length()
		v *= falloff(d, e.radius)
	}
	e.Voice.SetVolume(v)
}

// falloff is the inverse distance model with a rolloff factor of 1.
func falloff(distance, ref float32) float64 {
	if distance <= ref {
		return 1
	}
	return float64(ref / distance)
}

func newContainer(key, audioID string, pos scene.Vector3, radius float32) *scene.Object3D {
	vertices := (sphereSegments + 1) * (sphereSegments + 1)
	c := scene.NewMeshObject("audio:"+key, &scene.Geometry{Name: "sphere", VertexCount: vertices})
	c.Visible = false
	c.Position = pos
	c.UserData = map[string]any{
		"audio_id": audioID,
		"radius":   radius,
	}
	return c
}
