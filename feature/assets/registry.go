package assets

import (
	"sort"
	"sync"

	"scene-toolkit/core/scene"
)

// Registry maps asset ids to loaded values. Lookups of unknown ids return the
// zero value and false.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register stores v under id, replacing any previous value.
func (r *Registry[T]) Register(id string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = v
}

// Get returns the value stored under id.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	return v, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered values.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Drain empties the registry and returns what it held.
func (r *Registry[T]) Drain() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	r.items = make(map[string]T)
	return out
}

// Registries holds one registry per asset kind.
type Registries struct {
	Textures     *Registry[*scene.Texture]
	GLTFModels   *Registry[*GLTFModel]
	FBXModels    *Registry[*scene.Object3D]
	Animations   *Registry[*scene.AnimationClip]
	AudioBuffers *Registry[*scene.AudioBuffer]
}

// NewRegistries creates empty registries.
func NewRegistries() *Registries {
	return &Registries{
		Textures:     NewRegistry[*scene.Texture](),
		GLTFModels:   NewRegistry[*GLTFModel](),
		FBXModels:    NewRegistry[*scene.Object3D](),
		Animations:   NewRegistry[*scene.AnimationClip](),
		AudioBuffers: NewRegistry[*scene.AudioBuffer](),
	}
}

// Texture returns the texture registered under id.
func (r *Registries) Texture(id string) (*scene.Texture, bool) {
	return r.Textures.Get(id)
}

// GLTFModel returns the glTF model registered under id.
func (r *Registries) GLTFModel(id string) (*GLTFModel, bool) {
	return r.GLTFModels.Get(id)
}

// FBXModel returns an independent clone of the FBX model registered under id.
// The clone carries its own copy of the animation list.
func (r *Registries) FBXModel(id string) (*scene.Object3D, bool) {
	m, ok := r.FBXModels.Get(id)
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Animation returns the skeleton animation registered under id.
func (r *Registries) Animation(id string) (*scene.AnimationClip, bool) {
	return r.Animations.Get(id)
}

// AudioBuffer returns the audio buffer registered under id.
func (r *Registries) AudioBuffer(id string) (*scene.AudioBuffer, bool) {
	return r.AudioBuffers.Get(id)
}

// IDs returns the registered ids for kind, or nil for an unknown kind.
func (r *Registries) IDs(kind Kind) []string {
	switch kind {
	case KindTexture:
		return r.Textures.IDs()
	case KindGLTF:
		return r.GLTFModels.IDs()
	case KindAnimation:
		return r.Animations.IDs()
	case KindFBX:
		return r.FBXModels.IDs()
	case KindAudio:
		return r.AudioBuffers.IDs()
	}
	return nil
}

// DisposeAll disposes every texture and model and empties all registries.
func (r *Registries) DisposeAll() {
	for _, t := range r.Textures.Drain() {
		t.Dispose()
	}
	for _, m := range r.GLTFModels.Drain() {
		scene.Dispose(m.Scene)
	}
	for _, m := range r.FBXModels.Drain() {
		scene.Dispose(m)
	}
	r.Animations.Drain()
	r.AudioBuffers.Drain()
}
