package assets

import (
	"errors"
	"fmt"

	"scene-toolkit/core/scene"
)

// ErrUnsupportedFormat is returned when an asset's bytes match no decoder.
var ErrUnsupportedFormat = errors.New("assets: unsupported format")

// ErrInvalidModel is returned for a model whose structure cannot form a scene.
var ErrInvalidModel = errors.New("assets: invalid model")

// ErrUnknownMaterialType is returned for a material config whose Type has no
// registered factory.
var ErrUnknownMaterialType = errors.New("assets: unknown material type")

// Kind names an asset category.
type Kind string

const (
	KindTexture   Kind = "texture"
	KindGLTF      Kind = "gltf"
	KindAnimation Kind = "animation"
	KindFBX       Kind = "fbx"
	KindAudio     Kind = "audio"
)

// Kinds lists every kind in stage order.
var Kinds = []Kind{KindTexture, KindGLTF, KindAnimation, KindFBX, KindAudio}

// Item is one asset to load.
type Item struct {
	ID  string `json:"id" yaml:"id" toml:"id"`
	URL string `json:"url" yaml:"url" toml:"url"`
}

// TextureRef points a material at a registered texture.
type TextureRef struct {
	ID     string         `json:"id" yaml:"id" toml:"id"`
	FlipY  *bool          `json:"flip_y,omitempty" yaml:"flip_y,omitempty" toml:"flip_y,omitempty"`
	Repeat *scene.Vector2 `json:"repeat,omitempty" yaml:"repeat,omitempty" toml:"repeat,omitempty"`
}

// MaterialFactory builds a fresh material from resolved parameters.
type MaterialFactory func(params MaterialParams) *scene.Material

// MaterialParams are the resolved inputs handed to a MaterialFactory.
type MaterialParams struct {
	Map       *scene.Texture
	Color     scene.Color
	AlphaTest float32
}

// MaterialConfig describes the material applied to a model's meshes.
// When neither Factory nor Type is set, the meshes' existing materials are
// patched instead of replaced.
type MaterialConfig struct {
	// Type selects a registered factory, e.g. "standard" or "basic".
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	// Factory overrides Type.
	Factory MaterialFactory `json:"-" yaml:"-" toml:"-"`
	Texture *TextureRef     `json:"texture,omitempty" yaml:"texture,omitempty" toml:"texture,omitempty"`
	// Color defaults to white when zero.
	Color scene.Color `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	// AlphaTest defaults to 0.5 when zero.
	AlphaTest float32 `json:"alpha_test,omitempty" yaml:"alpha_test,omitempty" toml:"alpha_test,omitempty"`
}

// ModelItem is a model plus optional material configuration. Materials, when
// set, takes precedence over Material and is applied per mesh index.
type ModelItem struct {
	Item      `yaml:",inline"`
	Material  *MaterialConfig  `json:"material,omitempty" yaml:"material,omitempty" toml:"material,omitempty"`
	Materials []MaterialConfig `json:"materials,omitempty" yaml:"materials,omitempty" toml:"materials,omitempty"`
}

// Batches groups the items of one pipeline run by kind.
type Batches struct {
	Textures              []Item      `json:"textures" yaml:"textures" toml:"textures"`
	GLTFModels            []ModelItem `json:"gltf_models" yaml:"gltf_models" toml:"gltf_models"`
	FBXModels             []ModelItem `json:"fbx_models" yaml:"fbx_models" toml:"fbx_models"`
	FBXSkeletonAnimations []Item      `json:"fbx_skeleton_animations" yaml:"fbx_skeleton_animations" toml:"fbx_skeleton_animations"`
	Audio                 []Item      `json:"audio" yaml:"audio" toml:"audio"`
}

// Total returns the number of items across all batches.
func (b Batches) Total() int {
	return len(b.Textures) + len(b.GLTFModels) + len(b.FBXModels) + len(b.FBXSkeletonAnimations) + len(b.Audio)
}

// Each calls fn for every item in stage order.
func (b Batches) Each(fn func(kind Kind, item Item)) {
	for _, it := range b.Textures {
		fn(KindTexture, it)
	}
	for _, it := range b.GLTFModels {
		fn(KindGLTF, it.Item)
	}
	for _, it := range b.FBXSkeletonAnimations {
		fn(KindAnimation, it)
	}
	for _, it := range b.FBXModels {
		fn(KindFBX, it.Item)
	}
	for _, it := range b.Audio {
		fn(KindAudio, it)
	}
}

// GLTFModel is a loaded glTF scene and its animations.
type GLTFModel struct {
	Scene      *scene.Object3D
	Animations []*scene.AnimationClip
}

// LoadedModel is an FBX model as registered by a run.
type LoadedModel struct {
	Item
	Model *scene.Object3D
}

// Result is what a successful run returns.
type Result struct {
	FBXModels []LoadedModel
}

// LoadError reports the item that aborted a run.
type LoadError struct {
	Kind Kind
	ID   string
	URL  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s %q from %s: %v", e.Kind, e.ID, e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
