package assets

import (
	"fmt"

	"scene-toolkit/core/scene"
)

const (
	// DefaultAlphaTest is used when a config leaves AlphaTest at zero.
	DefaultAlphaTest float32 = 0.5
	// DefaultColor is used when a config leaves Color at zero.
	DefaultColor = scene.White
)

// DefaultFactories are the material types available to manifests.
func DefaultFactories() map[string]MaterialFactory {
	factories := map[string]MaterialFactory{}
	for _, t := range []string{"basic", "lambert", "phong", "standard", "toon"} {
		factories[t] = typedFactory(t)
	}
	return factories
}

func typedFactory(materialType string) MaterialFactory {
	return func(p MaterialParams) *scene.Material {
		m := scene.NewMaterial(materialType)
		m.Map = p.Map
		m.Color = p.Color
		m.AlphaTest = p.AlphaTest
		return m
	}
}

// materializer applies MaterialConfigs using the texture registry.
type materializer struct {
	textures  *Registry[*scene.Texture]
	factories map[string]MaterialFactory
}

// params resolves cfg's texture reference and defaults.
func (m *materializer) params(cfg MaterialConfig) MaterialParams {
	p := MaterialParams{Color: cfg.Color, AlphaTest: cfg.AlphaTest}
	if p.Color == 0 {
		p.Color = DefaultColor
	}
	if p.AlphaTest == 0 {
		p.AlphaTest = DefaultAlphaTest
	}

	ref := cfg.Texture
	if ref == nil || ref.ID == "" {
		return p
	}
	tex, ok := m.textures.Get(ref.ID)
	if !ok {
		return p
	}
	if ref.FlipY != nil || ref.Repeat != nil {
		tex = tex.Clone()
		if ref.FlipY != nil {
			tex.FlipY = *ref.FlipY
		}
		if ref.Repeat != nil {
			tex.Repeat = *ref.Repeat
		}
	}
	p.Map = tex
	return p
}

func (m *materializer) factory(cfg MaterialConfig) MaterialFactory {
	if cfg.Factory != nil {
		return cfg.Factory
	}
	if cfg.Type != "" {
		return m.factories[cfg.Type]
	}
	return nil
}

// check reports the first config in models whose Type has no factory.
func (m *materializer) check(kind Kind, models []ModelItem) error {
	return checkMaterialTypes(kind, models, m.factories)
}

func checkMaterialTypes(kind Kind, models []ModelItem, factories map[string]MaterialFactory) error {
	for _, item := range models {
		for _, cfg := range configs(item) {
			if cfg.Factory != nil || cfg.Type == "" {
				continue
			}
			if _, ok := factories[cfg.Type]; !ok {
				return &LoadError{Kind: kind, ID: item.ID, URL: item.URL, Err: fmt.Errorf("%w: %q", ErrUnknownMaterialType, cfg.Type)}
			}
		}
	}
	return nil
}

// create builds a material for cfg, or returns nil when cfg has no factory.
func (m *materializer) create(cfg MaterialConfig) *scene.Material {
	f := m.factory(cfg)
	if f == nil {
		return nil
	}
	return f(m.params(cfg))
}

// patch rewrites mat in place with cfg's resolved values.
func (m *materializer) patch(mat *scene.Material, cfg MaterialConfig) {
	if mat == nil {
		return
	}
	p := m.params(cfg)
	mat.Map = p.Map
	mat.Color = p.Color
	mat.AlphaTest = p.AlphaTest
}

// configs normalizes a model item's material settings.
func configs(item ModelItem) []MaterialConfig {
	if len(item.Materials) > 0 {
		return item.Materials
	}
	if item.Material != nil {
		return []MaterialConfig{*item.Material}
	}
	return nil
}

// applyFBX walks model and applies item's materials per mesh. With a list of
// configs, the i-th mesh in traversal order gets the i-th config.
func (m *materializer) applyFBX(model *scene.Object3D, item ModelItem) {
	cfgs := configs(item)
	perMesh := len(item.Materials) > 0

	var created []*scene.Material
	for _, cfg := range cfgs {
		created = append(created, m.create(cfg))
	}

	index := 0
	model.Traverse(func(child *scene.Object3D) {
		if !child.IsMesh() {
			return
		}
		child.CastShadow = true
		child.ReceiveShadow = true

		i := 0
		if perMesh {
			i = index
		}
		index++
		if i >= len(cfgs) {
			return
		}

		if created[i] != nil {
			child.Mesh.Materials = []*scene.Material{created[i]}
			return
		}
		for _, mat := range child.Mesh.Materials {
			m.patch(mat, cfgs[i])
		}
	})
}

// applyGLTF walks model and applies item's materials to every mesh. A list of
// configs becomes a multi-material on each mesh.
func (m *materializer) applyGLTF(model *GLTFModel, item ModelItem) {
	cfgs := configs(item)

	model.Scene.Traverse(func(child *scene.Object3D) {
		if !child.IsMesh() {
			return
		}
		child.CastShadow = true
		child.ReceiveShadow = true

		var mats []*scene.Material
		for _, cfg := range cfgs {
			if mat := m.create(cfg); mat != nil {
				mats = append(mats, mat)
			}
		}
		if len(mats) > 0 {
			child.Mesh.Materials = mats
			return
		}
		for i, mat := range child.Mesh.Materials {
			if len(cfgs) == 0 {
				return
			}
			m.patch(mat, cfgs[min(i, len(cfgs)-1)])
		}
	})
}
