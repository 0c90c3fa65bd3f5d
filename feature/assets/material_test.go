package assets

import (
	"testing"

	"scene-toolkit/core/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterializer() (*materializer, *scene.Texture) {
	textures := NewRegistry[*scene.Texture]()
	tex := scene.NewTexture("bark", nil)
	textures.Register("bark", tex)
	return &materializer{textures: textures, factories: DefaultFactories()}, tex
}

func twoMeshModel() *scene.Object3D {
	root := scene.NewObject3D("model")
	root.Add(
		scene.NewMeshObject("a", &scene.Geometry{}, scene.NewMaterial("phong")),
		scene.NewMeshObject("b", &scene.Geometry{}, scene.NewMaterial("phong")),
	)
	return root
}

func TestMaterialParams(t *testing.T) {
	m, tex := newMaterializer()

	t.Run("Defaults", func(t *testing.T) {
		p := m.params(MaterialConfig{})
		assert.Nil(t, p.Map)
		assert.Equal(t, scene.White, p.Color)
		assert.Equal(t, DefaultAlphaTest, p.AlphaTest)
	})

	t.Run("UnknownTexture", func(t *testing.T) {
		p := m.params(MaterialConfig{Texture: &TextureRef{ID: "nope"}})
		assert.Nil(t, p.Map)
	})

	t.Run("SharedTexture", func(t *testing.T) {
		p := m.params(MaterialConfig{Texture: &TextureRef{ID: "bark"}})
		assert.Same(t, tex, p.Map)
	})

	t.Run("FlipAndRepeatClone", func(t *testing.T) {
		flip := false
		p := m.params(MaterialConfig{Texture: &TextureRef{ID: "bark", FlipY: &flip, Repeat: &scene.Vector2{X: 4, Y: 2}}})
		require.NotNil(t, p.Map)
		assert.NotSame(t, tex, p.Map)
		assert.False(t, p.Map.FlipY)
		assert.Equal(t, scene.Vector2{X: 4, Y: 2}, p.Map.Repeat)
		assert.True(t, tex.FlipY, "registered texture is untouched")
		assert.Equal(t, scene.Vector2{X: 1, Y: 1}, tex.Repeat)
	})
}

func TestApplyFBX(t *testing.T) {
	t.Run("SingleFactory", func(t *testing.T) {
		m, tex := newMaterializer()
		model := twoMeshModel()

		m.applyFBX(model, ModelItem{Material: &MaterialConfig{Type: "lambert", Texture: &TextureRef{ID: "bark"}}})

		a, b := model.FindByName("a"), model.FindByName("b")
		assert.Same(t, a.Mesh.Materials[0], b.Mesh.Materials[0], "one material is shared by all meshes")
		assert.Equal(t, "lambert", a.Mesh.Materials[0].Type)
		assert.Same(t, tex, a.Mesh.Materials[0].Map)
		assert.True(t, a.CastShadow && a.ReceiveShadow && b.CastShadow && b.ReceiveShadow)
	})

	t.Run("CustomFactory", func(t *testing.T) {
		m, _ := newMaterializer()
		model := twoMeshModel()
		calls := 0

		m.applyFBX(model, ModelItem{Material: &MaterialConfig{Factory: func(p MaterialParams) *scene.Material {
			calls++
			mat := scene.NewMaterial("custom")
			mat.Color = p.Color
			return mat
		}}})

		assert.Equal(t, 1, calls)
		assert.Equal(t, "custom", model.FindByName("b").Mesh.Materials[0].Type)
	})

	t.Run("PatchWithoutFactory", func(t *testing.T) {
		m, tex := newMaterializer()
		model := twoMeshModel()
		original := model.FindByName("a").Mesh.Materials[0]

		m.applyFBX(model, ModelItem{Material: &MaterialConfig{Texture: &TextureRef{ID: "bark"}, Color: 0x00ff00}})

		patched := model.FindByName("a").Mesh.Materials[0]
		assert.Same(t, original, patched)
		assert.Equal(t, "phong", patched.Type)
		assert.Same(t, tex, patched.Map)
		assert.Equal(t, scene.Color(0x00ff00), patched.Color)
		assert.Equal(t, DefaultAlphaTest, patched.AlphaTest)
	})

	t.Run("PerMeshList", func(t *testing.T) {
		m, _ := newMaterializer()
		model := twoMeshModel()

		m.applyFBX(model, ModelItem{Materials: []MaterialConfig{{Type: "basic"}}})

		assert.Equal(t, "basic", model.FindByName("a").Mesh.Materials[0].Type)
		assert.Equal(t, "phong", model.FindByName("b").Mesh.Materials[0].Type, "meshes past the list keep their material")
		assert.True(t, model.FindByName("b").CastShadow)
	})

	t.Run("NoConfig", func(t *testing.T) {
		m, _ := newMaterializer()
		model := twoMeshModel()
		original := model.FindByName("a").Mesh.Materials[0]

		m.applyFBX(model, ModelItem{})

		assert.Same(t, original, model.FindByName("a").Mesh.Materials[0])
		assert.Nil(t, original.Map)
		assert.True(t, model.FindByName("a").ReceiveShadow)
	})
}

func TestApplyGLTF(t *testing.T) {
	t.Run("MultiMaterial", func(t *testing.T) {
		m, _ := newMaterializer()
		model := &GLTFModel{Scene: twoMeshModel()}

		m.applyGLTF(model, ModelItem{Materials: []MaterialConfig{{Type: "basic"}, {Type: "toon"}}})

		for _, name := range []string{"a", "b"} {
			mats := model.Scene.FindByName(name).Mesh.Materials
			require.Len(t, mats, 2)
			assert.Equal(t, "basic", mats[0].Type)
			assert.Equal(t, "toon", mats[1].Type)
		}
	})

	t.Run("Patch", func(t *testing.T) {
		m, _ := newMaterializer()
		model := &GLTFModel{Scene: twoMeshModel()}

		m.applyGLTF(model, ModelItem{Material: &MaterialConfig{AlphaTest: 0.9}})

		mat := model.Scene.FindByName("b").Mesh.Materials[0]
		assert.Equal(t, "phong", mat.Type)
		assert.Equal(t, float32(0.9), mat.AlphaTest)
	})
}
