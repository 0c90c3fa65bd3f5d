package assets_test

import (
	"testing"

	"scene-toolkit/feature/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTexture(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		tex, err := assets.DecodeTexture(assets.Item{ID: "red", URL: "red.png"}, pngBytes(t))
		require.NoError(t, err)
		assert.Equal(t, "red", tex.Name)
		assert.Equal(t, "red.png", tex.Source)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		_, err := assets.DecodeTexture(assets.Item{ID: "x", URL: "x.txt"}, []byte("hello"))
		assert.ErrorIs(t, err, assets.ErrUnsupportedFormat)
	})

	t.Run("CorruptImage", func(t *testing.T) {
		_, err := assets.DecodeTexture(assets.Item{ID: "x", URL: "x.png"}, []byte("hello"))
		assert.ErrorContains(t, err, "failed to decode image")
	})
}

func TestDecodeAudio(t *testing.T) {
	t.Run("WAV", func(t *testing.T) {
		buf, err := assets.DecodeAudio(assets.Item{ID: "beep", URL: "beep.bin"}, wavBytes())
		require.NoError(t, err)
		assert.Equal(t, 100, buf.Len())
		assert.Equal(t, 1, buf.Format.NumChannels)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := assets.DecodeAudio(assets.Item{ID: "x", URL: "x.mid"}, []byte("MThd"))
		assert.ErrorIs(t, err, assets.ErrUnsupportedFormat)
	})
}

func TestDecodeGLTF(t *testing.T) {
	model, err := assets.DecodeGLTF(assets.Item{ID: "tree", URL: "tree.gltf"}, []byte(treeGLTF))
	require.NoError(t, err)

	assert.Equal(t, "tree", model.Scene.Name)
	tree := model.Scene.FindByName("Tree")
	require.NotNil(t, tree)
	assert.False(t, tree.IsMesh())

	leaves := model.Scene.FindByName("Leaves")
	require.NotNil(t, leaves)
	assert.Same(t, tree, leaves.Parent())
	require.True(t, leaves.IsMesh())
	assert.Equal(t, "LeavesMesh", leaves.Mesh.Geometry.Name)
	require.Len(t, leaves.Mesh.Materials, 1)
	assert.Equal(t, "Leaf", leaves.Mesh.Materials[0].Name)

	require.Len(t, model.Animations, 1)
	assert.Equal(t, model.Animations, model.Scene.Animations)
}

func TestDecodeGLTFNodeCycle(t *testing.T) {
	cyclic := `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "A", "children": [1]},
    {"name": "B", "children": [0]}
  ]
}`

	_, err := assets.DecodeGLTF(assets.Item{ID: "loop", URL: "loop.gltf"}, []byte(cyclic))
	assert.ErrorIs(t, err, assets.ErrInvalidModel)
}

func TestDecodeFBX(t *testing.T) {
	model, err := assets.DecodeFBX(assets.Item{ID: "hero"}, fbxBytes(t, "Idle", "Body"))
	require.NoError(t, err)
	assert.Equal(t, "hero", model.Name)
	assert.NotNil(t, model.FindByName("Body"))

	_, err = assets.DecodeFBX(assets.Item{ID: "x", URL: "x.fbx"}, []byte("; FBX 7.4.0 project file"))
	assert.ErrorIs(t, err, assets.ErrUnsupportedFormat)
}
