package assets_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"scene-toolkit/core/fetch"
	"scene-toolkit/feature/assets/fbx"

	"github.com/stretchr/testify/require"
)

const treeGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Tree", "children": [1]},
    {"name": "Leaves", "mesh": 0}
  ],
  "meshes": [{"name": "LeavesMesh", "primitives": [{"attributes": {}, "material": 0}]}],
  "materials": [{"name": "Leaf"}],
  "animations": [{"name": "Sway", "channels": [], "samplers": []}]
}`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// wavBytes is 100 frames of 16-bit mono PCM at 8kHz.
func wavBytes() []byte {
	const frames, rate = 100, 8000
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	w(int32(36 + frames*2))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(int32(16))
	w(int16(1))        // PCM
	w(int16(1))        // channels
	w(int32(rate))     // sample rate
	w(int32(rate * 2)) // byte rate
	w(int16(2))        // block align
	w(int16(16))       // bits per sample
	buf.WriteString("data")
	w(int32(frames * 2))
	for i := 0; i < frames; i++ {
		w(int16(i * 100))
	}
	return buf.Bytes()
}

// fbxBytes encodes a model with one mesh per name, each with its own
// geometry and material, plus one animation stack.
func fbxBytes(t *testing.T, clip string, meshes ...string) []byte {
	t.Helper()

	objects := &fbx.Node{Name: "Objects"}
	connections := &fbx.Node{Name: "Connections"}
	for i, name := range meshes {
		model, geo, mat := int64(100+i), int64(200+i), int64(300+i)
		objects.Children = append(objects.Children,
			&fbx.Node{Name: "Model", Properties: []any{model, fbx.ObjectName(name, "Model"), "Mesh"}},
			&fbx.Node{Name: "Geometry", Properties: []any{geo, fbx.ObjectName(name+"Geo", "Geometry"), "Mesh"}, Children: []*fbx.Node{
				{Name: "Vertices", Properties: []any{[]float64{0, 0, 0, 1, 0, 0, 0, 0, 1}}},
			}},
			&fbx.Node{Name: "Material", Properties: []any{mat, fbx.ObjectName(name+"Mat", "Material"), ""}},
		)
		connections.Children = append(connections.Children,
			&fbx.Node{Name: "C", Properties: []any{"OO", model, int64(0)}},
			&fbx.Node{Name: "C", Properties: []any{"OO", geo, model}},
			&fbx.Node{Name: "C", Properties: []any{"OO", mat, model}},
		)
	}
	if clip != "" {
		objects.Children = append(objects.Children, &fbx.Node{
			Name:       "AnimationStack",
			Properties: []any{int64(900), fbx.ObjectName(clip, "AnimStack"), ""},
			Children: []*fbx.Node{{Name: "Properties70", Children: []*fbx.Node{
				{Name: "P", Properties: []any{"LocalStop", "KTime", "Time", "", int64(fbx.TicksPerSecond)}},
			}}},
		})
	}

	data, err := fbx.Encoder{Version: 7400}.Encode(&fbx.Node{Children: []*fbx.Node{objects, connections}})
	require.NoError(t, err)
	return data
}

// memFetcher serves fixed bytes by URL and records the order of requests.
type memFetcher struct {
	files map[string][]byte

	mu   sync.Mutex
	seen []string
}

func (m *memFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.seen = append(m.seen, url)
	m.mu.Unlock()

	data, ok := m.files[url]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return data, nil
}

func (m *memFetcher) requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.seen...)
}
