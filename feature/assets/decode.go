package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"scene-toolkit/core/scene"
	"scene-toolkit/feature/assets/fbx"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/h2non/filetype"
	"github.com/qmuntal/gltf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// format returns the sniffed file extension of data, falling back to the URL's.
func format(data []byte, url string) string {
	if t, err := filetype.Match(data); err == nil && t != filetype.Unknown {
		return t.Extension
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(url)), ".")
}

// DecodeTexture decodes an image into a repeat-wrapped sRGB texture.
func DecodeTexture(item Item, data []byte) (*scene.Texture, error) {
	if !filetype.IsImage(data) {
		switch format(data, item.URL) {
		case "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp":
		default:
			return nil, fmt.Errorf("%w: texture %s", ErrUnsupportedFormat, item.URL)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	tex := scene.NewTexture(item.ID, img)
	tex.Source = item.URL
	tex.WrapS = scene.RepeatWrapping
	tex.WrapT = scene.RepeatWrapping
	tex.Encoding = scene.SRGBEncoding
	return tex, nil
}

// DecodeAudio decodes WAV, MP3 or Ogg Vorbis into an in-memory buffer.
func DecodeAudio(item Item, data []byte) (*scene.AudioBuffer, error) {
	rc := io.NopCloser(bytes.NewReader(data))

	var (
		stream beep.StreamSeekCloser
		f      beep.Format
		err    error
	)
	switch format(data, item.URL) {
	case "wav":
		stream, f, err = wav.Decode(rc)
	case "mp3":
		stream, f, err = mp3.Decode(rc)
	case "ogg", "oga":
		stream, f, err = vorbis.Decode(rc)
	default:
		return nil, fmt.Errorf("%w: audio %s", ErrUnsupportedFormat, item.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(f)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}
	return &scene.AudioBuffer{Name: item.ID, Format: f, Data: buf}, nil
}

// DecodeFBX parses a binary FBX file into a scene graph named after the item.
func DecodeFBX(item Item, data []byte) (*scene.Object3D, error) {
	if !fbx.IsBinary(data) {
		return nil, fmt.Errorf("%w: fbx %s", ErrUnsupportedFormat, item.URL)
	}
	doc, err := fbx.Parse(data)
	if err != nil {
		return nil, err
	}
	return fbx.Build(doc, item.ID), nil
}

// DecodeGLTF decodes a .gltf or .glb document. Buffers must be embedded.
func DecodeGLTF(item Item, data []byte) (*GLTFModel, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}

	materials := make([]*scene.Material, len(doc.Materials))
	for i, m := range doc.Materials {
		materials[i] = scene.NewMaterial("standard")
		materials[i].Name = m.Name
	}

	// onPath holds the nodes between the root and the node being built.
	onPath := make(map[uint32]bool)
	var build func(idx uint32) (*scene.Object3D, error)
	build = func(idx uint32) (*scene.Object3D, error) {
		if onPath[idx] {
			return nil, fmt.Errorf("%w: node %d is its own ancestor", ErrInvalidModel, idx)
		}
		onPath[idx] = true
		defer delete(onPath, idx)

		n := doc.Nodes[idx]
		obj := scene.NewObject3D(n.Name)
		if n.Mesh != nil && int(*n.Mesh) < len(doc.Meshes) {
			mesh := doc.Meshes[*n.Mesh]
			obj.Mesh = &scene.Mesh{Geometry: &scene.Geometry{Name: mesh.Name}}
			for _, prim := range mesh.Primitives {
				if prim.Material != nil && int(*prim.Material) < len(materials) {
					obj.Mesh.Materials = append(obj.Mesh.Materials, materials[*prim.Material])
				} else {
					obj.Mesh.Materials = append(obj.Mesh.Materials, scene.NewMaterial("standard"))
				}
			}
		}
		for _, c := range n.Children {
			if int(c) >= len(doc.Nodes) {
				continue
			}
			child, err := build(c)
			if err != nil {
				return nil, err
			}
			obj.Add(child)
		}
		return obj, nil
	}

	root := scene.NewObject3D(item.ID)
	var roots []uint32
	switch {
	case doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	}
	for _, idx := range roots {
		if int(idx) >= len(doc.Nodes) {
			continue
		}
		node, err := build(idx)
		if err != nil {
			return nil, err
		}
		root.Add(node)
	}

	model := &GLTFModel{Scene: root}
	for _, a := range doc.Animations {
		model.Animations = append(model.Animations, &scene.AnimationClip{Name: a.Name})
	}
	root.Animations = model.Animations
	return model, nil
}
