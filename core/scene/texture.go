package scene

import "image"

// Wrapping is a texture wrapping mode.
type Wrapping int

const (
	ClampToEdgeWrapping Wrapping = iota
	RepeatWrapping
	MirroredRepeatWrapping
)

// Encoding is the color space a texture's pixels are stored in.
type Encoding int

const (
	LinearEncoding Encoding = iota
	SRGBEncoding
)

// Texture is a decoded image plus sampling state.
type Texture struct {
	// Name identifies the texture, usually the asset id.
	Name string
	// Source is the URL the texture was loaded from.
	Source string
	// Image holds the decoded pixels.
	Image image.Image

	WrapS    Wrapping
	WrapT    Wrapping
	Repeat   Vector2
	FlipY    bool
	Encoding Encoding

	disposed bool
}

// NewTexture returns a texture with engine defaults (repeat 1x1, flipped Y).
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{
		Name:   name,
		Image:  img,
		Repeat: Vector2{X: 1, Y: 1},
		FlipY:  true,
	}
}

// Clone returns a texture sharing the pixel data with independent sampling state.
func (t *Texture) Clone() *Texture {
	c := *t
	c.disposed = false
	return &c
}

// Dispose releases the texture.
func (t *Texture) Dispose() {
	t.disposed = true
}

// Disposed reports whether Dispose was called.
func (t *Texture) Disposed() bool {
	return t.disposed
}
