package scene

// Color is a packed 0xRRGGBB color.
type Color uint32

// White is opaque white.
const White Color = 0xffffff

// Geometry is the vertex data of a mesh.
type Geometry struct {
	Name        string
	VertexCount int

	disposed bool
}

// Dispose releases the geometry.
func (g *Geometry) Dispose() {
	g.disposed = true
}

// Disposed reports whether Dispose was called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Material describes how a mesh surface is shaded.
type Material struct {
	// Type is the shading model, e.g. "standard", "basic", "lambert".
	Type string
	Name string
	// Map is the color texture, if any.
	Map         *Texture
	Color       Color
	AlphaTest   float32
	Transparent bool
	Opacity     float32

	disposed bool
}

// NewMaterial returns an opaque white material of the given type.
func NewMaterial(materialType string) *Material {
	return &Material{Type: materialType, Color: White, Opacity: 1}
}

// Dispose releases the material. Its map is left to the caller.
func (m *Material) Dispose() {
	m.disposed = true
}

// Disposed reports whether Dispose was called.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Mesh is the renderable part of an Object3D.
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material
}
