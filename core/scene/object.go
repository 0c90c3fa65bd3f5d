package scene

import (
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// Object3D is a node of the scene graph. A node with a Mesh is a mesh;
// any node may hold children.
type Object3D struct {
	Name     string
	Position Vector3
	Rotation Vector3
	Scale    Vector3

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	// UserData carries free-form per-node data.
	UserData map[string]any

	// Mesh is nil for plain containers.
	Mesh *Mesh `copier:"-"`

	// Animations holds the clips shipped with a loaded model.
	Animations []*AnimationClip `copier:"-"`

	parent   *Object3D   `copier:"-"`
	children []*Object3D `copier:"-"`
}

// NewObject3D returns an empty visible container.
func NewObject3D(name string) *Object3D {
	return &Object3D{
		Name:    name,
		Scale:   Vector3{X: 1, Y: 1, Z: 1},
		Visible: true,
	}
}

// NewMeshObject returns a visible mesh node.
func NewMeshObject(name string, geometry *Geometry, materials ...*Material) *Object3D {
	o := NewObject3D(name)
	o.Mesh = &Mesh{Geometry: geometry, Materials: materials}
	return o
}

// IsMesh reports whether the node renders a mesh.
func (o *Object3D) IsMesh() bool {
	return o.Mesh != nil
}

// Parent returns the node this one is attached to, or nil.
func (o *Object3D) Parent() *Object3D {
	return o.parent
}

// Children returns a snapshot of the direct children.
func (o *Object3D) Children() []*Object3D {
	out := make([]*Object3D, len(o.children))
	copy(out, o.children)
	return out
}

// Add attaches children, detaching each from its previous parent first.
func (o *Object3D) Add(children ...*Object3D) {
	for _, child := range children {
		if child == nil || child == o {
			continue
		}
		child.RemoveFromParent()
		child.parent = o
		o.children = append(o.children, child)
	}
}

// Remove detaches child. It returns false if child is not a direct child.
func (o *Object3D) Remove(child *Object3D) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveFromParent detaches the node from its parent, if any.
func (o *Object3D) RemoveFromParent() {
	if o.parent != nil {
		o.parent.Remove(o)
	}
}

// WorldPosition returns the node position with every ancestor translation applied.
// Rotation and scale of ancestors are ignored.
func (o *Object3D) WorldPosition() Vector3 {
	p := o.Position
	for n := o.parent; n != nil; n = n.parent {
		p = p.Add(n.Position)
	}
	return p
}

// Traverse calls fn on the node and all of its descendants, pre-order.
func (o *Object3D) Traverse(fn func(*Object3D)) {
	fn(o)
	for _, child := range o.Children() {
		child.Traverse(fn)
	}
}

// FindByName returns the first node in the subtree with the given name.
func (o *Object3D) FindByName(name string) *Object3D {
	var found *Object3D
	o.Traverse(func(n *Object3D) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

// Clone returns a deep copy of the subtree rooted at o, detached from any parent.
// Geometry, materials and animation clips are shared with the source; the mesh
// material list and the animation list are copied so they can be changed per clone.
func (o *Object3D) Clone() *Object3D {
	c := &Object3D{}
	if err := copier.CopyWithOption(c, o, copier.Option{DeepCopy: true}); err != nil {
		zap.L().Error("Failed to copy node", zap.String("name", o.Name), zap.Error(err))
	}
	// Tree links are rebuilt below from cloned children only.
	c.parent, c.children = nil, nil

	if o.Mesh != nil {
		c.Mesh = &Mesh{
			Geometry:  o.Mesh.Geometry,
			Materials: append([]*Material(nil), o.Mesh.Materials...),
		}
	}
	if o.Animations != nil {
		c.Animations = append([]*AnimationClip(nil), o.Animations...)
	}

	for _, child := range o.children {
		c.Add(child.Clone())
	}
	return c
}
