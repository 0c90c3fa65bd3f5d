package scene

// DisposeMaterials releases each material after releasing its texture map.
func DisposeMaterials(materials ...*Material) {
	for _, m := range materials {
		if m == nil {
			continue
		}
		if m.Map != nil {
			m.Map.Dispose()
			m.Map = nil
		}
		m.Dispose()
	}
}

// Dispose tears down node and its subtree.
//
// A mesh releases its materials, then its geometry, then detaches from its parent.
// A container disposes every child first and then detaches itself, so detaching
// is always the last side effect at each level.
func Dispose(node *Object3D) {
	if node == nil {
		return
	}

	if node.IsMesh() {
		DisposeMaterials(node.Mesh.Materials...)
		node.Mesh.Materials = nil
		if node.Mesh.Geometry != nil {
			node.Mesh.Geometry.Dispose()
			node.Mesh.Geometry = nil
		}
		node.RemoveFromParent()
		return
	}

	for _, child := range node.Children() {
		Dispose(child)
	}
	node.RemoveFromParent()
}
