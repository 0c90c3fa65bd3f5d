// Package scene holds the engine-facing object model the toolkit operates on.
//
// The rendering engine itself is an external collaborator. This package only models
// the pieces of it the asset pipeline, the audio mixer and the disposal helpers need:
// a parent/child object tree, meshes with geometry and materials, textures, animation
// clips and decoded audio buffers.
//
// # Object Tree
//
// Object3D is both a container and, when Mesh is set, a mesh. Add re-parents a child,
// Remove detaches it, and Traverse walks the tree pre-order. Clone produces an
// independent tree that shares GPU-side resources (geometry, materials, textures)
// with the source, the same way engine clones do.
//
// # Disposal
//
// Dispose tears a tree down post-order: mesh materials (and their texture maps) and
// geometry are released, then every node detaches from its parent as the very last
// step, so no parent keeps a reference to a disposed child.
package scene
