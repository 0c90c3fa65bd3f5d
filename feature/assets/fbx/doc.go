// Package fbx reads binary FBX files into scene graphs.
//
// Parse decodes the generic node tree (7.x binary layout, 32- and 64-bit record
// headers, zlib-compressed arrays). Build turns that tree into a scene.Object3D
// hierarchy: Model objects become nodes, Geometry objects attach mesh data,
// Material objects are collected per model in connection order, and every
// AnimationStack becomes an AnimationClip on the root.
//
// ASCII FBX is not supported.
package fbx
