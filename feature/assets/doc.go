// Package assets preloads textures, models and sounds into in-memory registries.
//
// A Pipeline runs five stages strictly one after another: textures, glTF models,
// FBX skeleton animations, FBX models, audio. Items inside a stage load
// concurrently, bounded by a per-kind pool of loaders, and are registered once
// the whole stage has finished. Model stages apply the caller's material
// configuration to every mesh and mark meshes to cast and receive shadows.
//
// The first failing item aborts its stage and the rest of the run with a
// *LoadError naming the item. Stages that already finished stay registered.
//
// # Manifests
//
// Batches can be described in YAML, TOML or JSON manifests (see ParseManifest)
// and persisted with a ManifestStore so the service can load them by name.
//
// # HTTP
//
//	POST   /assets/load       start loading a manifest
//	GET    /assets/progress   progress of the current run
//	GET    /assets/:kind      registered ids for a kind
//	DELETE /assets            dispose and forget everything
package assets
