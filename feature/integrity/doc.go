// Package integrity provides health checks for the asset infrastructure.
//
// Unlike the 'assets' package, which loads manifests into memory, this package
// validates that the sources and storage those manifests rely on are in place.
//
// # Checks Provided
//
//   - Structure: Checks if the required folders exist in the storage bucket (e.g., /textures, /models).
//   - Manifests: Verifies that every s3:// and file URL of a stored manifest points at an existing object or file.
//   - Schema: Validates that the connected database holds every column the manifest store uses.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/manifests : Checks every stored manifest.
//   - GET /integrity/manifests/:name : Checks one stored manifest.
//   - GET /integrity/schema : Runs the schema check.
package integrity
