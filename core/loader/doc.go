// Package loader registers the HTTP features of the server.
//
// A feature is a self-contained part of the API (assets, audio, integrity)
// that owns its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager collects features with Register and mounts the enabled ones with
// LoadAll. A feature that fails to load stops LoadAll and its error is wrapped
// with the feature's name. Disabled features, such as audio without a mixer,
// are skipped and logged.
package loader
