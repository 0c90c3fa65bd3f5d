package audio

import (
	"scene-toolkit/core/scene"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	mixer   *Mixer
	handler *Handler
}

// NewFeature creates the audio feature around mixer with its own stage and a
// listener at the origin.
func NewFeature(mixer *Mixer, logger *zap.Logger) *Feature {
	stage := scene.NewObject3D("stage")
	listener := scene.NewObject3D("listener")
	stage.Add(listener)

	return &Feature{
		mixer:   mixer,
		handler: NewHandler(mixer, stage, listener, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "audio"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.mixer != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
