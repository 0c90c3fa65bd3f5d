package audio

import (
	"scene-toolkit/core/logger"
	"scene-toolkit/core/scene"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlayRequest is the body of POST /audio/play.
type PlayRequest struct {
	AudioID  string         `json:"audio_id"`
	CacheID  string         `json:"cache_id"`
	Position *scene.Vector3 `json:"position"`
	Radius   float32        `json:"radius"`
}

// VolumeRequest is the body of PUT /audio/volume. Omitted levels keep their value.
type VolumeRequest struct {
	Master  *float64 `json:"master"`
	Music   *float64 `json:"music"`
	Effects *float64 `json:"effects"`
}

// CacheResponse describes a cached voice.
type CacheResponse struct {
	CacheID    string         `json:"cache_id"`
	AudioID    string         `json:"audio_id"`
	Playing    bool           `json:"playing"`
	Positional bool           `json:"positional"`
	Position   *scene.Vector3 `json:"position,omitempty"`
	LastPlayed int64          `json:"last_played"`
}

// Handler handles HTTP requests for audio playback.
type Handler struct {
	mixer    *Mixer
	logger   *zap.Logger
	stage    *scene.Object3D
	listener *scene.Object3D
}

// NewHandler creates a new HTTP handler. Positional requests place their
// containers under stage and are heard from listener.
func NewHandler(mixer *Mixer, stage, listener *scene.Object3D, logger *zap.Logger) *Handler {
	return &Handler{mixer: mixer, logger: logger, stage: stage, listener: listener}
}

// RegisterRoutes registers the audio routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audio")
	group.Post("/play", h.HandlePlay)
	group.Post("/stop/:cacheId", h.HandleStop)
	group.Put("/volume", h.HandleVolume)
	group.Put("/config", h.HandleConfig)
	group.Put("/listener", h.HandleListener)
	group.Get("/cache/:cacheId", h.HandleCache)
}

// HandlePlay plays a sound.
// @Summary Play Sound
// @Description Play a loaded audio buffer. A position makes the voice positional around the server stage listener.
// @Tags audio
// @Accept json
// @Produce json
// @Param request body audio.PlayRequest true "Play request"
// @Success 200 {object} audio.CacheResponse "Cached voice"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Audio buffer not loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audio/play [post]
func (h *Handler) HandlePlay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.AudioID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "audio_id is required"})
	}

	params := PlayParams{
		AudioID:  req.AudioID,
		CacheID:  req.CacheID,
		Position: req.Position,
		Radius:   req.Radius,
	}
	if req.Position != nil {
		params.Scene = h.stage
		params.Listener = h.listener
	}

	if err := h.mixer.Play(params); err != nil {
		l.Error("Failed to play audio", zap.String("audio_id", req.AudioID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	key := req.CacheID
	if key == "" {
		key = req.AudioID
	}
	entry := h.mixer.Cache(key)
	if entry.Voice == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "audio buffer not loaded: " + req.AudioID})
	}
	return c.JSON(describe(key, entry))
}

// HandleStop stops a cached voice.
// @Summary Stop Sound
// @Description Stop the voice cached under the given key. Unknown keys are ignored.
// @Tags audio
// @Param cacheId path string true "Cache key"
// @Success 204 "Stopped"
// @Router /audio/stop/{cacheId} [post]
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	h.mixer.Stop(c.Params("cacheId"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleVolume updates the mixer levels.
// @Summary Set Volumes
// @Description Update the master, music and effects volumes. Every cached voice is updated immediately.
// @Tags audio
// @Accept json
// @Produce json
// @Param request body audio.VolumeRequest true "Volume levels"
// @Success 200 {object} audio.Volumes "Current levels"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /audio/volume [put]
func (h *Handler) HandleVolume(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req VolumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Master != nil {
		h.mixer.SetMasterVolume(*req.Master)
	}
	if req.Music != nil {
		h.mixer.SetMusicVolume(*req.Music)
	}
	if req.Effects != nil {
		h.mixer.SetEffectsVolume(*req.Effects)
	}

	v := h.mixer.Volumes()
	l.Info("Audio volumes updated",
		zap.Float64("master", v.Master),
		zap.Float64("music", v.Music),
		zap.Float64("effects", v.Effects))
	return c.JSON(v)
}

// HandleConfig replaces the per-sound configuration.
// @Summary Set Sound Configuration
// @Description Replace the loop, volume and music flags of every sound.
// @Tags audio
// @Accept json
// @Produce json
// @Param request body map[string]audio.SoundConfig true "Configuration by audio id"
// @Success 204 "Replaced"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /audio/config [put]
func (h *Handler) HandleConfig(c *fiber.Ctx) error {
	var config map[string]SoundConfig
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	h.mixer.SetConfig(config)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListener moves the stage listener.
// @Summary Move Listener
// @Description Move the listener positional voices are heard from.
// @Tags audio
// @Accept json
// @Produce json
// @Param request body scene.Vector3 true "Listener position"
// @Success 200 {object} scene.Vector3 "Listener position"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /audio/listener [put]
func (h *Handler) HandleListener(c *fiber.Ctx) error {
	var pos scene.Vector3
	if err := c.BodyParser(&pos); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	h.mixer.MoveListener(h.listener, pos)
	return c.JSON(pos)
}

// HandleCache describes a cached voice.
// @Summary Get Cached Voice
// @Description Describe the voice cached under the given key.
// @Tags audio
// @Produce json
// @Param cacheId path string true "Cache key"
// @Success 200 {object} audio.CacheResponse "Cached voice"
// @Failure 404 {object} map[string]string "Not cached"
// @Router /audio/cache/{cacheId} [get]
func (h *Handler) HandleCache(c *fiber.Ctx) error {
	key := c.Params("cacheId")
	entry := h.mixer.Cache(key)
	if entry.Voice == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cached voice: " + key})
	}
	return c.JSON(describe(key, entry))
}

func describe(key string, e CacheEntry) CacheResponse {
	resp := CacheResponse{
		CacheID:    key,
		AudioID:    e.AudioID,
		Playing:    e.Voice.IsPlaying(),
		Positional: e.Container != nil,
		LastPlayed: e.LastPlayed.UnixMilli(),
	}
	if e.Container != nil {
		pos := e.Container.Position
		resp.Position = &pos
	}
	return resp
}
