package assets

import (
	"errors"
	"strings"

	"scene-toolkit/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for assets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the asset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets")
	group.Post("/load", h.HandleLoad)
	group.Get("/progress", h.HandleProgress)
	group.Get("/manifests", h.HandleListManifests)
	group.Get("/:kind", h.HandleListKind)
	group.Delete("/", h.HandleDisposeAll)
}

// HandleLoad starts loading a manifest.
// @Summary Load Assets
// @Description Start loading a manifest from the request body, or a stored manifest when 'name' is given.
// @Tags assets
// @Accept json
// @Produce json
// @Param name query string false "Stored manifest name"
// @Param format query string false "Body format (json, yaml, toml)" default(json)
// @Success 202 {object} assets.RunStatus "Run started"
// @Failure 400 {object} map[string]string "Invalid manifest"
// @Failure 404 {object} map[string]string "Manifest not found"
// @Failure 409 {object} map[string]string "A load is already running"
// @Router /assets/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var (
		status RunStatus
		err    error
	)
	if name := c.Query("name"); name != "" {
		status, err = h.service.StartStored(c.Context(), name)
	} else {
		var m *Manifest
		m, err = ParseManifest(c.Body(), strings.ToLower(c.Query("format", FormatJSON)))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		status, err = h.service.Start(m)
	}

	switch {
	case err == nil:
		return c.Status(fiber.StatusAccepted).JSON(status)
	case errors.Is(err, ErrRunInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrManifestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNoStore):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Asset load failed to start", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandleProgress returns the latest run's status.
// @Summary Load Progress
// @Description Get the state and progress of the latest load.
// @Tags assets
// @Produce json
// @Success 200 {object} assets.RunStatus "Run status"
// @Router /assets/progress [get]
func (h *Handler) HandleProgress(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleListManifests lists stored manifests.
// @Summary List Manifests
// @Tags assets
// @Produce json
// @Success 200 {object} map[string][]string "Manifest names"
// @Failure 503 {object} map[string]string "No database"
// @Router /assets/manifests [get]
func (h *Handler) HandleListManifests(c *fiber.Ctx) error {
	names, err := h.service.Manifests(c.Context())
	if errors.Is(err, ErrNoStore) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing manifests failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"manifests": names})
}

// HandleListKind returns the registered ids of a kind.
// @Summary List Assets
// @Tags assets
// @Produce json
// @Param kind path string true "Asset kind (texture, gltf, animation, fbx, audio)"
// @Success 200 {object} map[string]interface{} "Registered ids"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /assets/{kind} [get]
func (h *Handler) HandleListKind(c *fiber.Ctx) error {
	kind := Kind(c.Params("kind"))
	ids, err := h.service.IDs(kind)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"kind": kind, "ids": ids})
}

// HandleDisposeAll disposes every loaded asset.
// @Summary Dispose Assets
// @Tags assets
// @Produce json
// @Success 200 {object} map[string]bool "Disposed"
// @Failure 409 {object} map[string]string "A load is running"
// @Router /assets [delete]
func (h *Handler) HandleDisposeAll(c *fiber.Ctx) error {
	if h.service.Status().State == StateRunning {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ErrRunInProgress.Error()})
	}
	h.service.DisposeAll()
	return c.JSON(fiber.Map{"disposed": true})
}
