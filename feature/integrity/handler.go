package integrity

import (
	"errors"

	"scene-toolkit/core/logger"
	"scene-toolkit/feature/assets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/manifests", h.HandleManifestsCheck)
	group.Get("/manifests/:name", h.HandleManifestCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Manifests, Schema).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if manifests, err := h.service.CheckStoredManifests(ctx); err != nil {
		report["manifests"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["manifests"] = manifests
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the required asset folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleManifestsCheck checks every stored manifest.
// @Summary Check Stored Manifests
// @Description Verify that the sources of every stored manifest exist in storage or on disk.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {array} checks.ManifestReport "Manifest Reports"
// @Failure 503 {object} map[string]string "No database configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/manifests [get]
func (h *Handler) HandleManifestsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.CheckStoredManifests(c.Context())
	if err != nil {
		return h.manifestError(c, l, err)
	}
	return c.JSON(reports)
}

// HandleManifestCheck checks one stored manifest.
// @Summary Check Stored Manifest
// @Description Verify that the sources of a stored manifest exist in storage or on disk.
// @Tags integrity
// @Accept json
// @Produce json
// @Param name path string true "Manifest name"
// @Success 200 {object} checks.ManifestReport "Manifest Report"
// @Failure 404 {object} map[string]string "Manifest not found"
// @Failure 503 {object} map[string]string "No database configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/manifests/{name} [get]
func (h *Handler) HandleManifestCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStoredManifest(c.Context(), c.Params("name"))
	if err != nil {
		return h.manifestError(c, l, err)
	}

	l.Info("Manifest check completed",
		zap.String("manifest", report.Manifest),
		zap.Int("checked", report.Checked),
		zap.Int("missing", len(report.Missing)))

	return c.JSON(report)
}

// HandleSchemaCheck checks the database schema.
// @Summary Check Database Schema
// @Description Checks if the database tables hold every column the manifest store needs.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

func (h *Handler) manifestError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, assets.ErrManifestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, assets.ErrNoStore):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Manifest check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
