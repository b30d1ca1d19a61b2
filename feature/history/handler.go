package history

import (
	"errors"

	"catalog-mirror/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the run journal.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:cycle_id", h.HandleGet)
}

// HandleList returns recent sync runs.
// @Summary List Sync Runs
// @Tags history
// @Produce json
// @Param limit query int false "Maximum runs to return (default 20)"
// @Success 200 {array} history.SyncRun
// @Failure 500 {object} map[string]string
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	runs, err := h.repo.List(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Error("Failed to list sync runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleGet returns a single sync run.
// @Summary Get Sync Run
// @Tags history
// @Produce json
// @Param cycle_id path string true "Cycle ID"
// @Success 200 {object} history.SyncRun
// @Failure 404 {object} map[string]string
// @Router /history/{cycle_id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.repo.Get(c.Context(), c.Params("cycle_id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Error("Failed to get sync run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}
