package scheduler

import (
	"strings"

	"catalog-mirror/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync loop.
type Handler struct {
	scheduler *Scheduler
}

// NewHandler creates a new HTTP handler.
func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/trigger", h.HandleTrigger)
}

// HandleStatus returns the loop state and the last cycle report.
// @Summary Sync Status
// @Description Whether a cycle is running and the report of the last finished cycle.
// @Tags sync
// @Produce json
// @Success 200 {object} scheduler.Status
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.scheduler.Status())
}

// HandleTrigger starts a cycle in the background.
// @Summary Trigger Sync
// @Description Starts a sync cycle. Returns 409 when a cycle is already running.
// @Tags sync
// @Produce json
// @Param dry_run query bool false "Plan without writing"
// @Param entities query string false "Comma separated subset (category,counterparty,product)"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sync/trigger [post]
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.scheduler.logger, c)

	opts := RunOptions{DryRun: c.QueryBool("dry_run", false)}
	if raw := c.Query("entities"); raw != "" {
		entities, err := ParseEntities(strings.Split(raw, ","))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		opts.Entities = entities
	}

	if !h.scheduler.TriggerAsync(opts) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "sync cycle already running"})
	}

	l.Info("Sync cycle triggered", zap.Bool("dry_run", opts.DryRun), zap.Strings("entities", opts.Entities))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
