package handlers

import (
	"github.com/gofiber/fiber/v3"

	"go2/internal/keywords"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store KeywordStore
	ctrl  *keywords.Controller
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(store KeywordStore, ctrl *keywords.Controller) *ProbeHandler {
	return &ProbeHandler{store: store, ctrl: ctrl}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK when the database is reachable. The keyword browser state is
// reported but does not fail the probe; an unloaded browser renders empty.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"keywords": h.ctrl.State().String(),
		"count":    len(h.ctrl.Keywords()),
	})
}
