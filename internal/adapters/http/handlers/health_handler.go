package handlers

import (
	"time"

	"sacco-ledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mode      string
	dbCheck   func() error
	snapshots *services.SnapshotService
}

// NewHealthHandler creates a new health handler.
// dbCheck pings the store; snapshots may be nil.
func NewHealthHandler(mode string, dbCheck func() error, snapshots *services.SnapshotService) *HealthHandler {
	return &HealthHandler{
		mode:      mode,
		dbCheck:   dbCheck,
		snapshots: snapshots,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "SACCO ledger API v1 is running",
		"mode":    h.mode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, database and snapshot freshness
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbStatus := "healthy"
	if h.dbCheck == nil || h.dbCheck() != nil {
		dbStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	checks := fiber.Map{
		"api":      "healthy",
		"database": dbStatus,
	}
	if h.snapshots != nil {
		if snap, ok := h.snapshots.Latest(); ok {
			checks["snapshot_age_seconds"] = int(time.Since(snap.ComputedAt).Seconds())
		} else {
			checks["snapshot_age_seconds"] = nil
		}
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "SACCO ledger API v1",
		"version": "1.0.0",
	})
}
