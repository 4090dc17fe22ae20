package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// Check handles GET /health
// @Summary Service health
// @Description Pings the active store backend and, when configured, the asset host
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.Store)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
