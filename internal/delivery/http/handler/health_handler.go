package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, доступность которой проверяет /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	checks  map[string]HealthChecker
	version string
	logger  *zap.Logger
}

// NewHealthHandler - checks: имя зависимости -> проверка (postgres, redis)
func NewHealthHandler(checks map[string]HealthChecker, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		version: version,
		logger:  logger,
	}
}

// Health godoc
// @Summary Проверка состояния
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
			services[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "ok"
	}

	state := "healthy"
	if status != fiber.StatusOK {
		state = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"success":  status == fiber.StatusOK,
		"status":   state,
		"services": services,
		"time":     time.Now().UTC(),
	})
}

// Version godoc
// @Summary Версия сервиса
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/version [get]
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"version": h.version,
	})
}
