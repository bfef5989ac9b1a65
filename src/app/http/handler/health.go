// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing requests into use-case commands
// - Calling the use-case handlers
// - Converting results and errors to HTTP responses
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/src/core/usecase"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Health reports liveness without touching the store.
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.Live())
}

// DetailedHealth pings the store and answers 503 when it is unreachable.
// GET /api/health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
