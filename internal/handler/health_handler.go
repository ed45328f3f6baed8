package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qtirender/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers map[string]port.HealthChecker
}

// NewHealthHandler creates a new HealthHandler. Each checker is pinged by
// the readiness probe under its name.
func NewHealthHandler(checkers map[string]port.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	for name, checker := range h.checkers {
		if err := checker.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": name + " not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
