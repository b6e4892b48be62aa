package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CareVoice/carevoice-backend/services"
)

// HealthHandler handles the unauthenticated connectivity probe.
type HealthHandler struct {
	health *services.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// TestDB reports persistence connectivity and a row count. It never exposes
// credentials or driver errors.
func (h *HealthHandler) TestDB(c *gin.Context) {
	health := h.health.CheckDB(c.Request.Context())

	status := http.StatusOK
	if !health.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, health)
}

// Liveness is a bare process-up probe.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.Status(http.StatusOK)
}
