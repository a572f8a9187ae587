package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	model string
}

// NewHealthHandler creates the health handler for the given model identifier.
func NewHealthHandler(model string) *HealthHandler {
	return &HealthHandler{model: model}
}

// Health handles GET /health. It reports process liveness only and never
// checks the downstream provider.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"model":  h.model,
	})
}
