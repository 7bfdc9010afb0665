package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grnflow/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store *service.ResultStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store *service.ResultStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "batches": h.store.Len()})
}
