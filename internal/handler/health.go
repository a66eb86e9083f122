package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketlens/internal/pipeline"
)

type HealthHandler struct {
	Pipeline *pipeline.Pipeline
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports ready only after the first refresh cycle has published.
func (h *HealthHandler) ready(c *gin.Context) {
	if h.Pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "pipeline_missing"})
		return
	}
	_, lastUpdate := h.Pipeline.Snapshot()
	if lastUpdate.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "waiting_for_first_cycle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
