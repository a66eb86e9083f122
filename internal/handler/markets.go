package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketlens/internal/pipeline"
)

type MarketsHandler struct {
	Pipeline *pipeline.Pipeline
}

func (h *MarketsHandler) Register(r *gin.Engine) {
	r.GET("/api/markets", h.list)
}

func (h *MarketsHandler) list(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "pipeline unavailable", nil)
		return
	}
	listings, lastUpdate := h.Pipeline.Snapshot()
	if lastUpdate.IsZero() {
		Error(c, http.StatusServiceUnavailable, "no cycle published yet", nil)
		return
	}

	limit := len(listings)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Error(c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		if n < limit {
			limit = n
		}
	}

	Ok(c, listings[:limit], map[string]any{
		"count":       limit,
		"total":       len(listings),
		"last_update": lastUpdate,
		"cached":      true,
	})
}
