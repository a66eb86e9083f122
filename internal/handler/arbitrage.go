package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketlens/internal/arbitrage"
	"marketlens/internal/pipeline"
)

type ArbitrageHandler struct {
	Pipeline *pipeline.Pipeline
	Matcher  *arbitrage.Matcher
}

func (h *ArbitrageHandler) Register(r *gin.Engine) {
	r.GET("/api/arbitrage", h.opportunities)
}

func (h *ArbitrageHandler) opportunities(c *gin.Context) {
	if h.Pipeline == nil || h.Matcher == nil {
		Error(c, http.StatusInternalServerError, "matcher unavailable", nil)
		return
	}
	listings, lastUpdate := h.Pipeline.Snapshot()
	if lastUpdate.IsZero() {
		Error(c, http.StatusServiceUnavailable, "no cycle published yet", nil)
		return
	}

	opps := h.Matcher.FindOpportunities(listings)
	Ok(c, gin.H{
		"opportunities": opps,
		"summary":       h.Matcher.Summarize(opps),
	}, map[string]any{"last_update": lastUpdate})
}
