package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketlens/internal/portfolio"
)

type PortfolioHandler struct {
	Simulator *portfolio.Simulator
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	r.GET("/api/portfolio", h.portfolio)
}

func (h *PortfolioHandler) portfolio(c *gin.Context) {
	if h.Simulator == nil {
		Error(c, http.StatusInternalServerError, "simulator unavailable", nil)
		return
	}
	Ok(c, gin.H{
		"trades": h.Simulator.Trades(),
		"stats":  h.Simulator.Stats(),
	}, nil)
}
