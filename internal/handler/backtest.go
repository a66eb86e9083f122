package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketlens/internal/backtest"
)

type BacktestHandler struct {
	Simulator *backtest.Simulator
}

func (h *BacktestHandler) Register(r *gin.Engine) {
	r.GET("/api/backtest", h.backtest)
}

func (h *BacktestHandler) backtest(c *gin.Context) {
	if h.Simulator == nil {
		Error(c, http.StatusInternalServerError, "simulator unavailable", nil)
		return
	}
	Ok(c, h.Simulator.Results(), nil)
}
