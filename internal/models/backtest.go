package models

import "github.com/shopspring/decimal"

// TradeHighlight is the best/worst trade detail in a backtest summary.
type TradeHighlight struct {
	Market string          `json:"market"`
	Profit decimal.Decimal `json:"profit"`
	ROI    float64         `json:"roi"`
	Date   string          `json:"date"`
}

// BacktestSummary holds aggregate performance over the simulated history.
type BacktestSummary struct {
	TotalTrades       int             `json:"total_trades"`
	Wins              int             `json:"wins"`
	Losses            int             `json:"losses"`
	WinRate           float64         `json:"win_rate"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	ROI               float64         `json:"roi"`
	FinalCapital      decimal.Decimal `json:"final_capital"`
	InitialCapital    decimal.Decimal `json:"initial_capital"`
	AvgProfitPerTrade decimal.Decimal `json:"avg_profit_per_trade"`
	BestTrade         *TradeHighlight `json:"best_trade"`
	WorstTrade        *TradeHighlight `json:"worst_trade"`
	DaysTested        int             `json:"days_tested"`
}

// CapitalPoint is one step of the cumulative capital/ROI curve.
type CapitalPoint struct {
	Date    string          `json:"date"`
	Capital decimal.Decimal `json:"capital"`
	ROI     float64         `json:"roi"`
}

// WeeklyStat aggregates backtest trades by ISO calendar week.
type WeeklyStat struct {
	Week    string          `json:"week"`
	Trades  int             `json:"trades"`
	WinRate float64         `json:"win_rate"`
	Profit  decimal.Decimal `json:"profit"`
}

// BacktestResult is computed once per process lifetime and served from
// cache thereafter.
type BacktestResult struct {
	Summary               BacktestSummary  `json:"summary"`
	CumulativePerformance []CapitalPoint   `json:"cumulative_performance"`
	WeeklyStats           []WeeklyStat     `json:"weekly_stats"`
	RecentTrades          []SimulatedTrade `json:"recent_trades"`
}
