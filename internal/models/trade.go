package models

import "github.com/shopspring/decimal"

// Trade outcomes.
const (
	TradeWin  = "WIN"
	TradeLoss = "LOSS"
)

// SimulatedTrade is one paper trade, used by both the portfolio simulator
// and the backtest. Money-like values are decimals to avoid float drift.
// CapitalAfter is only set on backtest trades.
type SimulatedTrade struct {
	ID                string           `json:"id,omitempty"`
	MarketTitle       string           `json:"market_title"`
	Action            string           `json:"action"`
	Stake             decimal.Decimal  `json:"stake"`
	EntryPrice        float64          `json:"entry_price"`
	AIEstimate        float64          `json:"ai_estimate"`
	InefficiencyScore float64          `json:"inefficiency_score"`
	Date              string           `json:"date"`
	Status            string           `json:"status"`
	Profit            decimal.Decimal  `json:"profit"`
	ROIPercent        float64          `json:"roi_percent"`
	IsLive            bool             `json:"is_live,omitempty"`
	CapitalAfter      *decimal.Decimal `json:"capital_after,omitempty"`
}

// PortfolioStats summarizes the live ledger. Zero-valued when the ledger
// is empty; never an error.
type PortfolioStats struct {
	TotalTrades    int             `json:"total_trades"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	WinRate        float64         `json:"win_rate"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	ROI            float64         `json:"roi"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	BestTrade      *SimulatedTrade `json:"best_trade"`
	WorstTrade     *SimulatedTrade `json:"worst_trade"`
}
