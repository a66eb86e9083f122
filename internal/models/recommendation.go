package models

// Recommendation actions.
const (
	ActionBuyYes = "BUY YES"
	ActionSellNo = "SELL NO"
	ActionHold   = "HOLD"
)

// Recommendation maps a quote/estimate gap to a discrete trading action.
// Gap is in percentage points, signed; ExpectedROI is zero for HOLD.
type Recommendation struct {
	Action      string  `json:"action"`
	Confidence  int     `json:"confidence"`
	ExpectedROI float64 `json:"expected_roi"`
	Direction   string  `json:"direction"`
	Gap         float64 `json:"gap"`
}
