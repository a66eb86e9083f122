package models

// CategoryStat is the per-category average inefficiency breakdown.
type CategoryStat struct {
	Category        string  `json:"category"`
	AvgInefficiency float64 `json:"avg_inefficiency"`
	Count           int     `json:"count"`
}

// HistoryPoint is one sample of the average-inefficiency time series.
type HistoryPoint struct {
	Timestamp             string  `json:"timestamp"`
	AvgInefficiency       float64 `json:"avg_inefficiency"`
	NumMarkets            int     `json:"num_markets"`
	HighInefficiencyCount int     `json:"high_inefficiency_count"`
}
