package models

// ArbitrageOpportunity pairs same-topic listings quoted apart on two venues.
// Prices and spreads are in percentage points.
type ArbitrageOpportunity struct {
	Question            string  `json:"question"`
	SimilarityScore     float64 `json:"similarity_score"`
	SpreadPercent       float64 `json:"spread_percent"`
	CheaperPlatform     string  `json:"cheaper_platform"`
	ExpensivePlatform   string  `json:"expensive_platform"`
	CheaperPrice        float64 `json:"cheaper_price"`
	ExpensivePrice      float64 `json:"expensive_price"`
	PotentialProfit     float64 `json:"potential_profit"`
	CheaperURL          string  `json:"cheaper_url"`
	ExpensiveURL        string  `json:"expensive_url"`
	PolymarketLiquidity float64 `json:"polymarket_liquidity"`
	ManifoldLiquidity   float64 `json:"manifold_liquidity"`
	Strategy            string  `json:"strategy"`
}

// ArbitrageSummary aggregates all opportunities of one cycle.
type ArbitrageSummary struct {
	TotalOpportunities   int     `json:"total_opportunities"`
	AvgSpread            float64 `json:"avg_spread"`
	MaxSpread            float64 `json:"max_spread"`
	TotalPotentialProfit float64 `json:"total_potential_profit"`
	PlatformsCompared    int     `json:"platforms_compared"`
}
