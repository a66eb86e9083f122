package models

import "time"

// Venue tags as reported by the ingestion layer.
const (
	SourcePolymarket = "Polymarket"
	SourceManifold   = "Manifold"
)

// Listing is one venue's quoted prediction market, normalized by ingestion.
// Immutable once created.
type Listing struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	MarketProb float64   `json:"market_prob"`
	Liquidity  float64   `json:"liquidity"`
	Volume     float64   `json:"volume"`
	URL        string    `json:"url"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EnrichedListing is a Listing plus the model estimate, inefficiency score
// and recommendation for one refresh cycle. Never mutated after creation.
type EnrichedListing struct {
	Listing

	AIProbability     float64        `json:"ai_probability"`
	InefficiencyScore float64        `json:"inefficiency_score"`
	ScoreLabel        string         `json:"score_label"`
	ScoreColor        string         `json:"score_color"`
	Recommendation    Recommendation `json:"recommendation"`
	Reasoning         string         `json:"reasoning"`

	NewsSentiment    float64 `json:"news_sentiment"`
	CryptoSentiment  float64 `json:"crypto_sentiment"`
	WeatherSentiment float64 `json:"weather_sentiment"`
}
