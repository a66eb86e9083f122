// Package scoring converts the gap between quoted and estimated
// probability, weighted by liquidity, into a bounded inefficiency score.
package scoring

import "math"

// Label thresholds.
const (
	highThreshold   = 0.6
	mediumThreshold = 0.3
)

// Direction threshold: gaps inside ±0.1 are treated as efficient.
const colorBand = 0.1

// Inefficiency returns a score in [0,1]. The logarithmic liquidity term
// reflects that a given mispricing in a deep market is more significant
// than the same gap in a thin one.
func Inefficiency(marketProb, liquidity, aiProb float64) float64 {
	probDiff := math.Abs(marketProb - aiProb)
	liquidityWeight := math.Log1p(liquidity) / 10
	raw := probDiff * (1 + liquidityWeight)
	score := math.Min(1.0, raw)
	return math.Round(score*10000) / 10000
}

// Label maps a score to a qualitative bucket.
func Label(score float64) string {
	switch {
	case score >= highThreshold:
		return "High"
	case score >= mediumThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// Color reports the direction of the mispricing: green when the market
// looks underpriced, red when overpriced, gray when efficient.
func Color(marketProb, aiProb float64) string {
	switch {
	case aiProb > marketProb+colorBand:
		return "green"
	case aiProb < marketProb-colorBand:
		return "red"
	default:
		return "gray"
	}
}
