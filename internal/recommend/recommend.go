// Package recommend maps a quote/estimate gap into a discrete trade action
// with confidence and expected-return figures.
package recommend

import (
	"math"

	"marketlens/internal/models"
)

// Gaps beyond ±0.1 trigger a directional action.
const actionThreshold = 0.1

// Generate builds the recommendation for one listing.
func Generate(marketProb, aiProb, inefficiencyScore float64) models.Recommendation {
	gap := aiProb - marketProb

	action := models.ActionHold
	direction := "neutral"
	switch {
	case gap > actionThreshold:
		action = models.ActionBuyYes
		direction = "bullish"
	case gap < -actionThreshold:
		action = models.ActionSellNo
		direction = "bearish"
	}

	confidence := int(math.Min(100, math.Round(math.Abs(gap)*100+inefficiencyScore*50)))

	expectedROI := 0.0
	if action != models.ActionHold {
		expectedROI = math.Round(math.Abs(gap)*100*100) / 100
	}

	return models.Recommendation{
		Action:      action,
		Confidence:  confidence,
		ExpectedROI: expectedROI,
		Direction:   direction,
		Gap:         math.Round(gap*100*100) / 100,
	}
}
