// Package arbitrage pairs same-topic listings across venues by text
// similarity and flags priceable spreads.
package arbitrage

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"marketlens/internal/models"
)

// Matcher finds cross-venue spreads between Polymarket and Manifold
// listings of the same underlying question.
type Matcher struct {
	// SimilarityThreshold is the minimum normalized-title similarity for
	// two listings to count as the same question.
	SimilarityThreshold float64
	// MinSpreadPercent discards spreads too small to act on, in
	// percentage points.
	MinSpreadPercent float64
}

var fillerWords = map[string]struct{}{
	"will": {}, "does": {}, "is": {}, "the": {}, "a": {}, "an": {},
}

// NormalizeTitle lowercases a title and strips filler words and
// punctuation for matching.
func NormalizeTitle(title string) string {
	lower := strings.ToLower(title)
	lower = strings.NewReplacer("?", "", "!", "").Replace(lower)
	words := strings.Fields(lower)
	kept := words[:0]
	for _, w := range words {
		if _, filler := fillerWords[w]; filler {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// FindOpportunities compares every Polymarket listing against every
// Manifold listing. O(n·m); a listing may appear in multiple
// opportunities. Result is sorted by descending spread.
func (m *Matcher) FindOpportunities(listings []models.EnrichedListing) []models.ArbitrageOpportunity {
	simThreshold := m.SimilarityThreshold
	if simThreshold <= 0 {
		simThreshold = 0.75
	}
	minSpread := m.MinSpreadPercent
	if minSpread <= 0 {
		minSpread = 5.0
	}

	var poly, mani []models.EnrichedListing
	for _, l := range listings {
		switch l.Source {
		case models.SourcePolymarket:
			poly = append(poly, l)
		case models.SourceManifold:
			mani = append(mani, l)
		}
	}

	var opportunities []models.ArbitrageOpportunity
	for _, p := range poly {
		pNorm := NormalizeTitle(p.Title)
		for _, q := range mani {
			similarity := Ratio(pNorm, NormalizeTitle(q.Title))
			if similarity < simThreshold {
				continue
			}
			spreadPercent := math.Abs(p.MarketProb-q.MarketProb) * 100
			if spreadPercent < minSpread {
				continue
			}

			cheaper, expensive := p, q
			cheaperVenue, expensiveVenue := models.SourcePolymarket, models.SourceManifold
			if q.MarketProb < p.MarketProb {
				cheaper, expensive = q, p
				cheaperVenue, expensiveVenue = models.SourceManifold, models.SourcePolymarket
			}

			cheaperPrice := round1(cheaper.MarketProb * 100)
			expensivePrice := round1(expensive.MarketProb * 100)
			opportunities = append(opportunities, models.ArbitrageOpportunity{
				Question:            p.Title,
				SimilarityScore:     round3(similarity),
				SpreadPercent:       round2(spreadPercent),
				CheaperPlatform:     cheaperVenue,
				ExpensivePlatform:   expensiveVenue,
				CheaperPrice:        cheaperPrice,
				ExpensivePrice:      expensivePrice,
				PotentialProfit:     round2(spreadPercent),
				CheaperURL:          cheaper.URL,
				ExpensiveURL:        expensive.URL,
				PolymarketLiquidity: p.Liquidity,
				ManifoldLiquidity:   q.Liquidity,
				Strategy: fmt.Sprintf("Buy YES on %s at %.1f%%, sell on %s at %.1f%%",
					cheaperVenue, cheaperPrice, expensiveVenue, expensivePrice),
			})
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].SpreadPercent > opportunities[j].SpreadPercent
	})
	return opportunities
}

// Summarize aggregates all opportunities of one cycle.
func (m *Matcher) Summarize(opportunities []models.ArbitrageOpportunity) models.ArbitrageSummary {
	if len(opportunities) == 0 {
		return models.ArbitrageSummary{}
	}
	sum := 0.0
	max := 0.0
	profit := 0.0
	for _, opp := range opportunities {
		sum += opp.SpreadPercent
		if opp.SpreadPercent > max {
			max = opp.SpreadPercent
		}
		profit += opp.PotentialProfit
	}
	return models.ArbitrageSummary{
		TotalOpportunities:   len(opportunities),
		AvgSpread:            round2(sum / float64(len(opportunities))),
		MaxSpread:            round2(max),
		TotalPotentialProfit: round2(profit),
		PlatformsCompared:    2,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
