package arbitrage

import (
	"testing"

	"marketlens/internal/models"
)

func listing(source, title string, prob, liquidity float64) models.EnrichedListing {
	return models.EnrichedListing{
		Listing: models.Listing{
			Title:      title,
			Source:     source,
			MarketProb: prob,
			Liquidity:  liquidity,
		},
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Will Bitcoin reach $100k?", "bitcoin reach $100k"},
		{"Is the election decided!", "election decided"},
		{"Does a storm hit NYC?", "storm hit nyc"},
		{"already plain", "already plain"},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Fatalf("NormalizeTitle(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestRatio_Bounds(t *testing.T) {
	if got := Ratio("bitcoin reach 100k", "bitcoin reach 100k"); got != 1.0 {
		t.Fatalf("identical ratio=%v want=1.0", got)
	}
	if got := Ratio("aaaa", "zzzz"); got != 0 {
		t.Fatalf("disjoint ratio=%v want=0", got)
	}
	if got := Ratio("", ""); got != 1.0 {
		t.Fatalf("empty ratio=%v want=1.0", got)
	}
}

func TestFindOpportunities_IdenticalTitles(t *testing.T) {
	m := &Matcher{SimilarityThreshold: 0.75, MinSpreadPercent: 5.0}
	opps := m.FindOpportunities([]models.EnrichedListing{
		listing(models.SourcePolymarket, "Will Bitcoin reach $100k?", 0.30, 12000),
		listing(models.SourceManifold, "Will Bitcoin reach $100k?", 0.45, 3000),
	})
	if len(opps) != 1 {
		t.Fatalf("opportunities=%d want=1", len(opps))
	}
	opp := opps[0]
	if opp.SimilarityScore != 1.0 {
		t.Fatalf("similarity=%v want=1.0", opp.SimilarityScore)
	}
	if opp.SpreadPercent != 15.0 {
		t.Fatalf("spread=%v want=15.0", opp.SpreadPercent)
	}
	if opp.CheaperPlatform != models.SourcePolymarket {
		t.Fatalf("cheaperPlatform=%q want=%q", opp.CheaperPlatform, models.SourcePolymarket)
	}
	if opp.CheaperPrice != 30.0 || opp.ExpensivePrice != 45.0 {
		t.Fatalf("prices=%v/%v want=30.0/45.0", opp.CheaperPrice, opp.ExpensivePrice)
	}
	if opp.PolymarketLiquidity != 12000 || opp.ManifoldLiquidity != 3000 {
		t.Fatalf("liquidity=%v/%v want=12000/3000", opp.PolymarketLiquidity, opp.ManifoldLiquidity)
	}
}

func TestFindOpportunities_SmallSpreadExcluded(t *testing.T) {
	m := &Matcher{SimilarityThreshold: 0.75, MinSpreadPercent: 5.0}
	opps := m.FindOpportunities([]models.EnrichedListing{
		listing(models.SourcePolymarket, "Will Bitcoin reach $100k?", 0.42, 1000),
		listing(models.SourceManifold, "Will Bitcoin reach $100k?", 0.45, 1000),
	})
	if len(opps) != 0 {
		t.Fatalf("opportunities=%d want=0", len(opps))
	}
}

func TestFindOpportunities_DissimilarExcluded(t *testing.T) {
	m := &Matcher{SimilarityThreshold: 0.75, MinSpreadPercent: 5.0}
	opps := m.FindOpportunities([]models.EnrichedListing{
		listing(models.SourcePolymarket, "Will Bitcoin reach $100k?", 0.30, 1000),
		listing(models.SourceManifold, "Will it snow in Miami this year?", 0.45, 1000),
	})
	if len(opps) != 0 {
		t.Fatalf("opportunities=%d want=0", len(opps))
	}
}

func TestFindOpportunities_SortedBySpreadDesc(t *testing.T) {
	m := &Matcher{SimilarityThreshold: 0.75, MinSpreadPercent: 5.0}
	opps := m.FindOpportunities([]models.EnrichedListing{
		listing(models.SourcePolymarket, "Will Bitcoin reach $100k?", 0.30, 1000),
		listing(models.SourceManifold, "Will Bitcoin reach $100k?", 0.45, 1000),
		listing(models.SourcePolymarket, "Will it snow in Miami this year?", 0.10, 1000),
		listing(models.SourceManifold, "Will it snow in Miami this year?", 0.40, 1000),
	})
	if len(opps) != 2 {
		t.Fatalf("opportunities=%d want=2", len(opps))
	}
	if opps[0].SpreadPercent < opps[1].SpreadPercent {
		t.Fatalf("not sorted: %v then %v", opps[0].SpreadPercent, opps[1].SpreadPercent)
	}
	if opps[0].SpreadPercent != 30.0 {
		t.Fatalf("top spread=%v want=30.0", opps[0].SpreadPercent)
	}
}

func TestSummarize(t *testing.T) {
	m := &Matcher{}
	summary := m.Summarize([]models.ArbitrageOpportunity{
		{SpreadPercent: 10.0, PotentialProfit: 10.0},
		{SpreadPercent: 20.0, PotentialProfit: 20.0},
	})
	if summary.TotalOpportunities != 2 {
		t.Fatalf("total=%d want=2", summary.TotalOpportunities)
	}
	if summary.AvgSpread != 15.0 {
		t.Fatalf("avgSpread=%v want=15.0", summary.AvgSpread)
	}
	if summary.MaxSpread != 20.0 {
		t.Fatalf("maxSpread=%v want=20.0", summary.MaxSpread)
	}
	if summary.TotalPotentialProfit != 30.0 {
		t.Fatalf("profit=%v want=30.0", summary.TotalPotentialProfit)
	}
	if summary.PlatformsCompared != 2 {
		t.Fatalf("platforms=%d want=2", summary.PlatformsCompared)
	}
}

func TestSummarize_Empty(t *testing.T) {
	m := &Matcher{}
	summary := m.Summarize(nil)
	if summary.TotalOpportunities != 0 || summary.PlatformsCompared != 0 {
		t.Fatalf("summary=%+v want zero value", summary)
	}
}
