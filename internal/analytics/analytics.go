// Package analytics aggregates inefficiency scores by category and tracks
// the average-inefficiency time series across refresh cycles.
package analytics

import (
	"math"
	"sort"
	"strings"

	"marketlens/internal/models"
)

var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Politics", []string{"trump", "election", "president", "political", "senate", "congress"}},
	{"Crypto", []string{"bitcoin", "crypto", "eth", "btc", "cryptocurrency"}},
	{"Sports", []string{"nba", "nfl", "sports", "game", "championship"}},
	{"Weather", []string{"weather", "rain", "temperature", "snow"}},
	{"Economy", []string{"market", "stock", "economy", "gdp", "inflation"}},
}

// Categorize buckets a market title by keyword; "Other" when nothing hits.
func Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range categoryKeywords {
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				return c.name
			}
		}
	}
	return "Other"
}

// CategoryBreakdown returns per-category average inefficiency, sorted by
// descending average.
func CategoryBreakdown(listings []models.EnrichedListing) []models.CategoryStat {
	type agg struct {
		sum   float64
		count int
	}
	byCategory := map[string]*agg{}
	for _, l := range listings {
		cat := Categorize(l.Title)
		a, ok := byCategory[cat]
		if !ok {
			a = &agg{}
			byCategory[cat] = a
		}
		a.sum += l.InefficiencyScore
		a.count++
	}

	stats := make([]models.CategoryStat, 0, len(byCategory))
	for cat, a := range byCategory {
		stats = append(stats, models.CategoryStat{
			Category:        cat,
			AvgInefficiency: round3(a.sum / float64(a.count)),
			Count:           a.count,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AvgInefficiency > stats[j].AvgInefficiency
	})
	return stats
}

// OverallAverage is the mean inefficiency across all listings.
func OverallAverage(listings []models.EnrichedListing) float64 {
	if len(listings) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range listings {
		sum += l.InefficiencyScore
	}
	return round3(sum / float64(len(listings)))
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
