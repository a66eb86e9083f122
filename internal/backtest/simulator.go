// Package backtest replays a synthetic multi-day trading history over the
// current enriched set and computes aggregate performance statistics.
// The result is computed once per process lifetime and cached.
package backtest

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketlens/internal/models"
	"marketlens/internal/simrand"
)

// Win probability grows with inefficiency score but is capped well below
// certainty.
const (
	baseWinRate = 0.60
	maxWinRate  = 0.85
)

type Config struct {
	Days           int
	ScoreThreshold float64
	InitialCapital float64
	Stake          float64
}

type Simulator struct {
	cfg    Config
	rand   simrand.Source
	logger *zap.Logger

	mu     sync.Mutex
	result *models.BacktestResult
}

func New(cfg Config, rand simrand.Source, logger *zap.Logger) *Simulator {
	if cfg.Days <= 0 {
		cfg.Days = 30
	}
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = 0.08
	}
	if cfg.InitialCapital <= 0 {
		cfg.InitialCapital = 1000
	}
	if cfg.Stake <= 0 {
		cfg.Stake = 50
	}
	if rand == nil {
		rand = simrand.New(time.Now().UnixNano())
	}
	return &Simulator{cfg: cfg, rand: rand, logger: logger}
}

// Run simulates trading over the configured day count using the current
// listings as a proxy for historical data. The first call computes and
// caches the result; later calls return the cached result unchanged.
func (s *Simulator) Run(listings []models.EnrichedListing) models.BacktestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return *s.result
	}

	trades := s.generateTrades(listings)
	result := s.computeResult(trades)
	s.result = &result
	if s.logger != nil {
		s.logger.Info("backtest complete",
			zap.Int("days", s.cfg.Days),
			zap.Int("trades", result.Summary.TotalTrades),
		)
	}
	return result
}

// Results returns the cached result, or the documented empty structure
// when the backtest has not run yet.
func (s *Simulator) Results() models.BacktestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return *s.result
	}
	return s.emptyResult()
}

func (s *Simulator) generateTrades(listings []models.EnrichedListing) []models.SimulatedTrade {
	qualifying := make([]models.EnrichedListing, 0, len(listings))
	for _, l := range listings {
		if l.InefficiencyScore >= s.cfg.ScoreThreshold {
			qualifying = append(qualifying, l)
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	stake := decimal.NewFromFloat(s.cfg.Stake)
	capital := decimal.NewFromFloat(s.cfg.InitialCapital)
	now := time.Now()
	var trades []models.SimulatedTrade
	for day := 0; day < s.cfg.Days; day++ {
		tradeDate := now.AddDate(0, 0, -(s.cfg.Days - day))

		// Two or three picks per day, bounded by the candidate pool.
		numTrades := 2 + s.rand.Intn(2)
		if numTrades > len(qualifying) {
			numTrades = len(qualifying)
		}
		for _, l := range sample(qualifying, numTrades, s.rand) {
			if l.Recommendation.Action == models.ActionHold {
				continue
			}
			winProb := math.Min(maxWinRate, baseWinRate+l.InefficiencyScore*0.5)
			isWinner := s.rand.Float64() < winProb

			var profit decimal.Decimal
			if isWinner {
				profit = stake.Mul(decimal.NewFromFloat(l.Recommendation.ExpectedROI)).
					Div(decimal.NewFromInt(100)).Round(2)
			} else {
				profit = stake.Mul(decimal.NewFromFloat(0.5)).Neg().Round(2)
			}
			capital = capital.Add(profit)
			capitalAfter := capital.Round(2)

			roi, _ := profit.Div(stake).Float64()
			trades = append(trades, models.SimulatedTrade{
				MarketTitle:       truncateTitle(l.Title),
				Action:            l.Recommendation.Action,
				Stake:             stake,
				EntryPrice:        l.MarketProb,
				AIEstimate:        l.AIProbability,
				InefficiencyScore: l.InefficiencyScore,
				Date:              tradeDate.Format("2006-01-02"),
				Status:            outcome(isWinner),
				Profit:            profit,
				ROIPercent:        round1(roi * 100),
				CapitalAfter:      &capitalAfter,
			})
		}
	}
	return trades
}

func (s *Simulator) computeResult(trades []models.SimulatedTrade) models.BacktestResult {
	if len(trades) == 0 {
		return s.emptyResult()
	}

	initial := decimal.NewFromFloat(s.cfg.InitialCapital)
	wins, losses := 0, 0
	totalProfit := decimal.Zero
	totalStaked := decimal.Zero
	best := trades[0]
	worst := trades[0]
	for _, t := range trades {
		if t.Status == models.TradeWin {
			wins++
		} else {
			losses++
		}
		totalProfit = totalProfit.Add(t.Profit)
		totalStaked = totalStaked.Add(t.Stake)
		if t.Profit.GreaterThan(best.Profit) {
			best = t
		}
		if t.Profit.LessThan(worst.Profit) {
			worst = t
		}
	}

	curve := make([]models.CapitalPoint, 0, len(trades))
	running := initial
	for _, t := range trades {
		running = running.Add(t.Profit)
		roiRatio, _ := running.Sub(initial).Div(initial).Float64()
		curve = append(curve, models.CapitalPoint{
			Date:    t.Date,
			Capital: running.Round(2),
			ROI:     round2(roiRatio * 100),
		})
	}

	roi, _ := totalProfit.Div(totalStaked).Float64()
	recent := trades
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	return models.BacktestResult{
		Summary: models.BacktestSummary{
			TotalTrades:       len(trades),
			Wins:              wins,
			Losses:            losses,
			WinRate:           round1(float64(wins) / float64(len(trades)) * 100),
			TotalProfit:       totalProfit.Round(2),
			ROI:               round1(roi * 100),
			FinalCapital:      initial.Add(totalProfit).Round(2),
			InitialCapital:    initial,
			AvgProfitPerTrade: totalProfit.Div(decimal.NewFromInt(int64(len(trades)))).Round(2),
			BestTrade:         highlight(best),
			WorstTrade:        highlight(worst),
			DaysTested:        s.cfg.Days,
		},
		CumulativePerformance: curve,
		WeeklyStats:           weeklyStats(trades),
		RecentTrades:          recent,
	}
}

func (s *Simulator) emptyResult() models.BacktestResult {
	initial := decimal.NewFromFloat(s.cfg.InitialCapital)
	return models.BacktestResult{
		Summary: models.BacktestSummary{
			TotalProfit:       decimal.Zero,
			FinalCapital:      initial,
			InitialCapital:    initial,
			AvgProfitPerTrade: decimal.Zero,
		},
		CumulativePerformance: []models.CapitalPoint{},
		WeeklyStats:           []models.WeeklyStat{},
		RecentTrades:          []models.SimulatedTrade{},
	}
}

type weekAgg struct {
	year   int
	week   int
	trades int
	wins   int
	profit decimal.Decimal
}

func weeklyStats(trades []models.SimulatedTrade) []models.WeeklyStat {
	byWeek := map[string]*weekAgg{}
	for _, t := range trades {
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		year, week := date.ISOWeek()
		key := fmt.Sprintf("%d-W%d", year, week)
		agg, ok := byWeek[key]
		if !ok {
			agg = &weekAgg{year: year, week: week, profit: decimal.Zero}
			byWeek[key] = agg
		}
		agg.trades++
		if t.Status == models.TradeWin {
			agg.wins++
		}
		agg.profit = agg.profit.Add(t.Profit)
	}

	aggs := make([]*weekAgg, 0, len(byWeek))
	for _, agg := range byWeek {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].year != aggs[j].year {
			return aggs[i].year < aggs[j].year
		}
		return aggs[i].week < aggs[j].week
	})

	out := make([]models.WeeklyStat, 0, len(aggs))
	for _, agg := range aggs {
		winRate := 0.0
		if agg.trades > 0 {
			winRate = round1(float64(agg.wins) / float64(agg.trades) * 100)
		}
		out = append(out, models.WeeklyStat{
			Week:    fmt.Sprintf("%d-W%d", agg.year, agg.week),
			Trades:  agg.trades,
			WinRate: winRate,
			Profit:  agg.profit.Round(2),
		})
	}
	return out
}

func highlight(t models.SimulatedTrade) *models.TradeHighlight {
	return &models.TradeHighlight{
		Market: t.MarketTitle,
		Profit: t.Profit,
		ROI:    t.ROIPercent,
		Date:   t.Date,
	}
}

// sample picks n distinct listings via a partial Fisher-Yates shuffle.
func sample(listings []models.EnrichedListing, n int, rand simrand.Source) []models.EnrichedListing {
	if n >= len(listings) {
		out := make([]models.EnrichedListing, len(listings))
		copy(out, listings)
		return out
	}
	idx := make([]int, len(listings))
	for i := range idx {
		idx[i] = i
	}
	out := make([]models.EnrichedListing, 0, n)
	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, listings[idx[i]])
	}
	return out
}

func outcome(isWinner bool) string {
	if isWinner {
		return models.TradeWin
	}
	return models.TradeLoss
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 50 {
		return title
	}
	return string(runes[:50]) + "..."
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
