// Package portfolio maintains the paper-trading ledger: a one-time seed
// batch plus the agent loop that opens trades on newly-detected
// inefficiencies each refresh cycle.
package portfolio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketlens/internal/models"
	"marketlens/internal/simrand"
)

const titleTruncateLen = 60

type Config struct {
	InitialBalance float64
	Stake          float64
	SeedLedgerCap  int
	LiveLedgerCap  int
	WinProbability float64
}

// Simulator owns the ledger, the traded-listing dedup set, and the running
// balance. All methods are safe for concurrent refresh triggers.
type Simulator struct {
	cfg    Config
	rand   simrand.Source
	logger *zap.Logger

	mu      sync.Mutex
	trades  []models.SimulatedTrade
	traded  map[string]struct{}
	balance decimal.Decimal
	seeded  bool
}

func New(cfg Config, rand simrand.Source, logger *zap.Logger) *Simulator {
	if cfg.Stake <= 0 {
		cfg.Stake = 50
	}
	if cfg.InitialBalance <= 0 {
		cfg.InitialBalance = 1000
	}
	if cfg.SeedLedgerCap <= 0 {
		cfg.SeedLedgerCap = 20
	}
	if cfg.LiveLedgerCap <= 0 {
		cfg.LiveLedgerCap = 30
	}
	if cfg.WinProbability <= 0 {
		cfg.WinProbability = 0.70
	}
	if rand == nil {
		rand = simrand.New(time.Now().UnixNano())
	}
	return &Simulator{
		cfg:     cfg,
		rand:    rand,
		logger:  logger,
		traded:  map[string]struct{}{},
		balance: decimal.NewFromFloat(cfg.InitialBalance),
	}
}

// Seeded reports whether the one-time seed batch has already run.
func (s *Simulator) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeded
}

// Seed creates the historical-looking seed batch from the top ten ranked
// listings meeting the threshold. It runs at most once per process
// lifetime; later calls are no-ops.
func (s *Simulator) Seed(listings []models.EnrichedListing, threshold float64) []models.SimulatedTrade {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return nil
	}
	s.seeded = true

	if len(listings) > 10 {
		listings = listings[:10]
	}
	stake := decimal.NewFromFloat(s.cfg.Stake)
	now := time.Now()
	var newTrades []models.SimulatedTrade
	total := decimal.Zero
	for _, l := range listings {
		if l.InefficiencyScore < threshold {
			continue
		}
		daysAgo := 1 + s.rand.Intn(7)
		tradeDate := now.AddDate(0, 0, -daysAgo)

		isWinner := s.rand.Float64() < s.cfg.WinProbability
		profit := tradeProfit(stake, l.Recommendation.ExpectedROI, isWinner)
		total = total.Add(profit)

		newTrades = append(newTrades, models.SimulatedTrade{
			ID:                fmt.Sprintf("trade_%d", len(s.trades)+len(newTrades)),
			MarketTitle:       truncateTitle(l.Title),
			Action:            l.Recommendation.Action,
			Stake:             stake,
			EntryPrice:        l.MarketProb,
			AIEstimate:        l.AIProbability,
			InefficiencyScore: l.InefficiencyScore,
			Date:              tradeDate.Format("2006-01-02"),
			Status:            outcome(isWinner),
			Profit:            profit,
			ROIPercent:        roiPercent(profit, stake),
		})
	}

	s.trades = append(newTrades, s.trades...)
	if len(s.trades) > s.cfg.SeedLedgerCap {
		s.trades = s.trades[:s.cfg.SeedLedgerCap]
	}
	s.balance = s.balance.Add(total)
	if s.logger != nil {
		s.logger.Info("portfolio seeded",
			zap.Int("trades", len(newTrades)),
			zap.String("total_profit", total.StringFixed(2)),
		)
	}
	return newTrades
}

// AddLiveTrades is the agent loop: it opens a trade for each candidate not
// already traded. A listing is marked traded before the HOLD check, so a
// HOLD candidate is never revisited either. Returns the number of trades
// created. Idempotent per listing identifier across calls.
func (s *Simulator) AddLiveTrades(candidates []models.EnrichedListing) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	stake := decimal.NewFromFloat(s.cfg.Stake)
	now := time.Now()
	var newTrades []models.SimulatedTrade
	for _, l := range candidates {
		key := l.ID
		if key == "" {
			key = l.Title
		}
		if _, done := s.traded[key]; done {
			continue
		}
		s.traded[key] = struct{}{}

		if l.Recommendation.Action == models.ActionHold {
			continue
		}

		isWinner := s.rand.Float64() < s.cfg.WinProbability
		profit := tradeProfit(stake, l.Recommendation.ExpectedROI, isWinner)
		s.balance = s.balance.Add(profit)

		newTrades = append(newTrades, models.SimulatedTrade{
			ID:                fmt.Sprintf("live_trade_%d_%s", len(s.trades), now.Format("150405")),
			MarketTitle:       truncateTitle(l.Title),
			Action:            l.Recommendation.Action,
			Stake:             stake,
			EntryPrice:        l.MarketProb,
			AIEstimate:        l.AIProbability,
			InefficiencyScore: l.InefficiencyScore,
			Date:              now.Format("2006-01-02 15:04"),
			Status:            outcome(isWinner),
			Profit:            profit,
			ROIPercent:        roiPercent(profit, stake),
			IsLive:            true,
		})
	}

	s.trades = append(newTrades, s.trades...)
	if len(s.trades) > s.cfg.LiveLedgerCap {
		s.trades = s.trades[:s.cfg.LiveLedgerCap]
	}
	return len(newTrades)
}

// Trades returns a copy of the ledger, most recent first.
func (s *Simulator) Trades() []models.SimulatedTrade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SimulatedTrade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Stats computes portfolio statistics from the live ledger. An empty
// ledger yields the zero-valued structure, never an error.
func (s *Simulator) Stats() models.PortfolioStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	initial := decimal.NewFromFloat(s.cfg.InitialBalance)
	if len(s.trades) == 0 {
		return models.PortfolioStats{
			TotalProfit:    decimal.Zero,
			CurrentBalance: s.balance,
			InitialBalance: initial,
		}
	}

	wins, losses := 0, 0
	totalProfit := decimal.Zero
	totalStaked := decimal.Zero
	best := s.trades[0]
	worst := s.trades[0]
	for _, t := range s.trades {
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

	roi := 0.0
	if totalStaked.IsPositive() {
		ratio, _ := totalProfit.Div(totalStaked).Float64()
		roi = round1(ratio * 100)
	}
	return models.PortfolioStats{
		TotalTrades:    len(s.trades),
		Wins:           wins,
		Losses:         losses,
		WinRate:        round1(float64(wins) / float64(len(s.trades)) * 100),
		TotalProfit:    totalProfit.Round(2),
		ROI:            roi,
		CurrentBalance: s.balance.Round(2),
		InitialBalance: initial,
		BestTrade:      &best,
		WorstTrade:     &worst,
	}
}

func tradeProfit(stake decimal.Decimal, expectedROI float64, isWinner bool) decimal.Decimal {
	if isWinner {
		return stake.Mul(decimal.NewFromFloat(expectedROI)).
			Div(decimal.NewFromInt(100)).Round(2)
	}
	return stake.Mul(decimal.NewFromFloat(0.5)).Neg().Round(2)
}

func roiPercent(profit, stake decimal.Decimal) float64 {
	if !stake.IsPositive() {
		return 0
	}
	ratio, _ := profit.Div(stake).Float64()
	return round1(ratio * 100)
}

func outcome(isWinner bool) string {
	if isWinner {
		return models.TradeWin
	}
	return models.TradeLoss
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleTruncateLen {
		return title
	}
	return string(runes[:titleTruncateLen]) + "..."
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
