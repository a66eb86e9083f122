package portfolio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"marketlens/internal/models"
)

// fixedSource makes every outcome deterministic: Float64 below the win
// probability means every trade wins.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return s.n % n }

func candidate(id, title string, score, roi float64, action string) models.EnrichedListing {
	return models.EnrichedListing{
		Listing: models.Listing{
			ID:         id,
			Title:      title,
			MarketProb: 0.40,
		},
		AIProbability:     0.55,
		InefficiencyScore: score,
		Recommendation: models.Recommendation{
			Action:      action,
			ExpectedROI: roi,
		},
	}
}

func TestSeed_RunsOnce(t *testing.T) {
	s := New(Config{}, fixedSource{}, nil)
	listings := []models.EnrichedListing{
		candidate("a", "Market A", 0.5, 20, models.ActionBuyYes),
	}
	first := s.Seed(listings, 0.1)
	if len(first) != 1 {
		t.Fatalf("first seed trades=%d want=1", len(first))
	}
	if !s.Seeded() {
		t.Fatalf("Seeded()=false after seed")
	}
	second := s.Seed(listings, 0.1)
	if second != nil {
		t.Fatalf("second seed trades=%v want=nil", second)
	}
}

func TestSeed_ThresholdAndTopTen(t *testing.T) {
	s := New(Config{}, fixedSource{}, nil)
	var listings []models.EnrichedListing
	for i := 0; i < 12; i++ {
		listings = append(listings, candidate("", "Market", 0.5, 20, models.ActionBuyYes))
	}
	listings = append(listings, candidate("", "Below threshold", 0.05, 20, models.ActionBuyYes))
	trades := s.Seed(listings, 0.1)
	if len(trades) != 10 {
		t.Fatalf("seed trades=%d want=10 (top ten only)", len(trades))
	}
}

func TestSeed_WinnerProfitFromROI(t *testing.T) {
	s := New(Config{Stake: 50}, fixedSource{f: 0}, nil)
	trades := s.Seed([]models.EnrichedListing{
		candidate("a", "Market A", 0.5, 20, models.ActionBuyYes),
	}, 0.1)
	if len(trades) != 1 {
		t.Fatalf("trades=%d want=1", len(trades))
	}
	if trades[0].Status != models.TradeWin {
		t.Fatalf("status=%q want=%q", trades[0].Status, models.TradeWin)
	}
	// 50 * 20 / 100
	if !trades[0].Profit.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("profit=%s want=10", trades[0].Profit)
	}
	if trades[0].ROIPercent != 20.0 {
		t.Fatalf("roiPercent=%v want=20.0", trades[0].ROIPercent)
	}
}

func TestSeed_LoserLosesHalfStake(t *testing.T) {
	s := New(Config{Stake: 50}, fixedSource{f: 0.99}, nil)
	trades := s.Seed([]models.EnrichedListing{
		candidate("a", "Market A", 0.5, 20, models.ActionBuyYes),
	}, 0.1)
	if trades[0].Status != models.TradeLoss {
		t.Fatalf("status=%q want=%q", trades[0].Status, models.TradeLoss)
	}
	if !trades[0].Profit.Equal(decimal.NewFromInt(-25)) {
		t.Fatalf("profit=%s want=-25", trades[0].Profit)
	}
}

func TestAddLiveTrades_DedupAcrossCalls(t *testing.T) {
	s := New(Config{}, fixedSource{}, nil)
	c := candidate("mkt-1", "Market A", 0.5, 20, models.ActionBuyYes)
	if got := s.AddLiveTrades([]models.EnrichedListing{c}); got != 1 {
		t.Fatalf("first call created=%d want=1", got)
	}
	if got := s.AddLiveTrades([]models.EnrichedListing{c}); got != 0 {
		t.Fatalf("second call created=%d want=0", got)
	}
}

func TestAddLiveTrades_HoldMarkedButSkipped(t *testing.T) {
	s := New(Config{}, fixedSource{}, nil)
	hold := candidate("mkt-1", "Market A", 0.5, 0, models.ActionHold)
	if got := s.AddLiveTrades([]models.EnrichedListing{hold}); got != 0 {
		t.Fatalf("hold created=%d want=0", got)
	}
	// Same listing later with a directional action is still skipped; the
	// dedup mark was set on the HOLD pass.
	buy := candidate("mkt-1", "Market A", 0.5, 20, models.ActionBuyYes)
	if got := s.AddLiveTrades([]models.EnrichedListing{buy}); got != 0 {
		t.Fatalf("post-hold created=%d want=0", got)
	}
}

func TestAddLiveTrades_FallsBackToTitleKey(t *testing.T) {
	s := New(Config{}, fixedSource{}, nil)
	c := candidate("", "Market A", 0.5, 20, models.ActionBuyYes)
	if got := s.AddLiveTrades([]models.EnrichedListing{c}); got != 1 {
		t.Fatalf("first call created=%d want=1", got)
	}
	if got := s.AddLiveTrades([]models.EnrichedListing{c}); got != 0 {
		t.Fatalf("second call created=%d want=0", got)
	}
}

func TestAddLiveTrades_LedgerCap(t *testing.T) {
	s := New(Config{LiveLedgerCap: 5}, fixedSource{}, nil)
	var batch []models.EnrichedListing
	for i := 0; i < 8; i++ {
		batch = append(batch, candidate(
			string(rune('a'+i)), "Market", 0.5, 20, models.ActionBuyYes))
	}
	s.AddLiveTrades(batch)
	if got := len(s.Trades()); got != 5 {
		t.Fatalf("ledger=%d want=5", got)
	}
}

func TestStats_EmptyLedger(t *testing.T) {
	s := New(Config{InitialBalance: 1000}, fixedSource{}, nil)
	stats := s.Stats()
	if stats.TotalTrades != 0 {
		t.Fatalf("totalTrades=%d want=0", stats.TotalTrades)
	}
	if !stats.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("currentBalance=%s want=1000", stats.CurrentBalance)
	}
	if !stats.InitialBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("initialBalance=%s want=1000", stats.InitialBalance)
	}
	if stats.BestTrade != nil || stats.WorstTrade != nil {
		t.Fatalf("best/worst set on empty ledger")
	}
}

func TestStats_WinsAndBalance(t *testing.T) {
	s := New(Config{InitialBalance: 1000, Stake: 50}, fixedSource{f: 0}, nil)
	s.AddLiveTrades([]models.EnrichedListing{
		candidate("a", "Market A", 0.5, 20, models.ActionBuyYes),
		candidate("b", "Market B", 0.5, 40, models.ActionSellNo),
	})
	stats := s.Stats()
	if stats.TotalTrades != 2 || stats.Wins != 2 || stats.Losses != 0 {
		t.Fatalf("trades=%d wins=%d losses=%d want 2/2/0",
			stats.TotalTrades, stats.Wins, stats.Losses)
	}
	if stats.WinRate != 100.0 {
		t.Fatalf("winRate=%v want=100.0", stats.WinRate)
	}
	// Profits: 10 + 20 on 100 staked.
	if !stats.TotalProfit.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("totalProfit=%s want=30", stats.TotalProfit)
	}
	if stats.ROI != 30.0 {
		t.Fatalf("roi=%v want=30.0", stats.ROI)
	}
	if !stats.CurrentBalance.Equal(decimal.NewFromInt(1030)) {
		t.Fatalf("currentBalance=%s want=1030", stats.CurrentBalance)
	}
	if stats.BestTrade == nil || !stats.BestTrade.Profit.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("bestTrade=%+v want profit 20", stats.BestTrade)
	}
	if stats.WorstTrade == nil || !stats.WorstTrade.Profit.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("worstTrade=%+v want profit 10", stats.WorstTrade)
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "Short title"
	if got := truncateTitle(short); got != short {
		t.Fatalf("truncateTitle(%q)=%q want unchanged", short, got)
	}
	long := strings.Repeat("x", 80)
	got := truncateTitle(long)
	if got != strings.Repeat("x", 60)+"..." {
		t.Fatalf("truncateTitle long=%q want 60 runes plus ellipsis", got)
	}
}
