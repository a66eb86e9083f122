// Package pipeline runs the refresh cycle: ingest listings, enrich them
// with estimates, scores and recommendations, publish the ranked snapshot,
// and drive the portfolio and backtest simulators.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketlens/internal/estimator"
	"marketlens/internal/models"
	"marketlens/internal/recommend"
	"marketlens/internal/scoring"
)

type ListingSource interface {
	FetchAll(ctx context.Context) []models.Listing
}

type PortfolioSimulator interface {
	Seeded() bool
	Seed(listings []models.EnrichedListing, threshold float64) []models.SimulatedTrade
	AddLiveTrades(candidates []models.EnrichedListing) int
}

type BacktestSimulator interface {
	Run(listings []models.EnrichedListing) models.BacktestResult
}

type SnapshotRecorder interface {
	RecordSnapshot(listings []models.EnrichedListing)
}

// Pipeline owns the published snapshot and serializes refresh cycles.
// Handlers only ever read the snapshot; all mutation happens here.
type Pipeline struct {
	Source    ListingSource
	Estimator *estimator.Estimator
	Portfolio PortfolioSimulator
	Backtest  BacktestSimulator
	Tracker   SnapshotRecorder
	Logger    *zap.Logger

	SeedThreshold  float64
	AgentThreshold float64
	AgentTopN      int

	refreshMu sync.Mutex

	pubMu      sync.RWMutex
	published  []models.EnrichedListing
	lastUpdate time.Time
}

// Refresh runs one full cycle. Concurrent triggers are serialized; an
// empty ingestion result keeps the previous published set so consumers
// never see a transient blank response.
func (p *Pipeline) Refresh(ctx context.Context) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	cycleID := uuid.NewString()[:8]
	raw := p.Source.FetchAll(ctx)
	if len(raw) == 0 {
		if p.Logger != nil {
			p.Logger.Warn("no listings fetched, keeping previous cycle",
				zap.String("cycle", cycleID))
		}
		return
	}

	enriched := make([]models.EnrichedListing, 0, len(raw))
	dropped := 0
	for _, l := range raw {
		e, err := p.enrich(ctx, l)
		if err != nil {
			dropped++
			if p.Logger != nil {
				p.Logger.Warn("listing dropped",
					zap.String("cycle", cycleID),
					zap.String("listing", l.ID),
					zap.Error(err))
			}
			continue
		}
		enriched = append(enriched, e)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].InefficiencyScore > enriched[j].InefficiencyScore
	})

	p.pubMu.Lock()
	p.published = enriched
	p.lastUpdate = time.Now()
	p.pubMu.Unlock()

	if p.Tracker != nil {
		p.Tracker.RecordSnapshot(enriched)
	}
	p.simulate(enriched, cycleID)

	if p.Logger != nil {
		p.Logger.Info("refresh cycle complete",
			zap.String("cycle", cycleID),
			zap.Int("listings", len(enriched)),
			zap.Int("dropped", dropped),
		)
	}
}

func (p *Pipeline) enrich(ctx context.Context, l models.Listing) (models.EnrichedListing, error) {
	if l.MarketProb < 0 || l.MarketProb > 1 || l.MarketProb != l.MarketProb {
		return models.EnrichedListing{}, fmt.Errorf("quoted probability %v out of range", l.MarketProb)
	}
	if l.Liquidity < 0 || l.Volume < 0 {
		return models.EnrichedListing{}, fmt.Errorf("negative liquidity or volume")
	}

	est := p.Estimator.Estimate(ctx, l)
	score := scoring.Inefficiency(l.MarketProb, l.Liquidity, est.AIProbability)
	rec := recommend.Generate(l.MarketProb, est.AIProbability, score)

	return models.EnrichedListing{
		Listing:           l,
		AIProbability:     est.AIProbability,
		InefficiencyScore: score,
		ScoreLabel:        scoring.Label(score),
		ScoreColor:        scoring.Color(l.MarketProb, est.AIProbability),
		Recommendation:    rec,
		Reasoning:         est.Reasoning,
		NewsSentiment:     est.NewsSentiment,
		CryptoSentiment:   est.CryptoSentiment,
		WeatherSentiment:  est.WeatherSentiment,
	}, nil
}

// simulate drives the portfolio (seed once, then the agent loop) and the
// one-shot backtest after a cycle publishes.
func (p *Pipeline) simulate(enriched []models.EnrichedListing, cycleID string) {
	if len(enriched) == 0 {
		return
	}
	if p.Portfolio != nil {
		if !p.Portfolio.Seeded() {
			p.Portfolio.Seed(enriched, p.SeedThreshold)
		} else {
			topN := p.AgentTopN
			if topN <= 0 {
				topN = 3
			}
			candidates := make([]models.EnrichedListing, 0, topN)
			for _, l := range enriched {
				if l.InefficiencyScore < p.AgentThreshold {
					continue
				}
				candidates = append(candidates, l)
				if len(candidates) == topN {
					break
				}
			}
			if len(candidates) > 0 {
				created := p.Portfolio.AddLiveTrades(candidates)
				if created > 0 && p.Logger != nil {
					p.Logger.Info("agent opened trades",
						zap.String("cycle", cycleID),
						zap.Int("trades", created))
				}
			}
		}
	}
	if p.Backtest != nil {
		p.Backtest.Run(enriched)
	}
}

// Snapshot returns the most recently published enriched set and its
// timestamp. The slice is shared read-only; callers must not mutate it.
func (p *Pipeline) Snapshot() ([]models.EnrichedListing, time.Time) {
	p.pubMu.RLock()
	defer p.pubMu.RUnlock()
	return p.published, p.lastUpdate
}
