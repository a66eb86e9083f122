package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marketlens/internal/client/manifold"
	"marketlens/internal/client/polymarket"
	"marketlens/internal/models"
)

// Fetcher pulls listings from both venues and normalizes them into the
// shared Listing shape. Venue failures degrade to an empty slice for that
// venue; a cycle never fails outright because one feed is down.
type Fetcher struct {
	Polymarket *polymarket.Client
	Manifold   *manifold.Client
	Logger     *zap.Logger

	PolymarketLimit int
	ManifoldLimit   int
}

// FetchAll fetches both venues concurrently and returns the combined set,
// Polymarket listings first.
func (f *Fetcher) FetchAll(ctx context.Context) []models.Listing {
	var (
		poly []models.Listing
		mani []models.Listing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poly = f.fetchPolymarket(gctx)
		return nil
	})
	g.Go(func() error {
		mani = f.fetchManifold(gctx)
		return nil
	})
	_ = g.Wait()
	return append(poly, mani...)
}

func (f *Fetcher) fetchPolymarket(ctx context.Context) []models.Listing {
	if f.Polymarket == nil {
		return nil
	}
	limit := f.PolymarketLimit
	if limit <= 0 {
		limit = 20
	}
	markets, err := f.Polymarket.ListMarkets(ctx, limit)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Warn("polymarket fetch failed", zap.Error(err))
		}
		return nil
	}
	now := time.Now().UTC()
	listings := make([]models.Listing, 0, len(markets))
	for _, m := range markets {
		if !m.HasPrice() {
			continue
		}
		volume := float64(m.VolumeClob)
		if volume == 0 {
			volume = float64(m.Volume)
		}
		liquidity := float64(m.LiquidityClob)
		if liquidity == 0 {
			liquidity = float64(m.Liquidity)
		}
		// Skip dead markets with neither volume nor liquidity.
		if volume == 0 && liquidity == 0 {
			continue
		}
		slug := m.Slug
		if slug == "" {
			slug = m.ID
		}
		title := m.Question
		if title == "" {
			title = "Unknown"
		}
		listings = append(listings, models.Listing{
			ID:         m.ID,
			Title:      title,
			Source:     models.SourcePolymarket,
			MarketProb: m.Price(),
			Liquidity:  liquidity,
			Volume:     volume,
			URL:        fmt.Sprintf("https://polymarket.com/event/%s", slug),
			UpdatedAt:  now,
		})
		if len(listings) >= limit {
			break
		}
	}
	return listings
}

func (f *Fetcher) fetchManifold(ctx context.Context) []models.Listing {
	if f.Manifold == nil {
		return nil
	}
	limit := f.ManifoldLimit
	if limit <= 0 {
		limit = 20
	}
	markets, err := f.Manifold.ListMarkets(ctx, limit)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Warn("manifold fetch failed", zap.Error(err))
		}
		return nil
	}
	now := time.Now().UTC()
	listings := make([]models.Listing, 0, len(markets))
	for _, m := range markets {
		title := m.Question
		if title == "" {
			title = "Unknown"
		}
		listings = append(listings, models.Listing{
			ID:         m.ID,
			Title:      title,
			Source:     models.SourceManifold,
			MarketProb: m.Probability,
			Liquidity:  m.TotalLiquidity,
			Volume:     m.Volume,
			URL:        m.URL,
			UpdatedAt:  now,
		})
	}
	return listings
}
