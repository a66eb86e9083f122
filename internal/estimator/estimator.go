package estimator

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"marketlens/internal/models"
	"marketlens/internal/simrand"
)

// Signal blend weights. News carries the most, polling the least.
const (
	newsWeight      = 0.15
	cryptoWeight    = 0.10
	politicalWeight = 0.05
	weatherWeight   = 0.08
)

// Estimates are clamped away from certainty on both sides.
const (
	minProbability = 0.05
	maxProbability = 0.95
)

type NewsSource interface {
	Sentiment(ctx context.Context, keywords []string) (float64, error)
}

type CryptoSource interface {
	Momentum(ctx context.Context) (float64, error)
}

type PoliticalSource interface {
	Signal() float64
}

type WeatherSource interface {
	Precipitation(ctx context.Context, wantRain bool) (float64, error)
}

// Estimator blends the quoted probability with external signals into a
// fair-value estimate. Any source failure degrades that signal to 0; a
// partial-signal estimate is always produced.
type Estimator struct {
	News      NewsSource
	Crypto    CryptoSource
	Political PoliticalSource
	Weather   WeatherSource
	Logger    *zap.Logger

	// Rand drives the bounded symmetric noise term; nil disables noise.
	Rand           simrand.Source
	NoiseAmplitude float64

	// LiquidityThreshold splits markets into thin (full signal weight)
	// and deep (half weight). Thin markets are assumed to under-react
	// to new information, so their estimate is allowed to move further.
	LiquidityThreshold float64
}

// Estimate is the model output for one listing.
type Estimate struct {
	AIProbability      float64
	NewsSentiment      float64
	CryptoSentiment    float64
	PoliticalSentiment float64
	WeatherSentiment   float64
	Reasoning          string
}

var stopWords = map[string]struct{}{
	"will": {}, "by": {}, "before": {}, "after": {}, "the": {},
	"in": {}, "on": {}, "at": {}, "a": {}, "an": {},
}

var (
	cryptoKeywords    = []string{"bitcoin", "btc", "ethereum", "eth", "crypto", "cryptocurrency"}
	politicalKeywords = []string{"trump", "biden", "election", "president", "political", "congress"}
	weatherKeywords   = []string{"rain", "snow", "temperature", "weather", "storm", "hurricane"}
)

// ExtractKeywords returns up to five salient words from a market title:
// lowercased, stop-words stripped, only words longer than three characters.
func ExtractKeywords(title string) []string {
	words := splitWords(strings.ToLower(title))
	keywords := make([]string, 0, 5)
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		}
		return true
	})
}

func containsAny(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Estimate produces the fair-value probability and rationale for a listing.
func (e *Estimator) Estimate(ctx context.Context, listing models.Listing) Estimate {
	keywords := ExtractKeywords(listing.Title)
	base := listing.MarketProb

	news := e.newsSentiment(ctx, keywords)
	crypto := e.cryptoSentiment(ctx, listing.Title)
	political := e.politicalSentiment(listing.Title)
	weather := e.weatherSentiment(ctx, listing.Title)

	threshold := e.LiquidityThreshold
	if threshold <= 0 {
		threshold = 10000
	}
	liquidityFactor := 1.0
	if listing.Liquidity >= threshold {
		liquidityFactor = 0.5
	}

	adjustment := (news*newsWeight +
		crypto*cryptoWeight +
		political*politicalWeight +
		weather*weatherWeight) * liquidityFactor

	noise := simrand.Uniform(e.Rand, e.NoiseAmplitude)

	prob := clamp(base+adjustment+noise, minProbability, maxProbability)
	prob = round4(prob)

	return Estimate{
		AIProbability:      prob,
		NewsSentiment:      round3(news),
		CryptoSentiment:    round3(crypto),
		PoliticalSentiment: round3(political),
		WeatherSentiment:   round3(weather),
		Reasoning:          reasoning(base, prob),
	}
}

func (e *Estimator) newsSentiment(ctx context.Context, keywords []string) float64 {
	if e.News == nil || len(keywords) == 0 {
		return 0
	}
	score, err := e.News.Sentiment(ctx, keywords)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("news sentiment degraded", zap.Error(err))
		}
		return 0
	}
	return score
}

func (e *Estimator) cryptoSentiment(ctx context.Context, title string) float64 {
	if e.Crypto == nil || !containsAny(title, cryptoKeywords) {
		return 0
	}
	score, err := e.Crypto.Momentum(ctx)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("crypto signal degraded", zap.Error(err))
		}
		return 0
	}
	return score
}

func (e *Estimator) politicalSentiment(title string) float64 {
	if e.Political == nil || !containsAny(title, politicalKeywords) {
		return 0
	}
	return e.Political.Signal()
}

func (e *Estimator) weatherSentiment(ctx context.Context, title string) float64 {
	if e.Weather == nil || !containsAny(title, weatherKeywords) {
		return 0
	}
	wantRain := strings.Contains(strings.ToLower(title), "rain")
	score, err := e.Weather.Precipitation(ctx, wantRain)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("weather signal degraded", zap.Error(err))
		}
		return 0
	}
	return score
}

// reasoning selects rationale text by the magnitude and sign of the gap
// between estimate and quote.
func reasoning(quote, estimate float64) string {
	diff := estimate - quote
	switch {
	case diff > 0.08:
		return "Strong positive sentiment detected across multiple news sources with bullish market indicators. " +
			"The crowd may be underestimating probability due to low information flow and limited liquidity allowing for mispricing."
	case diff < -0.08:
		return "Market sentiment analysis reveals overconfidence relative to underlying fundamentals. " +
			"Cross-referencing external data sources suggests mean reversion as new information becomes priced in."
	case math.Abs(diff) < 0.05:
		return "Market is efficiently priced. No clear signal detected."
	case diff > 0:
		return "Modest positive momentum building in recent headlines. Low liquidity suggests the market hasn't fully priced in developing trends."
	default:
		return "Sentiment turning cautious based on current data. Market may be slightly ahead of fundamentals."
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
