package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CryptoSource derives a momentum signal from 24h BTC/ETH price changes
// via a CoinGecko-compatible endpoint.
type CryptoSource struct {
	HTTP   *http.Client
	Logger *zap.Logger

	Endpoint  string
	APIKeyEnv string
}

type coinChange struct {
	Change24h float64 `json:"usd_24h_change"`
}

// Momentum returns the mean of the BTC and ETH 24h percentage changes,
// scaled to [-1,1].
func (s *CryptoSource) Momentum(ctx context.Context) (float64, error) {
	if s.HTTP == nil {
		s.HTTP = &http.Client{Timeout: 5 * time.Second}
	}
	query := url.Values{}
	query.Set("ids", "bitcoin,ethereum")
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}
	if s.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(s.APIKeyEnv)); key != "" {
			req.Header.Set("x-cg-demo-api-key", key)
		}
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko http %d", resp.StatusCode)
	}
	var parsed map[string]coinChange
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	avg := (parsed["bitcoin"].Change24h + parsed["ethereum"].Change24h) / 2
	return avg / 100, nil
}
