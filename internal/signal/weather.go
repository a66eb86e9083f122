package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// WeatherSource polls an Open-Meteo compatible forecast endpoint.
// NYC coordinates are the default location for weather markets.
type WeatherSource struct {
	HTTP   *http.Client
	Logger *zap.Logger

	Endpoint string
}

type weatherResponse struct {
	Hourly struct {
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Precipitation returns the mean precipitation probability over the next
// 24 hours, scaled to [0,1] and signed: positive when the market asks
// about rain happening, negative otherwise.
func (s *WeatherSource) Precipitation(ctx context.Context, wantRain bool) (float64, error) {
	if s.HTTP == nil {
		s.HTTP = &http.Client{Timeout: 5 * time.Second}
	}
	query := url.Values{}
	query.Set("latitude", "40.7128")
	query.Set("longitude", "-74.0060")
	query.Set("hourly", "temperature_2m,precipitation_probability")
	query.Set("forecast_days", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("open-meteo http %d", resp.StatusCode)
	}
	var parsed weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	probs := parsed.Hourly.PrecipitationProbability
	if len(probs) == 0 {
		return 0, nil
	}
	if len(probs) > 24 {
		probs = probs[:24]
	}
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	avg := sum / float64(len(probs)) / 100
	if !wantRain {
		avg = -avg
	}
	return avg, nil
}
