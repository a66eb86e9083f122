package polymarket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FloatString tolerates Gamma's habit of serializing numbers as quoted
// strings (or empty strings for missing values).
type FloatString float64

func (f *FloatString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse float %q: %w", raw, err)
		}
		*f = FloatString(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FloatString(v)
	return nil
}

type Market struct {
	ID             string      `json:"id"`
	Question       string      `json:"question"`
	Slug           string      `json:"slug"`
	LastTradePrice FloatString `json:"lastTradePrice"`
	BestBid        FloatString `json:"bestBid"`
	Volume         FloatString `json:"volume"`
	VolumeClob     FloatString `json:"volumeClob"`
	Liquidity      FloatString `json:"liquidity"`
	LiquidityClob  FloatString `json:"liquidityClob"`
}

// HasPrice reports whether the market carries any usable price field.
func (m Market) HasPrice() bool {
	return m.LastTradePrice > 0 || m.BestBid > 0
}

// Price resolves the quoted probability: last trade first, then best bid.
func (m Market) Price() float64 {
	if m.LastTradePrice > 0 {
		return float64(m.LastTradePrice)
	}
	return float64(m.BestBid)
}

func parseMarkets(body []byte) ([]Market, error) {
	var markets []Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("failed to parse markets: %w", err)
	}
	return markets, nil
}
