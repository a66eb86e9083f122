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

// NewsSource scores recent headlines for a set of keywords via a
// NewsAPI-compatible endpoint.
type NewsSource struct {
	HTTP   *http.Client
	Logger *zap.Logger

	Endpoint  string
	APIKeyEnv string
	PageSize  int
}

type newsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"articles"`
}

// Sentiment fetches up to PageSize recent articles matching the top three
// keywords and returns the average compound sentiment. Returns 0 with a
// nil error when there are no keywords or no scorable articles.
func (s *NewsSource) Sentiment(ctx context.Context, keywords []string) (float64, error) {
	if len(keywords) == 0 {
		return 0, nil
	}
	if s.HTTP == nil {
		s.HTTP = &http.Client{Timeout: 5 * time.Second}
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	query := url.Values{}
	query.Set("q", strings.Join(keywords, " OR "))
	query.Set("pageSize", fmt.Sprintf("%d", pageSize))
	query.Set("sortBy", "publishedAt")
	if s.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(s.APIKeyEnv)); key != "" {
			query.Set("apiKey", key)
		}
	}

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
		return 0, fmt.Errorf("news api http %d", resp.StatusCode)
	}
	var parsed newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}

	articles := parsed.Articles
	if len(articles) > pageSize {
		articles = articles[:pageSize]
	}
	sum := 0.0
	n := 0
	for _, a := range articles {
		text := strings.TrimSpace(a.Title + " " + a.Description)
		if text == "" {
			continue
		}
		sum += SentimentScore(text)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}
