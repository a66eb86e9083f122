package analytics

import (
	"sync"
	"time"

	"marketlens/internal/models"
)

// Tracker keeps a capped in-memory series of average-inefficiency
// snapshots for charting. It resets on restart like the rest of the
// system state.
type Tracker struct {
	HistoryCap    int
	HighThreshold float64

	mu      sync.Mutex
	history []models.HistoryPoint
}

// RecordSnapshot appends a sample for the current enriched set; oldest
// points are evicted past the cap.
func (t *Tracker) RecordSnapshot(listings []models.EnrichedListing) {
	if len(listings) == 0 {
		return
	}
	histCap := t.HistoryCap
	if histCap <= 0 {
		histCap = 100
	}
	high := t.HighThreshold
	if high <= 0 {
		high = 0.15
	}

	sum := 0.0
	highCount := 0
	for _, l := range listings {
		sum += l.InefficiencyScore
		if l.InefficiencyScore >= high {
			highCount++
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, models.HistoryPoint{
		Timestamp:             time.Now().Format("2006-01-02 15:04"),
		AvgInefficiency:       round4(sum / float64(len(listings))),
		NumMarkets:            len(listings),
		HighInefficiencyCount: highCount,
	})
	if len(t.history) > histCap {
		t.history = t.history[len(t.history)-histCap:]
	}
}

// History returns a copy of the recorded series.
func (t *Tracker) History() []models.HistoryPoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.HistoryPoint, len(t.history))
	copy(out, t.history)
	return out
}

// MockHistory synthesizes a plausible trailing series around the current
// average, for charting before enough real snapshots accumulate. The
// variance is a deterministic function of the hour offset so repeated
// calls chart identically.
func (t *Tracker) MockHistory(listings []models.EnrichedListing, hours int) []models.HistoryPoint {
	if len(listings) == 0 {
		return []models.HistoryPoint{}
	}
	if hours <= 0 {
		hours = 24
	}

	sum := 0.0
	for _, l := range listings {
		sum += l.InefficiencyScore
	}
	currentAvg := sum / float64(len(listings))

	now := time.Now()
	out := make([]models.HistoryPoint, 0, hours)
	for hour := 0; hour < hours; hour++ {
		ts := now.Add(-time.Duration(hours-hour) * time.Hour)
		variance := float64(hour%100-50) / 1000
		avg := currentAvg + variance
		if avg < 0.05 {
			avg = 0.05
		}
		if avg > 0.30 {
			avg = 0.30
		}
		out = append(out, models.HistoryPoint{
			Timestamp:             ts.Format("01/02 15:04"),
			AvgInefficiency:       round4(avg),
			NumMarkets:            len(listings),
			HighInefficiencyCount: int(float64(len(listings)) * (avg / 0.25)),
		})
	}
	return out
}
