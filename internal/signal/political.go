package signal

import "marketlens/internal/simrand"

// PoliticalSource stands in for polling-data influence. Until a real
// polling feed is wired it draws a small symmetric value so political
// markets still get a non-degenerate signal.
type PoliticalSource struct {
	Rand simrand.Source

	Amplitude float64
}

func (s *PoliticalSource) Signal() float64 {
	amplitude := s.Amplitude
	if amplitude <= 0 {
		amplitude = 0.1
	}
	return simrand.Uniform(s.Rand, amplitude)
}
