// Package simrand isolates the random source used by the simulators and
// the estimator so tests can force deterministic outcomes.
package simrand

import "math/rand"

type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Intn returns a value in [0,n).
	Intn(n int) int
}

type mathSource struct {
	r *rand.Rand
}

func (s mathSource) Float64() float64 { return s.r.Float64() }
func (s mathSource) Intn(n int) int   { return s.r.Intn(n) }

// New returns a seeded source backed by math/rand.
func New(seed int64) Source {
	return mathSource{r: rand.New(rand.NewSource(seed))}
}

// Uniform draws from [-amplitude, amplitude].
func Uniform(src Source, amplitude float64) float64 {
	if src == nil || amplitude <= 0 {
		return 0
	}
	return (src.Float64()*2 - 1) * amplitude
}
