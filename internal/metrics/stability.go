package metrics

import "github.com/san-kum/frlayout/internal/graph"

// Stability is the fraction of ticks in which no vertex moved further than
// threshold. It approaches 1 as the layout freezes.
type Stability struct {
	name      string
	threshold float64
	still     int
	samples   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      StabilityName,
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(g *graph.Graph, moved []float64, tick int) {
	s.samples++
	if maxOf(moved) <= s.threshold {
		s.still++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.still) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.still = 0
	s.samples = 0
}
