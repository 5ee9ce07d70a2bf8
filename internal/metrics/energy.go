package metrics

import "github.com/san-kum/frlayout/internal/graph"

// Energy sums the squared step lengths of every vertex over the run.
type Energy struct {
	name  string
	total float64
}

func NewEnergy() *Energy {
	return &Energy{name: EnergyName}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(g *graph.Graph, moved []float64, tick int) {
	for _, m := range moved {
		e.total += m * m
	}
}

func (e *Energy) Value() float64 { return e.total }
func (e *Energy) Reset()         { e.total = 0 }

// MaxDisplacement is the longest single step taken in the latest tick.
type MaxDisplacement struct {
	name string
	last float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{name: MaxDisplacementName}
}

func (m *MaxDisplacement) Name() string { return m.name }

func (m *MaxDisplacement) Observe(g *graph.Graph, moved []float64, tick int) {
	m.last = maxOf(moved)
}

func (m *MaxDisplacement) Value() float64 { return m.last }
func (m *MaxDisplacement) Reset()         { m.last = 0 }

func maxOf(xs []float64) float64 {
	var out float64
	for _, x := range xs {
		if x > out {
			out = x
		}
	}
	return out
}
