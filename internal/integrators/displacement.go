package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

// Displacement moves each vertex along its accumulated force, limited in
// length by the current temperature, then clamps the result into bounds.
type Displacement struct {
	bounds r2.Box
}

func NewDisplacement(bounds r2.Box) *Displacement {
	return &Displacement{bounds: bounds.Canon()}
}

func (d *Displacement) Bounds() r2.Box { return d.bounds }

// Step applies one tick of movement and returns the length of the step taken
// by each vertex before boundary clamping.
func (d *Displacement) Step(g *graph.Graph, temperature float64) []float64 {
	moved := make([]float64, g.Len())
	for i := 0; i < g.Len(); i++ {
		f := g.Force(i)
		n := r2.Norm(f)
		if n > temperature {
			f = r2.Scale(temperature/n, f)
			n = temperature
		}
		moved[i] = n
		g.SetPosition(i, d.clamp(r2.Add(g.Position(i), f)))
	}
	return moved
}

func (d *Displacement) clamp(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: clamp(p.X, d.bounds.Min.X, d.bounds.Max.X),
		Y: clamp(p.Y, d.bounds.Min.Y, d.bounds.Max.Y),
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
