package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

// EdgeLengths returns the Euclidean length of every edge of g.
func EdgeLengths(g *graph.Graph) []float64 {
	out := make([]float64, g.EdgeCount())
	for i := range out {
		e := g.Edge(i)
		out[i] = r2.Norm(r2.Sub(g.Position(e.Target), g.Position(e.Source)))
	}
	return out
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(std / float64(len(xs)))
}

// MeanEdgeLength tracks the average edge length after the latest tick.
type MeanEdgeLength struct {
	name string
	last float64
}

func NewMeanEdgeLength() *MeanEdgeLength {
	return &MeanEdgeLength{name: MeanEdgeLengthName}
}

func (m *MeanEdgeLength) Name() string { return m.name }

func (m *MeanEdgeLength) Observe(g *graph.Graph, moved []float64, tick int) {
	m.last, _ = meanStd(EdgeLengths(g))
}

func (m *MeanEdgeLength) Value() float64 { return m.last }
func (m *MeanEdgeLength) Reset()         { m.last = 0 }

// EdgeSpread is the coefficient of variation of edge lengths after the
// latest tick. Uniform edge lengths give 0.
type EdgeSpread struct {
	name string
	last float64
}

func NewEdgeSpread() *EdgeSpread {
	return &EdgeSpread{name: EdgeSpreadName}
}

func (s *EdgeSpread) Name() string { return s.name }

func (s *EdgeSpread) Observe(g *graph.Graph, moved []float64, tick int) {
	mean, std := meanStd(EdgeLengths(g))
	if mean == 0 {
		s.last = 0
		return
	}
	s.last = std / mean
}

func (s *EdgeSpread) Value() float64 { return s.last }
func (s *EdgeSpread) Reset()         { s.last = 0 }
