package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

const (
	// Epsilon is the distance floor used wherever a distance divides.
	Epsilon = 0.05

	// DefaultGravityScale damps the centering pull relative to attraction.
	DefaultGravityScale = 0.1

	goldenAngle = 2.399963229728653
)

// Law adds one kind of force into the graph's accumulators. Laws read
// positions and write forces only.
type Law interface {
	Name() string
	Apply(g *graph.Graph, k float64)
}

// floor clamps a distance to Epsilon.
func floor(d float64) float64 {
	return math.Max(d, Epsilon)
}

// separation returns pos(i)-pos(j) and its floored length. Coincident
// vertices get a substitute vector of length Epsilon whose direction depends
// only on the unordered pair, negated when i and j swap.
func separation(g *graph.Graph, i, j int) (r2.Vec, float64) {
	delta := r2.Sub(g.Position(i), g.Position(j))
	d := r2.Norm(delta)
	if d == 0 && i != j {
		lo, hi := i, j
		if lo > hi {
			lo, hi = hi, lo
		}
		theta := goldenAngle * float64(lo*g.Len()+hi+1)
		delta = r2.Vec{X: Epsilon * math.Cos(theta), Y: Epsilon * math.Sin(theta)}
		if i != lo {
			delta = r2.Scale(-1, delta)
		}
	}
	return delta, floor(d)
}

// Attraction pulls the endpoints of every edge toward each other with a
// magnitude that grows with the square of their distance.
type Attraction struct{}

func (Attraction) Name() string { return "attraction" }

func (Attraction) Apply(g *graph.Graph, k float64) {
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		if e.Source == e.Target {
			continue
		}
		delta, d := separation(g, e.Target, e.Source)
		f := r2.Scale(d/k, delta)
		g.AddForce(e.Source, f)
		g.AddForce(e.Target, r2.Scale(-1, f))
	}
}

// Repulsion pushes every pair of vertices apart. Each unordered pair is
// visited once and receives the full symmetric push.
type Repulsion struct{}

func (Repulsion) Name() string { return "repulsion" }

func (Repulsion) Apply(g *graph.Graph, k float64) {
	k2 := k * k
	n := g.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			delta, d := separation(g, i, j)
			f := r2.Scale(k2/(d*d), delta)
			g.AddForce(i, f)
			g.AddForce(j, r2.Scale(-1, f))
		}
	}
}

// Gravity pulls every vertex toward the origin.
type Gravity struct {
	Scale float64
}

func NewGravity(scale float64) Gravity {
	return Gravity{Scale: scale}
}

func (Gravity) Name() string { return "gravity" }

func (gr Gravity) Apply(g *graph.Graph, k float64) {
	for i := 0; i < g.Len(); i++ {
		p := g.Position(i)
		d := floor(r2.Norm(p))
		g.AddForce(i, r2.Scale(-gr.Scale*d/k, p))
	}
}

// Field applies a fixed sequence of force laws.
type Field struct {
	laws []Law
}

// NewField returns the standard attraction, repulsion, gravity field.
func NewField(gravityScale float64) *Field {
	return &Field{laws: []Law{Attraction{}, Repulsion{}, NewGravity(gravityScale)}}
}

// NewFieldOf builds a field from arbitrary laws, applied in order.
func NewFieldOf(laws ...Law) *Field {
	return &Field{laws: laws}
}

func (f *Field) Laws() []Law { return f.laws }

// Apply accumulates every law into the graph's forces. It does not reset
// the accumulators.
func (f *Field) Apply(g *graph.Graph, k float64) {
	for _, law := range f.laws {
		law.Apply(g, k)
	}
}

// IdealDistance derives k from the nominal area and vertex count.
func IdealDistance(forceConstant, width, height float64, n int) float64 {
	return math.Sqrt(forceConstant * width * height / float64(n))
}
