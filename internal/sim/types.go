package sim

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

// ForceField accumulates forces into the graph for the given ideal distance.
type ForceField interface {
	Apply(g *graph.Graph, k float64)
}

// Integrator turns accumulated forces into movement. It returns the length of
// the step taken by each vertex.
type Integrator interface {
	Step(g *graph.Graph, temperature float64) []float64
}

type Metric interface {
	Name() string
	Observe(g *graph.Graph, moved []float64, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnTick(f Frame) { fn(f) }

type Status int

const (
	Running Status = iota
	Cooled
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Cooled:
		return "cooled"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Frame is a read-only snapshot of the layout between ticks. Slices are
// copies and may be retained.
type Frame struct {
	Tick        int
	Temperature float64
	Status      Status
	IDs         []string
	Positions   []r2.Vec
	Edges       []graph.Edge
}

type Result struct {
	Reason       Status
	Ticks        int
	Settled      bool
	SettledAt    int
	IDs          []string
	Edges        []graph.Edge
	Initial      []r2.Vec
	Final        []r2.Vec
	Temperatures []float64
	Frames       []Frame
	Metrics      map[string]float64
}
