// Package placement chooses starting positions for a layout.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

const (
	Uniform = "uniform"
	Circle  = "circle"
	Noise   = "noise"
)

var ErrUnknown = errors.New("placement: unknown strategy")

// Func returns n positions inside the width by height box centred on the
// origin. The same seed always yields the same positions.
type Func func(n int, width, height float64, seed int64) []r2.Vec

var strategies = map[string]Func{
	Uniform: UniformPlacement,
	Circle:  CirclePlacement,
	Noise:   NoisePlacement,
}

func ByName(name string) (Func, error) {
	fn, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknown, name, Names())
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply places every vertex of g.
func Apply(g *graph.Graph, fn Func, width, height float64, seed int64) {
	for i, p := range fn(g.Len(), width, height, seed) {
		g.SetPosition(i, p)
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}

// UniformPlacement draws each coordinate independently and uniformly.
func UniformPlacement(n int, width, height float64, seed int64) []r2.Vec {
	rng := newRand(seed)
	out := make([]r2.Vec, n)
	for i := range out {
		out[i] = r2.Vec{
			X: (rng.Float64() - 0.5) * width,
			Y: (rng.Float64() - 0.5) * height,
		}
	}
	return out
}

// CirclePlacement spaces vertices evenly on an ellipse inscribed in the box,
// starting at a seeded angle.
func CirclePlacement(n int, width, height float64, seed int64) []r2.Vec {
	phase := newRand(seed).Float64() * 2 * math.Pi
	rx, ry := 0.4*width, 0.4*height
	out := make([]r2.Vec, n)
	for i := range out {
		theta := phase + 2*math.Pi*float64(i)/float64(n)
		out[i] = r2.Vec{X: rx * math.Cos(theta), Y: ry * math.Sin(theta)}
	}
	return out
}

const noiseStep = 0.37

// NoisePlacement samples two offset simplex noise tracks, giving a scattered
// but spatially correlated start.
func NoisePlacement(n int, width, height float64, seed int64) []r2.Vec {
	noise := opensimplex.New(seed)
	out := make([]r2.Vec, n)
	for i := range out {
		t := float64(i) * noiseStep
		out[i] = r2.Vec{
			X: clampUnit(noise.Eval2(t, 0)) * width / 2,
			Y: clampUnit(noise.Eval2(0, t+100)) * height / 2,
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
