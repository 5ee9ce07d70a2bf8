// Package export writes layouts and run traces to static formats.
package export

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/sim"
)

// Layout is the drawable part of a frame or result.
type Layout struct {
	Title     string
	IDs       []string
	Positions []r2.Vec
	Edges     []graph.Edge
}

func FromFrame(title string, f sim.Frame) Layout {
	return Layout{Title: title, IDs: f.IDs, Positions: f.Positions, Edges: f.Edges}
}

// FromResult uses the final positions of res, or the initial ones when
// initial is set.
func FromResult(title string, res *sim.Result, initial bool) Layout {
	pos := res.Final
	if initial {
		pos = res.Initial
	}
	return Layout{Title: title, IDs: res.IDs, Positions: pos, Edges: res.Edges}
}

// Bounds returns the smallest box holding every position, padded by pad of
// its size on each side. Degenerate extents are widened to 1.
func (l Layout) Bounds(pad float64) r2.Box {
	if len(l.Positions) == 0 {
		return r2.Box{Max: r2.Vec{X: 1, Y: 1}}
	}
	b := r2.Box{Min: l.Positions[0], Max: l.Positions[0]}
	for _, p := range l.Positions[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	size := b.Size()
	if size.X == 0 {
		size.X = 1
	}
	if size.Y == 0 {
		size.Y = 1
	}
	b.Min = r2.Sub(b.Min, r2.Scale(pad, size))
	b.Max = r2.Add(b.Max, r2.Scale(pad, size))
	return b
}
