package config

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/placement"
	"github.com/san-kum/frlayout/internal/sim"
)

// Place seeds every vertex of g with the configured placement strategy.
func (c *Config) Place(g *graph.Graph) error {
	fn, err := placement.ByName(c.Placement)
	if err != nil {
		return err
	}
	placement.Apply(g, fn, c.Width, c.Height, c.Seed)
	return nil
}

// Reseeder returns a function producing a fresh placement for n vertices on
// every call, advancing the seed each time.
func (c *Config) Reseeder(n int) func() []r2.Vec {
	fn, err := placement.ByName(c.Placement)
	if err != nil {
		fn = placement.UniformPlacement
	}
	seed := c.Seed
	w, h := c.Width, c.Height
	return func() []r2.Vec {
		seed++
		return fn(n, w, h, seed)
	}
}

// NewEngine validates c, places g and builds an engine over it.
func (c *Config) NewEngine(g *graph.Graph, opts ...sim.Option) (*sim.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.Place(g); err != nil {
		return nil, err
	}
	return sim.New(g, c.ToSim(), opts...)
}
