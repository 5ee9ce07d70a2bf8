// Package metrics provides per-tick measurements of a running layout.
package metrics

import "github.com/san-kum/frlayout/internal/sim"

// Metric names as reported in results.
const (
	MaxDisplacementName = "max_displacement"
	EnergyName          = "energy"
	MeanEdgeLengthName  = "mean_edge_length"
	EdgeSpreadName      = "edge_spread"
	StabilityName       = "stability"
)

// DefaultStillThreshold is the step length below which a tick counts as
// still for Stability.
const DefaultStillThreshold = 0.5

// Defaults returns a fresh instance of every layout metric.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewMaxDisplacement(),
		NewEnergy(),
		NewMeanEdgeLength(),
		NewEdgeSpread(),
		NewStability(DefaultStillThreshold),
	}
}

// Options wraps Defaults as engine options.
func Options() []sim.Option {
	ms := Defaults()
	opts := make([]sim.Option, len(ms))
	for i, m := range ms {
		opts[i] = sim.WithMetric(m)
	}
	return opts
}
