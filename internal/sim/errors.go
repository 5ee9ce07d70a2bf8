package sim

import "errors"

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrNilGraph is returned when an engine is built without a graph.
	ErrNilGraph = errors.New("sim: nil graph")
)
