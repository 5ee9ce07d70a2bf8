package graph

import "errors"

var (
	// ErrNoVertices indicates a graph without any vertex.
	ErrNoVertices = errors.New("graph: no vertices")

	// ErrEdgeOutOfRange indicates an edge endpoint outside the vertex sequence.
	ErrEdgeOutOfRange = errors.New("graph: edge references undefined vertex")
)
