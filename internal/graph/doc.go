// Package graph holds the topology and per-vertex simulation state of a layout.
//
// A [Graph] is built once by a loader and never resized afterwards. Vertex
// order is the index space used by [Edge], so it must stay stable for the
// lifetime of the graph:
//
//   - topology (ids and edges) is immutable after [New]
//   - positions and forces are mutated in place by the layout engine
//
// # Preconditions
//
// [New] rejects empty graphs and edges that reference undefined vertices.
// After construction every index handed to an accessor is trusted; an index
// outside [0, Len()) is a programming error and panics.
//
// # Thread Safety
//
// Graph is NOT thread-safe. The engine is its only mutator and renderers
// read it between ticks.
package graph
