package graph

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

type Vertex struct {
	ID       string
	Position r2.Vec
	Force    r2.Vec
}

// Edge connects two vertices by index. Forces along an edge are symmetric,
// the direction only fixes iteration order.
type Edge struct {
	Source int
	Target int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d->%d", e.Source, e.Target)
}

type Graph struct {
	vertices []Vertex
	edges    []Edge
	index    map[string]int
}

// New builds a graph from vertex ids and index-based edges. Positions and
// forces start at the origin.
func New(ids []string, edges []Edge) (*Graph, error) {
	if len(ids) == 0 {
		return nil, ErrNoVertices
	}

	g := &Graph{
		vertices: make([]Vertex, len(ids)),
		edges:    make([]Edge, len(edges)),
		index:    make(map[string]int, len(ids)),
	}

	for i, id := range ids {
		g.vertices[i] = Vertex{ID: id}
		// duplicate ids resolve to their first occurrence
		if _, ok := g.index[id]; !ok {
			g.index[id] = i
		}
	}

	for i, e := range edges {
		if e.Source < 0 || e.Source >= len(ids) || e.Target < 0 || e.Target >= len(ids) {
			return nil, fmt.Errorf("%w: edge %d (%s) with %d vertices", ErrEdgeOutOfRange, i, e, len(ids))
		}
		g.edges[i] = e
	}

	return g, nil
}

func (g *Graph) Len() int       { return len(g.vertices) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

func (g *Graph) ID(i int) string             { return g.vertices[i].ID }
func (g *Graph) Position(i int) r2.Vec       { return g.vertices[i].Position }
func (g *Graph) SetPosition(i int, p r2.Vec) { g.vertices[i].Position = p }
func (g *Graph) Force(i int) r2.Vec          { return g.vertices[i].Force }
func (g *Graph) SetForce(i int, f r2.Vec)    { g.vertices[i].Force = f }

// AddForce accumulates f into the force of vertex i.
func (g *Graph) AddForce(i int, f r2.Vec) {
	v := &g.vertices[i]
	v.Force.X += f.X
	v.Force.Y += f.Y
}

func (g *Graph) ResetForces() {
	for i := range g.vertices {
		g.vertices[i].Force = r2.Vec{}
	}
}

// Vertex returns a copy of vertex i.
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Edge returns edge i.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// IDs returns a copy of the vertex ids in index order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.ID
	}
	return out
}

// Positions returns a copy of every vertex position in index order.
func (g *Graph) Positions() []r2.Vec {
	out := make([]r2.Vec, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.Position
	}
	return out
}

// Index looks up a vertex by id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}
