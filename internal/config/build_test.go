package config

import (
	"testing"

	"github.com/san-kum/frlayout/internal/graph"
)

func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]string{"a", "b", "c"}, []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}})
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

func TestNewEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	g := triangle(t)

	e, err := cfg.NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.Graph() != g {
		t.Fatal("engine does not wrap the given graph")
	}
	for i := 0; i < g.Len(); i++ {
		p := g.Position(i)
		if p.X < -cfg.Width/2 || p.X > cfg.Width/2 || p.Y < -cfg.Height/2 || p.Y > cfg.Height/2 {
			t.Errorf("vertex %d placed outside the frame: %v", i, p)
		}
	}
}

func TestNewEngine_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Placement = "spiral"
	if _, err := cfg.NewEngine(triangle(t)); err == nil {
		t.Error("expected error for unknown placement")
	}
}

func TestReseederAdvances(t *testing.T) {
	cfg := DefaultConfig()
	next := cfg.Reseeder(3)
	a, b := next(), next()
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 positions, got %d and %d", len(a), len(b))
	}
	if a[0] == b[0] {
		t.Error("consecutive reseeds produced the same placement")
	}
}
