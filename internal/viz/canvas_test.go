package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.Grid[0][0]; got != brailleBase|0x1 {
		t.Errorf("cell 0 = %U, want %U", got, brailleBase|0x1)
	}
	if got := c.Grid[0][1]; got != brailleBase|0x80 {
		t.Errorf("cell 1 = %U, want %U", got, brailleBase|0x80)
	}

	c.Clear()
	if c.Grid[0][0] != brailleBase || c.Grid[0][1] != brailleBase {
		t.Error("Clear left dots set")
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Label(2, 4, "abcdef")
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := []rune(lines[1]); string(got[1:]) != "abc" {
		t.Errorf("label row = %q", lines[1])
	}

	c.Clear()
	if strings.ContainsAny(c.String(), "abc") {
		t.Error("Clear kept the overlay")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	if c.Grid[0][0]&0x1 == 0 {
		t.Error("start dot not set")
	}
	if c.Grid[4][9]&0x80 == 0 {
		t.Error("end dot not set")
	}
}

func TestViewportProject(t *testing.T) {
	c := NewCanvas(50, 25) // 100x100 dots
	vp := NewViewport(c, r2.NewBox(-10, -10, 10, 10))

	tests := []struct {
		name   string
		p      r2.Vec
		wx, wy int
	}{
		{"min corner maps bottom left", r2.Vec{X: -10, Y: -10}, 0, 99},
		{"max corner maps top right", r2.Vec{X: 10, Y: 10}, 99, 0},
		{"origin maps to center", r2.Vec{}, 50, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.Project(tt.p)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Project(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestFitBox(t *testing.T) {
	b := FitBox([]r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 50}}, 0.1)
	if b.Min.X != -10 || b.Max.X != 110 {
		t.Errorf("x range = [%g, %g], want [-10, 110]", b.Min.X, b.Max.X)
	}
	if b.Min.Y != -5 || b.Max.Y != 55 {
		t.Errorf("y range = [%g, %g], want [-5, 55]", b.Min.Y, b.Max.Y)
	}

	single := FitBox([]r2.Vec{{X: 3, Y: 3}}, 0.1)
	if single.Size().X <= 0 || single.Size().Y <= 0 {
		t.Errorf("degenerate box %v", single)
	}
}
