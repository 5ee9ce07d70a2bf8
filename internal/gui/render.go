package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/sim"
)

// centerRect shrinks rect to the given fractions of its size, keeping its
// center.
func centerRect(rect rl.Rectangle, rw, rh float32) rl.Rectangle {
	return rl.NewRectangle(
		rect.X+rect.Width*(1-rw)/2,
		rect.Y+rect.Height*(1-rh)/2,
		rect.Width*rw,
		rect.Height*rh,
	)
}

// toScreen shifts a layout position so the origin lands in the window center.
// Screen y grows downward, layout y is drawn as is.
func toScreen(p r2.Vec, halfW, halfH float64) rl.Vector2 {
	return rl.NewVector2(float32(p.X+halfW), float32(p.Y+halfH))
}

func (a *App) drawGraph(f sim.Frame) {
	rl.DrawRectangleRec(a.frame, ColFrame)

	halfW, halfH := float64(a.Width)/2, float64(a.Height)/2
	for _, e := range f.Edges {
		src := toScreen(f.Positions[e.Source], halfW, halfH)
		dst := toScreen(f.Positions[e.Target], halfW, halfH)

		rl.DrawLineEx(src, dst, edgeWidth, ColEdge)
		rl.DrawCircleV(src, vertexSize, ColSource)
		rl.DrawText(f.IDs[e.Source], int32(src.X), int32(src.Y), labelSize, ColLabel)
		rl.DrawCircleV(dst, vertexSize, ColTarget)
		rl.DrawText(f.IDs[e.Target], int32(dst.X), int32(dst.Y), labelSize, ColLabel)
	}
}

func (a *App) drawHUD() {
	rl.DrawFPS(5, 5)

	f := a.Engine.Frame()
	status := f.Status.String()
	if !a.Running {
		status = "paused"
	}
	x := a.Width - 320
	rl.DrawText(a.Name, x, 5, hudFontSize, ColHUD)
	rl.DrawText(fmt.Sprintf("%s  tick %d/%d", status, f.Tick, a.Engine.Config().MaxIterations), x, 30, hudFontSize, ColHUD)
	rl.DrawText(fmt.Sprintf("temp %.3f", f.Temperature), x, 55, hudFontSize, ColHUD)
	rl.DrawText("[SPACE] PAUSE  [R] RESTART", 5, a.Height-25, hudFontSize, ColHUD)
}
