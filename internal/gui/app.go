package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/sim"
)

// Colors follow the classic look: gold frame on light gray, blue edges,
// red source and green target vertices.
var (
	ColBg     = rl.LightGray
	ColFrame  = rl.Gold
	ColEdge   = rl.Blue
	ColSource = rl.Red
	ColTarget = rl.Green
	ColLabel  = rl.DarkBrown
	ColHUD    = rl.DarkGray
)

const (
	frameRatio  = 0.90
	edgeWidth   = 4.0
	vertexSize  = 15.0
	labelSize   = 27
	hudFontSize = 20
	targetFPS   = 60
)

// App owns one engine and paints it into a raylib window. The window is twice
// the configured extent with the origin at its center.
type App struct {
	Engine   *sim.Engine
	Name     string
	Reseed   func() []r2.Vec
	Running  bool
	Log      *slog.Logger
	Width    int32
	Height   int32
	frame    rl.Rectangle
	start    []r2.Vec
	reported bool
	onDone   func(sim.Frame)
}

func NewApp(e *sim.Engine, name string, reseed func() []r2.Vec) *App {
	cfg := e.Config()
	w, h := int32(2*cfg.Width), int32(2*cfg.Height)
	return &App{
		Engine:  e,
		Name:    name,
		Reseed:  reseed,
		Running: true,
		Log:     slog.New(slog.DiscardHandler),
		Width:   w,
		Height:  h,
		frame:   centerRect(rl.NewRectangle(0, 0, float32(w), float32(h)), frameRatio, frameRatio),
		start:   e.Graph().Positions(),
	}
}

// OnDone registers a callback invoked once when the layout cools or runs out
// of iterations. A restart arms it again.
func (a *App) OnDone(fn func(sim.Frame)) { a.onDone = fn }

// Run opens the window and blocks until it is closed.
func Run(a *App) {
	rl.InitWindow(a.Width, a.Height, fmt.Sprintf("Fruchterman-Reingold Graph: %s", a.Name))
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)
	a.RunLoop()
}

func (a *App) RunLoop() {
	delay := float32(a.Engine.Config().TickDelay.Seconds())
	var acc float32
	for !rl.WindowShouldClose() {
		acc += rl.GetFrameTime()
		if acc >= delay {
			acc = 0
			a.Update()
		}
		a.handleKeys()
		a.Draw()
	}
}

// Update advances the engine by one tick while running and reports the
// outcome once.
func (a *App) Update() {
	if !a.Running {
		return
	}
	stop := a.Engine.Config().StopOnSettle
	if !a.Engine.Done(stop) {
		a.Engine.Tick()
	}
	if a.reported {
		return
	}
	if a.Engine.Settled() || a.Engine.Done(stop) {
		a.reported = true
		f := a.Engine.Frame()
		a.Log.Info("layout finished", "status", f.Status, "ticks", f.Tick, "settled_at", a.Engine.SettledAt())
		if a.onDone != nil {
			a.onDone(f)
		}
	}
}

func (a *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Restart()
	}
}

// Restart resets annealing from a fresh placement, or from the starting
// positions when no reseed function is set.
func (a *App) Restart() {
	positions := a.start
	if a.Reseed != nil {
		positions = a.Reseed()
	}
	if err := a.Engine.Reset(positions); err != nil {
		a.Log.Error("restart failed", "err", err)
		return
	}
	a.reported = false
	a.Running = true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawGraph(a.Engine.Frame())
	a.drawHUD()
	rl.EndDrawing()
}
