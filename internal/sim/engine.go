package sim

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/integrators"
	"github.com/san-kum/frlayout/internal/physics"
)

// Engine runs the layout of a single graph. It is not safe for concurrent
// use; independent engines may run in parallel.
type Engine struct {
	g          *graph.Graph
	cfg        Config
	k          float64
	field      ForceField
	integrator Integrator
	schedule   *Schedule
	metrics    []Metric
	observers  []Observer
	log        *slog.Logger
	lastMoved  []float64
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithForceField(f ForceField) Option {
	return func(e *Engine) { e.field = f }
}

func WithIntegrator(i Integrator) Option {
	return func(e *Engine) { e.integrator = i }
}

func WithMetric(m Metric) Option {
	return func(e *Engine) { e.metrics = append(e.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New validates cfg and prepares an engine over g, which it mutates in place.
func New(g *graph.Graph, cfg Config, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.Len() == 0 {
		return nil, graph.ErrNoVertices
	}

	e := &Engine{
		g:        g,
		cfg:      cfg,
		k:        cfg.IdealDistance(g.Len()),
		schedule: NewSchedule(cfg.InitialTemperature, cfg.CoolingFactor, cfg.MinTemperature),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.field == nil {
		e.field = physics.NewField(cfg.Gravity)
	}
	if e.integrator == nil {
		e.integrator = integrators.NewDisplacement(cfg.Bounds())
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	for _, m := range e.metrics {
		m.Reset()
	}
	return e, nil
}

func (e *Engine) Graph() *graph.Graph  { return e.g }
func (e *Engine) Config() Config       { return e.cfg }
func (e *Engine) K() float64           { return e.k }
func (e *Engine) Temperature() float64 { return e.schedule.Temperature() }
func (e *Engine) Ticks() int           { return e.schedule.Ticks() }
func (e *Engine) Settled() bool        { return e.schedule.Settled() }
func (e *Engine) SettledAt() int       { return e.schedule.SettledAt() }

// LastMoved returns the per-vertex step lengths of the most recent tick.
func (e *Engine) LastMoved() []float64 {
	return append([]float64(nil), e.lastMoved...)
}

func (e *Engine) Status() Status {
	switch {
	case e.schedule.Settled():
		return Cooled
	case e.schedule.Ticks() >= e.cfg.MaxIterations:
		return Exhausted
	default:
		return Running
	}
}

// Done reports whether ticking should stop: always at the iteration cap, and
// at settle when stopOnSettle is set.
func (e *Engine) Done(stopOnSettle bool) bool {
	if e.schedule.Ticks() >= e.cfg.MaxIterations {
		return true
	}
	return stopOnSettle && e.schedule.Settled()
}

// Tick advances the layout by one step. Once the iteration cap is reached it
// changes nothing.
func (e *Engine) Tick() Status {
	if e.schedule.Ticks() >= e.cfg.MaxIterations {
		return e.Status()
	}

	wasSettled := e.schedule.Settled()
	temp := e.schedule.Temperature()

	e.g.ResetForces()
	e.field.Apply(e.g, e.k)
	e.lastMoved = e.integrator.Step(e.g, temp)
	e.schedule.Decay()

	tick := e.schedule.Ticks()
	if !wasSettled && e.schedule.Settled() {
		e.log.Debug("layout settled", "tick", tick, "temperature", e.schedule.Temperature())
	}
	if tick == e.cfg.MaxIterations && !e.schedule.Settled() {
		e.log.Debug("iteration cap reached", "tick", tick, "temperature", e.schedule.Temperature())
	}

	for _, m := range e.metrics {
		m.Observe(e.g, e.lastMoved, tick)
	}
	if len(e.observers) > 0 {
		f := e.Frame()
		for _, o := range e.observers {
			o.OnTick(f)
		}
	}
	return e.Status()
}

func (e *Engine) Frame() Frame {
	return Frame{
		Tick:        e.schedule.Ticks(),
		Temperature: e.schedule.Temperature(),
		Status:      e.Status(),
		IDs:         e.g.IDs(),
		Positions:   e.g.Positions(),
		Edges:       e.g.Edges(),
	}
}

// Reset restarts annealing from the given positions.
func (e *Engine) Reset(positions []r2.Vec) error {
	if len(positions) != e.g.Len() {
		return fmt.Errorf("reset: %d positions for %d vertices", len(positions), e.g.Len())
	}
	for i, p := range positions {
		e.g.SetPosition(i, p)
	}
	e.g.ResetForces()
	e.schedule.Reset()
	e.lastMoved = nil
	for _, m := range e.metrics {
		m.Reset()
	}
	return nil
}

// Run ticks without pacing until Done. On cancellation it returns the partial
// result together with the context error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		IDs:          e.g.IDs(),
		Edges:        e.g.Edges(),
		Initial:      e.g.Positions(),
		Temperatures: []float64{e.schedule.Temperature()},
		Metrics:      make(map[string]float64),
	}
	if e.cfg.RecordFrames {
		res.Frames = append(res.Frames, e.Frame())
	}

	var err error
	for !e.Done(e.cfg.StopOnSettle) {
		if err = ctx.Err(); err != nil {
			break
		}
		e.Tick()
		res.Temperatures = append(res.Temperatures, e.schedule.Temperature())
		if e.cfg.RecordFrames {
			res.Frames = append(res.Frames, e.Frame())
		}
	}

	res.Reason = e.Status()
	res.Ticks = e.schedule.Ticks()
	res.Settled = e.schedule.Settled()
	res.SettledAt = e.schedule.SettledAt()
	res.Final = e.g.Positions()
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, err
}
