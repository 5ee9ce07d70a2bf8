package sim

import (
	"context"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

type Command int

const (
	Pause Command = iota
	Resume
	Restart
)

// Driver paces an engine against the wall clock. Each ticker interval runs
// one tick and hands the resulting frame to the callback.
type Driver struct {
	engine       *Engine
	delay        time.Duration
	stopOnSettle bool
	commands     chan Command
	reseed       func() []r2.Vec
	paused       bool
}

func NewDriver(e *Engine) *Driver {
	delay := e.cfg.TickDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &Driver{
		engine:       e,
		delay:        delay,
		stopOnSettle: e.cfg.StopOnSettle,
		commands:     make(chan Command, 8),
	}
}

// OnRestart sets the source of fresh positions for the Restart command.
// Without it, Restart reuses the positions the driver started from.
func (d *Driver) OnRestart(fn func() []r2.Vec) { d.reseed = fn }

// Send queues a command for the running loop. It never blocks; commands
// beyond the queue capacity are dropped.
func (d *Driver) Send(c Command) {
	select {
	case d.commands <- c:
	default:
	}
}

// Run emits the current frame, then ticks once per interval until the engine
// is done, the callback fails, or ctx ends.
func (d *Driver) Run(ctx context.Context, onFrame func(Frame) error) error {
	start := d.engine.g.Positions()
	if err := onFrame(d.engine.Frame()); err != nil {
		return err
	}

	ticker := time.NewTicker(d.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-d.commands:
			if err := d.apply(c, start, onFrame); err != nil {
				return err
			}
		case <-ticker.C:
			if d.paused {
				continue
			}
			if d.engine.Done(d.stopOnSettle) {
				return nil
			}
			d.engine.Tick()
			if err := onFrame(d.engine.Frame()); err != nil {
				return err
			}
		}
	}
}

func (d *Driver) apply(c Command, start []r2.Vec, onFrame func(Frame) error) error {
	switch c {
	case Pause:
		d.paused = true
	case Resume:
		d.paused = false
	case Restart:
		positions := start
		if d.reseed != nil {
			positions = d.reseed()
		}
		if err := d.engine.Reset(positions); err != nil {
			return err
		}
		return onFrame(d.engine.Frame())
	}
	return nil
}
