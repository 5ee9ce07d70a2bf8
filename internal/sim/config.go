package sim

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/physics"
)

type Config struct {
	Width              float64
	Height             float64
	InitialTemperature float64
	CoolingFactor      float64
	MinTemperature     float64
	MaxIterations      int
	ForceConstant      float64
	Margin             float64
	Gravity            float64

	// StopOnSettle ends Run and the Driver as soon as the schedule settles
	// instead of continuing to MaxIterations.
	StopOnSettle bool
	// RecordFrames keeps a Frame per tick in the Result of Run.
	RecordFrames bool
	// TickDelay paces the Driver. It has no effect on Run.
	TickDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Width:              800,
		Height:             800,
		InitialTemperature: 250,
		CoolingFactor:      0.95,
		MinTemperature:     0.05,
		MaxIterations:      400,
		ForceConstant:      1.3,
		Margin:             1.8,
		Gravity:            physics.DefaultGravityScale,
		TickDelay:          25 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("%w: extents must be positive, got %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case !(c.InitialTemperature > 0):
		return fmt.Errorf("%w: initial temperature must be positive, got %g", ErrInvalidConfig, c.InitialTemperature)
	case !(c.CoolingFactor > 0 && c.CoolingFactor < 1):
		return fmt.Errorf("%w: cooling factor must be in (0, 1), got %g", ErrInvalidConfig, c.CoolingFactor)
	case !(c.MinTemperature > 0):
		return fmt.Errorf("%w: min temperature must be positive, got %g", ErrInvalidConfig, c.MinTemperature)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case !(c.ForceConstant > 0):
		return fmt.Errorf("%w: force constant must be positive, got %g", ErrInvalidConfig, c.ForceConstant)
	case !(c.Margin > 1.1):
		return fmt.Errorf("%w: margin must exceed 1.1, got %g", ErrInvalidConfig, c.Margin)
	case !(c.Gravity >= 0) || math.IsInf(c.Gravity, 0):
		return fmt.Errorf("%w: gravity must be finite and non-negative, got %g", ErrInvalidConfig, c.Gravity)
	case c.TickDelay < 0:
		return fmt.Errorf("%w: tick delay must not be negative, got %s", ErrInvalidConfig, c.TickDelay)
	}
	return nil
}

// Bounds is the box vertices are clamped into after every move.
func (c Config) Bounds() r2.Box {
	hx := (c.Margin - 0.1) * c.Width
	hy := (c.Margin - 0.1) * c.Height
	return r2.NewBox(-hx, -hy, hx, hy)
}

// IdealDistance is k for a graph of n vertices.
func (c Config) IdealDistance(n int) float64 {
	return physics.IdealDistance(c.ForceConstant, c.Width, c.Height, n)
}
