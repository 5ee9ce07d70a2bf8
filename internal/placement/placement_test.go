package placement

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
)

func TestStrategiesStayInBox(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := ByName(name)
			require.NoError(t, err)

			pos := fn(64, 800, 400, 7)
			require.Len(t, pos, 64)
			for i, p := range pos {
				assert.LessOrEqual(t, math.Abs(p.X), 400.0, "vertex %d", i)
				assert.LessOrEqual(t, math.Abs(p.Y), 200.0, "vertex %d", i)
				assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
			}
		})
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	for _, name := range Names() {
		fn, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, fn(10, 800, 800, 3), fn(10, 800, 800, 3), name)
	}

	assert.NotEqual(t, UniformPlacement(10, 800, 800, 1), UniformPlacement(10, 800, 800, 2))
}

func TestCirclePlacementIsEvenlySpaced(t *testing.T) {
	pos := CirclePlacement(4, 100, 100, 0)
	for i := range pos {
		next := pos[(i+1)%len(pos)]
		assert.InDelta(t, 40*math.Sqrt2, r2.Norm(r2.Sub(next, pos[i])), 1e-9)
	}
}

func TestNoisePlacementSpreads(t *testing.T) {
	pos := NoisePlacement(20, 800, 800, 11)
	distinct := map[r2.Vec]bool{}
	for _, p := range pos {
		distinct[p] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("spiral")
	assert.True(t, errors.Is(err, ErrUnknown))
	assert.Contains(t, err.Error(), "uniform")
}

func TestApply(t *testing.T) {
	g, err := graph.New([]string{"A", "B", "C"}, nil)
	require.NoError(t, err)

	Apply(g, UniformPlacement, 800, 800, 5)
	assert.Equal(t, UniformPlacement(3, 800, 800, 5), g.Positions())
}
