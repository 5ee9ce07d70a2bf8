package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/sim"
)

func triangle() *sim.Result {
	return &sim.Result{
		Reason:       sim.Cooled,
		Ticks:        400,
		Settled:      true,
		SettledAt:    167,
		IDs:          []string{"A", "B", "<C>"},
		Edges:        []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 0}, {Source: 1, Target: 0}},
		Initial:      []r2.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}},
		Final:        []r2.Vec{{X: 0, Y: 100}, {X: -86.6, Y: -50}, {X: 86.6, Y: -50}},
		Temperatures: []float64{250, 237.5},
		Metrics:      map[string]float64{"energy": 3},
	}
}

func TestBounds(t *testing.T) {
	l := FromResult("", triangle(), false)
	b := l.Bounds(0)
	assert.InDelta(t, -86.6, b.Min.X, 1e-9)
	assert.InDelta(t, 100, b.Max.Y, 1e-9)

	single := Layout{Positions: []r2.Vec{{X: 5, Y: 5}}}
	sb := single.Bounds(0.5)
	assert.InDelta(t, 4.5, sb.Min.X, 1e-9)
	assert.InDelta(t, 5.5, sb.Max.Y, 1e-9)
}

func TestLayoutToSVG(t *testing.T) {
	svg := LayoutToSVG(FromResult("tri", triangle(), false), 400, 300)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 4, strings.Count(svg, "<line "))
	assert.Equal(t, 3, strings.Count(svg, "<circle "))
	assert.Contains(t, svg, "&lt;C&gt;")
	assert.Contains(t, svg, "<title>tri</title>")
}

func TestSeriesToSVG(t *testing.T) {
	assert.Empty(t, SeriesToSVG([]float64{1}, 100, 100, "#fff"))

	svg := SeriesToSVG([]float64{4, 2, 1}, 100, 50, "#ff0000")
	assert.Contains(t, svg, `stroke="#ff0000"`)
	assert.Equal(t, 2, strings.Count(svg, " L"))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, FromResult("tri layout", triangle(), false)))

	out := buf.String()
	assert.Contains(t, out, "tri layout")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "none")
}

func TestPositionMatrix(t *testing.T) {
	m := PositionMatrix(triangle().Final)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, -86.6, m.At(1, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Contains(t, buf.String(), "100.0000")

	buf.Reset()
	require.NoError(t, WriteMatrix(&buf, PositionMatrix(nil)))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDistanceMatrix(t *testing.T) {
	d := DistanceMatrix([]r2.Vec{{}, {X: 3, Y: 4}, {X: 6, Y: 8}})
	assert.Equal(t, 0.0, d.At(1, 1))
	assert.InDelta(t, 5, d.At(0, 1), 1e-12)
	assert.InDelta(t, 5, d.At(1, 0), 1e-12)
	assert.InDelta(t, 10, d.At(2, 0), 1e-12)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, FromResult("", triangle(), true)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"id", "x", "y"}, records[0])
	assert.Equal(t, []string{"B", "2.000000", "2.000000"}, records[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, triangle()))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "cooled", data.Reason)
	assert.Equal(t, 167, data.SettledAt)
	assert.Equal(t, ExportEdge{Source: "<C>", Target: "A"}, data.Edges[2])
	assert.Equal(t, 1.0, data.Initial[0].X)
	assert.Equal(t, 100.0, data.Final[0].Y)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.svg", "out.html", "out.csv", "out.json", "out.mat"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, "tri", triangle()), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	err := WriteFile(filepath.Join(dir, "out.png"), "tri", triangle())
	assert.ErrorContains(t, err, "unknown export format")
	assert.Equal(t, []string{"csv", "html", "json", "mat", "svg"}, Formats())
}
