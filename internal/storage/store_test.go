package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/config"
	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Reason:       sim.Cooled,
		Ticks:        400,
		Settled:      true,
		SettledAt:    167,
		IDs:          []string{"A", "B", "C"},
		Edges:        []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		Initial:      []r2.Vec{{X: 1, Y: 2}, {X: -3, Y: 4}, {X: 5, Y: -6}},
		Final:        []r2.Vec{{X: 10.5, Y: 0}, {X: 0, Y: -10.25}, {X: 7, Y: 7}},
		Temperatures: []float64{250, 237.5, 225.625},
		Metrics:      map[string]float64{"energy": 12.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 9
	result := sampleResult()

	runID, err := st.Save("graphs/k3.txt", cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Graph != "graphs/k3.txt" || meta.Vertices != 3 || meta.Edges != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Reason != "cooled" || meta.SettledAt != 167 {
		t.Errorf("unexpected outcome %s/%d", meta.Reason, meta.SettledAt)
	}
	if meta.Config.Seed != 9 || meta.Config.TickDelay != cfg.TickDelay {
		t.Errorf("config not preserved: %+v", meta.Config)
	}
	if meta.Metrics["energy"] != 12.5 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	ids, initial, final, err := st.LoadPositions(runID)
	if err != nil {
		t.Fatalf("load positions failed: %v", err)
	}
	if len(ids) != 3 || ids[1] != "B" {
		t.Errorf("unexpected ids %v", ids)
	}
	for i := range ids {
		if !near(initial[i], result.Initial[i]) || !near(final[i], result.Final[i]) {
			t.Errorf("vertex %d: got %v/%v", i, initial[i], final[i])
		}
	}

	temps, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(temps) != 3 || temps[2] != 225.625 {
		t.Errorf("unexpected trace %v", temps)
	}

	_, res, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if res.Reason != sim.Cooled || len(res.Edges) != 2 || res.Edges[1] != (graph.Edge{Source: 1, Target: 2}) {
		t.Errorf("unexpected result %+v", res)
	}
}

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save("g.txt", config.DefaultConfig(), sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("expected distinct run ids")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := st.LoadResult("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteJSONReportsErrors(t *testing.T) {
	dir := t.TempDir()

	if err := writeJSON(filepath.Join(dir, "missing", "meta.json"), 1); err == nil {
		t.Error("expected error creating file in a missing directory")
	}
	if err := writeJSON(filepath.Join(dir, "bad.json"), math.Inf(1)); err == nil {
		t.Error("expected error encoding +Inf")
	}

	path := filepath.Join(dir, "ok.json")
	if err := writeJSON(path, map[string]int{"ticks": 167}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"ticks\": 167\n}\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}
