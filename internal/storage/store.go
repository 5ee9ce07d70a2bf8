package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/config"
	"github.com/san-kum/frlayout/internal/graph"
	"github.com/san-kum/frlayout/internal/loader"
	"github.com/san-kum/frlayout/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	positionsFile = "positions.csv"
	traceFile     = "trace.csv"
	graphFile     = "graph.txt"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Graph     string             `json:"graph"`
	Timestamp time.Time          `json:"timestamp"`
	Vertices  int                `json:"vertices"`
	Edges     int                `json:"edges"`
	Reason    string             `json:"reason"`
	Ticks     int                `json:"ticks"`
	Settled   bool               `json:"settled"`
	SettledAt int                `json:"settled_at"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a finished run under a fresh id and returns the id.
func (s *Store) Save(graphName string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := s.Dir(runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Graph:     graphName,
		Timestamp: time.Now(),
		Vertices:  len(result.IDs),
		Edges:     len(result.Edges),
		Reason:    result.Reason.String(),
		Ticks:     result.Ticks,
		Settled:   result.Settled,
		SettledAt: result.SettledAt,
		Config:    *cfg,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePositions(filepath.Join(runDir, positionsFile), result); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), result.Temperatures); err != nil {
		return "", err
	}
	if err := writeGraph(filepath.Join(runDir, graphFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

// writeFile creates path, hands it to write and reports the first error of
// writing, syncing or closing.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeCSV(path string, rows [][]string) error {
	return writeFile(path, func(f *os.File) error {
		return csv.NewWriter(f).WriteAll(rows)
	})
}

func writePositions(path string, result *sim.Result) error {
	rows := [][]string{{"id", "initial_x", "initial_y", "final_x", "final_y"}}
	for i, id := range result.IDs {
		var start, end r2.Vec
		if i < len(result.Initial) {
			start = result.Initial[i]
		}
		if i < len(result.Final) {
			end = result.Final[i]
		}
		rows = append(rows, []string{id,
			formatFloat(start.X), formatFloat(start.Y),
			formatFloat(end.X), formatFloat(end.Y),
		})
	}
	return writeCSV(path, rows)
}

func writeTrace(path string, temps []float64) error {
	rows := [][]string{{"tick", "temperature"}}
	for i, t := range temps {
		rows = append(rows, []string{strconv.Itoa(i), strconv.FormatFloat(t, 'g', -1, 64)})
	}
	return writeCSV(path, rows)
}

func writeGraph(path string, result *sim.Result) error {
	g, err := graph.New(result.IDs, result.Edges)
	if err != nil {
		return err
	}
	return writeFile(path, func(f *os.File) error {
		return loader.Write(f, g)
	})
}

// List returns the metadata of every stored run, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// LoadPositions returns vertex ids with their initial and final positions.
func (s *Store) LoadPositions(runID string) ([]string, []r2.Vec, []r2.Vec, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), positionsFile))
	if err != nil {
		return nil, nil, nil, err
	}

	ids := make([]string, 0, len(records))
	initial := make([]r2.Vec, 0, len(records))
	final := make([]r2.Vec, 0, len(records))
	for n, rec := range records {
		if len(rec) != 5 {
			return nil, nil, nil, fmt.Errorf("%s row %d: expected 5 fields, got %d", positionsFile, n+1, len(rec))
		}
		v, err := parseFloats(rec[1:])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s row %d: %w", positionsFile, n+1, err)
		}
		ids = append(ids, rec[0])
		initial = append(initial, r2.Vec{X: v[0], Y: v[1]})
		final = append(final, r2.Vec{X: v[2], Y: v[3]})
	}
	return ids, initial, final, nil
}

// LoadTrace returns the temperature after each tick, starting at tick 0.
func (s *Store) LoadTrace(runID string) ([]float64, error) {
	records, err := readCSV(filepath.Join(s.Dir(runID), traceFile))
	if err != nil {
		return nil, err
	}

	temps := make([]float64, 0, len(records))
	for n, rec := range records {
		if len(rec) != 2 {
			return nil, fmt.Errorf("%s row %d: expected 2 fields, got %d", traceFile, n+1, len(rec))
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", traceFile, n+1, err)
		}
		temps = append(temps, t)
	}
	return temps, nil
}

func (s *Store) LoadGraph(runID string) (*graph.Graph, error) {
	return loader.LoadFile(filepath.Join(s.Dir(runID), graphFile))
}

// LoadResult rebuilds the stored parts of a run's result.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	ids, initial, final, err := s.LoadPositions(runID)
	if err != nil {
		return nil, nil, err
	}
	temps, err := s.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.LoadGraph(runID)
	if err != nil {
		return nil, nil, err
	}

	res := &sim.Result{
		Reason:       parseReason(meta.Reason),
		Ticks:        meta.Ticks,
		Settled:      meta.Settled,
		SettledAt:    meta.SettledAt,
		IDs:          ids,
		Edges:        g.Edges(),
		Initial:      initial,
		Final:        final,
		Temperatures: temps,
		Metrics:      meta.Metrics,
	}
	return meta, res, nil
}

func parseReason(s string) sim.Status {
	for _, st := range []sim.Status{sim.Running, sim.Cooled, sim.Exhausted} {
		if st.String() == s {
			return st
		}
	}
	return sim.Running
}
