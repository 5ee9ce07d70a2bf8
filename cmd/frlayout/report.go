package main

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/sim"
)

func printPositions(w io.Writer, title string, ids []string, positions []r2.Vec) {
	fmt.Fprintln(w, title)
	for i, id := range ids {
		fmt.Fprintf(w, "Node %-7s X position: %10.3f Y position: %10.3f\n", id, positions[i].X, positions[i].Y)
	}
}

// outcome prints how annealing ended. A settled layout reports the tick it
// cooled on; otherwise the iteration cap.
func outcome(w io.Writer, settled bool, settledAt, maxIterations int) {
	if settled {
		fmt.Fprintln(w, "graph cooled completely")
		fmt.Fprintf(w, "number of iterations: %d\n", settledAt)
		return
	}
	fmt.Fprintln(w, "iterations ran short")
	fmt.Fprintf(w, "number of iterations: %d\n", maxIterations)
}

func printReport(w io.Writer, res *sim.Result, maxIterations int) {
	outcome(w, res.Settled, res.SettledAt, maxIterations)
	printPositions(w, "final positions:", res.IDs, res.Final)
}

func printFrameReport(w io.Writer, f sim.Frame, settledAt, maxIterations int) {
	outcome(w, f.Status == sim.Cooled, settledAt, maxIterations)
	printPositions(w, "final positions:", f.IDs, f.Positions)
}

func printMetrics(w io.Writer, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}
