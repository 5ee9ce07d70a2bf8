package export

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// PositionMatrix returns an n by 2 matrix with one row per vertex.
func PositionMatrix(positions []r2.Vec) *mat.Dense {
	if len(positions) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(positions), 2, nil)
	for i, p := range positions {
		m.Set(i, 0, p.X)
		m.Set(i, 1, p.Y)
	}
	return m
}

// DistanceMatrix returns the symmetric matrix of pairwise vertex distances.
func DistanceMatrix(positions []r2.Vec) *mat.SymDense {
	n := len(positions)
	if n == 0 {
		return &mat.SymDense{}
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, r2.Norm(r2.Sub(positions[i], positions[j])))
		}
	}
	return d
}

// WriteMatrix prints m in gonum's plain text format.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	if r, c := m.Dims(); r == 0 || c == 0 {
		_, err := io.WriteString(w, "[]\n")
		return err
	}
	_, err := fmt.Fprintf(w, "%.4f\n", mat.Formatted(m, mat.Squeeze()))
	return err
}
