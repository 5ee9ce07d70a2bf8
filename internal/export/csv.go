package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes one row per vertex: id, x, y.
func WriteCSV(w io.Writer, l Layout) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "x", "y"}); err != nil {
		return err
	}
	for i, id := range l.IDs {
		p := l.Positions[i]
		if err := cw.Write([]string{id,
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
