package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/frlayout/internal/sim"
)

type ExportVertex struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type ExportEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type ExportData struct {
	Reason       string             `json:"reason"`
	Ticks        int                `json:"ticks"`
	Settled      bool               `json:"settled"`
	SettledAt    int                `json:"settled_at"`
	Initial      []ExportVertex     `json:"initial"`
	Final        []ExportVertex     `json:"final"`
	Edges        []ExportEdge       `json:"edges"`
	Temperatures []float64          `json:"temperatures"`
	Metrics      map[string]float64 `json:"metrics"`
}

func vertices(l Layout) []ExportVertex {
	out := make([]ExportVertex, len(l.IDs))
	for i, id := range l.IDs {
		out[i] = ExportVertex{ID: id, X: l.Positions[i].X, Y: l.Positions[i].Y}
	}
	return out
}

// WriteJSON writes the full outcome of a run.
func WriteJSON(w io.Writer, res *sim.Result) error {
	initial := FromResult("", res, true)
	data := ExportData{
		Reason:       res.Reason.String(),
		Ticks:        res.Ticks,
		Settled:      res.Settled,
		SettledAt:    res.SettledAt,
		Initial:      vertices(initial),
		Final:        vertices(FromResult("", res, false)),
		Edges:        make([]ExportEdge, len(res.Edges)),
		Temperatures: res.Temperatures,
		Metrics:      res.Metrics,
	}
	for i, e := range res.Edges {
		data.Edges[i] = ExportEdge{Source: res.IDs[e.Source], Target: res.IDs[e.Target]}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
