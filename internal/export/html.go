package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders the layout as an interactive ECharts page with every
// vertex pinned at its computed position.
func WriteHTML(w io.Writer, l Layout) error {
	nodes := make([]opts.GraphNode, len(l.IDs))
	for i, id := range l.IDs {
		nodes[i] = opts.GraphNode{
			Name:  id,
			X:     float32(l.Positions[i].X),
			Y:     float32(-l.Positions[i].Y),
			Fixed: opts.Bool(true),
		}
	}

	seen := make(map[[2]int]bool, len(l.Edges))
	links := make([]opts.GraphLink, 0, len(l.Edges))
	for _, e := range l.Edges {
		key := [2]int{min(e.Source, e.Target), max(e.Source, e.Target)}
		if e.Source == e.Target || seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, opts.GraphLink{
			Source: l.IDs[e.Source],
			Target: l.IDs[e.Target],
		})
	}

	title := l.Title
	if title == "" {
		title = "frlayout"
	}

	g := charts.NewGraph()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	g.AddSeries(
		"layout",
		nodes,
		links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:    "none",
			Roam:      opts.Bool(true),
			Draggable: opts.Bool(false),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "right",
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: svgEdge,
			Width: 1.5,
		}),
	)
	return g.Render(w)
}
