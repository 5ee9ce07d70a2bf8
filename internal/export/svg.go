package export

import (
	"fmt"
	"html"
	"strings"
)

const (
	svgBackground = "#0a0a0a"
	svgEdge       = "#3b82f6"
	svgVertex     = "#f97316"
	svgLabel      = "#e5e5e5"
)

// LayoutToSVG draws the layout scaled into a width by height image.
func LayoutToSVG(l Layout, width, height int) string {
	b := l.Bounds(0.1)
	size := b.Size()
	scale := min(float64(width)/size.X, float64(height)/size.Y)
	project := func(i int) (float64, float64) {
		p := l.Positions[i]
		return (p.X - b.Min.X) * scale, float64(height) - (p.Y-b.Min.Y)*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	if l.Title != "" {
		sb.WriteString(fmt.Sprintf(`<title>%s</title>
`, html.EscapeString(l.Title)))
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1.5">
`, svgEdge))
	for _, e := range l.Edges {
		x1, y1 := project(e.Source)
		x2, y2 := project(e.Target)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, svgVertex))
	for i := range l.Positions {
		x, y := project(i)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="6"/>
`, x, y))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s" font-family="monospace" font-size="11">
`, svgLabel))
	for i, id := range l.IDs {
		x, y := project(i)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%s</text>
`, x+8, y-8, html.EscapeString(id)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a series against its index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
