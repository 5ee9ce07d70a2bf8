package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/frlayout/internal/sim"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func titleStyle() lipgloss.Style { return fg(CurrentTheme.Title).Bold(true).MarginBottom(1) }
func labelStyle() lipgloss.Style { return fg(CurrentTheme.Label).Width(12) }
func valueStyle() lipgloss.Style { return fg(CurrentTheme.Value) }

// StatusText renders an engine status with the theme's colors.
func StatusText(s sim.Status, paused bool) string {
	switch {
	case paused:
		return fg(CurrentTheme.Warn).Bold(true).Render("PAUSED")
	case s == sim.Cooled:
		return fg(CurrentTheme.Cooled).Bold(true).Render("COOLED")
	case s == sim.Exhausted:
		return fg(CurrentTheme.Warn).Bold(true).Render("EXHAUSTED")
	default:
		return fg(CurrentTheme.Value).Bold(true).Render("RUNNING")
	}
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fg(CurrentTheme.Canvas).Render(bar)
}

// Sparkline renders the last width values as block characters scaled between
// their minimum and maximum.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
