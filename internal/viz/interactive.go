package viz

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/frlayout/internal/config"
	"github.com/san-kum/frlayout/internal/loader"
)

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

const (
	stateGraphs = iota
	statePresets
	stateConfig
	stateSim
)

// param is one editable field of the layout configuration.
type param struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"initial_temp", 10, func(c *config.Config) float64 { return c.InitialTemperature }, func(c *config.Config, v float64) { c.InitialTemperature = v }},
	{"cooling", 0.01, func(c *config.Config) float64 { return c.CoolingFactor }, func(c *config.Config, v float64) { c.CoolingFactor = v }},
	{"min_temp", 0.01, func(c *config.Config) float64 { return c.MinTemperature }, func(c *config.Config, v float64) { c.MinTemperature = v }},
	{"iterations", 10, func(c *config.Config) float64 { return float64(c.MaxIterations) }, func(c *config.Config, v float64) { c.MaxIterations = int(v) }},
	{"force_const", 0.1, func(c *config.Config) float64 { return c.ForceConstant }, func(c *config.Config, v float64) { c.ForceConstant = v }},
	{"gravity", 0.05, func(c *config.Config) float64 { return c.Gravity }, func(c *config.Config, v float64) { c.Gravity = v }},
	{"seed", 1, func(c *config.Config) float64 { return float64(c.Seed) }, func(c *config.Config, v float64) { c.Seed = int64(v) }},
}

type app struct {
	state, cursor int
	dir           string
	graphs        []string
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	liveModel     Model
}

func newApp(dir string) (app, error) {
	graphs, err := loader.List(dir)
	if err != nil {
		return app{}, err
	}
	if len(graphs) == 0 {
		return app{}, fmt.Errorf("no graph files in %s", dir)
	}
	return app{
		state:   stateGraphs,
		dir:     dir,
		graphs:  graphs,
		presets: config.ListPresets(),
		cfg:     config.DefaultConfig(),
	}, nil
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateGraphs:
			return m.graphKey(msg)
		case statePresets:
			return m.presetKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func moveCursor(cursor, n int, key string) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			cursor--
		}
	case "down", "j":
		if cursor < n-1 {
			cursor++
		}
	}
	return cursor
}

func (m app) graphKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", " ":
		m.selected = m.graphs[m.cursor]
		m.state, m.cursor = statePresets, 0
	default:
		m.cursor = moveCursor(m.cursor, len(m.graphs), msg.String())
	}
	return m, nil
}

func (m app) presetKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = stateGraphs, 0
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	default:
		m.cursor = moveCursor(m.cursor, len(m.presets), msg.String())
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				p.set(m.cfg, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = statePresets, 0
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", p.get(m.cfg))
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s":
		return m.start()
	default:
		m.paramCursor = moveCursor(m.paramCursor, len(params), msg.String())
	}
	return m, nil
}

func (m app) start() (app, tea.Cmd) {
	path := filepath.Join(m.dir, m.selected)
	g, err := loader.LoadFile(path)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.cfg.Graph = path
	e, err := m.cfg.NewEngine(g)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = NewModel(e, m.selected, m.cfg.Reseeder(g.Len()))
	m.state, m.err = stateSim, nil
	return m, m.liveModel.Init()
}

func (m app) View() string {
	switch m.state {
	case stateGraphs:
		return m.viewList("FRLAYOUT", "force-directed graph layout", m.graphs, m.cursor, "select")
	case statePresets:
		return m.viewList(strings.ToUpper(m.selected), "choose a preset", m.presets, m.cursor, "select  "+keyStyle.Render("esc")+idleStyle.Render(" back"))
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m app) viewList(title, subtitle string, items []string, cursor int, action string) string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render(title) + "\n    " + subStyle.Render(subtitle) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range items {
		if i == cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", idleStyle.Render("  "+name)))
		}
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + idleStyle.Render(" navigate  ") + keyStyle.Render("enter") + idleStyle.Render(" "+action+"  ") + keyStyle.Render("q") + idleStyle.Render(" quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render("layout parameters") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, p := range params {
		valStr := fmt.Sprintf("%10.3f", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-12s", p.name)), accentStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", p.name)), faintStyle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + idleStyle.Render(" select  ") + keyStyle.Render("h/l") + idleStyle.Render(" adjust  ") + keyStyle.Render("s") + idleStyle.Render(" start  ") + keyStyle.Render("esc") + idleStyle.Render(" back") + "\n")
	return b.String()
}

// RunInteractive opens the graph picker over the files in dir.
func RunInteractive(dir string) error {
	m, err := newApp(dir)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
