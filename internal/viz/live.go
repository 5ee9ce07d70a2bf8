package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/frlayout/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	vertexRadius    = 1
)

type TickMsg time.Time

// Model drives an engine from bubbletea ticks and draws each frame as
// braille.
type Model struct {
	engine       *sim.Engine
	name         string
	reseed       func() []r2.Vec
	start        []r2.Vec
	delay        time.Duration
	stopOnSettle bool

	width, height int
	canvas        *Canvas
	running       bool
	showLabels    bool
	showHelp      bool
	fit           bool

	temps    []float64
	moves    []float64
	history  []sim.Frame
	playHead int

	recording bool
	frames    []*image.Paletted
	message   string
}

// NewModel wraps an engine. reseed supplies positions for the restart key;
// when nil the layout restarts from where it began.
func NewModel(e *sim.Engine, name string, reseed func() []r2.Vec) Model {
	cfg := e.Config()
	delay := cfg.TickDelay
	if delay <= 0 {
		delay = time.Second / 60
	}
	m := Model{
		engine:       e,
		name:         name,
		reseed:       reseed,
		start:        e.Graph().Positions(),
		delay:        delay,
		stopOnSettle: cfg.StopOnSettle,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		running:      true,
		showLabels:   e.Graph().Len() <= 32,
		temps:        []float64{e.Temperature()},
		history:      make([]sim.Frame, 0, historyCapacity),
		playHead:     -1,
	}
	m.record(e.Frame())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the layout.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "l":
			m.showLabels = !m.showLabels
		case "f":
			m.fit = !m.fit
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.message = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		if m.recording {
			m.draw()
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := max(20, w-statsStyle.GetWidth()-8)
	ch := max(8, h-4)
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// step advances the engine by one tick unless it is done.
func (m *Model) step() {
	if m.engine.Done(m.stopOnSettle) {
		return
	}
	m.engine.Tick()

	m.temps = append(m.temps, m.engine.Temperature())
	if len(m.temps) > historyCapacity {
		m.temps = m.temps[1:]
	}

	var moved float64
	for _, d := range m.engine.LastMoved() {
		moved = max(moved, d)
	}
	m.moves = append(m.moves, moved)
	if len(m.moves) > historyCapacity {
		m.moves = m.moves[1:]
	}

	m.record(m.engine.Frame())
}

func (m *Model) record(f sim.Frame) {
	m.history = append(m.history, f)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) restart() {
	positions := m.start
	if m.reseed != nil {
		positions = m.reseed()
	}
	if err := m.engine.Reset(positions); err != nil {
		m.message = err.Error()
		return
	}
	m.temps = []float64{m.engine.Temperature()}
	m.moves = m.moves[:0]
	m.history = m.history[:0]
	m.playHead = -1
	m.record(m.engine.Frame())
}

// current is the frame on screen: the replayed one while scrubbing.
func (m *Model) current() sim.Frame {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.history[len(m.history)-1]
}

func (m *Model) draw() {
	m.canvas.Clear()
	f := m.current()

	world := m.engine.Config().Bounds()
	if m.fit {
		world = FitBox(f.Positions, 0.05)
	}
	vp := NewViewport(m.canvas, world)

	for _, e := range f.Edges {
		x0, y0 := vp.Project(f.Positions[e.Source])
		x1, y1 := vp.Project(f.Positions[e.Target])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	for i, p := range f.Positions {
		x, y := vp.Project(p)
		m.canvas.DrawDisc(x, y, vertexRadius)
		if m.showLabels {
			m.canvas.Label(x+2*vertexRadius+1, y, f.IDs[i])
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	f := m.current()
	cfg := m.engine.Config()

	canvasView := canvasStyle.Render(fg(CurrentTheme.Canvas).Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(titleStyle().Render(strings.ToUpper(m.name)) + "\n")

	status := StatusText(f.Status, !m.running)
	if m.playHead != -1 {
		status = fg(CurrentTheme.Warn).Render(fmt.Sprintf("REPLAY (%d)", f.Tick-m.engine.Ticks()))
	}
	if m.recording {
		status += " " + fg(CurrentTheme.Warn).Blink(true).Render("● REC")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Vertices", fmt.Sprintf("%d", len(f.IDs)))
	row("Edges", fmt.Sprintf("%d", len(f.Edges)))
	row("Tick", fmt.Sprintf("%d / %d", f.Tick, cfg.MaxIterations))
	row("Temp", fmt.Sprintf("%.4f", f.Temperature))
	row("k", fmt.Sprintf("%.2f", m.engine.K()))
	if m.engine.Settled() {
		row("Settled", fmt.Sprintf("tick %d", m.engine.SettledAt()))
	}
	s.WriteString("\n" + ProgressBar(float64(f.Tick)/float64(cfg.MaxIterations), 30) + "\n")

	if len(m.temps) > 1 {
		chart := asciigraph.Plot(m.temps, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("temperature"))
		s.WriteString(graphStyle.Render(fg(CurrentTheme.Canvas).Render(chart)) + "\n")
	}
	if len(m.moves) > 0 {
		s.WriteString(labelStyle().Render("Moved") + valueStyle().Render(Sparkline(m.moves, 30)) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + fg(CurrentTheme.Muted).Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\nL:Labels F:Fit T:Theme\nG:Record [ ]:Replay ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume layout      ║
║  R        - Restart from new seed    ║
║  Q        - Quit                     ║
║  L        - Toggle vertex labels     ║
║  F        - Fit view to vertices     ║
║  [        - Rewind                   ║
║  ]        - Forward                  ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			pattern := int(m.canvas.Grid[row][col] - brailleBase)
			if pattern <= 0 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	name := "layout.gif"
	f, err := os.Create(name)
	if err != nil {
		m.message = err.Error()
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", len(m.frames), name)
}

// RunLive runs the model full screen until the user quits.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
