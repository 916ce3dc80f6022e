package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/slitsim/internal/export"
	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/storage"
	"github.com/san-kum/slitsim/internal/viz"
)

var (
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const (
	gifFrameLimit = 600
	profileHeight = 5
)

type Options struct {
	FPS    int
	Theme  string
	Store  *storage.Store
	GIFDir string
}

// Model is the terminal waterfall. It owns the loop's render goroutine: rows
// are appended from Update on every frame tick.
type Model struct {
	loop  *sim.Loop
	tuner sim.Tuner
	store *storage.Store

	fps    int
	theme  int
	ascii  bool
	gifDir string

	rec       *export.GIFRecorder
	recording bool
	gifEvery  int

	status string
	width  int
	height int
}

func NewModel(loop *sim.Loop, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFDir == "" {
		opts.GIFDir = "."
	}
	every, delay := export.FrameStride(opts.FPS, 1)
	return Model{
		loop:     loop,
		store:    opts.Store,
		fps:      opts.FPS,
		theme:    themeIndex(opts.Theme),
		gifDir:   opts.GIFDir,
		rec:      export.NewGIFRecorder(delay, gifFrameLimit),
		gifEvery: every,
		width:    80,
		height:   24,
	}
}

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.loop.Play()
	return tick(m.fps)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.loop.Tick() && m.recording && m.loop.Ticks()%m.gifEvery == 0 {
			m.rec.Capture(m.loop.Heatmap())
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		if m.loop.Toggle() {
			m.status = "playing"
		} else {
			m.status = "paused"
		}
	case "tab":
		m.tuner.Cycle(1)
	case "shift+tab":
		m.tuner.Cycle(-1)
	case "up", "k":
		m.nudge(1)
	case "down", "j":
		m.nudge(-1)
	case "r":
		h := m.loop.Heatmap()
		if err := m.loop.Renderer().Recreate(h.Width(), h.Height()); err != nil {
			m.status = err.Error()
		} else {
			m.status = "cleared"
		}
	case "s":
		m.save()
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.rec.Reset()
			m.recording = true
			m.status = "recording"
		}
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.status = "theme " + Themes[m.theme].Name
	case "a":
		m.ascii = !m.ascii
	}
	return m, nil
}

func (m *Model) nudge(dir int) {
	if _, err := m.tuner.Nudge(m.loop, dir); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) save() {
	if m.store == nil {
		m.status = "no data dir"
		return
	}
	if err := m.store.Init(); err != nil {
		m.status = err.Error()
		return
	}
	id, err := m.store.SaveLoop(m.loop)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + id
}

func (m *Model) stopRecording() {
	m.recording = false
	if m.rec.Len() == 0 {
		m.status = "nothing recorded"
		return
	}
	path := filepath.Join(m.gifDir, fmt.Sprintf("slitsim_%d.gif", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		m.status = err.Error()
		return
	}
	defer f.Close()
	if err := m.rec.Encode(f); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("wrote %s (%d frames)", path, m.rec.Len())
	m.rec.Reset()
}

func (m Model) View() string {
	cols := m.width - 6
	if cols < 20 {
		cols = 20
	}
	rows := m.height - profileHeight - 14
	if rows < 6 {
		rows = 6
	}
	theme := Themes[m.theme]
	accent := lipgloss.NewStyle().Foreground(theme.Accent)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if !m.loop.Playing() {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	rec := ""
	if m.recording {
		rec = "  " + red.Render(fmt.Sprintf("REC %d", m.rec.Len()))
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s%s\n\n",
		statusIcon, accent.Render("slitsim"), statusText,
		dim.Render(fmt.Sprintf("offset %.2f", m.loop.Renderer().Offset())), rec))

	var water string
	if m.ascii {
		water = renderASCII(m.loop.Heatmap(), cols, rows)
	} else {
		water = renderBlocks(m.loop.Heatmap(), cols, rows, theme)
	}
	for _, line := range strings.Split(strings.TrimRight(water, "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}

	if graph := m.profile(cols - 8); graph != "" {
		b.WriteString("\n" + accent.Render(graph) + "\n")
	}

	b.WriteString("\n")
	for i, line := range m.tuner.Describe(m.loop.Params()) {
		if i == m.tuner.Index() {
			b.WriteString("   " + white.Render(line) + "\n")
		} else {
			b.WriteString("   " + dim.Render(line) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n   " + accent.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dimmer.Render("   space play  tab param  ↑↓ adjust  r clear  s save  g gif  t theme  a ascii  q quit") + "\n")

	return b.String()
}

// profile plots the newest normalized row.
func (m Model) profile(width int) string {
	gray := m.loop.Renderer().LastGray()
	if m.loop.Ticks() == 0 || len(gray) < 2 || width < 2 {
		return ""
	}
	data := make([]float64, len(gray))
	for i, g := range gray {
		data[i] = float64(g)
	}
	return asciigraph.Plot(viz.DownsampleRow(data, width),
		asciigraph.Height(profileHeight),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(255),
		asciigraph.Caption("newest row"))
}

func RunInteractive(loop *sim.Loop, opts Options) error {
	p := tea.NewProgram(NewModel(loop, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
