package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/visualearn/internal/audio"
	"github.com/san-kum/visualearn/internal/canvas"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/sim"
)

const (
	canvasCols      = 80
	canvasRows      = 22
	historyCapacity = 300
	scrubFrames     = 30
	defaultFPS      = 60
)

type TickMsg time.Time

// SoundPlayer is the tone output a Doppler view drives.
type SoundPlayer interface {
	audio.Tuner
	SetPaused(paused bool)
	Close()
}

// Options configures a live view.
type Options struct {
	FPS   int
	Theme string
	// Topic is the catalog path shown under the title.
	Topic string
	// Params are starting slider values, clamped to their ranges. Unknown
	// names are ignored.
	Params  map[string]float64
	Sound   SoundPlayer
	SimOpts []sim.Option
}

// history keeps the latest readouts and a bounded trace of each field.
type history struct {
	latest []sim.Field
	names  []string
	series map[string][]float64
	limit  int
}

func newHistory(limit int) *history {
	return &history{series: make(map[string][]float64), limit: limit}
}

func (h *history) OnFrame(_ float64, obs sim.Observation) {
	h.latest = obs.Fields()
	for _, f := range h.latest {
		s, ok := h.series[f.Name]
		if !ok {
			h.names = append(h.names, f.Name)
		}
		s = append(s, f.Value)
		if len(s) > h.limit {
			s = s[1:]
		}
		h.series[f.Name] = s
	}
}

func (h *history) reset() {
	h.latest = nil
	for k := range h.series {
		h.series[k] = h.series[k][:0]
	}
}

// Model is one simulation running in the terminal. Frames are fired from
// the Bubble Tea tick, so the simulation never runs off the UI goroutine.
type Model struct {
	entry    experiment.Entry
	sim      sim.Simulation
	sched    *sim.ManualScheduler
	surface  *canvas.Braille
	history  *history
	fps      int
	theme    Theme
	st       styles
	topic    string
	selected int
	chart    int
	showHelp bool
	sound    SoundPlayer
	soundOn  bool
	width    int
	height   int
}

// NewModel creates the simulation, draws t=0 and starts playing.
func NewModel(entry experiment.Entry, o Options) Model {
	fps := o.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	sched := sim.NewManualScheduler()
	s := entry.New(sched, o.SimOpts...)
	for name, v := range o.Params {
		_, _ = s.Params().Set(name, v)
	}
	surface := canvas.NewBraille(canvasCols, canvasRows)
	h := newHistory(historyCapacity)
	s.AddObserver(h)

	var sound SoundPlayer
	if o.Sound != nil && entry.Name == "doppler" {
		sound = o.Sound
		s.AddObserver(audio.NewSonifier(sound))
	}

	s.Attach(surface)
	s.Redraw()
	s.Play()

	theme := GetTheme(o.Theme)
	return Model{
		entry:   entry,
		sim:     s,
		sched:   sched,
		surface: surface,
		history: h,
		fps:     fps,
		theme:   theme,
		st:      newStyles(theme),
		topic:   o.Topic,
		sound:   sound,
		width:   canvasCols,
		height:  canvasRows,
	}
}

// Simulation exposes the running instance.
func (m Model) Simulation() sim.Simulation { return m.sim }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and fires due frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case " ":
			m.sim.Toggle()
			m.syncSound()
		case "r":
			m.sim.Reset()
			m.history.reset()
			m.sim.Redraw()
			m.syncSound()
		case "d":
			m.sim.Params().Reset()
			m.redrawIfPaused()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.nudgeParam(1)
		case "down", "j":
			m.nudgeParam(-1)
		case "[":
			m.scrub(-scrubFrames)
		case "]":
			m.scrub(scrubFrames)
		case "c":
			if n := len(m.history.names); n > 0 {
				m.chart = (m.chart + 1) % n
			}
		case "s":
			if m.sound != nil {
				m.soundOn = !m.soundOn
				m.syncSound()
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.sched.Fire()
		return m, m.tick()
	}
	return m, nil
}

// Close stops the simulation and silences any tone.
func (m Model) Close() {
	m.sim.Close()
	if m.sound != nil {
		m.sound.SetPaused(true)
	}
}

func (m *Model) cycleParam() {
	names := m.sim.Params().Names()
	if len(names) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(names)
}

func (m *Model) nudgeParam(steps int) {
	names := m.sim.Params().Names()
	if len(names) == 0 {
		return
	}
	if _, err := m.sim.Params().Nudge(names[m.selected], steps); err != nil {
		return
	}
	m.redrawIfPaused()
}

// scrub moves the clock by whole frames of the current step.
func (m *Model) scrub(frames int) {
	m.sim.Seek(m.sim.Time() + float64(frames)*m.sim.Step())
	m.redrawIfPaused()
}

func (m *Model) redrawIfPaused() {
	if !m.sim.Playing() {
		m.sim.Redraw()
	}
}

func (m *Model) syncSound() {
	if m.sound == nil {
		return
	}
	m.sound.SetPaused(!m.soundOn || !m.sim.Playing())
}

func (m Model) readouts() []sim.Field {
	if len(m.history.latest) > 0 {
		return m.history.latest
	}
	return m.sim.State().Fields()
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.st

	var head strings.Builder
	head.WriteString(st.header.Render(strings.ToUpper(m.entry.Title)))
	if m.topic != "" {
		head.WriteString("\n" + st.subtle.Render(m.topic))
	}
	canvasView := lipgloss.JoinVertical(lipgloss.Left, head.String(), st.canvas.Render(m.surface.String()))

	var s strings.Builder
	status := st.paused.Render("⏸ PAUSED")
	if m.sim.Playing() {
		status = st.playing.Render("▶ PLAYING")
	}
	s.WriteString(status + "\n\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2f", m.sim.Time())) + "\n")
	s.WriteString(st.label.Render("Frames") + st.value.Render(fmt.Sprintf("%d", m.sim.Frames())) + "\n")
	if m.sound != nil {
		on := "off"
		if m.soundOn {
			on = "on"
		}
		s.WriteString(st.label.Render("Sound") + st.value.Render(on) + "\n")
	}

	s.WriteString("\n" + st.Separator(40) + "\nREADOUTS\n")
	for _, f := range m.readouts() {
		v := fmt.Sprintf("%.3f", f.Value)
		if f.Unit != "" {
			v += " " + f.Unit
		}
		s.WriteString(st.label.Render(f.Name) + st.value.Render(v) + "\n")
	}

	if len(m.history.names) > 0 {
		name := m.history.names[m.chart%len(m.history.names)]
		if series := m.history.series[name]; len(series) > 1 {
			chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption(name))
			s.WriteString(st.graph.Render(chart) + "\n")
		}
	}

	s.WriteString("\n" + st.Separator(40) + "\nPARAMETERS\n")
	values := m.sim.Params().Values()
	for i, spec := range m.sim.Params().Specs() {
		v := values[spec.Name]
		ratio := 0.0
		if spec.Max > spec.Min {
			ratio = (v - spec.Min) / (spec.Max - spec.Min)
		}
		line := fmt.Sprintf("%-12s %s %g", spec.Name, st.ProgressBar(ratio, 10), v)
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString(st.help.Render("SP:Play/Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune D:Defaults\n[ ]:Scrub C:Chart T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  R        - Reset to t=0             ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Raise parameter one step ║
║  Down/J   - Lower parameter one step ║
║  D        - Default parameters       ║
║  [ / ]    - Scrub back / forward     ║
║  C        - Chart next readout       ║
║  S        - Toggle Doppler tone      ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run opens the live view for one simulation and blocks until it quits.
func Run(entry experiment.Entry, o Options) error {
	_, err := tea.NewProgram(NewModel(entry, o), tea.WithAltScreen()).Run()
	return err
}
