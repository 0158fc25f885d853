package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/experiment"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newPendulum(t *testing.T) Model {
	t.Helper()
	entry, err := experiment.NewRegistry().Get("pendulum")
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(entry, Options{FPS: 30})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick() tea.Msg { return TickMsg(time.Now()) }

func TestModelTicksAdvanceFrames(t *testing.T) {
	m := newPendulum(t)
	if !m.Simulation().Playing() {
		t.Fatal("live view should start playing")
	}

	m = send(m, tick(), tick(), tick())
	if got := m.Simulation().Frames(); got != 3 {
		t.Errorf("expected 3 frames, got %d", got)
	}
	if got := m.Simulation().Time(); got < 0.047 || got > 0.049 {
		t.Errorf("expected t=0.048, got %f", got)
	}
	if len(m.history.series["theta"]) != 3 {
		t.Errorf("expected 3 theta samples, got %d", len(m.history.series["theta"]))
	}
}

func TestModelPauseFreezesTime(t *testing.T) {
	m := newPendulum(t)
	m = send(m, tick(), tea.KeyMsg{Type: tea.KeySpace})
	if m.Simulation().Playing() {
		t.Fatal("space should pause")
	}
	before := m.Simulation().Time()
	m = send(m, tick(), tick())
	if m.Simulation().Time() != before {
		t.Errorf("paused time moved from %f to %f", before, m.Simulation().Time())
	}
}

func TestModelReset(t *testing.T) {
	m := newPendulum(t)
	m = send(m, tick(), tick(), runes("r"))
	if m.Simulation().Time() != 0 || m.Simulation().Playing() {
		t.Errorf("reset should rewind and pause, got t=%f playing=%v", m.Simulation().Time(), m.Simulation().Playing())
	}
	if len(m.history.series["theta"]) != 0 {
		t.Error("reset should clear the chart history")
	}
}

func TestModelTuneParams(t *testing.T) {
	m := newPendulum(t)
	m = send(m, runes("k"))
	angle, _ := m.Simulation().Params().Get("angle")
	if angle != 31 {
		t.Errorf("expected angle 31, got %f", angle)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("j"))
	length, _ := m.Simulation().Params().Get("length")
	if length != 140 {
		t.Errorf("expected length 140, got %f", length)
	}

	m = send(m, runes("d"))
	length, _ = m.Simulation().Params().Get("length")
	if length != 150 {
		t.Errorf("expected default length, got %f", length)
	}
}

func TestModelScrub(t *testing.T) {
	m := newPendulum(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, runes("]"))
	if got := m.Simulation().Time(); got < 0.479 || got > 0.481 {
		t.Errorf("expected t=0.48 after scrub, got %f", got)
	}
	m = send(m, runes("["), runes("["))
	if m.Simulation().Time() != 0 {
		t.Errorf("scrubbing past zero should clamp, got %f", m.Simulation().Time())
	}
}

func TestModelQuit(t *testing.T) {
	m := newPendulum(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	m = send(m, tick())
	if m.Simulation().Frames() != 0 {
		t.Error("closed simulation must not render")
	}
}

func TestModelView(t *testing.T) {
	m := newPendulum(t)
	m = send(m, tick(), tick())
	view := m.View()
	for _, want := range []string{"SIMPLE PENDULUM", "PLAYING", "theta", "angle", "damping"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, runes("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}
}

type fakeSound struct {
	hz     []float64
	paused bool
}

func (f *fakeSound) SetFrequency(hz float64) { f.hz = append(f.hz, hz) }
func (f *fakeSound) SetPaused(p bool)        { f.paused = p }
func (f *fakeSound) Close()                  {}

func TestModelDopplerSound(t *testing.T) {
	entry, _ := experiment.NewRegistry().Get("doppler")
	sound := &fakeSound{paused: true}
	m := NewModel(entry, Options{Sound: sound})

	m = send(m, runes("s"), tick())
	if sound.paused {
		t.Error("s should unmute while playing")
	}
	if len(sound.hz) != 1 {
		t.Errorf("expected one retune per frame, got %d", len(sound.hz))
	}

	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	if !sound.paused {
		t.Error("pausing the simulation should pause the tone")
	}
	if !strings.Contains(m.View(), "Sound") {
		t.Error("expected sound readout")
	}
}

func TestSoundIgnoredOutsideDoppler(t *testing.T) {
	entry, _ := experiment.NewRegistry().Get("wave")
	sound := &fakeSound{}
	m := NewModel(entry, Options{Sound: sound})
	send(m, tick())
	if len(sound.hz) != 0 {
		t.Error("only the doppler view drives the tone")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "default" {
		t.Error("unknown theme should fall back to default")
	}
	if NextTheme("contrast").Name != "default" {
		t.Error("theme cycle should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestProgressBar(t *testing.T) {
	st := newStyles(ThemeDefault)
	bar := st.ProgressBar(0.5, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("unexpected bar %q", bar)
	}
	if strings.Count(st.ProgressBar(2, 10), "█") != 10 {
		t.Error("bar should saturate")
	}
}

func TestMenuOpensTopic(t *testing.T) {
	m := NewMenu(experiment.NewRegistry(), catalog.Default(), Options{})
	first, ok := m.Selected()
	if !ok || first.Topic.Simulation != "pendulum" {
		t.Fatalf("expected pendulum first, got %+v", first)
	}

	next, _ := m.Update(runes("j"))
	m = next.(Menu)
	sel, _ := m.Selected()
	if sel.Topic.Simulation != "projectile" {
		t.Errorf("expected projectile second, got %s", sel.Topic.Simulation)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Menu)
	if m.state != stateSim || cmd == nil {
		t.Fatal("enter should open the live view")
	}
	if !strings.Contains(m.View(), "physics/motion/projectile-motion") {
		t.Error("live view should show the topic path")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Menu)
	if m.state != stateMenu {
		t.Error("esc should return to the menu")
	}
	if !strings.Contains(m.View(), "VISUALEARN") {
		t.Error("expected menu view")
	}
}

func TestModelStartingParams(t *testing.T) {
	entry, err := experiment.NewRegistry().Get("pendulum")
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(entry, Options{Params: map[string]float64{"angle": 60, "length": 9000, "bogus": 1}})
	defer m.Close()

	vals := m.Simulation().Params().Values()
	if vals["angle"] != 60 {
		t.Errorf("expected angle 60, got %f", vals["angle"])
	}
	if vals["length"] != 300 {
		t.Errorf("expected length clamped to 300, got %f", vals["length"])
	}
}
