package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/experiment"
)

const (
	stateMenu = iota
	stateSim
)

// Menu lists the catalog topics that have a simulation and opens the
// selected one in a live view. Esc returns from the view to the list.
type Menu struct {
	state   int
	cursor  int
	topics  []catalog.Entry
	reg     *experiment.Registry
	opts    Options
	live    Model
	st      styles
	lastErr error
}

func NewMenu(reg *experiment.Registry, cat *catalog.Catalog, o Options) Menu {
	var topics []catalog.Entry
	for _, e := range cat.Entries() {
		if e.Topic.Simulation != "" {
			topics = append(topics, e)
		}
	}
	return Menu{
		state:  stateMenu,
		topics: topics,
		reg:    reg,
		opts:   o,
		st:     newStyles(GetTheme(o.Theme)),
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.live.Close()
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.open()
	}
	return m, nil
}

func (m Menu) open() (Menu, tea.Cmd) {
	if len(m.topics) == 0 {
		return m, nil
	}
	topic := m.topics[m.cursor]
	entry, err := m.reg.Get(topic.Topic.Simulation)
	if err != nil {
		m.lastErr = err
		return m, nil
	}
	o := m.opts
	o.Topic = topic.Path
	m.live = NewModel(entry, o)
	m.state = stateSim
	m.lastErr = nil
	return m, m.live.Init()
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + m.st.active.Render("VISUALEARN") + "\n    " + m.st.subtle.Render("interactive science simulations") + "\n    " + m.st.Separator(32) + "\n\n")
	for i, t := range m.topics {
		title := fmt.Sprintf("%-24s", t.Topic.Title)
		if i == m.cursor {
			b.WriteString("    " + m.st.active.Render("▸ "+title) + "  " + m.st.value.Render(t.Path) + "\n")
		} else {
			b.WriteString("      " + m.st.subtle.Render(title+"  "+t.Path) + "\n")
		}
	}
	if m.lastErr != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(ThemeDefault.Error).Render(m.lastErr.Error()) + "\n")
	}
	b.WriteString("\n    " + m.st.help.Render("j/k navigate  enter open  esc back  q quit") + "\n")
	return b.String()
}

// Selected returns the topic under the cursor.
func (m Menu) Selected() (catalog.Entry, bool) {
	if len(m.topics) == 0 {
		return catalog.Entry{}, false
	}
	return m.topics[m.cursor], true
}

// RunInteractive opens the topic menu and blocks until it quits.
func RunInteractive(reg *experiment.Registry, cat *catalog.Catalog, o Options) error {
	_, err := tea.NewProgram(NewMenu(reg, cat, o), tea.WithAltScreen()).Run()
	return err
}
