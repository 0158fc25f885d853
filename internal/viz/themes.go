package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeDefault = Theme{
		Name:       "default",
		Primary:    lipgloss.Color("#3b82f6"), // blue
		Secondary:  lipgloss.Color("#10b981"), // green
		Accent:     lipgloss.Color("#f59e0b"), // amber
		Background: lipgloss.Color("#0f172a"),
		Text:       lipgloss.Color("#f1f5f9"),
		Muted:      lipgloss.Color("#64748b"),
		Success:    lipgloss.Color("#22c55e"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
	}

	ThemeChalkboard = Theme{
		Name:       "chalkboard",
		Primary:    lipgloss.Color("#f8fafc"),
		Secondary:  lipgloss.Color("#fde68a"),
		Accent:     lipgloss.Color("#f9a8d4"),
		Background: lipgloss.Color("#1f3b2d"),
		Text:       lipgloss.Color("#f8fafc"),
		Muted:      lipgloss.Color("#86a694"),
		Success:    lipgloss.Color("#bbf7d0"),
		Warning:    lipgloss.Color("#fde68a"),
		Error:      lipgloss.Color("#fca5a5"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeContrast = Theme{
		Name:       "contrast",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#ffff00"),
		Accent:     lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#aaaaaa"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	// All available themes
	Themes = []Theme{
		ThemeDefault,
		ThemeChalkboard,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeContrast,
	}
)

// GetTheme returns a theme by name, falling back to the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
