package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live layout view.
type Theme struct {
	Name   string
	Canvas lipgloss.Color
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Cooled lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Canvas: lipgloss.Color("#00ffff"),
		Title:  lipgloss.Color("#ff00ff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Cooled: lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Canvas: lipgloss.Color("#00ff00"),
		Title:  lipgloss.Color("#88ff88"),
		Label:  lipgloss.Color("#00aa00"),
		Value:  lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Cooled: lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	// ThemeRaylib follows the window renderer: gold frame, blue edges.
	ThemeRaylib = Theme{
		Name:   "raylib",
		Canvas: lipgloss.Color("#0079f1"),
		Title:  lipgloss.Color("#ffcb00"),
		Label:  lipgloss.Color("#828282"),
		Value:  lipgloss.Color("#f5f5f5"),
		Muted:  lipgloss.Color("#505050"),
		Cooled: lipgloss.Color("#00e430"),
		Warn:   lipgloss.Color("#e62937"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeRaylib,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}
