package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for stars and chrome.
type Theme struct {
	Name   string
	Star   lipgloss.Color
	Border lipgloss.Color
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:   "mono",
		Star:   lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#444444"),
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#cccccc"),
	}

	ThemeNebula = Theme{
		Name:   "nebula",
		Star:   lipgloss.Color("#ff9ff3"), // Pink
		Border: lipgloss.Color("#5f27cd"),
		Title:  lipgloss.Color("#feca57"),
		Label:  lipgloss.Color("#8b6b8c"),
		Value:  lipgloss.Color("#ff9ff3"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Star:   lipgloss.Color("#a8e6ff"),
		Border: lipgloss.Color("#0077be"),
		Title:  lipgloss.Color("#e0f0ff"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#00a8cc"),
	}

	ThemeWarp = Theme{
		Name:   "warp",
		Star:   lipgloss.Color("#ffff00"),
		Border: lipgloss.Color("#ff00ff"),
		Title:  lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#666666"),
		Value:  lipgloss.Color("#00ff88"),
	}

	Themes = []Theme{
		ThemeMono,
		ThemeNebula,
		ThemeIce,
		ThemeWarp,
	}
)

// GetTheme returns a theme by name, falling back to mono.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMono
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// StarStyle is the lipgloss style for the star glyph under t.
func (t Theme) StarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Star).Bold(true)
}
