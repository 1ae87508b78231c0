package common

import "github.com/charmbracelet/lipgloss"

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeDark  ThemeID = "dark"
	ThemeLight ThemeID = "light"
)

// Palette is the set of colors a theme provides.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	Surface   lipgloss.Color // tooltip and toolbar background
	Selection lipgloss.Color
}

// DarkPalette is a Tokyo Night-inspired palette.
func DarkPalette() Palette {
	return Palette{
		Background: lipgloss.Color("#1a1b26"),
		Foreground: lipgloss.Color("#a9b1d6"),
		Muted:      lipgloss.Color("#565f89"),
		Border:     lipgloss.Color("#292e42"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#bb9af7"),
		Success:   lipgloss.Color("#9ece6a"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),
		Info:      lipgloss.Color("#7dcfff"),

		Surface:   lipgloss.Color("#24283b"),
		Selection: lipgloss.Color("#33467c"),
	}
}

// LightPalette is the GitHub light palette.
func LightPalette() Palette {
	return Palette{
		Background: lipgloss.Color("#ffffff"),
		Foreground: lipgloss.Color("#24292f"),
		Muted:      lipgloss.Color("#6e7781"),
		Border:     lipgloss.Color("#d0d7de"),

		Primary:   lipgloss.Color("#0969da"),
		Secondary: lipgloss.Color("#8250df"),
		Success:   lipgloss.Color("#1a7f37"),
		Warning:   lipgloss.Color("#9a6700"),
		Error:     lipgloss.Color("#cf222e"),
		Info:      lipgloss.Color("#0550ae"),

		Surface:   lipgloss.Color("#24292f"),
		Selection: lipgloss.Color("#ddf4ff"),
	}
}

// PaletteFor returns the palette for id. Unknown ids fall back to dark.
func PaletteFor(id ThemeID) (Palette, bool) {
	switch id {
	case ThemeDark:
		return DarkPalette(), true
	case ThemeLight:
		return LightPalette(), true
	default:
		return DarkPalette(), false
	}
}
