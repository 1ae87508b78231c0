package common

import "github.com/charmbracelet/lipgloss"

// Styles contains all the application styles.
type Styles struct {
	Palette Palette

	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Toolbar buttons and list rows carrying tooltips
	Button      lipgloss.Style
	ButtonHover lipgloss.Style
	Row         lipgloss.Style
	RowHover    lipgloss.Style

	// Tooltip box; Width is set per render from the configured max width.
	Tooltip lipgloss.Style

	// Help bar
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Status line
	Status lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the styles for the dark palette.
func DefaultStyles() Styles {
	return NewStyles(DarkPalette())
}

// StylesFor returns the styles for theme id.
func StylesFor(id ThemeID) Styles {
	p, _ := PaletteFor(id)
	return NewStyles(p)
}

// NewStyles builds the styles for palette p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Body: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		Button: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Border),
		ButtonHover: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Background).
			Background(p.Primary),
		Row: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(p.Foreground),
		RowHover: lipgloss.NewStyle().
			PaddingLeft(2).
			Bold(true).
			Foreground(p.Foreground).
			Background(p.Selection),

		Tooltip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Foreground(lipgloss.Color("#e6e6e6")).
			Background(p.Surface).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Muted),
		HelpSeparator: lipgloss.NewStyle().
			Foreground(p.Border),

		Status: lipgloss.NewStyle().
			Foreground(p.Info),

		ToastSuccess: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		ToastInfo: lipgloss.NewStyle().
			Foreground(p.Info),
	}
}
