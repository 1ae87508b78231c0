package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/tipkit/internal/keymap"
	"github.com/andyrewlee/tipkit/internal/perf"
	"github.com/andyrewlee/tipkit/internal/ui/compositor"
)

const (
	headerRows = 4 // title, gap, toolbar, gap
	footerRows = 2 // toast, help
)

// View renders the base screen, then composes tooltips above it on a canvas.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: a.styles.Palette.Background,
		ForegroundColor: a.styles.Palette.Foreground,
	}
	if a.quitting {
		view.SetContent("")
		return view
	}

	base := a.hover.Scan(a.renderBase())
	if a.width <= 0 || a.height <= 0 {
		view.SetContent(base)
		return view
	}

	canvas := a.canvasFor(a.width, a.height)
	canvas.Compose(compositor.NewLayer(base, 0, 0))
	a.hover.Overlay(canvas)
	view.SetContent(canvas.Render())
	return view
}

func (a *App) canvasFor(width, height int) *lipgloss.Canvas {
	if a.canvas == nil {
		a.canvas = lipgloss.NewCanvas(width, height)
	} else if a.canvas.Width() != width || a.canvas.Height() != height {
		a.canvas.Resize(width, height)
	}
	a.canvas.Clear()
	return a.canvas
}

func (a *App) listHeight() int {
	return max(1, a.height-headerRows-footerRows)
}

func (a *App) renderBase() string {
	lines := make([]string, 0, headerRows+a.listHeight()+footerRows)
	lines = append(lines, a.fit(a.renderTitle()), "", a.renderToolbar(), "")

	end := min(len(a.rows), a.offset+a.listHeight())
	for _, row := range a.rows[a.offset:end] {
		style := a.styles.Row
		if a.hover.Hovered(row.id) {
			style = a.styles.RowHover
		}
		lines = append(lines, a.hover.Mark(row.id, style.Render(row.label)))
	}
	for len(lines) < headerRows+a.listHeight() {
		lines = append(lines, "")
	}

	lines = append(lines, a.fit(a.toast.View()), a.fit(a.renderHelp()))
	return strings.Join(lines, "\n")
}

func (a *App) renderTitle() string {
	t := a.config.Tooltip
	status := fmt.Sprintf("delay %dms | %s | click:%t mousedown:%t truncate:%t | shown %d",
		t.DelayMs, t.Position, t.HideOnClick, t.HideOnMouseDown, t.Truncate, a.shows)
	return a.styles.Title.Render("tipkit") + " " +
		a.styles.Muted.Render(a.version) + "  " +
		a.styles.Status.Render(status)
}

func (a *App) renderToolbar() string {
	var b strings.Builder
	for _, it := range a.toolbar {
		style := a.styles.Button
		if a.hover.Hovered(it.id) {
			style = a.styles.ButtonHover
		}
		b.WriteString(a.hover.Mark(it.id, style.Render(" "+it.label+" ")))
	}
	return b.String()
}

func (a *App) renderHelp() string {
	if !a.config.UI.ShowKeymapHints {
		return ""
	}
	sep := a.styles.HelpSeparator.Render(" | ")
	parts := make([]string, 0, len(a.keymap.Hints()))
	for _, binding := range a.keymap.Hints() {
		parts = append(parts,
			a.styles.HelpKey.Render(keymap.BindingHint(binding))+" "+
				a.styles.HelpDesc.Render(binding.Help().Desc))
	}
	return strings.Join(parts, sep)
}

// fit truncates an unmarked line to the screen width.
func (a *App) fit(line string) string {
	if a.width <= 0 {
		return line
	}
	return ansi.Truncate(line, a.width, "")
}
