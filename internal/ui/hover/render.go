package hover

import (
	"strings"

	lipglossv2 "charm.land/lipgloss/v2"
	"github.com/charmbracelet/lipgloss"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/tipkit/internal/perf"
	"github.com/andyrewlee/tipkit/internal/tooltip"
	"github.com/andyrewlee/tipkit/internal/ui/compositor"
)

const ellipsis = "…"

// Overlay composes every tooltip that is on screen onto canvas, in target
// order.
func (m *Model) Overlay(canvas *lipglossv2.Canvas) {
	defer perf.Time("hover.overlay")()
	for _, layer := range m.Layers() {
		canvas.Compose(layer)
	}
}

// Layers returns a positioned layer for every tooltip that is on screen.
func (m *Model) Layers() []*compositor.Layer {
	var layers []*compositor.Layer
	for _, id := range m.order {
		if layer := m.layer(m.controllers[id]); layer != nil {
			layers = append(layers, layer)
		}
	}
	return layers
}

func (m *Model) layer(c *tooltip.Controller) *compositor.Layer {
	sig := c.Signal()
	if !onScreen(sig) {
		return nil
	}
	opts := c.Options()

	side := opts.Position
	var anchor uv.Rectangle
	if side == tooltip.PositionMouse {
		side = opts.MousePosition
		anchor = uv.Rect(sig.Pointer.X, sig.Pointer.Y, 1, 1)
	} else {
		r, ok := m.bounds(m.zoneID(LabelID(c.ID())))
		if !ok || !m.drawn[c.ID()] {
			return nil
		}
		anchor = r
	}

	box := m.renderBox(c.Content(), opts.Truncate)
	x, y := Place(side, anchor, lipgloss.Width(box), lipgloss.Height(box), m.width, m.height)
	return compositor.NewLayer(box, x, y).SetFaint(sig.Animated)
}

// onScreen reports whether the signal's tooltip should be drawn. Entrances
// draw from their first frame; exits draw only while animating out.
func onScreen(sig tooltip.Signal) bool {
	switch sig.Stage {
	case tooltip.StageEntering, tooltip.StageShown:
		return true
	case tooltip.StageExiting:
		return sig.Animated
	}
	return false
}

// renderBox styles content as a tooltip no wider than the max width.
// Truncated tooltips are forced onto a single line.
func (m *Model) renderBox(content string, truncate bool) string {
	style := m.styles.Tooltip
	inner := m.maxWidth - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	if truncate {
		line := strings.Join(strings.Fields(content), " ")
		return style.Render(TruncateLine(line, inner))
	}
	if lipgloss.Width(content) > inner {
		style = style.Width(inner + style.GetHorizontalPadding())
	}
	return style.Render(content)
}

// TruncateLine shortens s to width cells, ending with an ellipsis when cut.
// Styled input keeps its escape sequences intact.
func TruncateLine(s string, width int) string {
	if strings.Contains(s, "\x1b") {
		return ansi.Truncate(s, width, ellipsis)
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Place returns the top-left corner for a w by h box on side of anchor,
// flipped vertically when it would leave the screen and then clamped to it.
// Unknown sides place below.
func Place(side tooltip.Position, anchor uv.Rectangle, w, h, screenW, screenH int) (x, y int) {
	centerX := anchor.Min.X + (anchor.Dx()-w)/2
	centerY := anchor.Min.Y + (anchor.Dy()-h)/2

	switch side {
	case tooltip.PositionTop:
		x, y = centerX, anchor.Min.Y-h
		if y < 0 && anchor.Max.Y+h <= screenH {
			y = anchor.Max.Y
		}
	case tooltip.PositionLeft:
		x, y = anchor.Min.X-w, centerY
	case tooltip.PositionRight:
		x, y = anchor.Max.X, centerY
	default:
		x, y = centerX, anchor.Max.Y
		if screenH > 0 && y+h > screenH && anchor.Min.Y-h >= 0 {
			y = anchor.Min.Y - h
		}
	}

	if screenW > 0 {
		x = clamp(x, 0, screenW-w)
	}
	if screenH > 0 {
		y = clamp(y, 0, screenH-h)
	}
	return x, y
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
