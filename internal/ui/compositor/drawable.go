package compositor

import (
	"image/color"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Layer is a styled ANSI block placed at a fixed origin. It implements
// uv.Drawable so it can be composed onto a lipgloss.Canvas above the base view.
type Layer struct {
	lines  []string
	x, y   int
	width  int
	faint  bool
	opaque bool
}

var _ uv.Drawable = (*Layer)(nil)

// NewLayer creates a layer from content with its top-left corner at (x, y).
func NewLayer(content string, x, y int) *Layer {
	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return &Layer{lines: lines, x: x, y: y, width: width, opaque: true}
}

// Size returns the layer's width and height in cells.
func (l *Layer) Size() (int, int) { return l.width, len(l.lines) }

// Bounds returns the rectangle the layer occupies.
func (l *Layer) Bounds() uv.Rectangle {
	return uv.Rect(l.x, l.y, l.width, len(l.lines))
}

// SetFaint dims every cell of the layer; used while a tooltip animates.
func (l *Layer) SetFaint(faint bool) *Layer {
	l.faint = faint
	return l
}

// SetOpaque controls whether trailing blank cells of short lines overwrite
// what is underneath. Layers are opaque by default.
func (l *Layer) SetOpaque(opaque bool) *Layer {
	l.opaque = opaque
	return l
}

// Draw renders the layer onto screen, clipped to area.
func (l *Layer) Draw(screen uv.Screen, area uv.Rectangle) {
	if len(l.lines) == 0 || l.width == 0 {
		return
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	for row, line := range l.lines {
		sy := l.y + row
		if sy < area.Min.Y || sy >= area.Max.Y {
			continue
		}

		var style uv.Style
		var state byte
		sx := l.x
		for len(line) > 0 {
			seq, width, n, next := ansi.DecodeSequence(line, state, p)
			if n == 0 {
				break
			}
			if width == 0 {
				if ansi.Cmd(p.Command()).Final() == 'm' {
					style = applySGR(style, p.Params())
				}
			} else {
				l.set(screen, area, sx, sy, seq, width, style)
				sx += width
			}
			line = line[n:]
			state = next
		}

		if l.opaque {
			for ; sx < l.x+l.width; sx++ {
				l.set(screen, area, sx, sy, " ", 1, uv.Style{})
			}
		}
	}
}

func (l *Layer) set(screen uv.Screen, area uv.Rectangle, x, y int, content string, width int, style uv.Style) {
	if x < area.Min.X || x >= area.Max.X {
		return
	}
	cell := getCell()
	cell.Content = content
	cell.Width = width
	cell.Style = style
	if l.faint {
		cell.Style.Attrs |= uv.AttrFaint
	}
	screen.SetCell(x, y, cell)
	putCell(cell)
}

// applySGR folds SGR parameters into style.
func applySGR(style uv.Style, params ansi.Params) uv.Style {
	if len(params) == 0 {
		return uv.Style{}
	}

	for i := 0; i < len(params); i++ {
		p, _, _ := params.Param(i, 0)
		switch {
		case p == 0:
			style = uv.Style{}
		case p == 1:
			style.Attrs |= uv.AttrBold
		case p == 2:
			style.Attrs |= uv.AttrFaint
		case p == 3:
			style.Attrs |= uv.AttrItalic
		case p == 4:
			style.Underline = uv.UnderlineSingle
		case p == 7:
			style.Attrs |= uv.AttrReverse
		case p == 9:
			style.Attrs |= uv.AttrStrikethrough
		case p == 22:
			style.Attrs &^= uv.AttrBold | uv.AttrFaint
		case p == 23:
			style.Attrs &^= uv.AttrItalic
		case p == 24:
			style.Underline = uv.UnderlineNone
		case p == 27:
			style.Attrs &^= uv.AttrReverse
		case p == 29:
			style.Attrs &^= uv.AttrStrikethrough
		case p >= 30 && p <= 37:
			style.Fg = ansi.IndexedColor(p - 30)
		case p == 38:
			c, skip := extendedColor(params, i)
			style.Fg = c
			i += skip
		case p == 39:
			style.Fg = nil
		case p >= 40 && p <= 47:
			style.Bg = ansi.IndexedColor(p - 40)
		case p == 48:
			c, skip := extendedColor(params, i)
			style.Bg = c
			i += skip
		case p == 49:
			style.Bg = nil
		case p >= 90 && p <= 97:
			style.Fg = ansi.IndexedColor(p - 90 + 8)
		case p >= 100 && p <= 107:
			style.Bg = ansi.IndexedColor(p - 100 + 8)
		}
	}
	return style
}

// extendedColor decodes a 38/48 color starting at params[i] and reports how
// many extra parameters it consumed.
func extendedColor(params ansi.Params, i int) (color.Color, int) {
	if i+2 >= len(params) {
		return nil, 0
	}
	mode, _, _ := params.Param(i+1, 0)
	switch {
	case mode == 5:
		idx, _, _ := params.Param(i+2, 0)
		return ansi.IndexedColor(idx), 2
	case mode == 2 && i+4 < len(params):
		r, _, _ := params.Param(i+2, 0)
		g, _, _ := params.Param(i+3, 0)
		b, _, _ := params.Param(i+4, 0)
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, 4
	}
	return nil, 0
}
