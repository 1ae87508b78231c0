package compositor

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// RenderToBuffer draws rendered terminal content into a fresh buffer so
// view tests can inspect individual cells.
func RenderToBuffer(content string, width, height int) *uv.Buffer {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	buf := uv.NewBuffer(width, height)
	screen := bufferScreen{Buffer: buf}
	uv.NewStyledString(content).Draw(screen, uv.Rect(0, 0, width, height))
	return buf
}

// BufferToText converts a buffer to plain text with trailing spaces trimmed.
// Non-ASCII cells are written as '?'.
func BufferToText(buf *uv.Buffer) string {
	if buf == nil {
		return ""
	}
	lines := make([]string, 0, len(buf.Lines))
	for _, line := range buf.Lines {
		var b strings.Builder
		for _, cell := range line {
			if cell.Width == 0 {
				continue
			}
			content := cell.Content
			if content == "" {
				content = " "
			}
			if !isASCII(content) {
				b.WriteByte('?')
				continue
			}
			b.WriteString(content)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

type bufferScreen struct {
	*uv.Buffer
}

func (b bufferScreen) WidthMethod() uv.WidthMethod {
	return ansi.GraphemeWidth
}
