package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pico-snake/internal/core"
)

type styleKey struct {
	fg, bg core.Color
}

// ScreenRenderer converts a Screen buffer to a styled string for display.
// Styles are cached per foreground/background pair.
type ScreenRenderer struct {
	r      *lipgloss.Renderer
	styles map[styleKey]lipgloss.Style
}

// NewScreenRenderer creates a renderer. A nil lipgloss renderer uses the
// default one bound to stdout; SSH sessions pass their own.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{r: r, styles: make(map[styleKey]lipgloss.Style)}
}

func (sr *ScreenRenderer) style(k styleKey) lipgloss.Style {
	st, ok := sr.styles[k]
	if !ok {
		st = sr.r.NewStyle().
			Foreground(lipgloss.Color(k.fg.Hex())).
			Background(lipgloss.Color(k.bg.Hex()))
		sr.styles[k] = st
	}
	return st
}

// Render groups adjacent cells with the same colors to minimize ANSI escape
// sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			k := styleKey{fg: cell.FG, bg: cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != k.fg || cell.BG != k.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(sr.style(k).Render(run.String()))
		}
	}
	return sb.String()
}
