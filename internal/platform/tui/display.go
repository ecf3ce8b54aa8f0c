package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Display is a core.Display that draws into a cell buffer, one terminal cell
// per pixel. Flush renders the buffer and hands the frame to the Bubble Tea
// model. Only the newest frame is kept; a slow terminal skips frames.
type Display struct {
	screen *core.Screen
	sr     *ScreenRenderer
	frames chan string
}

var _ core.Display = (*Display)(nil)

// NewDisplay creates a width x height cell display.
func NewDisplay(width, height int, r *lipgloss.Renderer) *Display {
	return &Display{
		screen: core.NewScreen(width, height),
		sr:     NewScreenRenderer(r),
		frames: make(chan string, 1),
	}
}

// Metrics reports one pixel per cell. Cells are about twice as tall as
// wide, so the layout doubles grid columns.
func (d *Display) Metrics() core.Metrics {
	return core.Metrics{
		Width:  d.screen.Width(),
		Height: d.screen.Height(),
		GlyphW: 1,
		GlyphH: 1,
		XScale: 2,
	}
}

func (d *Display) Clear(c core.Color) error {
	d.screen.Fill(c)
	return nil
}

func (d *Display) SetPixel(x, y int, c core.Color) error {
	d.screen.SetCell(x, y, core.Cell{Rune: ' ', BG: c})
	return nil
}

func (d *Display) FillRect(r core.Rect, c core.Color) error {
	d.screen.DrawRect(r, c)
	return nil
}

// DrawText writes text over the existing background.
func (d *Display) DrawText(x, y int, text string, c core.Color) error {
	d.screen.DrawText(x, y, text, c)
	return nil
}

// Flush publishes the frame, replacing one the model has not picked up yet.
func (d *Display) Flush() error {
	out := d.sr.Render(d.screen)
	select {
	case d.frames <- out:
		return nil
	default:
	}
	select {
	case <-d.frames:
	default:
	}
	select {
	case d.frames <- out:
	default:
	}
	return nil
}

// Frames delivers rendered frames.
func (d *Display) Frames() <-chan string {
	return d.frames
}

// Screen exposes the cell buffer for tests and screenshots.
func (d *Display) Screen() *core.Screen {
	return d.screen
}
