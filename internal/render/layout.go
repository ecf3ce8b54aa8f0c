// Package render draws game snapshots onto a core.Display. It keeps the
// previous frame's cell kinds and only repaints cells that changed.
package render

import (
	"fmt"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Layout maps grid cells to display pixels.
type Layout struct {
	OriginX, OriginY int // Top-left of cell (0,0)'s slot, inside the border
	CellW, CellH     int // Slot size in pixels
	Inset            int // Gap left and above each filled cell
	Border           int // Frame thickness around the play field
	Cols, Rows       int
}

// Cell returns the pixel rectangle filled for grid cell p.
func (l Layout) Cell(p core.Point) core.Rect {
	return core.NewRect(
		l.OriginX+p.X*l.CellW+l.Inset,
		l.OriginY+p.Y*l.CellH+l.Inset,
		l.CellW-l.Inset,
		l.CellH-l.Inset,
	)
}

// Field returns the area inside the border.
func (l Layout) Field() core.Rect {
	return core.NewRect(l.OriginX, l.OriginY, l.Cols*l.CellW+l.Inset, l.Rows*l.CellH+l.Inset)
}

// Frame returns the field plus its border.
func (l Layout) Frame() core.Rect {
	f := l.Field()
	return core.NewRect(f.X-l.Border, f.Y-l.Border, f.W+2*l.Border, f.H+2*l.Border)
}

// borderRects returns the four edges of the frame.
func (l Layout) borderRects() []core.Rect {
	if l.Border <= 0 {
		return nil
	}
	f := l.Frame()
	b := l.Border
	return []core.Rect{
		core.NewRect(f.X, f.Y, f.W, b),
		core.NewRect(f.X, f.Bottom()-b, f.W, b),
		core.NewRect(f.X, f.Y, b, f.H),
		core.NewRect(f.Right()-b, f.Y, b, f.H),
	}
}

// Validate checks that the layout is usable on a display of size m.
func (l Layout) Validate(m core.Metrics) error {
	if l.Cols <= 0 || l.Rows <= 0 {
		return &core.ConfigError{Field: "display.layout", Reason: "grid size must be positive"}
	}
	if l.CellW <= l.Inset || l.CellH <= l.Inset || l.Inset < 0 {
		return &core.ConfigError{
			Field:  "display.layout",
			Reason: fmt.Sprintf("cell %dx%d with inset %d leaves nothing to fill", l.CellW, l.CellH, l.Inset),
		}
	}
	f := l.Frame()
	if f.X < 0 || f.Y < 0 || f.Right() > m.Width || f.Bottom() > m.Height {
		return &core.ConfigError{
			Field:  "display.layout",
			Reason: fmt.Sprintf("%dx%d frame does not fit %dx%d display", f.W, f.H, m.Width, m.Height),
		}
	}
	return nil
}

// FitLayout picks the largest cells that fit a cols x rows grid plus a one
// pixel border on the display, centered. Cells of 3 pixels or more get a one
// pixel inset so neighbours stay visually separate.
func FitLayout(m core.Metrics, cols, rows int) (Layout, error) {
	if cols <= 0 || rows <= 0 {
		return Layout{}, &core.ConfigError{Field: "grid", Reason: "width and height must be positive"}
	}
	xs := max(1, m.XScale)
	const border = 1
	availW := m.Width - 2*border
	availH := m.Height - 2*border

	inset := 1
	s := min((availW-inset)/(cols*xs), (availH-inset)/rows)
	if s < 3 {
		inset = 0
		s = min(availW/(cols*xs), availH/rows)
	}
	if s < 1 {
		return Layout{}, &core.ConfigError{
			Field:  "display",
			Reason: fmt.Sprintf("%dx%d grid does not fit a %dx%d display", cols, rows, m.Width, m.Height),
		}
	}

	l := Layout{
		CellW:  s * xs,
		CellH:  s,
		Inset:  inset,
		Border: border,
		Cols:   cols,
		Rows:   rows,
	}
	used := l.Field()
	l.OriginX = border + (availW-used.W)/2
	l.OriginY = border + (availH-used.H)/2
	return l, nil
}
