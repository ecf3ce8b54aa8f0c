package core

import (
	"context"
	"time"
)

// Metrics describes a display's drawable area.
type Metrics struct {
	Width  int // Width in pixels (terminal cells for text displays)
	Height int // Height in pixels
	GlyphW int // Advance width of one text character
	GlyphH int // Line height of one text character

	// XScale is how many horizontal pixels make a square. Terminals, whose
	// cells are about twice as tall as wide, report 2. Zero means 1.
	XScale int
}

// TextWidth returns the pixel width of s when drawn with DrawText.
func (m Metrics) TextWidth(s string) int {
	return len([]rune(s)) * m.GlyphW
}

// Display is the drawing capability.
// Calls are applied in order. A failure part way through a frame leaves the
// panel in an undefined partial state; callers recover by redrawing in full.
type Display interface {
	// Metrics returns the drawable size and text cell size.
	Metrics() Metrics

	// Clear fills the whole display with c.
	Clear(c Color) error

	// SetPixel colors a single pixel.
	SetPixel(x, y int, c Color) error

	// FillRect fills r with c. Parts outside the display are clipped.
	FillRect(r Rect, c Color) error

	// DrawText draws text with its top-left corner at (x, y).
	DrawText(x, y int, text string, c Color) error

	// Flush presents everything drawn since the previous Flush.
	Flush() error
}

// Input is the sampling capability.
// Sample never blocks: it returns the latest known state, debounced by the
// implementation so at most one new direction arrives per debounce window.
// Replayed input may use its own timestamps in place of a window.
//
// Buttons are levels: the engine acts on a button that is set now and was
// clear in the previous sample. Event-driven inputs must report a sample
// with the button clear before they report the same button again.
type Input interface {
	Sample() (InputState, error)
}

// Platform provides time and the single suspension point of the scheduler.
type Platform interface {
	// Now returns the current time.
	Now() time.Time

	// SleepUntil suspends until deadline. It returns ctx.Err() when ctx is
	// cancelled, or ErrStopped when the platform asks the loop to end.
	SleepUntil(ctx context.Context, deadline time.Time) error
}
