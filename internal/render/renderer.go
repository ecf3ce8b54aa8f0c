package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/game"
)

// Renderer draws snapshots and text screens onto a display.
//
// Grid frames are diffed against the last successfully presented frame. Any
// failed display call marks the renderer dirty so the next pass repaints the
// whole screen.
type Renderer struct {
	d       core.Display
	metrics core.Metrics
	layout  Layout
	pal     Palette

	prev, cur  []Kind
	prevCorpse core.Color
	full       bool   // Next grid pass clears and repaints everything
	overlay    string // Text screen currently on the display, "" if none
}

// New creates a renderer. The layout must fit the display.
func New(d core.Display, l Layout, pal Palette) (*Renderer, error) {
	m := d.Metrics()
	if err := l.Validate(m); err != nil {
		return nil, err
	}
	n := l.Cols * l.Rows
	return &Renderer{
		d:       d,
		metrics: m,
		layout:  l,
		pal:     pal,
		prev:    make([]Kind, n),
		cur:     make([]Kind, n),
		full:    true,
	}, nil
}

// Layout returns the active layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Invalidate forces the next grid pass to redraw the whole screen.
func (r *Renderer) Invalidate() {
	r.full = true
	r.overlay = ""
}

// Frame draws one gameplay frame.
func (r *Renderer) Frame(s *game.Snapshot) error {
	r.fill(s, len(s.Body), false)
	return r.paint(r.prevCorpse)
}

// Death draws the dying snake at progress in [0, 1]: it shrinks from the
// tail and fades from the body color to the corpse color.
func (r *Renderer) Death(s *game.Snapshot, progress float64) error {
	progress = min(max(progress, 0), 1)
	shown := int((1 - progress) * float64(len(s.Body)))
	r.fill(s, shown, true)
	return r.paint(r.pal.corpseColor(progress))
}

func (r *Renderer) fill(s *game.Snapshot, segments int, dead bool) {
	for i := range r.cur {
		r.cur[i] = KindEmpty
	}
	cols := r.layout.Cols
	in := func(p core.Point) bool { return p.In(cols, r.layout.Rows) }

	if s.HasFood && in(s.Food) {
		r.cur[s.Food.Y*cols+s.Food.X] = KindFood
	}
	for i := segments - 1; i >= 0; i-- {
		p := s.Body[i]
		if !in(p) {
			continue
		}
		k := KindBody
		switch {
		case dead:
			k = KindCorpse
		case i == 0:
			k = KindHead
		}
		r.cur[p.Y*cols+p.X] = k
	}
}

func (r *Renderer) paint(corpse core.Color) error {
	full := r.full || r.overlay != ""
	if full {
		if err := r.background(); err != nil {
			return r.fail(err)
		}
	}

	cols := r.layout.Cols
	for i, k := range r.cur {
		if full {
			if k == KindEmpty {
				continue
			}
		} else if k == r.prev[i] && (k != KindCorpse || corpse == r.prevCorpse) {
			continue
		}
		rect := r.layout.Cell(core.Pt(i%cols, i/cols))
		if err := r.d.FillRect(rect, r.pal.color(k, corpse)); err != nil {
			return r.fail(err)
		}
	}

	if err := r.d.Flush(); err != nil {
		return r.fail(err)
	}
	copy(r.prev, r.cur)
	r.prevCorpse = corpse
	r.full = false
	r.overlay = ""
	return nil
}

// background clears the display and draws the frame border.
func (r *Renderer) background() error {
	if err := r.d.Clear(r.pal.Background); err != nil {
		return err
	}
	for _, b := range r.layout.borderRects() {
		if err := r.d.FillRect(b, r.pal.Border); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) fail(err error) error {
	r.full = true
	r.overlay = ""
	return fmt.Errorf("render: %w", err)
}

// ShowStart draws the title screen.
func (r *Renderer) ShowStart() error {
	return r.showText("Press B", "to Start")
}

// ShowPause draws the pause screen with the current score.
func (r *Renderer) ShowPause(st game.Stats) error {
	return r.showText(
		"PAUSED",
		"",
		fmt.Sprintf("Score: %d", st.Points),
		fmt.Sprintf("Food: %d", st.FoodEaten),
		"",
		"Press B",
		"to Resume",
	)
}

// ShowGameOver draws the final score screen.
func (r *Renderer) ShowGameOver(st game.Stats, won bool) error {
	title := "GAME OVER"
	if won {
		title = "YOU WIN!"
	}
	return r.showText(
		title,
		"",
		fmt.Sprintf("Final Score: %d", st.Points),
		fmt.Sprintf("Food Eaten: %d", st.FoodEaten),
		"",
		"Press A",
		"to Restart",
	)
}

// ShowBlank draws only the border. Used for the hidden half of a blink.
func (r *Renderer) ShowBlank() error {
	return r.showText()
}

// showText replaces the screen with centered lines of text. Drawing the same
// screen twice in a row is a no-op.
func (r *Renderer) showText(lines ...string) error {
	key := "\x00" + strings.Join(lines, "\n")
	if r.overlay == key {
		return nil
	}

	if err := r.background(); err != nil {
		return r.fail(err)
	}

	m := r.metrics
	lineH := m.GlyphH + m.GlyphH/2
	blockH := len(lines)*lineH - (lineH - m.GlyphH)
	y := (m.Height - blockH) / 2
	for _, line := range lines {
		if line != "" {
			x := (m.Width - m.TextWidth(line)) / 2
			if err := r.d.DrawText(x, y, line, r.pal.Text); err != nil {
				return r.fail(err)
			}
		}
		y += lineH
	}

	if err := r.d.Flush(); err != nil {
		return r.fail(err)
	}
	r.overlay = key
	r.full = true
	return nil
}
