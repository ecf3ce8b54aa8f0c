package render

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/game"
)

type op struct {
	name string
	rect core.Rect
	c    core.Color
	text string
	x, y int
}

// recorder is a display that logs every call.
type recorder struct {
	m       core.Metrics
	ops     []op
	failOn  string
	failErr error
}

func (r *recorder) Metrics() core.Metrics { return r.m }

func (r *recorder) call(o op) error {
	r.ops = append(r.ops, o)
	if r.failOn == o.name {
		r.failOn = ""
		return r.failErr
	}
	return nil
}

func (r *recorder) Clear(c core.Color) error { return r.call(op{name: "clear", c: c}) }
func (r *recorder) SetPixel(x, y int, c core.Color) error {
	return r.call(op{name: "pixel", x: x, y: y, c: c})
}
func (r *recorder) FillRect(rect core.Rect, c core.Color) error {
	return r.call(op{name: "fill", rect: rect, c: c})
}
func (r *recorder) DrawText(x, y int, s string, c core.Color) error {
	return r.call(op{name: "text", x: x, y: y, text: s, c: c})
}
func (r *recorder) Flush() error { return r.call(op{name: "flush"}) }

func (r *recorder) reset() { r.ops = r.ops[:0] }

func (r *recorder) count(name string) int {
	n := 0
	for _, o := range r.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

var lcd = core.Metrics{Width: 240, Height: 135, GlyphW: 6, GlyphH: 10}

func setup(t *testing.T) (*recorder, *Renderer, *game.Game) {
	t.Helper()
	rec := &recorder{m: lcd}
	l, err := FitLayout(lcd, 40, 22)
	if err != nil {
		t.Fatalf("FitLayout() error = %v", err)
	}
	r, err := New(rec, l, DefaultPalette())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g, err := game.New(game.DefaultConfig(40, 22), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	if err := g.PlaceFood(core.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	return rec, r, g
}

func TestFitLayout(t *testing.T) {
	tests := []struct {
		name       string
		m          core.Metrics
		cols, rows int
		want       Layout
	}{
		{
			name: "lcd",
			m:    lcd,
			cols: 40, rows: 22,
			want: Layout{OriginX: 19, OriginY: 12, CellW: 5, CellH: 5, Inset: 1, Border: 1, Cols: 40, Rows: 22},
		},
		{
			name: "terminal",
			m:    core.Metrics{Width: 82, Height: 24, GlyphW: 1, GlyphH: 1, XScale: 2},
			cols: 40, rows: 22,
			want: Layout{OriginX: 1, OriginY: 1, CellW: 2, CellH: 1, Inset: 0, Border: 1, Cols: 40, Rows: 22},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FitLayout(tc.m, tc.cols, tc.rows)
			if err != nil {
				t.Fatalf("FitLayout() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("FitLayout() = %+v, expected %+v", got, tc.want)
			}
			if err := got.Validate(tc.m); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestFitLayoutTooSmall(t *testing.T) {
	_, err := FitLayout(core.Metrics{Width: 30, Height: 10, XScale: 2}, 40, 22)
	var cerr *core.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("FitLayout() error = %v, expected *core.ConfigError", err)
	}
}

func TestLayoutCell(t *testing.T) {
	l := Layout{CellW: 6, CellH: 6, Inset: 1, Cols: 40, Rows: 22}
	if got := l.Cell(core.Pt(3, 2)); got != core.NewRect(19, 13, 5, 5) {
		t.Errorf("Cell(3,2) = %+v, expected {19 13 5 5}", got)
	}
}

func TestFirstFrameIsFull(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()

	if err := r.Frame(&s); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if rec.count("clear") != 1 {
		t.Errorf("clear calls = %d, expected 1", rec.count("clear"))
	}
	// 4 border edges, 3 snake cells, 1 food
	if rec.count("fill") != 8 {
		t.Errorf("fill calls = %d, expected 8", rec.count("fill"))
	}
	if rec.count("flush") != 1 {
		t.Errorf("flush calls = %d, expected 1", rec.count("flush"))
	}
}

func TestIdenticalSnapshotDrawsNothing(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if err := r.Frame(&s); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if len(rec.ops) != 1 || rec.ops[0].name != "flush" {
		t.Errorf("ops = %+v, expected a single flush", rec.ops)
	}
}

func TestMoveRepaintsOnlyChangedCells(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	g.Advance(core.DirNone)
	g.SnapshotInto(&s)
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}

	// New head, old head becomes body, tail vacated.
	if rec.count("fill") != 3 {
		t.Errorf("fill calls = %d, expected 3", rec.count("fill"))
	}
	if rec.count("clear") != 0 {
		t.Error("incremental frame should not clear")
	}

	l := r.Layout()
	vacated := l.Cell(core.Pt(18, 11))
	found := false
	for _, o := range rec.ops {
		if o.name == "fill" && o.rect == vacated {
			found = true
			if o.c != core.Black {
				t.Errorf("vacated cell filled with %v, expected background", o.c)
			}
		}
	}
	if !found {
		t.Error("vacated tail cell was not cleared")
	}
}

func TestDisplayErrorForcesFullRedraw(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}

	g.Advance(core.DirNone)
	g.SnapshotInto(&s)
	glitch := &core.CapabilityError{Capability: "display", Op: "fill", Err: errors.New("bus glitch")}
	rec.failOn, rec.failErr = "fill", glitch
	rec.reset()

	err := r.Frame(&s)
	if !errors.Is(err, glitch) {
		t.Fatalf("Frame() error = %v, expected the display error", err)
	}

	rec.reset()
	if err := r.Frame(&s); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if rec.count("clear") != 1 || rec.count("fill") != 8 {
		t.Errorf("retry drew clear=%d fill=%d, expected a full redraw", rec.count("clear"), rec.count("fill"))
	}
}

func TestInvalidate(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	r.Invalidate()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}
	if rec.count("clear") != 1 {
		t.Error("Invalidate() should force a clear on the next frame")
	}
}

func TestOverlays(t *testing.T) {
	rec, r, g := setup(t)

	if err := r.ShowStart(); err != nil {
		t.Fatal(err)
	}
	var texts []op
	for _, o := range rec.ops {
		if o.name == "text" {
			texts = append(texts, o)
		}
	}
	if len(texts) != 2 || texts[0].text != "Press B" || texts[1].text != "to Start" {
		t.Fatalf("start screen texts = %+v", texts)
	}
	if texts[0].x != (240-7*6)/2 {
		t.Errorf("Press B drawn at x=%d, expected centered at %d", texts[0].x, (240-7*6)/2)
	}
	if texts[1].y <= texts[0].y {
		t.Error("lines should be drawn top to bottom")
	}

	rec.reset()
	if err := r.ShowStart(); err != nil {
		t.Fatal(err)
	}
	if len(rec.ops) != 0 {
		t.Errorf("repeated overlay drew %d ops, expected none", len(rec.ops))
	}

	rec.reset()
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}
	if rec.count("clear") != 1 {
		t.Error("frame after an overlay should be a full redraw")
	}
}

func TestGameOverText(t *testing.T) {
	rec, r, _ := setup(t)
	st := game.Stats{FoodEaten: 4, Points: 40}

	if err := r.ShowGameOver(st, true); err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"YOU WIN!": false, "Final Score: 40": false, "Food Eaten: 4": false}
	for _, o := range rec.ops {
		if _, ok := want[o.text]; ok {
			want[o.text] = true
		}
	}
	for text, seen := range want {
		if !seen {
			t.Errorf("game over screen is missing %q", text)
		}
	}
}

func TestDeathShrinksAndFades(t *testing.T) {
	rec, r, g := setup(t)
	s := g.Snapshot()
	if err := r.Frame(&s); err != nil {
		t.Fatal(err)
	}

	rec.reset()
	if err := r.Death(&s, 0); err != nil {
		t.Fatal(err)
	}
	if rec.count("fill") != 3 {
		t.Errorf("death start fills = %d, expected 3 (all segments recolored)", rec.count("fill"))
	}

	rec.reset()
	if err := r.Death(&s, 0.5); err != nil {
		t.Fatal(err)
	}
	for _, o := range rec.ops {
		if o.name == "fill" && o.c != core.Black && o.c != core.Brown {
			t.Errorf("half-way corpse color = %v, expected brown", o.c)
		}
	}

	rec.reset()
	if err := r.Death(&s, 1); err != nil {
		t.Fatal(err)
	}
	for _, o := range rec.ops {
		if o.name == "fill" && o.c != core.Black {
			t.Errorf("finished death drew %v at %+v, expected only clears", o.c, o.rect)
		}
	}
}

func TestNewRejectsOversizedLayout(t *testing.T) {
	rec := &recorder{m: core.Metrics{Width: 50, Height: 50}}
	_, err := New(rec, Layout{CellW: 6, CellH: 6, Inset: 1, Border: 1, OriginX: 1, OriginY: 1, Cols: 40, Rows: 22}, DefaultPalette())
	if err == nil {
		t.Error("New() should reject a layout larger than the display")
	}
}
