// Package term is a tcell display backend. Each terminal cell is one pixel;
// keys are read by a polling goroutine and latched for the engine.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/platform"
	"github.com/vovakirdan/pico-snake/internal/registry"
)

func init() {
	registry.Register("tcell", "tcell full-screen terminal", func(opts registry.Options) (registry.Device, error) {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("term: %w", err)
		}
		return New(screen, opts.DirDebounce, opts.ButtonDebounce)
	})
}

// Device drives a tcell.Screen.
type Device struct {
	screen tcell.Screen
	latch  *platform.Latch
	host   *platform.Host
	once   sync.Once
}

var _ registry.Device = (*Device)(nil)

// New initializes screen and takes it over. Zero debounce windows use the
// handheld defaults.
func New(screen tcell.Screen, dirDebounce, btnDebounce time.Duration) (*Device, error) {
	if err := screen.Init(); err != nil {
		return nil, &core.CapabilityError{Capability: "display", Op: "init", Err: fmt.Errorf("%w: %v", core.ErrUnavailable, err)}
	}
	screen.HideCursor()

	if dirDebounce <= 0 {
		dirDebounce = platform.DefaultDirectionDebounce
	}
	if btnDebounce <= 0 {
		btnDebounce = platform.DefaultButtonDebounce
	}
	return &Device{
		screen: screen,
		latch:  platform.NewLatch(dirDebounce, btnDebounce, nil),
		host:   platform.NewHost(),
	}, nil
}

func bg(c core.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// stopped reports a transient error once the device is closed; the engine
// skips the step and its next sleep returns core.ErrStopped.
func (d *Device) stopped(op string) error {
	select {
	case <-d.host.Done():
		return &core.CapabilityError{Capability: "display", Op: op, Err: core.ErrStopped}
	default:
		return nil
	}
}

// Metrics reports the terminal size read at call time.
func (d *Device) Metrics() core.Metrics {
	w, h := d.screen.Size()
	return core.Metrics{Width: w, Height: h, GlyphW: 1, GlyphH: 1, XScale: 2}
}

func (d *Device) Clear(c core.Color) error {
	if err := d.stopped("clear"); err != nil {
		return err
	}
	d.screen.Fill(' ', bg(c))
	return nil
}

func (d *Device) SetPixel(x, y int, c core.Color) error {
	if err := d.stopped("pixel"); err != nil {
		return err
	}
	d.screen.SetContent(x, y, ' ', nil, bg(c))
	return nil
}

func (d *Device) FillRect(r core.Rect, c core.Color) error {
	if err := d.stopped("fill"); err != nil {
		return err
	}
	w, h := d.screen.Size()
	r = r.Intersect(core.NewRect(0, 0, w, h))
	st := bg(c)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			d.screen.SetContent(x, y, ' ', nil, st)
		}
	}
	return nil
}

// DrawText writes text keeping each cell's background.
func (d *Device) DrawText(x, y int, text string, c core.Color) error {
	if err := d.stopped("text"); err != nil {
		return err
	}
	fg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	i := 0
	for _, r := range text {
		_, _, st, _ := d.screen.GetContent(x+i, y)
		d.screen.SetContent(x+i, y, r, nil, st.Foreground(fg))
		i++
	}
	return nil
}

func (d *Device) Flush() error {
	if err := d.stopped("flush"); err != nil {
		return err
	}
	d.screen.Show()
	return nil
}

// Sample returns the keys pressed since the previous sample.
func (d *Device) Sample() (core.InputState, error) {
	return d.latch.Sample()
}

func (d *Device) Now() time.Time {
	return d.host.Now()
}

// SleepUntil returns core.ErrStopped once the user quits.
func (d *Device) SleepUntil(ctx context.Context, deadline time.Time) error {
	return d.host.SleepUntil(ctx, deadline)
}

// Loop polls terminal events until the user quits, ctx is done or Close is
// called.
func (d *Device) Loop(ctx context.Context) error {
	defer d.host.Stop()

	go func() {
		select {
		case <-ctx.Done():
		case <-d.host.Done():
		}
		d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if d.HandleKey(ev) {
				return nil
			}
		}
	}
}

// HandleKey feeds one key event to the latch and reports whether it asks
// to quit.
func (d *Device) HandleKey(ev *tcell.EventKey) bool {
	dir, btn := MapKey(ev)
	if btn.Has(core.ButtonQuit) {
		d.latch.Press(core.ButtonQuit)
		d.host.Stop()
		return true
	}
	if dir != core.DirNone {
		d.latch.Direction(dir)
	}
	if btn != 0 {
		d.latch.Press(btn)
	}
	return false
}

// MapKey translates a tcell key event to engine input.
func MapKey(ev *tcell.EventKey) (core.Direction, core.ButtonMask) {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.DirUp, 0
	case tcell.KeyDown:
		return core.DirDown, 0
	case tcell.KeyLeft:
		return core.DirLeft, 0
	case tcell.KeyRight:
		return core.DirRight, 0
	case tcell.KeyEnter:
		return core.DirNone, core.ButtonB
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.DirNone, core.ButtonQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return core.DirUp, 0
		case 's', 'j':
			return core.DirDown, 0
		case 'a', 'h':
			return core.DirLeft, 0
		case 'd', 'l':
			return core.DirRight, 0
		case ' ', 'p':
			return core.DirNone, core.ButtonB
		case 'r':
			return core.DirNone, core.ButtonA
		case 'q':
			return core.DirNone, core.ButtonQuit
		}
	}
	return core.DirNone, 0
}

// Close restores the terminal. Safe to call more than once.
func (d *Device) Close() error {
	d.once.Do(func() {
		d.host.Stop()
		d.screen.Fini()
	})
	return nil
}
