package sim

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/registry"
)

// Panel size of the handheld.
const (
	PanelWidth  = 240
	PanelHeight = 135
)

// Epoch is where every simulated run starts, so runs are reproducible.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func init() {
	registry.Register("sim", "headless framebuffer on a virtual clock", func(opts registry.Options) (registry.Device, error) {
		var script *Script
		if opts.Script != "" {
			s, err := LoadScript(opts.Script)
			if err != nil {
				return nil, err
			}
			script = s
		}
		return NewDevice(opts.Width, opts.Height, script), nil
	})
}

// Device bundles a framebuffer, a virtual clock and a script replay into a
// registry.Device.
type Device struct {
	FB     *Framebuffer
	Clock  *Clock
	Input  *ScriptInput
	Script *Script

	done chan struct{}
	once sync.Once
}

var _ registry.Device = (*Device)(nil)

// NewDevice creates a w x h device starting at Epoch. Zero sizes use the
// panel size; a nil script means no input.
func NewDevice(w, h int, script *Script) *Device {
	if w <= 0 || h <= 0 {
		w, h = PanelWidth, PanelHeight
	}
	clock := NewClock(Epoch)
	return &Device{
		FB:     NewFramebuffer(w, h),
		Clock:  clock,
		Input:  NewScriptInput(script, clock),
		Script: script,
		done:   make(chan struct{}),
	}
}

// RunFor stops the clock d after Epoch.
func (d *Device) RunFor(dur time.Duration) {
	d.Clock.StopAt(Epoch.Add(dur))
}

func (d *Device) Metrics() core.Metrics { return d.FB.Metrics() }
func (d *Device) Clear(c core.Color) error { return d.FB.Clear(c) }
func (d *Device) SetPixel(x, y int, c core.Color) error { return d.FB.SetPixel(x, y, c) }
func (d *Device) FillRect(r core.Rect, c core.Color) error { return d.FB.FillRect(r, c) }
func (d *Device) DrawText(x, y int, s string, c core.Color) error { return d.FB.DrawText(x, y, s, c) }
func (d *Device) Flush() error { return d.FB.Flush() }
func (d *Device) Sample() (core.InputState, error) { return d.Input.Sample() }
func (d *Device) Now() time.Time { return d.Clock.Now() }

func (d *Device) SleepUntil(ctx context.Context, deadline time.Time) error {
	return d.Clock.SleepUntil(ctx, deadline)
}

// Loop has no host events to pump; it waits for Close or ctx.
func (d *Device) Loop(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-d.done:
	}
	return nil
}

// Close stops the clock at its current time.
func (d *Device) Close() error {
	d.once.Do(func() {
		d.Clock.StopAt(d.Clock.Now())
		close(d.done)
	})
	return nil
}
