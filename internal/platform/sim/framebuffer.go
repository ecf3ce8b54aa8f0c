package sim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Ops counts the calls a Framebuffer received.
type Ops struct {
	Clears  int
	Pixels  int
	Fills   int
	Texts   int
	Flushes int
}

// NonFlush returns the number of drawing calls.
func (o Ops) NonFlush() int {
	return o.Clears + o.Pixels + o.Fills + o.Texts
}

// Framebuffer is a core.Display drawing into an RGBA image. Drawing goes to a
// back buffer; Flush copies it to the front buffer that Image and PNG read.
type Framebuffer struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
	face  font.Face
	ops   Ops

	faults      map[string]error // Next call of an op fails once
	unavailable bool
}

var _ core.Display = (*Framebuffer)(nil)

// NewFramebuffer creates a w x h framebuffer. The handheld panel is 240x135.
func NewFramebuffer(w, h int) *Framebuffer {
	r := image.Rect(0, 0, w, h)
	return &Framebuffer{
		back:   image.NewRGBA(r),
		front:  image.NewRGBA(r),
		face:   basicfont.Face7x13,
		faults: make(map[string]error),
	}
}

// toRGBA stores c at the 16-bit depth of the handheld panel.
func toRGBA(c core.Color) color.RGBA {
	c = core.FromRGB565(c.RGB565())
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Metrics reports the panel size and the 7x13 glyph cell.
func (f *Framebuffer) Metrics() core.Metrics {
	b := f.back.Bounds()
	return core.Metrics{Width: b.Dx(), Height: b.Dy(), GlyphW: 7, GlyphH: 13}
}

// FailNext makes the next call of op ("clear", "pixel", "fill", "text",
// "flush") return err.
func (f *Framebuffer) FailNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = err
}

// SetUnavailable makes every call fail permanently.
func (f *Framebuffer) SetUnavailable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailable = true
}

// check must be called with mu held.
func (f *Framebuffer) check(op string) error {
	if f.unavailable {
		return &core.CapabilityError{Capability: "display", Op: op, Err: core.ErrUnavailable}
	}
	if err, ok := f.faults[op]; ok {
		delete(f.faults, op)
		return &core.CapabilityError{Capability: "display", Op: op, Err: err}
	}
	return nil
}

func (f *Framebuffer) Clear(c core.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("clear"); err != nil {
		return err
	}
	f.ops.Clears++
	draw.Draw(f.back, f.back.Bounds(), image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
	return nil
}

func (f *Framebuffer) SetPixel(x, y int, c core.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("pixel"); err != nil {
		return err
	}
	f.ops.Pixels++
	f.back.SetRGBA(x, y, toRGBA(c))
	return nil
}

func (f *Framebuffer) FillRect(r core.Rect, c core.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("fill"); err != nil {
		return err
	}
	f.ops.Fills++
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(f.back.Bounds())
	draw.Draw(f.back, rect, image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
	return nil
}

func (f *Framebuffer) DrawText(x, y int, text string, c core.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("text"); err != nil {
		return err
	}
	f.ops.Texts++
	d := font.Drawer{
		Dst:  f.back,
		Src:  image.NewUniform(toRGBA(c)),
		Face: f.face,
		Dot:  fixed.P(x, y+f.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

func (f *Framebuffer) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("flush"); err != nil {
		return err
	}
	f.ops.Flushes++
	copy(f.front.Pix, f.back.Pix)
	return nil
}

// Ops returns the call counters.
func (f *Framebuffer) Ops() Ops {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ops
}

// ResetOps zeroes the call counters.
func (f *Framebuffer) ResetOps() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = Ops{}
}

// At returns the presented color at (x, y).
func (f *Framebuffer) At(x, y int) core.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.front.RGBAAt(x, y)
	return core.RGB(c.R, c.G, c.B)
}

// Image returns a copy of the presented frame.
func (f *Framebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(f.front.Bounds())
	copy(img.Pix, f.front.Pix)
	return img
}

// WritePNG encodes the presented frame.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.Image()); err != nil {
		return fmt.Errorf("sim: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the presented frame to path.
func (f *Framebuffer) SavePNG(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return f.WritePNG(file)
}
