package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color. Displays with fewer bits (RGB565 panels,
// 256-color terminals) down-convert at their own boundary.
type Color struct {
	R, G, B uint8
}

// Predefined colors used by the default palette.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Green = Color{0, 255, 0}
	Red   = Color{255, 0, 0}
	Brown = Color{139, 69, 19}
	Gray  = Color{128, 128, 128}
)

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#rrggbb" or "rrggbb" into a Color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB565 packs the color into the 16-bit format used by ST7789-class panels.
func (c Color) RGB565() uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// FromRGB565 expands a packed 16-bit panel color.
func FromRGB565(v uint16) Color {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return Color{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2}
}

// Lerp blends from c toward to. t is clamped to [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}
