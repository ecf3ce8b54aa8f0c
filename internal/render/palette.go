package render

import "github.com/vovakirdan/pico-snake/internal/core"

// Palette holds the colors of every drawable element.
type Palette struct {
	Background core.Color
	Border     core.Color
	Body       core.Color
	Head       core.Color
	Food       core.Color
	Text       core.Color
	Corpse     core.Color // Final color of the death fade
}

// DefaultPalette matches the handheld LCD build.
func DefaultPalette() Palette {
	return Palette{
		Background: core.Black,
		Border:     core.White,
		Body:       core.Green,
		Head:       core.Green,
		Food:       core.Red,
		Text:       core.White,
		Corpse:     core.Brown,
	}
}

// Kind is what occupies a grid cell in one frame.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBody
	KindHead
	KindFood
	KindCorpse
)

func (p Palette) color(k Kind, corpse core.Color) core.Color {
	switch k {
	case KindBody:
		return p.Body
	case KindHead:
		return p.Head
	case KindFood:
		return p.Food
	case KindCorpse:
		return corpse
	default:
		return p.Background
	}
}

// corpseColor fades body to corpse over the first half of the animation.
func (p Palette) corpseColor(progress float64) core.Color {
	return p.Body.Lerp(p.Corpse, progress*2)
}
