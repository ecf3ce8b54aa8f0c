package engine

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pico-snake/internal/game"
	"github.com/vovakirdan/pico-snake/internal/render"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTiming overrides the loop cadences.
func WithTiming(t Timing) Option {
	return func(e *Engine) { e.timing = t }
}

// WithSeed seeds the food placement. Without it the seed comes from the
// platform clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the random source directly.
func WithRand(src game.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithPalette sets the colors.
func WithPalette(p render.Palette) Option {
	return func(e *Engine) { e.palette = p }
}

// WithLayout fixes the cell layout instead of fitting it to the display.
func WithLayout(l render.Layout) Option {
	return func(e *Engine) { e.layout = &l }
}

// WithResultSink receives a Result at the end of every game.
func WithResultSink(s ResultSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithFailurePolicy sets how many consecutive skipped steps end Run.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithPacing speeds the logic tick up as food is eaten.
func WithPacing(p Pacer) Option {
	return func(e *Engine) { e.pacer = p }
}

// WithGameConfig sets start length, scoring and spawn attempts. The grid size
// always comes from New.
func WithGameConfig(c game.Config) Option {
	return func(e *Engine) { e.gameCfg = c }
}
