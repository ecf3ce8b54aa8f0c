package config

import (
	"math"
	"time"
)

// Pacer calculates the logic interval from the food eaten so far.
// It implements engine.Pacer.
type Pacer struct {
	cfg PacingConfig
}

// NewPacer creates a pacer. A disabled config yields the base interval
// scaled only by the initial level.
func NewPacer(cfg PacingConfig) *Pacer {
	return &Pacer{cfg: cfg}
}

// IsEnabled returns whether pacing progresses with food.
func (p *Pacer) IsEnabled() bool {
	return p.cfg.Enabled && p.cfg.Progression.Type != "none"
}

// Level returns the current pacing level (0.0 to 1.0).
func (p *Pacer) Level(foodEaten int) float64 {
	initial := clampF(p.cfg.InitialLevel, 0, 1)
	if !p.IsEnabled() {
		return initial
	}

	maxAt := float64(p.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(foodEaten)/maxAt, 0, 1)

	// Interpolate from initial level to 1.0
	return initial + progress*(1.0-initial)
}

// Interval returns base divided by the current speed factor. The tick rate
// grows from 1x to (1 + speed_multiplier)x.
func (p *Pacer) Interval(base time.Duration, foodEaten int) time.Duration {
	if !p.cfg.Enabled {
		return base
	}
	speed := 1.0 + p.Level(foodEaten)*p.cfg.Scaling.SpeedMultiplier
	return time.Duration(float64(base) / speed)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
