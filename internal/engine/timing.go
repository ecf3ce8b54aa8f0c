package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Timing holds the cadences of the loop.
type Timing struct {
	Frame         time.Duration // Render cadence
	Logic         time.Duration // Simulation cadence before pacing
	Death         time.Duration // Length of the death animation
	BlinkCount    int           // Visible/hidden cycles of the game-over message
	BlinkDuration time.Duration // Total blinking time
}

// DefaultTiming is ~30 Hz rendering, ~3 Hz logic, a 2 s death animation and
// 12 blinks over 3 s.
func DefaultTiming() Timing {
	return Timing{
		Frame:         33 * time.Millisecond,
		Logic:         300 * time.Millisecond,
		Death:         2 * time.Second,
		BlinkCount:    12,
		BlinkDuration: 3 * time.Second,
	}
}

// Validate rejects zero or negative intervals.
func (t Timing) Validate() error {
	check := func(field string, d time.Duration) error {
		if d <= 0 {
			return &core.ConfigError{Field: field, Reason: fmt.Sprintf("must be positive, got %v", d)}
		}
		return nil
	}
	if err := check("timing.frame", t.Frame); err != nil {
		return err
	}
	if err := check("timing.logic", t.Logic); err != nil {
		return err
	}
	if err := check("timing.death", t.Death); err != nil {
		return err
	}
	if err := check("timing.blink_duration", t.BlinkDuration); err != nil {
		return err
	}
	if t.BlinkCount <= 0 {
		return &core.ConfigError{Field: "timing.blink_count", Reason: "must be positive"}
	}
	if t.blinkHalf() <= 0 {
		return &core.ConfigError{Field: "timing.blink_count", Reason: "too many blinks for the blink duration"}
	}
	return nil
}

// blinkHalf is how long the message stays visible, or hidden, per blink.
func (t Timing) blinkHalf() time.Duration {
	return t.BlinkDuration / time.Duration(2*t.BlinkCount)
}

// nextDeadline moves a periodic deadline forward by one interval. After a
// stall longer than an interval it re-anchors to now instead of bursting.
func nextDeadline(deadline time.Time, interval time.Duration, now time.Time) time.Time {
	next := deadline.Add(interval)
	if !next.After(now) {
		next = now.Add(interval)
	}
	return next
}
