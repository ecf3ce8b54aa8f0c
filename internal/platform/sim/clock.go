// Package sim is a headless backend: a virtual clock, an in-memory RGBA
// framebuffer and scripted input. The engine runs on it as fast as the CPU
// allows and the result is fully reproducible.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Clock is a core.Platform whose time only moves when the engine sleeps.
type Clock struct {
	mu     sync.RWMutex
	now    time.Time
	limit  time.Time // Zero means no limit
	sleeps int
}

var _ core.Platform = (*Clock)(nil)

// NewClock creates a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the virtual time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StopAt makes SleepUntil return core.ErrStopped for any deadline after t.
func (c *Clock) StopAt(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = t
}

// Sleeps returns how many times SleepUntil was called.
func (c *Clock) Sleeps() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sleeps
}

// SleepUntil jumps straight to deadline.
func (c *Clock) SleepUntil(ctx context.Context, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sleeps++
	if !c.limit.IsZero() && deadline.After(c.limit) {
		c.now = c.limit
		return core.ErrStopped
	}
	if deadline.After(c.now) {
		c.now = deadline
	}
	return nil
}
