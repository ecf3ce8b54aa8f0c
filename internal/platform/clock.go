// Package platform holds the pieces shared by host backends: a wall clock
// and an input latch that turns asynchronous key events into debounced,
// non-blocking samples.
package platform

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Realtime is a core.Platform backed by the system clock.
type Realtime struct{}

var _ core.Platform = Realtime{}

// Now returns the current wall-clock time.
func (Realtime) Now() time.Time {
	return time.Now()
}

// SleepUntil blocks until deadline or until ctx is done.
func (Realtime) SleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Host is the realtime platform of an interactive backend. Once Stop is
// called, SleepUntil returns core.ErrStopped so the engine loop ends.
type Host struct {
	Realtime
	done chan struct{}
	once sync.Once
}

var _ core.Platform = (*Host)(nil)

// NewHost creates a running host.
func NewHost() *Host {
	return &Host{done: make(chan struct{})}
}

// Stop ends the session. Safe to call more than once.
func (h *Host) Stop() {
	h.once.Do(func() { close(h.done) })
}

// Done is closed by Stop.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// SleepUntil blocks until deadline, ctx is done or Stop is called.
func (h *Host) SleepUntil(ctx context.Context, deadline time.Time) error {
	select {
	case <-h.done:
		return core.ErrStopped
	default:
	}

	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return core.ErrStopped
	case <-timer.C:
		return nil
	}
}
