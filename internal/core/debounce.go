package core

import "time"

// Debouncer enforces a minimum interval between accepted triggers.
// The zero value accepts every trigger.
type Debouncer struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

// NewDebouncer creates a debouncer with the given re-trigger interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Allow reports whether a trigger at now is accepted, and records it if so.
func (d *Debouncer) Allow(now time.Time) bool {
	if d.armed && now.Sub(d.last) < d.interval {
		return false
	}
	d.last = now
	d.armed = true
	return true
}

// Reset forgets the last accepted trigger.
func (d *Debouncer) Reset() {
	d.armed = false
}
