package platform

import (
	"sync"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Debounce windows of the handheld joystick and buttons.
const (
	DefaultDirectionDebounce = 150 * time.Millisecond
	DefaultButtonDebounce    = 200 * time.Millisecond
)

// Latch collects input events from another goroutine (a Bubble Tea update
// loop, a tcell poller) and hands them to the engine through Sample.
//
// Every accepted event is a pulse: Sample reports it once and then forgets it.
// A button reported by one sample is held back from the next, so a repeat
// press always reaches the engine after a released sample.
type Latch struct {
	mu      sync.Mutex
	now     func() time.Time
	dir     core.Direction
	buttons core.ButtonMask
	last    core.ButtonMask

	dirDebounce *core.Debouncer
	btnDebounce map[core.ButtonMask]*core.Debouncer
	btnWindow   time.Duration
}

var _ core.Input = (*Latch)(nil)

// NewLatch creates a latch with the given debounce windows. now defaults to
// time.Now.
func NewLatch(dirWindow, btnWindow time.Duration, now func() time.Time) *Latch {
	if now == nil {
		now = time.Now
	}
	return &Latch{
		now:         now,
		dirDebounce: core.NewDebouncer(dirWindow),
		btnDebounce: make(map[core.ButtonMask]*core.Debouncer),
		btnWindow:   btnWindow,
	}
}

// Direction records a direction press. Presses inside the debounce window of
// the previous accepted one are dropped.
func (l *Latch) Direction(d core.Direction) bool {
	if d == core.DirNone {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dirDebounce.Allow(l.now()) {
		return false
	}
	l.dir = d
	return true
}

// Press records a button press. ButtonQuit is never debounced.
func (l *Latch) Press(b core.ButtonMask) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b != core.ButtonQuit {
		deb, ok := l.btnDebounce[b]
		if !ok {
			deb = core.NewDebouncer(l.btnWindow)
			l.btnDebounce[b] = deb
		}
		if !deb.Allow(l.now()) {
			return false
		}
	}
	l.buttons |= b
	return true
}

// Sample returns and clears the latched events.
func (l *Latch) Sample() (core.InputState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := core.InputState{Direction: l.dir, Buttons: l.buttons &^ l.last}
	l.dir = core.DirNone
	l.buttons &= l.last
	l.last = st.Buttons
	return st, nil
}

// Reset drops pending events and debounce history.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dir = core.DirNone
	l.buttons = 0
	l.last = 0
	l.dirDebounce.Reset()
	for _, d := range l.btnDebounce {
		d.Reset()
	}
}
