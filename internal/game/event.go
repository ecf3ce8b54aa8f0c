package game

import (
	"strings"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Event is one outcome of a logic tick.
type Event uint8

const (
	// EventMoved is set whenever the head advanced one cell.
	EventMoved Event = 1 << iota
	// EventFoodEaten is set when the head landed on food and the snake grew.
	EventFoodEaten
	// EventCollision ends the game. The body is left as it was before the tick.
	EventCollision
	// EventWon is set when the snake fills every free cell and no food can spawn.
	EventWon
)

// EventSet is a bit set of events produced by one tick.
type EventSet uint8

// Has reports whether e occurred.
func (s EventSet) Has(e Event) bool {
	return uint8(s)&uint8(e) != 0
}

func (s EventSet) with(e Event) EventSet {
	return s | EventSet(e)
}

func (s EventSet) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Has(EventMoved) {
		parts = append(parts, "moved")
	}
	if s.Has(EventFoodEaten) {
		parts = append(parts, "food")
	}
	if s.Has(EventCollision) {
		parts = append(parts, "collision")
	}
	if s.Has(EventWon) {
		parts = append(parts, "won")
	}
	return strings.Join(parts, "|")
}

// Cause says what the head ran into.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}

// Result describes one logic tick.
type Result struct {
	Events EventSet
	Head   core.Point // Head after the tick, or the blocked cell on collision
	Cause  Cause
}
