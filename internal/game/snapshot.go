package game

import "github.com/vovakirdan/pico-snake/internal/core"

// Stats is the score state of one game.
type Stats struct {
	FoodEaten int
	Points    int
	Length    int
	Moves     int
}

// Snapshot is a read-only copy of the game the renderer draws from.
type Snapshot struct {
	Width, Height int
	Body          []core.Point // Head first
	Food          core.Point
	HasFood       bool
	Heading       core.Direction
	Stats         Stats
	Over          bool
	Won           bool
}

// Head returns the first body segment.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}

// Snapshot returns a freshly allocated copy of the current state.
func (g *Game) Snapshot() Snapshot {
	var s Snapshot
	g.SnapshotInto(&s)
	return s
}

// SnapshotInto copies the current state into s, reusing s.Body's storage.
func (g *Game) SnapshotInto(s *Snapshot) {
	s.Width = g.cfg.Width
	s.Height = g.cfg.Height
	s.Body = s.Body[:0]
	for i := 0; i < g.body.len(); i++ {
		s.Body = append(s.Body, g.body.at(i))
	}
	s.Food = g.food
	s.HasFood = g.hasFood
	s.Heading = g.heading
	s.Stats = g.Stats()
	s.Over = g.over
	s.Won = g.won
}
