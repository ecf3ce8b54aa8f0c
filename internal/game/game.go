// Package game implements the Snake simulation: a snake on a bounded grid,
// one food item, collision rules and scoring. It knows nothing about time,
// drawing or input devices; the engine drives it one logic tick at a time.
package game

import (
	"fmt"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Defaults taken from the handheld build.
const (
	DefaultStartLength   = 3
	DefaultPointsPerFood = 10
	DefaultSpawnAttempts = 32
)

// Source is the randomness the game consumes. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Config sizes the grid and sets the scoring rules.
// Zero values for StartLength, PointsPerFood and SpawnAttempts select defaults.
type Config struct {
	Width         int
	Height        int
	StartLength   int
	PointsPerFood int
	SpawnAttempts int // Random food placements tried before the free-cell scan
}

// DefaultConfig returns the configuration for a w x h grid.
func DefaultConfig(w, h int) Config {
	return Config{
		Width:         w,
		Height:        h,
		StartLength:   DefaultStartLength,
		PointsPerFood: DefaultPointsPerFood,
		SpawnAttempts: DefaultSpawnAttempts,
	}
}

func (c Config) withDefaults() Config {
	if c.StartLength == 0 {
		c.StartLength = DefaultStartLength
	}
	if c.PointsPerFood == 0 {
		c.PointsPerFood = DefaultPointsPerFood
	}
	if c.SpawnAttempts == 0 {
		c.SpawnAttempts = DefaultSpawnAttempts
	}
	return c
}

// Validate checks that a game can start on the configured grid.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Width <= 0:
		return &core.ConfigError{Field: "grid.width", Reason: fmt.Sprintf("must be positive, got %d", c.Width)}
	case c.Height <= 0:
		return &core.ConfigError{Field: "grid.height", Reason: fmt.Sprintf("must be positive, got %d", c.Height)}
	case c.StartLength < 1:
		return &core.ConfigError{Field: "grid.start_length", Reason: fmt.Sprintf("must be at least 1, got %d", c.StartLength)}
	case c.Width/2+1 < c.StartLength:
		return &core.ConfigError{
			Field:  "grid.width",
			Reason: fmt.Sprintf("%d cells is too narrow for a snake of length %d", c.Width, c.StartLength),
		}
	case c.Width*c.Height <= c.StartLength:
		return &core.ConfigError{Field: "grid", Reason: "no free cell for food at start"}
	case c.PointsPerFood < 0:
		return &core.ConfigError{Field: "scoring.points_per_food", Reason: "must not be negative"}
	case c.SpawnAttempts < 0:
		return &core.ConfigError{Field: "grid.spawn_attempts", Reason: "must not be negative"}
	}
	return nil
}

// Game is the simulation state. It is not safe for concurrent use.
type Game struct {
	cfg Config
	rng Source

	body    body
	heading core.Direction
	pending core.Direction // Accepted request, applied at the next Advance
	food    core.Point
	hasFood bool

	foodEaten int
	moves     int
	over      bool
	won       bool
}

// New validates cfg, allocates the body storage and starts a game.
func New(cfg Config, rng Source) (*Game, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &core.ConfigError{Field: "rng", Reason: "random source is required"}
	}
	g := &Game{
		cfg:  cfg,
		rng:  rng,
		body: newBody(cfg.Width, cfg.Height),
	}
	g.Reset()
	return g, nil
}

// Reset starts a new game: the snake at the grid center heading right with its
// body trailing left, a fresh food item and zeroed stats.
func (g *Game) Reset() {
	g.body.clear()
	cx, cy := g.cfg.Width/2, g.cfg.Height/2
	for i := g.cfg.StartLength - 1; i >= 0; i-- {
		g.body.pushFront(core.Pt(cx-i, cy))
	}
	g.heading = core.DirRight
	g.pending = core.DirNone
	g.foodEaten = 0
	g.moves = 0
	g.over = false
	g.won = false
	g.hasFood = g.spawnFood()
}

// Steer records a direction request for the next tick. DirNone and the reverse
// of the current heading are ignored; a later accepted request replaces an
// earlier one.
func (g *Game) Steer(d core.Direction) bool {
	if d == core.DirNone || d == g.heading.Opposite() {
		return false
	}
	g.pending = d
	return true
}

// Advance runs one logic tick. req is passed through Steer first.
// After a collision or a win the game is over and Advance reports no events.
func (g *Game) Advance(req core.Direction) Result {
	if g.over {
		return Result{Head: g.body.front()}
	}

	g.Steer(req)
	if g.pending != core.DirNone {
		g.heading = g.pending
		g.pending = core.DirNone
	}

	next := g.body.front().Add(g.heading.Delta())

	if !next.In(g.cfg.Width, g.cfg.Height) {
		g.over = true
		return Result{Events: EventSet(EventCollision), Head: next, Cause: CauseWall}
	}
	// The tail moves out of the way this tick, so stepping onto it is legal.
	if g.body.contains(next) && next != g.body.back() {
		g.over = true
		return Result{Events: EventSet(EventCollision), Head: next, Cause: CauseSelf}
	}

	res := Result{Events: EventSet(EventMoved), Head: next}
	g.moves++

	if g.hasFood && next == g.food {
		g.body.pushFront(next)
		g.foodEaten++
		res.Events = res.Events.with(EventFoodEaten)
		g.hasFood = g.spawnFood()
		if !g.hasFood {
			g.over = true
			g.won = true
			res.Events = res.Events.with(EventWon)
		}
		return res
	}

	g.body.popBack()
	g.body.pushFront(next)
	return res
}

// spawnFood places food on a free cell. It tries a bounded number of random
// cells, then picks uniformly among the free cells by scanning. It returns
// false when the snake covers the whole grid.
func (g *Game) spawnFood() bool {
	w, h := g.cfg.Width, g.cfg.Height
	for range g.cfg.SpawnAttempts {
		p := core.Pt(g.rng.Intn(w), g.rng.Intn(h))
		if !g.body.contains(p) {
			g.food = p
			return true
		}
	}

	free := w*h - g.body.len()
	if free <= 0 {
		return false
	}
	k := g.rng.Intn(free)
	for y := range h {
		for x := range w {
			p := core.Pt(x, y)
			if g.body.contains(p) {
				continue
			}
			if k == 0 {
				g.food = p
				return true
			}
			k--
		}
	}
	return false
}

// PlaceFood moves the food to p. It fails if p is off the grid or on the snake.
func (g *Game) PlaceFood(p core.Point) error {
	if !p.In(g.cfg.Width, g.cfg.Height) {
		return fmt.Errorf("game: food %v outside %dx%d grid", p, g.cfg.Width, g.cfg.Height)
	}
	if g.body.contains(p) {
		return fmt.Errorf("game: food %v on snake", p)
	}
	g.food = p
	g.hasFood = true
	return nil
}

// Config returns the effective configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// Head returns the head cell.
func (g *Game) Head() core.Point {
	return g.body.front()
}

// Body returns a copy of the snake, head first.
func (g *Game) Body() []core.Point {
	out := make([]core.Point, g.body.len())
	for i := range out {
		out[i] = g.body.at(i)
	}
	return out
}

// Len returns the snake length.
func (g *Game) Len() int {
	return g.body.len()
}

// Occupied reports whether the snake covers p.
func (g *Game) Occupied(p core.Point) bool {
	return p.In(g.cfg.Width, g.cfg.Height) && g.body.contains(p)
}

// Food returns the food cell and whether food is present.
func (g *Game) Food() (core.Point, bool) {
	return g.food, g.hasFood
}

// Heading returns the direction applied at the last move.
func (g *Game) Heading() core.Direction {
	return g.heading
}

// Stats returns the current score state.
func (g *Game) Stats() Stats {
	return Stats{
		FoodEaten: g.foodEaten,
		Points:    g.foodEaten * g.cfg.PointsPerFood,
		Length:    g.body.len(),
		Moves:     g.moves,
	}
}

// Over reports whether the game ended by collision or win.
func (g *Game) Over() bool {
	return g.over
}

// Won reports whether the snake filled the grid.
func (g *Game) Won() bool {
	return g.won
}
