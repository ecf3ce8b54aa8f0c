package engine

import "time"

// Result summarizes a finished game.
type Result struct {
	Points    int
	FoodEaten int
	Length    int
	Won       bool
	Cause     string // "wall", "self" or "" for a win
	Duration  time.Duration
	Seed      int64
	EndedAt   time.Time
}

// Outcome is a short label for the ledger.
func (r Result) Outcome() string {
	if r.Won {
		return "won"
	}
	return "crashed:" + r.Cause
}

// ResultSink receives every finished game. Errors are logged and ignored.
type ResultSink interface {
	RecordResult(r Result) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(r Result) error

func (f ResultSinkFunc) RecordResult(r Result) error {
	return f(r)
}

// Pacer shortens the logic interval as the snake eats.
type Pacer interface {
	Interval(base time.Duration, foodEaten int) time.Duration
}

// FailurePolicy escalates repeated transient errors.
type FailurePolicy struct {
	// MaxConsecutive stops Run after this many skipped steps in a row.
	// Zero never stops.
	MaxConsecutive int
}
