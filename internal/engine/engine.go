// Package engine ties the game, the renderer and the capabilities together.
// One goroutine calls Run; everything else happens synchronously inside Step.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/game"
	"github.com/vovakirdan/pico-snake/internal/render"
)

// ErrTooManyFailures is returned by Run when the failure policy trips.
var ErrTooManyFailures = errors.New("too many consecutive failures")

// Engine owns the mode machine, the game and the renderer.
type Engine struct {
	in  core.Input
	pf  core.Platform
	log *log.Logger

	timing  Timing
	gameCfg game.Config
	palette render.Palette
	layout  *render.Layout
	sink    ResultSink
	policy  FailurePolicy
	pacer   Pacer
	seed    int64
	rng     game.Source

	game     *game.Game
	renderer *render.Renderer
	snap     game.Snapshot

	mode        Mode
	started     bool
	prevButtons core.ButtonMask
	nextFrame   time.Time
	nextLogic   time.Time
	modeSince   time.Time // When Dying or GameOverBlink began
	gameStart   time.Time
	failures    int
}

// New builds an engine for a width x height grid. Invalid sizes and layouts
// are reported as *core.ConfigError before anything is drawn.
func New(in core.Input, pf core.Platform, d core.Display, width, height int, opts ...Option) (*Engine, error) {
	if in == nil || pf == nil || d == nil {
		return nil, &core.ConfigError{Field: "capabilities", Reason: "input, platform and display are required"}
	}

	e := &Engine{
		in:      in,
		pf:      pf,
		log:     log.New(io.Discard),
		timing:  DefaultTiming(),
		gameCfg: game.DefaultConfig(width, height),
		palette: render.DefaultPalette(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.timing.Validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.seed = pf.Now().UnixNano()
		e.rng = rand.New(rand.NewSource(e.seed))
	}

	e.gameCfg.Width, e.gameCfg.Height = width, height
	g, err := game.New(e.gameCfg, e.rng)
	if err != nil {
		return nil, err
	}
	e.game = g

	var l render.Layout
	if e.layout != nil {
		l = *e.layout
		if l.Cols != width || l.Rows != height {
			return nil, &core.ConfigError{
				Field:  "display.layout",
				Reason: fmt.Sprintf("layout is %dx%d cells, grid is %dx%d", l.Cols, l.Rows, width, height),
			}
		}
	} else if l, err = render.FitLayout(d.Metrics(), width, height); err != nil {
		return nil, err
	}
	if e.renderer, err = render.New(d, l, e.palette); err != nil {
		return nil, err
	}
	return e, nil
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Seed returns the seed of the food placement, if the engine chose or was
// given one.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Snapshot returns a copy of the game state.
func (e *Engine) Snapshot() game.Snapshot {
	return e.game.Snapshot()
}

// Run loops until ctx is cancelled, the platform reports core.ErrStopped, or
// a capability fails permanently. A clean stop returns nil.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("engine started",
		"grid", fmt.Sprintf("%dx%d", e.gameCfg.Width, e.gameCfg.Height),
		"frame", e.timing.Frame,
		"logic", e.timing.Logic,
		"seed", e.seed,
	)

	for {
		if ctx.Err() != nil {
			e.log.Info("engine stopped", "reason", ctx.Err())
			return nil
		}
		if err := e.Step(e.pf.Now()); err != nil {
			e.log.Error("engine halted", "error", err)
			return err
		}

		err := e.pf.SleepUntil(ctx, e.Deadline())
		switch {
		case err == nil:
		case errors.Is(err, core.ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			e.log.Info("engine stopped", "reason", err)
			return nil
		default:
			if ferr := e.fault("sleep", err); ferr != nil {
				e.log.Error("engine halted", "error", ferr)
				return ferr
			}
		}
	}
}

// Deadline returns when the next Step has work to do.
func (e *Engine) Deadline() time.Time {
	d := e.nextFrame
	earlier := func(t time.Time) {
		if t.Before(d) {
			d = t
		}
	}
	switch e.mode {
	case ModePlaying:
		earlier(e.nextLogic)
	case ModeDying:
		earlier(e.modeSince.Add(e.timing.Death))
	case ModeGameOverBlink:
		if el := e.blinkElapsed(e.pf.Now()); el < e.timing.BlinkDuration {
			half := e.timing.blinkHalf()
			earlier(e.modeSince.Add((el/half + 1) * half))
		}
	}
	return d
}

// Step performs one wake-up of the loop at time now: render a frame if due,
// then sample input, apply button edges and steering, and run a logic tick if
// due. A frame shows the state left by the previous step, so a failed frame
// leaves the game untouched and the input unread.
// Transient capability errors skip the due logic tick and return nil; a
// permanent error or a tripped failure policy is returned.
func (e *Engine) Step(now time.Time) error {
	if !e.started {
		e.started = true
		e.nextFrame = now
		e.nextLogic = now
	}

	if !now.Before(e.nextFrame) {
		e.nextFrame = nextDeadline(e.nextFrame, e.timing.Frame, now)
		if err := e.render(now); err != nil {
			e.skipLogic(now)
			return e.fault("render", err)
		}
	}

	st, err := e.in.Sample()
	if err != nil {
		e.skipLogic(now)
		return e.fault("input sample", err)
	}

	pressed := st.Buttons.Pressed(e.prevButtons)
	e.prevButtons = st.Buttons
	e.handleButtons(now, pressed)

	if e.mode == ModePlaying && st.Direction != core.DirNone {
		e.game.Steer(st.Direction)
	}

	if e.mode == ModePlaying && !now.Before(e.nextLogic) {
		e.logicTick(now)
		e.nextLogic = nextDeadline(e.nextLogic, e.logicInterval(), now)
	}

	if e.mode == ModeDying && now.Sub(e.modeSince) >= e.timing.Death {
		e.modeSince = e.modeSince.Add(e.timing.Death)
		e.setMode(ModeGameOverBlink)
		e.renderer.Invalidate()
	}

	e.failures = 0
	return nil
}

// skipLogic drops a logic tick that was due at now.
func (e *Engine) skipLogic(now time.Time) {
	if e.mode == ModePlaying && !now.Before(e.nextLogic) {
		e.nextLogic = nextDeadline(e.nextLogic, e.logicInterval(), now)
	}
}

// fault logs a failed step. It returns an error only when the loop must end.
func (e *Engine) fault(op string, err error) error {
	if core.IsFatal(err) {
		return fmt.Errorf("engine: %s: %w", op, err)
	}
	e.failures++
	e.log.Warn("step skipped", "op", op, "error", err, "consecutive", e.failures)
	if e.policy.MaxConsecutive > 0 && e.failures >= e.policy.MaxConsecutive {
		return fmt.Errorf("engine: %w (%d): %w", ErrTooManyFailures, e.failures, err)
	}
	return nil
}

func (e *Engine) handleButtons(now time.Time, pressed core.ButtonMask) {
	if pressed.Has(core.ButtonA) && e.mode != ModeStart {
		e.game.Reset()
		e.setMode(ModeStart)
		e.renderer.Invalidate()
		return
	}
	if !pressed.Has(core.ButtonB) {
		return
	}

	switch e.mode {
	case ModeStart:
		e.game.Reset()
		e.gameStart = now
		e.nextLogic = now.Add(e.logicInterval())
		e.setMode(ModePlaying)
		e.renderer.Invalidate()
	case ModePlaying:
		st := e.game.Stats()
		e.setMode(ModePaused)
		e.log.Info("game paused", "points", st.Points, "food", st.FoodEaten)
	case ModePaused:
		e.nextLogic = now.Add(e.logicInterval())
		e.setMode(ModePlaying)
		e.renderer.Invalidate()
	}
}

func (e *Engine) logicTick(now time.Time) {
	res := e.game.Advance(core.DirNone)

	switch {
	case res.Events.Has(game.EventCollision):
		e.modeSince = now
		e.setMode(ModeDying)
		e.finish(now, res.Cause)
	case res.Events.Has(game.EventWon):
		e.modeSince = now
		e.setMode(ModeGameOverBlink)
		e.renderer.Invalidate()
		e.finish(now, game.CauseNone)
	case res.Events.Has(game.EventFoodEaten):
		st := e.game.Stats()
		e.log.Debug("food eaten", "points", st.Points, "length", st.Length)
	}
}

// finish reports the ended game to the sink.
func (e *Engine) finish(now time.Time, cause game.Cause) {
	st := e.game.Stats()
	r := Result{
		Points:    st.Points,
		FoodEaten: st.FoodEaten,
		Length:    st.Length,
		Won:       e.game.Won(),
		Duration:  now.Sub(e.gameStart),
		Seed:      e.seed,
		EndedAt:   now,
	}
	if cause != game.CauseNone {
		r.Cause = cause.String()
	}
	e.log.Info("game over", "outcome", r.Outcome(), "points", r.Points, "food", r.FoodEaten, "duration", r.Duration)

	if e.sink == nil {
		return
	}
	if err := e.sink.RecordResult(r); err != nil {
		e.log.Warn("could not record result", "error", err)
	}
}

func (e *Engine) logicInterval() time.Duration {
	if e.pacer == nil {
		return e.timing.Logic
	}
	if iv := e.pacer.Interval(e.timing.Logic, e.game.Stats().FoodEaten); iv > 0 {
		return iv
	}
	return e.timing.Logic
}

func (e *Engine) blinkElapsed(now time.Time) time.Duration {
	return now.Sub(e.modeSince)
}

// blinkVisible reports whether the game-over message shows at now. After the
// blinking period it stays visible.
func (e *Engine) blinkVisible(now time.Time) bool {
	el := e.blinkElapsed(now)
	if el >= e.timing.BlinkDuration || el < 0 {
		return true
	}
	return (el/e.timing.blinkHalf())%2 == 0
}

func (e *Engine) render(now time.Time) error {
	switch e.mode {
	case ModeStart:
		return e.renderer.ShowStart()
	case ModePaused:
		return e.renderer.ShowPause(e.game.Stats())
	case ModeGameOverBlink:
		if e.blinkVisible(now) {
			return e.renderer.ShowGameOver(e.game.Stats(), e.game.Won())
		}
		return e.renderer.ShowBlank()
	}

	e.game.SnapshotInto(&e.snap)
	if e.mode == ModeDying {
		progress := float64(now.Sub(e.modeSince)) / float64(e.timing.Death)
		return e.renderer.Death(&e.snap, progress)
	}
	return e.renderer.Frame(&e.snap)
}

func (e *Engine) setMode(m Mode) {
	if m == e.mode {
		return
	}
	e.log.Debug("mode change", "from", e.mode, "to", m)
	e.mode = m
}
