package engine

// Mode is the top-level state of a session, above the simulation itself.
type Mode uint8

const (
	// ModeStart waits for ButtonB on the title screen.
	ModeStart Mode = iota
	// ModePlaying runs logic ticks.
	ModePlaying
	// ModePaused freezes the game and shows the score.
	ModePaused
	// ModeDying plays the death animation.
	ModeDying
	// ModeGameOverBlink blinks the final score, then holds it.
	ModeGameOverBlink
)

func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeDying:
		return "dying"
	case ModeGameOverBlink:
		return "game_over"
	default:
		return "unknown"
	}
}
