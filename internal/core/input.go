package core

// Direction is a requested or current heading on the grid.
// DirNone is the zero value and means "no request".
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading. DirNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the unit vector for one step in this direction.
// Screen coordinates: y grows downward.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// ParseDirection maps a name ("up", "left", ...) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	case "", "none":
		return DirNone, true
	}
	return DirNone, false
}

// ButtonMask is a bit set of pressed buttons.
type ButtonMask uint8

const (
	// ButtonA resets the game to the start screen.
	ButtonA ButtonMask = 1 << iota
	// ButtonB starts, pauses and resumes.
	ButtonB
	// ButtonQuit is raised by host adapters (terminal, SSH) to end the session.
	// The engine itself ignores it.
	ButtonQuit
)

// Has reports whether every button in b is set.
func (m ButtonMask) Has(b ButtonMask) bool {
	return m&b == b && b != 0
}

// Pressed returns the buttons set in m but not in prev (rising edges).
func (m ButtonMask) Pressed(prev ButtonMask) ButtonMask {
	return m &^ prev
}

// String lists the pressed buttons.
func (m ButtonMask) String() string {
	if m == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "+"
		}
		s += name
	}
	if m.Has(ButtonA) {
		add("A")
	}
	if m.Has(ButtonB) {
		add("B")
	}
	if m.Has(ButtonQuit) {
		add("quit")
	}
	return s
}

// InputState is one non-blocking sample of the input device.
type InputState struct {
	Direction Direction  // Requested direction, DirNone if none
	Buttons   ButtonMask // Buttons currently reported as pressed
}

// PickDirection resolves several held directions into one request using the
// handheld joystick priority: up, down, left, right.
func PickDirection(up, down, left, right bool) Direction {
	switch {
	case up:
		return DirUp
	case down:
		return DirDown
	case left:
		return DirLeft
	case right:
		return DirRight
	default:
		return DirNone
	}
}
