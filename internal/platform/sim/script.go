package sim

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Script is a timed list of input events, usually loaded from YAML:
//
//	seed: 7
//	events:
//	  - at: 0s
//	    press: [B]
//	  - at: 1200ms
//	    dir: up
type Script struct {
	Seed   *int64        `yaml:"seed,omitempty"`
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent fires once the virtual clock reaches At (relative to the start).
type ScriptEvent struct {
	At    time.Duration `yaml:"at"`
	Dir   string        `yaml:"dir,omitempty"`
	Press []string      `yaml:"press,omitempty"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("sim: parse script: %w", err)
	}
	for i, ev := range s.Events {
		if _, ok := core.ParseDirection(strings.ToLower(ev.Dir)); !ok {
			return nil, fmt.Errorf("sim: event %d: unknown direction %q", i, ev.Dir)
		}
		for _, b := range ev.Press {
			if _, err := parseButton(b); err != nil {
				return nil, fmt.Errorf("sim: event %d: %w", i, err)
			}
		}
		if ev.At < 0 {
			return nil, fmt.Errorf("sim: event %d: negative time %v", i, ev.At)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	return &s, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: read script: %w", err)
	}
	return ParseScript(data)
}

// Duration returns the time of the last event.
func (s *Script) Duration() time.Duration {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].At
}

func parseButton(name string) (core.ButtonMask, error) {
	switch strings.ToLower(name) {
	case "a", "reset":
		return core.ButtonA, nil
	case "b", "start", "pause":
		return core.ButtonB, nil
	case "quit", "q":
		return core.ButtonQuit, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// ScriptInput is a core.Input that replays a Script against a clock.
// Events due since the previous sample are merged into one state: buttons
// are ORed and directions resolve like a joystick held in all of them
// (core.PickDirection order).
//
// The script timestamps stand in for debouncing, so no window is applied.
// A button reported by one sample is held back from the next one, which
// reads as released; two presses of the same button in consecutive samples
// therefore reach the engine as two rising edges.
type ScriptInput struct {
	mu      sync.Mutex
	clock   core.Platform
	start   time.Time
	events  []ScriptEvent
	next    int
	fault   error
	last    core.ButtonMask
	pending core.ButtonMask
}

var _ core.Input = (*ScriptInput)(nil)

// NewScriptInput replays s with times measured from clock.Now().
func NewScriptInput(s *Script, clock core.Platform) *ScriptInput {
	var events []ScriptEvent
	if s != nil {
		events = s.Events
	}
	return &ScriptInput{clock: clock, start: clock.Now(), events: events}
}

// FailNext makes the next Sample return err.
func (in *ScriptInput) FailNext(err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.fault = err
}

// Done reports whether every event has been delivered.
func (in *ScriptInput) Done() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.next >= len(in.events) && in.pending == 0
}

// Sample returns the events that became due since the last call.
func (in *ScriptInput) Sample() (core.InputState, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.fault != nil {
		err := in.fault
		in.fault = nil
		return core.InputState{}, &core.CapabilityError{Capability: "input", Op: "sample", Err: err}
	}

	// Directions due in the same sample count as held together.
	elapsed := in.clock.Now().Sub(in.start)
	var (
		st      core.InputState
		buttons = in.pending
		held    [core.DirRight + 1]bool
	)
	for in.next < len(in.events) && in.events[in.next].At <= elapsed {
		ev := in.events[in.next]
		if d, _ := core.ParseDirection(strings.ToLower(ev.Dir)); d != core.DirNone {
			held[d] = true
		}
		for _, name := range ev.Press {
			b, _ := parseButton(name)
			buttons |= b
		}
		in.next++
	}
	st.Buttons = buttons &^ in.last
	in.pending = buttons & in.last
	in.last = st.Buttons
	st.Direction = core.PickDirection(held[core.DirUp], held[core.DirDown], held[core.DirLeft], held[core.DirRight])
	return st, nil
}
