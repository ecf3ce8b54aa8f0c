package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Start key.Binding // Button B
	Reset key.Binding // Button A
	Quit  key.Binding
}

// ShortHelp returns key bindings for the help line. Up stands in for all
// four directions.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Start, k.Reset, k.Quit}
}

// FullHelp returns the same bindings; the game screen has one help line.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultKeyMap returns arrows, WASD and vim keys for steering.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("arrows/wasd", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter", "p"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Map translates a key message to engine input.
func (k KeyMap) Map(msg tea.KeyMsg) (core.Direction, core.ButtonMask) {
	switch {
	case key.Matches(msg, k.Up):
		return core.DirUp, 0
	case key.Matches(msg, k.Down):
		return core.DirDown, 0
	case key.Matches(msg, k.Left):
		return core.DirLeft, 0
	case key.Matches(msg, k.Right):
		return core.DirRight, 0
	case key.Matches(msg, k.Start):
		return core.DirNone, core.ButtonB
	case key.Matches(msg, k.Reset):
		return core.DirNone, core.ButtonA
	case key.Matches(msg, k.Quit):
		return core.DirNone, core.ButtonQuit
	}
	return core.DirNone, 0
}
