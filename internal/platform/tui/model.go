package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/platform"
)

// FrameMsg carries a frame flushed by the engine.
type FrameMsg string

// StoppedMsg is sent once the session has been stopped.
type StoppedMsg struct{}

// waitForFrame blocks until the engine flushes or the session stops.
func waitForFrame(frames <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return FrameMsg(f)
		case <-done:
			return StoppedMsg{}
		}
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea side of a session. It never touches game state:
// keys go into the latch and frames come back from the display.
type Model struct {
	frames <-chan string
	done   <-chan struct{}
	latch  *platform.Latch
	stop   func()

	keys     KeyMap
	help     help.Model
	frame    string
	quitting bool
}

// NewModel wires a model to a display, a latch and a stop function.
func NewModel(d *Display, latch *platform.Latch, host *platform.Host) Model {
	return Model{
		frames: d.Frames(),
		done:   host.Done(),
		latch:  latch,
		stop:   host.Stop,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames, m.done)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = string(msg)
		return m, waitForFrame(m.frames, m.done)

	case StoppedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey feeds the latch. Quit stops the session right away.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dir, btn := m.keys.Map(msg)
	if btn.Has(core.ButtonQuit) {
		m.latch.Press(core.ButtonQuit)
		m.stop()
		m.quitting = true
		return m, tea.Quit
	}
	if dir != core.DirNone {
		m.latch.Direction(dir)
	}
	if btn != 0 {
		m.latch.Press(btn)
	}
	return m, nil
}

// View renders the last frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
