package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/pico-snake/internal/core"
	"github.com/vovakirdan/pico-snake/internal/platform"
	"github.com/vovakirdan/pico-snake/internal/registry"
)

// Terminal size used when stdout is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// helpLines is the number of rows kept below the play field.
const helpLines = 1

func init() {
	registry.Register("tea", "Bubble Tea terminal UI", func(opts registry.Options) (registry.Device, error) {
		w, h := TerminalSize(os.Stdout)
		return NewSession(w, h-helpLines, nil, opts.DirDebounce, opts.ButtonDebounce), nil
	})
}

// TerminalSize returns the size of f, or 80x24 when it is not a terminal.
func TerminalSize(f *os.File) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Session is a registry.Device backed by a Bubble Tea program. The engine
// draws into the Display and samples the Latch; the program shows frames and
// feeds keys.
type Session struct {
	*Display
	latch *platform.Latch
	host  *platform.Host

	programOpts []tea.ProgramOption
}

var _ registry.Device = (*Session)(nil)

// NewSession creates a session with a width x height play area. Zero
// debounce windows use the handheld defaults.
func NewSession(width, height int, r *lipgloss.Renderer, dirDebounce, btnDebounce time.Duration, opts ...tea.ProgramOption) *Session {
	if dirDebounce <= 0 {
		dirDebounce = platform.DefaultDirectionDebounce
	}
	if btnDebounce <= 0 {
		btnDebounce = platform.DefaultButtonDebounce
	}
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &Session{
		Display:     NewDisplay(width, height, r),
		latch:       platform.NewLatch(dirDebounce, btnDebounce, nil),
		host:        platform.NewHost(),
		programOpts: opts,
	}
}

// Model returns the Bubble Tea model for this session.
func (s *Session) Model() Model {
	return NewModel(s.Display, s.latch, s.host)
}

// Sample returns the keys pressed since the previous sample.
func (s *Session) Sample() (core.InputState, error) {
	return s.latch.Sample()
}

func (s *Session) Now() time.Time {
	return s.host.Now()
}

// SleepUntil returns core.ErrStopped once the user quits.
func (s *Session) SleepUntil(ctx context.Context, deadline time.Time) error {
	return s.host.SleepUntil(ctx, deadline)
}

// Done is closed when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.host.Done()
}

// Loop runs the Bubble Tea program until the user quits or the session is
// closed.
func (s *Session) Loop(ctx context.Context) error {
	defer s.host.Stop()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, s.programOpts...)
	p := tea.NewProgram(s.Model(), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Close stops the session; the program exits on its next message.
func (s *Session) Close() error {
	s.host.Stop()
	return nil
}
