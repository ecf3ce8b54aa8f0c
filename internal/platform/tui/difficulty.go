package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pico-snake/internal/config"
)

// DifficultyChoice is one row of the picker.
type DifficultyChoice struct {
	Preset config.DifficultyPreset
	Label  string
}

// DifficultyChoices lists the presets in menu order.
func DifficultyChoices() []DifficultyChoice {
	return []DifficultyChoice{
		{config.DifficultyFixed, "Classic (constant speed)"},
		{config.DifficultyEasy, "Easy (speeds up slowly)"},
		{config.DifficultyNormal, "Normal"},
		{config.DifficultyHard, "Hard (starts fast)"},
	}
}

// PickerKeyMap defines the key bindings for the difficulty picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

// DifficultyModel lets the user choose a difficulty preset before playing.
type DifficultyModel struct {
	choices  []DifficultyChoice
	cursor   int
	width    int
	keys     PickerKeyMap
	help     help.Model
	chosen   bool
	quitting bool
}

// NewDifficultyModel creates a picker with the cursor on initial.
func NewDifficultyModel(initial config.DifficultyPreset, width int) DifficultyModel {
	m := DifficultyModel{
		choices: DifficultyChoices(),
		width:   width,
		keys:    DefaultPickerKeyMap(),
		help:    help.New(),
	}
	for i, c := range m.choices {
		if c.Preset == initial {
			m.cursor = i
		}
	}
	return m
}

func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m DifficultyModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(titleStyle.Render("S N A K E")))
	b.WriteString("\n\n")
	b.WriteString(m.center("Select difficulty:"))
	b.WriteString("\n\n")

	for i, c := range m.choices {
		line := "  " + c.Label
		if i == m.cursor {
			line = cursorStyle.Render(fmt.Sprintf("> %s", c.Label))
		}
		b.WriteString(m.center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.center(helpStyle.Render(m.help.View(m.keys))))
	return b.String()
}

func (m DifficultyModel) center(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// Selected returns the chosen preset; ok is false while choosing or after
// the user quit.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return m.choices[m.cursor].Preset, true
}

// RunDifficultyPicker shows the picker full-screen. ok is false if the user
// quit without choosing.
func RunDifficultyPicker(initial config.DifficultyPreset) (config.DifficultyPreset, bool, error) {
	w, _ := TerminalSize(os.Stdout)
	p := tea.NewProgram(NewDifficultyModel(initial, w), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(DifficultyModel)
	if !ok {
		return "", false, nil
	}
	preset, ok := m.Selected()
	return preset, ok, nil
}
