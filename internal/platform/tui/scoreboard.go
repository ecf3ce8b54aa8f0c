package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pico-snake/internal/storage"
)

// Ledger is the part of the result store the scoreboard reads.
type Ledger interface {
	TopResults(limit int) ([]storage.Entry, error)
	RecentResults(limit int) ([]storage.Entry, error)
	Stats() (*storage.Summary, error)
}

// ScoreboardView selects which list the scoreboard shows.
type ScoreboardView int

const (
	ViewTop ScoreboardView = iota
	ViewRecent
)

func (v ScoreboardView) String() string {
	if v == ViewRecent {
		return "RECENT GAMES"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
)

// ScoreboardModel is the Bubble Tea model for the result ledger.
type ScoreboardModel struct {
	ledger  Ledger
	limit   int
	view    ScoreboardView
	entries []storage.Entry
	summary *storage.Summary
	err     error

	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard showing up to limit entries.
func NewScoreboardModel(ledger Ledger, limit, height int) ScoreboardModel {
	m := ScoreboardModel{
		ledger: ledger,
		limit:  limit,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Food", Width: 5},
		{Title: "Len", Width: 5},
		{Title: "Outcome", Width: 13},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}

	h := m.height - 10
	if h < 5 {
		h = 5
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(h),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) load() {
	m.err = nil
	if m.ledger == nil {
		m.entries = nil
		m.table.SetRows(nil)
		return
	}

	var err error
	if m.view == ViewRecent {
		m.entries, err = m.ledger.RecentResults(m.limit)
	} else {
		m.entries, err = m.ledger.TopResults(m.limit)
	}
	if err != nil {
		m.err = err
		m.entries = nil
	}
	if m.summary, err = m.ledger.Stats(); err != nil && m.err == nil {
		m.err = err
	}

	m.table.SetRows(EntryRows(m.entries))
	m.table.GotoTop()
}

// EntryRows formats ledger entries as table rows.
func EntryRows(entries []storage.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		date := "-"
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Points),
			fmt.Sprintf("%d", e.FoodEaten),
			fmt.Sprintf("%d", e.Length),
			e.Outcome,
			e.Duration.Round(100 * time.Millisecond).String(),
			date,
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == ViewTop {
				m.view = ViewRecent
			} else {
				m.view = ViewTop
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(EntryRows(m.entries))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.view.String()))
	b.WriteString("\n")
	b.WriteString(SummaryLine(m.summary))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(boxStyle.Render(emptyStyle.Render("Cannot read results: " + m.err.Error())))
	case len(m.entries) == 0:
		b.WriteString(boxStyle.Render(emptyStyle.Render("No games recorded yet.\nPlay one with `snake play`!")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// SummaryLine describes the whole ledger in one line.
func SummaryLine(s *storage.Summary) string {
	if s == nil || s.Games == 0 {
		return "no games yet"
	}
	return fmt.Sprintf("%d games, %d won, best %d, avg %.1f, %d food eaten",
		s.Games, s.Wins, s.HighScore, s.AvgScore, s.TotalFood)
}

// RunScoreboard runs the interactive scoreboard.
func RunScoreboard(ledger Ledger, limit int) error {
	_, h := TerminalSize(os.Stdout)
	p := tea.NewProgram(
		NewScoreboardModel(ledger, limit, h),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
