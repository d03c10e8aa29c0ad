package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 20
	maxScores          = 100
	scoreLoadTimeout   = 5 * time.Second
)

// ScoreSource reads leaderboards. *storage.Store implements it.
type ScoreSource interface {
	TopScores(ctx context.Context, game scoring.GameID, difficulty string, limit int) ([]storage.TopScore, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextGame   key.Binding
	PrevGame   key.Binding
	Difficulty key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Difficulty, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Difficulty, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the top scores of one game at a time, optionally
// narrowed to one difficulty.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	diffCursor int // 0 is "all"; i>0 is games[gameCursor].Difficulties[i-1]
	source     ScoreSource
	scores     []storage.TopScore
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	standalone bool // quit the program on Back instead of handing control back
}

// NewScoreboardModel creates a scoreboard over source. A nil source shows
// empty tables.
func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:  registry.List(),
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Diff", Width: 8},
		{Title: "Score", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// Difficulty returns the active difficulty filter, or "" for all.
func (m ScoreboardModel) Difficulty() string {
	if m.diffCursor == 0 || len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].Difficulties[m.diffCursor-1]
}

// reload fetches scores for the current game and difficulty.
func (m *ScoreboardModel) reload() {
	m.scores, m.loadErr = nil, nil
	if m.source != nil && len(m.games) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), scoreLoadTimeout)
		defer cancel()
		m.scores, m.loadErr = m.source.TopScores(ctx, scoring.GameID(m.games[m.gameCursor].ID), m.Difficulty(), maxScores)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", s.Rank),
			s.Username,
			s.Difficulty,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Moves),
			hud.Clock(s.TimeSeconds),
			s.PlayedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
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

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.diffCursor = 0
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.diffCursor = 0
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Difficulty):
			if len(m.games) > 0 {
				m.diffCursor = (m.diffCursor + 1) % (len(m.games[m.gameCursor].Difficulties) + 1)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.reload()
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

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "HIGH SCORES"
	if len(m.games) > 0 {
		diff := m.Difficulty()
		if diff == "" {
			diff = "all"
		}
		title = fmt.Sprintf("HIGH SCORES - %s (%s)", m.games[m.gameCursor].Title, diff)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			box.Width(sidebarWidth).Render(m.renderGameList()), "  ",
			box.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(m.renderGameTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(box.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderGameList() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, g := range m.games {
		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.gameCursor {
			sb.WriteString(active.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m ScoreboardModel) renderGameTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
}

func (m ScoreboardModel) renderTableContent() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	if m.loadErr != nil {
		return muted.Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.scores) == 0 {
		return muted.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Scores returns the rows currently shown.
func (m ScoreboardModel) Scores() []storage.TopScore {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program.
func RunScoreboard(source ScoreSource, width, height int) error {
	model := NewScoreboardModel(source, width, height)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
