package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID       string
	Title        string
	Difficulties []string
}

// Selection is a game and difficulty picked from the menu.
type Selection struct {
	GameID     string
	Title      string
	Difficulty string
}

// MenuModel is the Bubble Tea model for the game picker menu. Picking a game
// opens its difficulty list; Back returns to the game list.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	diffCursor     int
	inDifficulty   bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered game.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Difficulties: g.Difficulties})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	if m.inDifficulty {
		return m.handleDifficultyKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if len(item.Difficulties) <= 1 {
			diff := ""
			if len(item.Difficulties) == 1 {
				diff = item.Difficulties[0]
			}
			m.selected = &Selection{GameID: item.GameID, Title: item.Title, Difficulty: diff}
			return m, tea.Quit
		}
		m.inDifficulty = true
		m.diffCursor = 0
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	item := m.items[m.cursor]

	switch action {
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(item.Difficulties)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.selected = &Selection{
			GameID:     item.GameID,
			Title:      item.Title,
			Difficulty: item.Difficulties[m.diffCursor],
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  P U Z Z L E   A R C A D E  ", m.width))
	b.WriteString("\n\n")

	if m.inDifficulty {
		item := m.items[m.cursor]
		b.WriteString(centerText(item.Title+": select difficulty", m.width))
		b.WriteString("\n\n")
		for i, d := range item.Difficulties {
			b.WriteString(centerText(cursorLine(i == m.diffCursor, d), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText("Up/Down: Navigate  |  Enter: Start  |  B: Back  |  Q: Quit", m.width))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")
	if len(m.items) == 0 {
		b.WriteString(centerText("No games registered", m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		b.WriteString(centerText(cursorLine(i == m.cursor, item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func cursorLine(active bool, label string) string {
	if active {
		return fmt.Sprintf("> %s", label)
	}
	return fmt.Sprintf("  %s", label)
}

// Selected returns the chosen game and difficulty, or nil if none.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
