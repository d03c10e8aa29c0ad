package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	ID         string
	Username   string
	Config     core.RuntimeConfig
	ConfigPath string            // per-game YAML override passed to every Reset
	Scores     ScoreSource       // nil hides scores
	Submitter  scoring.Submitter // nil never saves
}

// SessionModel manages the full arcade session flow:
// menu -> game -> menu, and menu -> scoreboard -> menu.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	gameModel GameModel
	scores    ScoreboardModel
	err       string // last game start failure, shown above the menu
	quitting  bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.opts.Scores, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		m.menu = NewMenuModel(m.config)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame(*m.menu.Selected())
	}

	return m, cmd
}

func (m SessionModel) startGame(sel Selection) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config)

	game, err := registry.Create(sel.GameID)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}

	cfg := m.config
	cfg.Difficulty = sel.Difficulty
	cfg.ConfigPath = m.opts.ConfigPath
	cfg.Seed = 0

	gm, err := NewGameModel(game, m.opts.Submitter, cfg)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.err = ""
	m.gameModel = gm
	m.screen = screenGame
	return m, m.gameModel.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		// The game's tick loop stops because the menu ignores its ticks.
		m.screen = screenMenu
		m.gameModel = GameModel{}
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scores.View()
	}

	if m.err != "" {
		return centerText("Could not start game: "+m.err, m.config.ScreenW) + "\n" + m.menu.View()
	}
	return m.menu.View()
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.opts.ID
}

// RunSession runs a full menu session in the local terminal.
func RunSession(opts SessionOptions) error {
	_, err := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen()).Run()
	return err
}
