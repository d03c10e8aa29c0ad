package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// submitTimeout bounds one score submission.
const submitTimeout = 10 * time.Second

// submitResultMsg reports a finished submission. Gen is the game generation
// the submission was issued for.
type submitResultMsg struct {
	Gen    int64
	Sub    scoring.Submission
	Result scoring.Result
	Err    error
}

// GameModel runs one game: it feeds key presses to the game as input
// frames, steps it on every tick and submits finished games.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	submitter  scoring.Submitter
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	loop       int64  // tick loop owned by this model
	gen        int64  // renewed on every Reset; stale submit results are dropped
	status     string // last submission outcome
	saving     bool
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel resets game with cfg and wraps it. A nil submitter never
// saves scores.
func NewGameModel(game registry.Game, submitter scoring.Submitter, cfg core.RuntimeConfig) (GameModel, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if submitter == nil {
		submitter = scoring.NopSubmitter{}
	}

	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		submitter:  submitter,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		loop:       nextSeq(),
		gen:        nextSeq(),
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case submitResultMsg:
		return m.handleSubmitResult(msg), nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
	case core.ActionRestart:
		m.restart()
	}
	return m, nil
}

// restart starts a new game with a fresh seed. In-flight submissions for the
// previous game are ignored when they arrive.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	if err := m.game.Reset(m.config); err != nil {
		// Only possible if the config file changed since the last Reset.
		m.status = "Restart failed: " + err.Error()
		return
	}
	m.gen = nextSeq()
	m.status = ""
	m.saving = false
	m.saved = false
	m.gameState = m.game.State()
	m.inputFrame.Clear()
}

// handleTick steps the game and starts a submission when one is ready.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.loop, m.config.TickRate)}
	if f, ok := m.game.(registry.Finisher); ok {
		if sub, ready := f.Finish(); ready {
			m.saving = true
			m.saved = false
			m.status = "Saving score..."
			cmds = append(cmds, submitCmd(m.submitter, m.gen, sub))
		}
	}
	return m, tea.Batch(cmds...)
}

func submitCmd(s scoring.Submitter, gen int64, sub scoring.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		res, err := s.Submit(ctx, sub)
		return submitResultMsg{Gen: gen, Sub: sub, Result: res, Err: err}
	}
}

func (m GameModel) handleSubmitResult(msg submitResultMsg) GameModel {
	if msg.Gen != m.gen {
		return m
	}
	m.saving = false
	if msg.Err != nil || !msg.Result.Success {
		reason := msg.Result.Error
		if reason == "" && msg.Err != nil {
			reason = msg.Err.Error()
		}
		m.status = fmt.Sprintf("Score %d not saved (%s)", msg.Sub.Score, reason)
		return m
	}
	m.saved = true
	m.status = fmt.Sprintf("Score %d saved", msg.Sub.Score)
	return m
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		color := core.ColorBrightGreen
		if !m.saving && !m.saved {
			color = core.ColorBrightRed
		}
		m.screen.DrawTextCenteredColor(m.screen.Height()-1, m.status, color)
	}
	return RenderScreen(m.screen)
}

// Status returns the last submission message.
func (m GameModel) Status() string { return m.status }

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game until the player quits or goes back.
func Run(game registry.Game, submitter scoring.Submitter, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(game, submitter, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
