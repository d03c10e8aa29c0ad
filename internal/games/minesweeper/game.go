package minesweeper

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// Game adapts Engine to the platform.
type Game struct {
	rules  config.MinesweeperConfig
	engine *Engine
	cursor core.Pos
	clock  core.Stopwatch
	dt     time.Duration

	paused      bool
	resultDelay int // ticks left before the result screen shows
	showResult  bool
	finalScore  int
	submission  *scoring.Submission
}

// NewGame creates an unstarted adapter.
func NewGame() *Game {
	return &Game{rules: config.DefaultMinesweeperConfig()}
}

func init() {
	registry.Register(string(scoring.GameMinesweeper), func() registry.Game {
		return NewGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(scoring.GameMinesweeper) }

// Title returns the display name.
func (g *Game) Title() string { return "Minesweeper" }

// Difficulties lists the preset keys.
func (g *Game) Difficulties() []string {
	var out []string
	for _, d := range config.Keys(g.rules.Presets) {
		out = append(out, string(d))
	}
	return out
}

// Reset starts a new board.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	rules, err := config.LoadMinesweeper(cfg.ConfigPath)
	if err != nil {
		return err
	}

	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = string(config.DifficultyEasy)
	}
	engine, err := NewWithConfig(rules, difficulty, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	*g = Game{
		rules:  rules,
		engine: engine,
		cursor: core.Pos{Row: engine.Rows() / 2, Col: engine.Cols() / 2},
		dt:     core.TickDuration(cfg.TickRate),
	}
	g.resultDelay = hud.Ticks(time.Duration(rules.ResultDelayMS)*time.Millisecond, cfg.TickRate)
	return nil
}

// Engine exposes the running engine.
func (g *Game) Engine() *Engine { return g.engine }

// Cursor returns the selected cell.
func (g *Game) Cursor() core.Pos { return g.cursor }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if g.engine.Over() {
		if !g.showResult {
			if g.resultDelay > 0 {
				g.resultDelay--
			}
			g.showResult = g.resultDelay == 0
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.clock.Stop()
		} else if g.engine.Placed() {
			g.clock.Start()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock.Advance(g.dt)

	if a, ok := in.Direction(); ok {
		g.moveCursor(a)
	}

	var res core.MoveResult
	switch {
	case in.Has(core.ActionConfirm):
		res = g.engine.Reveal(g.cursor)
		if res.Changed {
			g.clock.Start()
		}
	case in.Has(core.ActionFlag):
		res = g.engine.ToggleFlag(g.cursor)
	}

	if res.Terminal != nil {
		g.finish(res.Terminal.Outcome)
	}

	return core.StepResult{State: g.State(), Events: res.Events}
}

func (g *Game) moveCursor(a core.Action) {
	switch a {
	case core.ActionUp:
		g.cursor.Row--
	case core.ActionDown:
		g.cursor.Row++
	case core.ActionLeft:
		g.cursor.Col--
	case core.ActionRight:
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, g.engine.Rows()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, g.engine.Cols()-1)
}

// finish stops the clock and queues the submission for a win.
func (g *Game) finish(o core.Outcome) {
	g.clock.Stop()
	if !scoring.ShouldSubmit(scoring.GameMinesweeper, o) {
		return
	}

	g.finalScore = ComputeScore(ScoreInput{
		TimeSeconds: g.clock.Seconds(),
		Difficulty:  g.engine.Difficulty(),
		AllFlagged:  g.engine.AllMinesFlagged(),
	})
	g.submission = &scoring.Submission{
		Game:        scoring.GameMinesweeper,
		Difficulty:  string(g.engine.Difficulty()),
		Score:       g.finalScore,
		Moves:       g.engine.Flags(),
		TimeSeconds: g.clock.Seconds(),
	}
}

// Finish hands out the pending submission once.
func (g *Game) Finish() (scoring.Submission, bool) {
	if g.submission == nil {
		return scoring.Submission{}, false
	}
	s := *g.submission
	g.submission = nil
	return s, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.engine.RevealedCount(),
		GameOver: g.showResult,
		Paused:   g.paused,
	}
	if g.engine.Won() {
		st.Outcome = core.OutcomeWon
		st.Score = g.finalScore
	} else if g.engine.Over() {
		st.Outcome = core.OutcomeLost
	}
	return st
}
