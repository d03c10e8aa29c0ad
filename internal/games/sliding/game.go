package sliding

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// Game adapts Engine to the platform. The cursor picks a tile and Confirm
// slides it into the empty slot.
type Game struct {
	rules  config.SlidingConfig
	engine *Engine
	cursor core.Pos
	clock  core.Stopwatch
	dt     time.Duration

	paused     bool
	finalScore int
	submission *scoring.Submission
}

// NewGame creates an unstarted adapter.
func NewGame() *Game {
	return &Game{rules: config.DefaultSlidingConfig()}
}

func init() {
	registry.Register(string(scoring.GameSliding), func() registry.Game {
		return NewGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(scoring.GameSliding) }

// Title returns the display name.
func (g *Game) Title() string { return "Sliding Puzzle" }

// Difficulties lists the preset keys.
func (g *Game) Difficulties() []string {
	var out []string
	for _, d := range config.Keys(g.rules.Presets) {
		out = append(out, string(d))
	}
	return out
}

// Reset deals a new shuffled puzzle.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	rules, err := config.LoadSliding(cfg.ConfigPath)
	if err != nil {
		return err
	}

	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = string(config.DifficultyEasy)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	engine, err := NewWithConfig(rules, difficulty, rng)
	if err != nil {
		return err
	}
	// A random walk can end on the solved grid. One more slide never does.
	for engine.CheckWin() {
		engine.Shuffle(rng, 1)
	}

	*g = Game{
		rules:  rules,
		engine: engine,
		cursor: engine.Empty(),
		dt:     core.TickDuration(cfg.TickRate),
	}
	return nil
}

// Engine exposes the running engine.
func (g *Game) Engine() *Engine { return g.engine }

// Cursor returns the selected tile position.
func (g *Game) Cursor() core.Pos { return g.cursor }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil || g.engine.Solved() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.clock.Stop()
		} else if g.engine.Moves() > 0 {
			g.clock.Start()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock.Advance(g.dt)

	if a, ok := in.Direction(); ok {
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
		n := g.engine.Size() - 1
		g.cursor.Row = core.Clamp(g.cursor.Row, 0, n)
		g.cursor.Col = core.Clamp(g.cursor.Col, 0, n)
	}

	var res core.MoveResult
	if in.Has(core.ActionConfirm) {
		res = g.engine.Slide(g.cursor)
		if res.Changed {
			g.clock.Start()
		}
		if res.Terminal != nil {
			g.finish()
		}
	}

	return core.StepResult{State: g.State(), Events: res.Events}
}

func (g *Game) finish() {
	g.clock.Stop()
	if !scoring.ShouldSubmit(scoring.GameSliding, core.OutcomeWon) {
		return
	}
	g.finalScore = ComputeScore(ScoreInput{
		Moves:       g.engine.Moves(),
		TimeSeconds: g.clock.Seconds(),
		Difficulty:  g.engine.Difficulty(),
	})
	g.submission = &scoring.Submission{
		Game:        scoring.GameSliding,
		Difficulty:  string(g.engine.Difficulty()),
		Score:       g.finalScore,
		Moves:       g.engine.Moves(),
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
		Score:  g.engine.Moves(),
		Paused: g.paused,
	}
	if g.engine.Solved() {
		st.GameOver = true
		st.Outcome = core.OutcomeWon
		st.Score = g.finalScore
	}
	return st
}
