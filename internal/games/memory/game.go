package memory

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// Game adapts Engine to the platform.
type Game struct {
	rules  config.MemoryConfig
	engine *Engine
	cols   int
	cursor int
	clock  core.Stopwatch
	dt     time.Duration

	paused     bool
	finalScore int
	submission *scoring.Submission
}

// NewGame creates an unstarted adapter.
func NewGame() *Game {
	return &Game{rules: config.DefaultMemoryConfig()}
}

func init() {
	registry.Register(string(scoring.GameMemory), func() registry.Game {
		return NewGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(scoring.GameMemory) }

// Title returns the display name.
func (g *Game) Title() string { return "Memory Match" }

// Difficulties lists the preset keys.
func (g *Game) Difficulties() []string {
	var out []string
	for _, d := range config.Keys(g.rules.Presets) {
		out = append(out, string(d))
	}
	return out
}

// Reset deals a new deck.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	rules, err := config.LoadMemory(cfg.ConfigPath)
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
		cols:   int(math.Ceil(math.Sqrt(float64(engine.Len())))),
		dt:     core.TickDuration(cfg.TickRate),
	}
	return nil
}

// Engine exposes the running engine.
func (g *Game) Engine() *Engine { return g.engine }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil || g.engine.Won() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.clock.Stop()
		} else if g.engine.Moves() > 0 || g.engine.first >= 0 {
			g.clock.Start()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock.Advance(g.dt)
	events := g.engine.Advance(g.dt).Events

	if a, ok := in.Direction(); ok {
		g.moveCursor(a)
	}

	if in.Has(core.ActionConfirm) {
		res := g.engine.Flip(g.cursor)
		events = append(events, res.Events...)
		if res.Changed {
			g.clock.Start()
		}
		if res.Terminal != nil {
			g.finish()
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) moveCursor(a core.Action) {
	n := g.engine.Len()
	switch a {
	case core.ActionUp:
		if g.cursor-g.cols >= 0 {
			g.cursor -= g.cols
		}
	case core.ActionDown:
		if g.cursor+g.cols < n {
			g.cursor += g.cols
		}
	case core.ActionLeft:
		if g.cursor%g.cols > 0 {
			g.cursor--
		}
	case core.ActionRight:
		if g.cursor%g.cols < g.cols-1 && g.cursor+1 < n {
			g.cursor++
		}
	}
}

func (g *Game) finish() {
	g.clock.Stop()
	if !scoring.ShouldSubmit(scoring.GameMemory, core.OutcomeWon) {
		return
	}
	g.finalScore = ComputeScore(ScoreInput{
		Moves:       g.engine.Moves(),
		TimeSeconds: g.clock.Seconds(),
		Difficulty:  g.engine.Difficulty(),
	})
	g.submission = &scoring.Submission{
		Game:        scoring.GameMemory,
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
		Score:  g.engine.MatchedPairs(),
		Paused: g.paused,
	}
	if g.engine.Won() {
		st.GameOver = true
		st.Outcome = core.OutcomeWon
		st.Score = g.finalScore
	}
	return st
}
