package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// Game adapts Engine to the platform: input mapping, the play clock,
// overlays and leaderboard submissions.
type Game struct {
	rules  config.T2048Config
	engine *Engine
	clock  core.Stopwatch
	dt     time.Duration
	tick   uint64

	paused     bool
	showWin    bool // win overlay until the player keeps going
	finalScore int
	submission *scoring.Submission
}

// NewGame creates an unstarted adapter. Reset must be called before Step.
func NewGame() *Game {
	return &Game{rules: config.DefaultT2048Config()}
}

func init() {
	registry.Register(string(scoring.Game2048), func() registry.Game {
		return NewGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(scoring.Game2048) }

// Title returns the display name.
func (g *Game) Title() string { return "2048" }

// Difficulties lists the accepted difficulty keys.
func (g *Game) Difficulties() []string {
	out := make([]string, len(g.rules.Difficulties))
	for i, d := range g.rules.Difficulties {
		out[i] = string(d)
	}
	return out
}

// Reset starts a fresh game.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	rules, err := config.LoadT2048(cfg.ConfigPath)
	if err != nil {
		return err
	}

	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = string(config.DifficultyStandard)
	}

	engine, err := NewWithConfig(rules, difficulty, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	*g = Game{
		rules:  rules,
		engine: engine,
		dt:     core.TickDuration(cfg.TickRate),
	}
	return nil
}

// Engine exposes the running engine.
func (g *Game) Engine() *Engine { return g.engine }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.Over() {
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

	if g.showWin {
		if in.Has(core.ActionConfirm) {
			g.showWin = false
		}
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	if a, ok := in.Direction(); ok {
		res := g.engine.Move(directionOf(a))
		events = res.Events
		if res.Changed {
			g.clock.Start()
		}
		if res.Terminal != nil {
			g.finish(res.Terminal.Outcome)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// finish handles the first win and the final loss.
func (g *Game) finish(o core.Outcome) {
	if o == core.OutcomeLost {
		g.clock.Stop()
		g.showWin = false
	} else {
		g.showWin = true
	}

	if !scoring.ShouldSubmit(scoring.Game2048, o) {
		return
	}
	g.finalScore = ComputeScore(g.engine.ScoreInput(g.clock.Seconds()))
	g.submission = &scoring.Submission{
		Game:        scoring.Game2048,
		Difficulty:  string(config.DifficultyStandard),
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

func directionOf(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Over(),
		Paused:   g.paused,
	}
	if g.engine.Over() {
		st.Outcome = core.OutcomeLost
	} else if g.engine.Won() {
		st.Outcome = core.OutcomeWon
	}
	return st
}

// Elapsed returns the play time.
func (g *Game) Elapsed() time.Duration { return g.clock.Elapsed() }
