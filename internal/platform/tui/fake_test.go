package tui

import (
	"context"
	"errors"
	"maps"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// fakeGame finishes after finishAfter steps and hands out one submission.
type fakeGame struct {
	steps       int
	resets      int
	lastCfg     core.RuntimeConfig
	finishAfter int
	submitted   bool
	lastInput   core.InputFrame
}

func (g *fakeGame) ID() string             { return "2048" }
func (g *fakeGame) Title() string          { return "Fake" }
func (g *fakeGame) Difficulties() []string { return []string{"easy", "hard"} }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) error {
	if cfg.Difficulty == "broken" {
		return errors.New("unknown difficulty")
	}
	g.resets++
	g.steps = 0
	g.submitted = false
	g.lastCfg = cfg
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	// The model clears its frame after Step returns.
	g.lastInput = core.InputFrame{Actions: maps.Clone(in.Actions)}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps, GameOver: g.finishAfter > 0 && g.steps >= g.finishAfter}
}

func (g *fakeGame) Finish() (scoring.Submission, bool) {
	if g.submitted || g.finishAfter == 0 || g.steps < g.finishAfter {
		return scoring.Submission{}, false
	}
	g.submitted = true
	return scoring.Submission{Game: scoring.Game2048, Difficulty: g.lastCfg.Difficulty, Score: 42, Moves: g.steps}, true
}

var _ registry.Finisher = (*fakeGame)(nil)

// singleGame has one difficulty, so the menu starts it directly.
type singleGame struct{ fakeGame }

func (g *singleGame) Title() string          { return "Single" }
func (g *singleGame) Difficulties() []string { return []string{"standard"} }

func init() {
	registry.Register("fake_multi", func() registry.Game { return &fakeGame{} })
	registry.Register("fake_single", func() registry.Game { return &singleGame{} })
}

type fakeSubmitter struct {
	mu   sync.Mutex
	subs []scoring.Submission
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, s scoring.Submission) (scoring.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, s)
	if f.err != nil {
		return scoring.Result{Error: f.err.Error()}, f.err
	}
	return scoring.Result{Success: true, Data: &scoring.Record{Score: s.Score}}, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
