package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

func newTestModel(t *testing.T, g *fakeGame, sub scoring.Submitter) GameModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Difficulty = "easy"
	m, err := NewGameModel(g, sub, cfg)
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	return m
}

func tick(m GameModel) TickMsg {
	return TickMsg{Loop: m.loop, At: time.Now()}
}

func TestNewGameModelResets(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if g.lastCfg.Seed == 0 {
		t.Error("seed should be chosen when zero")
	}
	if _, ok := m.submitter.(scoring.NopSubmitter); !ok {
		t.Errorf("nil submitter = %T, want NopSubmitter", m.submitter)
	}
}

func TestNewGameModelResetError(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Difficulty = "broken"
	if _, err := NewGameModel(&fakeGame{}, nil, cfg); err == nil {
		t.Error("expected reset error")
	}
}

func TestTickStepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	next, _ := m.Update(keyMsg("right"))
	m = next.(GameModel)
	next, _ = m.Update(tick(m))
	m = next.(GameModel)

	if g.steps != 1 {
		t.Fatalf("steps = %d, want 1", g.steps)
	}
	if !g.lastInput.Has(core.ActionRight) {
		t.Error("step should see the pressed key")
	}

	// The frame is cleared after each tick.
	next, _ = m.Update(tick(m))
	m = next.(GameModel)
	if g.lastInput.Has(core.ActionRight) {
		t.Error("input frame not cleared between ticks")
	}
}

func TestTickFromOtherLoopIgnored(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	next, cmd := m.Update(TickMsg{Loop: m.loop + 1000, At: time.Now()})
	m = next.(GameModel)
	if g.steps != 0 {
		t.Errorf("foreign tick stepped the game")
	}
	if cmd != nil {
		t.Error("foreign tick must not start another tick loop")
	}
}

func TestFinishedGameIsSubmitted(t *testing.T) {
	g := &fakeGame{finishAfter: 1}
	sub := &fakeSubmitter{}
	m := newTestModel(t, g, sub)

	next, cmd := m.Update(tick(m))
	m = next.(GameModel)
	if m.Status() != "Saving score..." {
		t.Errorf("status = %q, want saving", m.Status())
	}

	var result *submitResultMsg
	for _, msg := range runCmd(cmd) {
		if r, ok := msg.(submitResultMsg); ok {
			result = &r
		}
	}
	if result == nil {
		t.Fatal("no submit result message")
	}
	if len(sub.subs) != 1 || sub.subs[0].Score != 42 || sub.subs[0].Difficulty != "easy" {
		t.Fatalf("submissions = %+v", sub.subs)
	}

	next, _ = m.Update(*result)
	m = next.(GameModel)
	if got, want := m.Status(), "Score 42 saved"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if !strings.Contains(m.View(), "Score 42 saved") {
		t.Error("view should show the status line")
	}

	// Finish reports once, so later ticks do not resubmit.
	_, cmd = m.Update(tick(m))
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(submitResultMsg); ok {
			t.Error("second submission for the same game")
		}
	}
}

func TestSubmitFailureStatus(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, nil)

	next, _ := m.Update(submitResultMsg{
		Gen:    m.gen,
		Sub:    scoring.Submission{Score: 7},
		Result: scoring.Result{Error: "offline"},
		Err:    errors.New("offline"),
	})
	m = next.(GameModel)
	if got, want := m.Status(), "Score 7 not saved (offline)"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestStaleSubmitResultDropped(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)
	oldGen := m.gen

	next, _ := m.Update(keyMsg("r"))
	m = next.(GameModel)
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2 after restart", g.resets)
	}
	if m.gen == oldGen {
		t.Fatal("restart must start a new generation")
	}

	next, _ = m.Update(submitResultMsg{Gen: oldGen, Sub: scoring.Submission{Score: 9}, Result: scoring.Result{Success: true}})
	m = next.(GameModel)
	if m.Status() != "" {
		t.Errorf("stale result changed status to %q", m.Status())
	}
}

func TestResizeDoesNotReset(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	next, _ := m.Update(keyMsg("up"))
	m = next.(GameModel)
	next, _ = m.Update(resize(100, 40))
	m = next.(GameModel)

	if g.resets != 1 {
		t.Errorf("resize reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestBackAndQuit(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, nil)

	next, _ := m.Update(keyMsg("b"))
	if !next.(GameModel).BackToMenu() {
		t.Error("b should request the menu")
	}

	next, cmd := m.Update(keyMsg("q"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
