package memory

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

func TestNewDeck(t *testing.T) {
	tests := []struct {
		difficulty string
		pairs      int
	}{
		{"easy", 6},
		{"medium", 8},
		{"hard", 10},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			e, err := New(tt.difficulty, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			if e.Len() != tt.pairs*2 || e.Pairs() != tt.pairs {
				t.Fatalf("deck = %d cards/%d pairs, want %d pairs", e.Len(), e.Pairs(), tt.pairs)
			}
			counts := map[int]int{}
			for i := range e.Len() {
				c := e.Card(i)
				if c.FaceUp || c.Matched {
					t.Errorf("card %d dealt face up", i)
				}
				counts[c.Symbol]++
			}
			for s, n := range counts {
				if n != 2 {
					t.Errorf("symbol %d appears %d times", s, n)
				}
			}
		})
	}

	_, err := New("impossible", rand.New(rand.NewSource(1)))
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("unknown difficulty error = %v, want ConfigurationError", err)
	}
}

func TestShuffleUsesSeed(t *testing.T) {
	a, _ := New("hard", rand.New(rand.NewSource(99)))
	b, _ := New("hard", rand.New(rand.NewSource(99)))
	c, _ := New("hard", rand.New(rand.NewSource(100)))

	same, differ := true, false
	for i := range a.Len() {
		if a.Card(i) != b.Card(i) {
			same = false
		}
		if a.Card(i) != c.Card(i) {
			differ = true
		}
	}
	if !same {
		t.Error("same seed produced different decks")
	}
	if !differ {
		t.Error("different seeds produced identical decks")
	}
}

func TestNewFromSymbolsValidates(t *testing.T) {
	tests := []struct {
		name    string
		symbols []int
	}{
		{"triple", []int{0, 0, 0, 1}},
		{"single", []int{0, 1, 1}},
		{"nil", nil},
		{"empty", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e, err := NewFromSymbols(tt.symbols, time.Second); err == nil {
				t.Errorf("got deck of %d cards, want an error", e.Len())
			}
		})
	}
}

func TestMatchAndWin(t *testing.T) {
	e, err := NewFromSymbols([]int{0, 1, 0, 1}, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	e.Flip(0)
	res := e.Flip(2)
	if res.Count(core.EventMatch) != 1 {
		t.Fatalf("events = %+v, want a match", res.Events)
	}
	if e.MatchedPairs() != 1 || e.Moves() != 1 {
		t.Errorf("pairs=%d moves=%d, want 1 and 1", e.MatchedPairs(), e.Moves())
	}
	if !e.CanFlip() {
		t.Error("a match must re-enable flipping immediately")
	}

	if res := e.Flip(0); res.Changed {
		t.Error("flipping a matched card must be a no-op")
	}

	e.Flip(1)
	res = e.Flip(3)
	if res.Terminal == nil || res.Terminal.Outcome != core.OutcomeWon {
		t.Fatalf("terminal = %+v, want won", res.Terminal)
	}
	if !e.Won() || e.CanFlip() {
		t.Errorf("won=%v canFlip=%v after last pair", e.Won(), e.CanFlip())
	}
}

func TestMismatchResetsAfterDelay(t *testing.T) {
	e, err := NewFromSymbols([]int{0, 1, 0, 1}, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	e.Flip(0)
	res := e.Flip(1)
	if res.Count(core.EventMismatch) != 1 || !e.Pending() {
		t.Fatalf("events = %+v pending = %v, want a pending mismatch", res.Events, e.Pending())
	}
	if e.Moves() != 1 {
		t.Errorf("moves = %d, want 1", e.Moves())
	}

	if res := e.Flip(2); res.Changed {
		t.Error("flip during a pending mismatch must be ignored")
	}

	e.Advance(999 * time.Millisecond)
	if !e.Card(0).FaceUp || !e.Card(1).FaceUp {
		t.Fatal("cards turned face down before the delay elapsed")
	}

	res = e.Advance(time.Millisecond)
	if res.Count(core.EventHide) != 2 {
		t.Errorf("hide events = %d, want 2", res.Count(core.EventHide))
	}
	if e.Card(0).FaceUp || e.Card(1).FaceUp || e.Pending() {
		t.Error("cards should be face down once the delay elapsed")
	}
	if e.MatchedPairs() != 0 {
		t.Errorf("matched pairs = %d, want 0", e.MatchedPairs())
	}
	if res := e.Advance(time.Hour); res.Changed {
		t.Error("advance with nothing pending must be a no-op")
	}
}

func TestFlipIgnoresInvalid(t *testing.T) {
	e, _ := NewFromSymbols([]int{0, 0}, time.Second)

	for _, i := range []int{-1, 2, 100} {
		if res := e.Flip(i); res.Changed {
			t.Errorf("Flip(%d) changed state", i)
		}
	}
	e.Flip(0)
	if res := e.Flip(0); res.Changed {
		t.Error("flipping the same card twice must be a no-op")
	}
}

func TestMatchedPairsMonotonic(t *testing.T) {
	e, err := New("hard", rand.New(rand.NewSource(17)))
	if err != nil {
		t.Fatal(err)
	}
	pick := rand.New(rand.NewSource(3))

	last := 0
	for step := 0; step < 20000 && !e.Won(); step++ {
		e.Flip(pick.Intn(e.Len()))
		e.Advance(250 * time.Millisecond)
		if e.MatchedPairs() < last {
			t.Fatalf("matched pairs went from %d to %d", last, e.MatchedPairs())
		}
		last = e.MatchedPairs()
	}
	if !e.Won() {
		t.Fatal("random play should finish the deck")
	}
	for i := range e.Len() {
		if c := e.Card(i); !c.Matched || !c.FaceUp {
			t.Errorf("card %d = %+v after win", i, c)
		}
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"easy", ScoreInput{Moves: 10, TimeSeconds: 30, Difficulty: config.DifficultyEasy}, 840},
		{"hard", ScoreInput{Moves: 10, TimeSeconds: 30, Difficulty: config.DifficultyHard}, 1680},
		{"medium rounds", ScoreInput{Moves: 11, TimeSeconds: 0, Difficulty: config.DifficultyMedium}, 1335},
		{"floor scaled", ScoreInput{Moves: 100, TimeSeconds: 100, Difficulty: config.DifficultyMedium}, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.in); got != tt.want {
				t.Errorf("ComputeScore(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdapterWin(t *testing.T) {
	g := NewGame()
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if g.cols != 4 {
		t.Errorf("easy deck columns = %d, want 4", g.cols)
	}

	g.engine, _ = NewFromSymbols([]int{0, 0, 1, 1}, time.Second)
	g.cols = 2

	flipAt := func(i int) {
		g.cursor = i
		in := core.NewInputFrame()
		in.Set(core.ActionConfirm)
		g.Step(in)
	}
	flipAt(0)
	flipAt(1)
	flipAt(2)
	flipAt(3)

	st := g.State()
	if !st.GameOver || st.Outcome != core.OutcomeWon {
		t.Fatalf("state = %+v, want won", st)
	}
	sub, ok := g.Finish()
	if !ok {
		t.Fatal("win should queue a submission")
	}
	if sub.Game != "memory" || sub.Moves != 2 || sub.Score != st.Score {
		t.Errorf("submission = %+v, state score %d", sub, st.Score)
	}
}
