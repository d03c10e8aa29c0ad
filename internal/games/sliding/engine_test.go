package sliding

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

func TestSolvedBoard(t *testing.T) {
	e := NewSolved(3)
	if want := []int{1, 2, 3, 4, 5, 6, 7, 8, 0}; !slices.Equal(e.Grid(), want) {
		t.Errorf("solved grid = %v, want %v", e.Grid(), want)
	}
	if !e.CheckWin() {
		t.Error("solved board should pass CheckWin")
	}
	if e.Empty() != (core.Pos{Row: 2, Col: 2}) {
		t.Errorf("empty = %v, want bottom-right", e.Empty())
	}
}

func TestNewPresets(t *testing.T) {
	for d, size := range map[string]int{"easy": 3, "medium": 4, "hard": 5} {
		e, err := New(d, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("New(%q) error: %v", d, err)
		}
		if e.Size() != size {
			t.Errorf("New(%q) size = %d, want %d", d, e.Size(), size)
		}
		if e.Moves() != 0 {
			t.Errorf("New(%q) moves = %d, shuffling must not count", d, e.Moves())
		}
	}

	_, err := New("giant", rand.New(rand.NewSource(1)))
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("unknown difficulty error = %v, want ConfigurationError", err)
	}
}

func TestShuffleAlwaysSolvable(t *testing.T) {
	for _, size := range []int{3, 4, 5} {
		for seed := int64(0); seed < 25; seed++ {
			e := NewSolved(size)
			e.Shuffle(rand.New(rand.NewSource(seed)), size*size*20)

			grid := e.Grid()
			sorted := slices.Clone(grid)
			slices.Sort(sorted)
			for i, v := range sorted {
				if v != i {
					t.Fatalf("size %d seed %d: grid %v is not a permutation", size, seed, grid)
				}
			}
			if e.Tile(e.Empty()) != 0 {
				t.Fatalf("size %d seed %d: empty position out of sync", size, seed)
			}
			if !Solvable(size, grid) {
				t.Fatalf("size %d seed %d: shuffled grid %v is unsolvable", size, seed, grid)
			}
		}
	}
}

func TestShuffleOrder(t *testing.T) {
	// From solved 3x3 the empty slot has two options: up (1,2) then left (2,1).
	e := NewSolved(3)
	e.Shuffle(rand.New(rand.NewSource(77)), 1)

	options := []core.Pos{{Row: 1, Col: 2}, {Row: 2, Col: 1}}
	want := options[rand.New(rand.NewSource(77)).Intn(len(options))]
	if e.Empty() != want {
		t.Errorf("empty after one shuffle step = %v, want %v", e.Empty(), want)
	}
}

func TestSolvable(t *testing.T) {
	tests := []struct {
		name string
		size int
		grid []int
		want bool
	}{
		{"solved 3x3", 3, []int{1, 2, 3, 4, 5, 6, 7, 8, 0}, true},
		{"swapped 3x3", 3, []int{2, 1, 3, 4, 5, 6, 7, 8, 0}, false},
		{"one slide 4x4", 4, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0, 13, 14, 15, 12}, true},
		{"swapped 4x4", 4, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15, 14, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Solvable(tt.size, tt.grid); got != tt.want {
				t.Errorf("Solvable(%v) = %v, want %v", tt.grid, got, tt.want)
			}
		})
	}
}

func TestSlideNonAdjacentIsNoop(t *testing.T) {
	e := NewSolved(3)
	before := e.Grid()

	for _, p := range []core.Pos{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}, {Row: 2, Col: 2}, {Row: 3, Col: 2}, {Row: -1, Col: 0}} {
		if res := e.Slide(p); res.Changed {
			t.Errorf("Slide(%v) changed the board", p)
		}
	}
	if !slices.Equal(e.Grid(), before) || e.Moves() != 0 {
		t.Errorf("grid = %v moves = %d after illegal slides", e.Grid(), e.Moves())
	}
}

func TestSlideAndWin(t *testing.T) {
	e := NewSolved(3)

	res := e.Slide(core.Pos{Row: 2, Col: 1})
	if !res.Changed || res.Terminal != nil {
		t.Fatalf("first slide = %+v", res)
	}
	if e.Empty() != (core.Pos{Row: 2, Col: 1}) || e.Tile(core.Pos{Row: 2, Col: 2}) != 8 {
		t.Errorf("grid after slide = %v", e.Grid())
	}
	if e.CheckWin() {
		t.Error("board is not solved after one slide")
	}

	res = e.Slide(core.Pos{Row: 2, Col: 2})
	if res.Terminal == nil || res.Terminal.Outcome != core.OutcomeWon {
		t.Fatalf("terminal = %+v, want won", res.Terminal)
	}
	if e.Moves() != 2 {
		t.Errorf("moves = %d, want 2", e.Moves())
	}
	if res := e.Slide(core.Pos{Row: 2, Col: 1}); res.Changed {
		t.Error("slides after solving must be ignored")
	}
}

func TestNewFromGridValidates(t *testing.T) {
	if _, err := NewFromGrid(3, []int{1, 2, 3}); err == nil {
		t.Error("short grid accepted")
	}
	if _, err := NewFromGrid(2, []int{1, 1, 2, 0}); err == nil {
		t.Error("duplicate tiles accepted")
	}
	e, err := NewFromGrid(2, []int{1, 0, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if e.Empty() != (core.Pos{Row: 0, Col: 1}) {
		t.Errorf("empty = %v, want (0,1)", e.Empty())
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"easy", ScoreInput{Moves: 50, TimeSeconds: 60, Difficulty: config.DifficultyEasy}, 570},
		{"hard", ScoreInput{Moves: 50, TimeSeconds: 60, Difficulty: config.DifficultyHard}, 1140},
		{"medium rounds half up", ScoreInput{Moves: 51, TimeSeconds: 60, Difficulty: config.DifficultyMedium}, 848},
		{"floor", ScoreInput{Moves: 300, TimeSeconds: 300, Difficulty: config.DifficultyEasy}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.in); got != tt.want {
				t.Errorf("ComputeScore(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdapterSubmitsOnSolve(t *testing.T) {
	g := NewGame()
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if g.Cursor() != g.Engine().Empty() {
		t.Errorf("cursor = %v, want the empty slot", g.Cursor())
	}

	g.engine, _ = NewFromGrid(3, []int{1, 2, 3, 4, 5, 6, 7, 0, 8})
	g.cursor = core.Pos{Row: 2, Col: 2}

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	if st := g.State(); !st.GameOver || st.Outcome != core.OutcomeWon {
		t.Fatalf("state = %+v, want solved", st)
	}
	sub, ok := g.Finish()
	if !ok {
		t.Fatal("solve should queue a submission")
	}
	if sub.Game != "sliding_puzzle" || sub.Moves != 1 || sub.Difficulty != "easy" {
		t.Errorf("submission = %+v", sub)
	}
}

func TestResetNeverDealsSolved(t *testing.T) {
	// Without shuffling the deal would be the solved grid itself.
	path := filepath.Join(t.TempDir(), "sliding.yaml")
	if err := os.WriteFile(path, []byte("shuffle_factor: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := core.DefaultConfig()
	cfg.ConfigPath = path
	for seed := int64(1); seed <= 20; seed++ {
		cfg.Seed = seed
		g := NewGame()
		if err := g.Reset(cfg); err != nil {
			t.Fatalf("Reset() failed: %v", err)
		}
		if g.Engine().CheckWin() {
			t.Fatalf("seed %d: dealt a solved grid", seed)
		}
		if g.Engine().Moves() != 0 {
			t.Errorf("seed %d: moves = %d, want 0", seed, g.Engine().Moves())
		}
	}
}
