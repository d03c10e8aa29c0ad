// Package sliding implements the N×N sliding tile puzzle. Boards are only
// ever shuffled by legal slides, so every dealt puzzle is solvable.
package sliding

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// Engine holds one sliding puzzle session. Tile 0 is the empty slot.
type Engine struct {
	size       int
	difficulty config.Difficulty
	grid       []int // row-major
	empty      core.Pos
	moves      int
	solved     bool
}

// New deals a puzzle with the built-in presets.
func New(difficulty string, rng *rand.Rand) (*Engine, error) {
	return NewWithConfig(config.DefaultSlidingConfig(), difficulty, rng)
}

// NewWithConfig deals a puzzle shuffled by size²×ShuffleFactor random slides.
func NewWithConfig(cfg config.SlidingConfig, difficulty string, rng *rand.Rand) (*Engine, error) {
	p, err := cfg.Preset(difficulty)
	if err != nil {
		return nil, err
	}
	e := NewSolved(p.Size)
	e.difficulty = config.Difficulty(difficulty)
	e.Shuffle(rng, p.Size*p.Size*cfg.ShuffleFactor)
	return e, nil
}

// NewSolved returns a solved board: 1..N²-1 in row-major order, 0 last.
func NewSolved(size int) *Engine {
	return &Engine{
		size:       size,
		difficulty: config.DifficultyEasy,
		grid:       Solved(size),
		empty:      core.Pos{Row: size - 1, Col: size - 1},
	}
}

// NewFromGrid loads an explicit arrangement. grid must be a permutation of
// 0..size²-1.
func NewFromGrid(size int, grid []int) (*Engine, error) {
	if size < 2 || len(grid) != size*size {
		return nil, fmt.Errorf("sliding: grid of %d tiles for size %d", len(grid), size)
	}
	sorted := slices.Clone(grid)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			return nil, fmt.Errorf("sliding: grid is not a permutation of 0..%d", size*size-1)
		}
	}

	e := &Engine{size: size, difficulty: config.DifficultyEasy, grid: slices.Clone(grid)}
	i := slices.Index(e.grid, 0)
	e.empty = core.Pos{Row: i / size, Col: i % size}
	return e, nil
}

// Solved returns the canonical solved permutation for size.
func Solved(size int) []int {
	g := make([]int, size*size)
	for i := range len(g) - 1 {
		g[i] = i + 1
	}
	return g
}

// Shuffle performs n random slides from the current position. Each slide
// is picked uniformly among the tiles next to the empty slot, enumerated up,
// down, left, right. Shuffling does not count as moves.
func (e *Engine) Shuffle(rng *rand.Rand, n int) {
	for range n {
		options := core.Neighbors4(e.empty, e.size, e.size)
		e.swap(options[rng.Intn(len(options))])
	}
	e.solved = false
}

func (e *Engine) swap(p core.Pos) {
	i, j := e.index(p), e.index(e.empty)
	e.grid[i], e.grid[j] = e.grid[j], e.grid[i]
	e.empty = p
}

func (e *Engine) index(p core.Pos) int { return p.Row*e.size + p.Col }

// adjacent reports whether p is orthogonally next to the empty slot.
func (e *Engine) adjacent(p core.Pos) bool {
	dr, dc := p.Row-e.empty.Row, p.Col-e.empty.Col
	return dr*dr+dc*dc == 1
}

// Slide moves the tile at p into the empty slot. Anything other than a tile
// orthogonally adjacent to the empty slot is a no-op.
func (e *Engine) Slide(p core.Pos) core.MoveResult {
	var res core.MoveResult
	if e.solved || !p.In(e.size, e.size) || !e.adjacent(p) {
		return res
	}

	tile := e.grid[e.index(p)]
	from := p
	e.swap(p)
	e.moves++
	res.Emit(core.EventSlide, from, tile)

	if e.CheckWin() {
		e.solved = true
		res.Emit(core.EventWin, core.Pos{}, e.moves)
		res.Finish(core.OutcomeWon)
	}
	return res
}

// CheckWin reports whether the grid equals the solved permutation.
func (e *Engine) CheckWin() bool {
	for i, v := range e.grid {
		if i == len(e.grid)-1 {
			return v == 0
		}
		if v != i+1 {
			return false
		}
	}
	return true
}

// Tile returns the tile at p, 0 for the empty slot.
func (e *Engine) Tile(p core.Pos) int { return e.grid[e.index(p)] }

// Grid returns a copy of the row-major grid.
func (e *Engine) Grid() []int { return slices.Clone(e.grid) }

// Size returns N.
func (e *Engine) Size() int { return e.size }

// Empty returns the position of the empty slot.
func (e *Engine) Empty() core.Pos { return e.empty }

// Moves returns the number of accepted slides.
func (e *Engine) Moves() int { return e.moves }

// Solved reports whether the puzzle was completed by a slide.
func (e *Engine) Solved() bool { return e.solved }

// Difficulty returns the difficulty key.
func (e *Engine) Difficulty() config.Difficulty { return e.difficulty }

// Solvable reports whether a row-major arrangement can reach the solved
// state, using the inversion-count parity rule.
func Solvable(size int, grid []int) bool {
	inversions := 0
	for i := range grid {
		for j := i + 1; j < len(grid); j++ {
			if grid[i] != 0 && grid[j] != 0 && grid[i] > grid[j] {
				inversions++
			}
		}
	}
	if size%2 == 1 {
		return inversions%2 == 0
	}
	emptyRowFromBottom := size - slices.Index(grid, 0)/size
	return (inversions+emptyRowFromBottom)%2 == 1
}
