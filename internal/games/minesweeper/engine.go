// Package minesweeper implements the Minesweeper puzzle: lazy mine placement
// with a safe first click, flood-fill reveal, flag cycling and win detection.
package minesweeper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// Mark is the player's annotation on a covered cell.
type Mark int

const (
	MarkNone Mark = iota
	MarkFlag
	MarkQuestion
)

// Cell is one board square. Adjacent is fixed once mines are placed.
type Cell struct {
	Mine     bool
	Revealed bool
	Mark     Mark
	Adjacent int
}

// Engine holds one Minesweeper session.
type Engine struct {
	rows, cols, mines int
	difficulty        config.Difficulty
	rng               *rand.Rand

	cells      [][]Cell
	placed     bool
	revealed   int
	flags      int // flags placed by the player
	over       bool
	won        bool
	allFlagged bool // every mine was flagged by the player at the moment of winning
}

// New starts a game with the built-in presets.
func New(difficulty string, rng *rand.Rand) (*Engine, error) {
	return NewWithConfig(config.DefaultMinesweeperConfig(), difficulty, rng)
}

// NewWithConfig starts a game sized by the preset for difficulty.
// No mines are placed until the first reveal.
func NewWithConfig(cfg config.MinesweeperConfig, difficulty string, rng *rand.Rand) (*Engine, error) {
	p, err := cfg.Preset(difficulty)
	if err != nil {
		return nil, err
	}
	e := newEngine(p.Rows, p.Cols, p.Mines, rng)
	e.difficulty = config.Difficulty(difficulty)
	return e, nil
}

// NewCustom starts a game on an arbitrary board.
func NewCustom(rows, cols, mines int, rng *rand.Rand) (*Engine, error) {
	if rows <= 0 || cols <= 0 || mines <= 0 || mines >= rows*cols {
		return nil, fmt.Errorf("minesweeper: invalid board %dx%d with %d mines", rows, cols, mines)
	}
	e := newEngine(rows, cols, mines, rng)
	e.difficulty = config.DifficultyEasy
	return e, nil
}

func newEngine(rows, cols, mines int, rng *rand.Rand) *Engine {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Engine{rows: rows, cols: cols, mines: mines, rng: rng, cells: cells}
}

// placeMines lays out mines avoiding the 3x3 block around first. On boards
// too small for that, only first itself is kept clear.
func (e *Engine) placeMines(first core.Pos) {
	safe := map[core.Pos]bool{first: true}
	for _, n := range core.Neighbors8(first, e.rows, e.cols) {
		safe[n] = true
	}

	var candidates []core.Pos
	for r := range e.rows {
		for c := range e.cols {
			p := core.Pos{Row: r, Col: c}
			if !safe[p] {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) < e.mines {
		candidates = candidates[:0]
		for r := range e.rows {
			for c := range e.cols {
				if p := (core.Pos{Row: r, Col: c}); p != first {
					candidates = append(candidates, p)
				}
			}
		}
	}

	for i := range e.mines {
		j := i + e.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		p := candidates[i]
		e.cells[p.Row][p.Col].Mine = true
	}

	for r := range e.rows {
		for c := range e.cols {
			n := 0
			for _, q := range core.Neighbors8(core.Pos{Row: r, Col: c}, e.rows, e.cols) {
				if e.cells[q.Row][q.Col].Mine {
					n++
				}
			}
			e.cells[r][c].Adjacent = n
		}
	}
	e.placed = true
}

// Reveal uncovers p. Revealed, flagged and questioned cells are ignored, as
// is any call after the game ended. A zero cell opens its whole connected
// zero region plus the numbered border.
func (e *Engine) Reveal(p core.Pos) core.MoveResult {
	var res core.MoveResult
	if e.over || !p.In(e.rows, e.cols) {
		return res
	}
	if c := e.cells[p.Row][p.Col]; c.Revealed || c.Mark != MarkNone {
		return res
	}

	if !e.placed {
		e.placeMines(p)
	}

	if e.cells[p.Row][p.Col].Mine {
		e.lose(p, &res)
		return res
	}

	stack := []core.Pos{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &e.cells[cur.Row][cur.Col]
		if cell.Revealed || cell.Mark != MarkNone || cell.Mine {
			continue
		}
		cell.Revealed = true
		e.revealed++
		res.Emit(core.EventReveal, cur, cell.Adjacent)

		if cell.Adjacent == 0 {
			for _, n := range core.Neighbors8(cur, e.rows, e.cols) {
				if nc := e.cells[n.Row][n.Col]; !nc.Revealed && nc.Mark == MarkNone {
					stack = append(stack, n)
				}
			}
		}
	}

	e.checkWin(&res)
	return res
}

// lose ends the game on the mine at hit and uncovers every unflagged mine.
func (e *Engine) lose(hit core.Pos, res *core.MoveResult) {
	e.over = true
	e.cells[hit.Row][hit.Col].Revealed = true
	res.Emit(core.EventExplode, hit, -1)

	for r := range e.rows {
		for c := range e.cols {
			cell := &e.cells[r][c]
			p := core.Pos{Row: r, Col: c}
			if !cell.Mine || p == hit || cell.Mark == MarkFlag {
				continue
			}
			cell.Revealed = true
			res.Emit(core.EventReveal, p, -1)
		}
	}

	res.Emit(core.EventLose, hit, 0)
	res.Finish(core.OutcomeLost)
}

// ToggleFlag cycles a covered cell through plain, flagged and questioned.
// A new flag is refused once the flag count reaches the mine count.
func (e *Engine) ToggleFlag(p core.Pos) core.MoveResult {
	var res core.MoveResult
	if e.over || !p.In(e.rows, e.cols) {
		return res
	}

	cell := &e.cells[p.Row][p.Col]
	if cell.Revealed {
		return res
	}

	switch cell.Mark {
	case MarkNone:
		if e.flags >= e.mines {
			return res
		}
		cell.Mark = MarkFlag
		e.flags++
		res.Emit(core.EventFlag, p, 0)
	case MarkFlag:
		cell.Mark = MarkQuestion
		e.flags--
		res.Emit(core.EventQuestion, p, 0)
	case MarkQuestion:
		cell.Mark = MarkNone
		res.Emit(core.EventUnflag, p, 0)
	}
	return res
}

// CheckWin reports whether every safe cell is revealed, finishing the game
// if that just became true.
func (e *Engine) CheckWin() bool {
	var res core.MoveResult
	return e.checkWin(&res)
}

func (e *Engine) checkWin(res *core.MoveResult) bool {
	if e.won {
		return true
	}
	if e.over || e.revealed != e.rows*e.cols-e.mines {
		return false
	}

	e.won = true
	e.over = true
	e.allFlagged = e.flags == e.mines

	for r := range e.rows {
		for c := range e.cols {
			cell := &e.cells[r][c]
			if cell.Mine && cell.Mark != MarkFlag {
				cell.Mark = MarkFlag
				res.Emit(core.EventFlag, core.Pos{Row: r, Col: c}, 0)
			}
		}
	}

	res.Emit(core.EventWin, core.Pos{}, 0)
	res.Finish(core.OutcomeWon)
	return true
}

// Cell returns the cell at p. Out-of-range positions return a zero Cell.
func (e *Engine) Cell(p core.Pos) Cell {
	if !p.In(e.rows, e.cols) {
		return Cell{}
	}
	return e.cells[p.Row][p.Col]
}

// Rows returns the board height.
func (e *Engine) Rows() int { return e.rows }

// Cols returns the board width.
func (e *Engine) Cols() int { return e.cols }

// Mines returns the configured mine count.
func (e *Engine) Mines() int { return e.mines }

// Flags returns the number of flags the player has placed.
func (e *Engine) Flags() int { return e.flags }

// MinesRemaining is the HUD counter: mines minus player flags, 0 after a win.
func (e *Engine) MinesRemaining() int {
	if e.won {
		return 0
	}
	return e.mines - e.flags
}

// RevealedCount returns the number of uncovered safe cells.
func (e *Engine) RevealedCount() int { return e.revealed }

// Placed reports whether mines have been laid out.
func (e *Engine) Placed() bool { return e.placed }

// Over reports whether the game has ended.
func (e *Engine) Over() bool { return e.over }

// Won reports whether the game ended in a win.
func (e *Engine) Won() bool { return e.won }

// AllMinesFlagged reports whether the player flagged every mine before winning.
func (e *Engine) AllMinesFlagged() bool { return e.allFlagged }

// Difficulty returns the difficulty key.
func (e *Engine) Difficulty() config.Difficulty { return e.difficulty }
