package t2048

import (
	"math/rand"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// Engine holds the state of one 2048 session.
type Engine struct {
	cfg        config.T2048Config
	difficulty config.Difficulty
	rng        *rand.Rand

	board Board
	score int
	moves int
	won   bool
	over  bool
}

// New starts a game with the built-in ruleset.
func New(difficulty string, rng *rand.Rand) (*Engine, error) {
	return NewWithConfig(config.DefaultT2048Config(), difficulty, rng)
}

// NewWithConfig starts a game with the given ruleset. The board receives
// cfg.InitialTiles random tiles.
func NewWithConfig(cfg config.T2048Config, difficulty string, rng *rand.Rand) (*Engine, error) {
	d, err := cfg.Resolve(difficulty)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, difficulty: d, rng: rng}
	for range cfg.InitialTiles {
		e.spawnTile(nil)
	}
	return e, nil
}

// NewFromBoard starts a game from a fixed board, used for puzzles and tests.
func NewFromBoard(board Board, rng *rand.Rand) *Engine {
	e := &Engine{
		cfg:        config.DefaultT2048Config(),
		difficulty: config.DifficultyStandard,
		rng:        rng,
		board:      board,
	}
	e.won = MaxTile(board) >= e.cfg.Target
	e.over = !CanMove(board)
	return e
}

// Move slides the board. When anything moved, one tile is spawned, the move
// counter increments, and the win and loss checks run.
func (e *Engine) Move(dir Direction) core.MoveResult {
	var res core.MoveResult
	if e.over {
		return res
	}

	s := Slide(e.board, dir)
	if !s.Moved {
		return res
	}

	e.board = s.Board
	e.score += s.Gained
	e.moves++
	res.Changed = true
	res.Events = append(res.Events, s.Merges...)

	e.spawnTile(&res)

	if !e.won && MaxTile(e.board) >= e.cfg.Target {
		e.won = true
		res.Emit(core.EventWin, core.Pos{}, MaxTile(e.board))
		res.Finish(core.OutcomeWon)
	}

	if !CanMove(e.board) {
		e.over = true
		res.Emit(core.EventLose, core.Pos{}, e.score)
		res.Finish(core.OutcomeLost)
	}

	return res
}

// spawnTile puts a 2 (or a 4 with the configured probability) in a random
// empty cell. It does nothing on a full board.
func (e *Engine) spawnTile(res *core.MoveResult) {
	empty := EmptyCells(e.board)
	if len(empty) == 0 {
		return
	}

	p := empty[e.rng.Intn(len(empty))]
	value := 2
	if e.rng.Float64() < e.cfg.SpawnFourProbability {
		value = 4
	}
	e.board[p.Row][p.Col] = value

	if res != nil {
		res.Emit(core.EventSpawn, p, value)
	}
}

// Board returns a copy of the grid.
func (e *Engine) Board() Board { return e.board }

// Score returns the running merge score.
func (e *Engine) Score() int { return e.score }

// Moves returns the number of committed moves.
func (e *Engine) Moves() int { return e.moves }

// Won reports whether the target tile has appeared. Play may continue.
func (e *Engine) Won() bool { return e.won }

// Over reports whether no move can change the board.
func (e *Engine) Over() bool { return e.over }

// Difficulty returns the resolved difficulty key.
func (e *Engine) Difficulty() config.Difficulty { return e.difficulty }

// Target returns the winning tile value.
func (e *Engine) Target() int { return e.cfg.Target }
