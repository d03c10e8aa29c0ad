package t2048

import "github.com/vovakirdan/puzzle-arcade/internal/core"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// BoardSize is the board dimension.
const BoardSize = 4

// Board is the 4x4 grid indexed [row][col]. 0 is an empty cell.
type Board [BoardSize][BoardSize]int

// line is one row or column, ordered from the edge tiles slide toward.
type line [BoardSize]int

// merge records a merge produced by slideLine, as an index into the line.
type merge struct {
	index int
	value int
}

// slideLine compacts a line toward index 0. Equal neighbours merge once:
// a tile produced by a merge is never merged again in the same move.
func slideLine(in line) (out line, gained int, merges []merge) {
	writePos := 0
	lastMerged := false

	for i := range BoardSize {
		v := in[i]
		if v == 0 {
			continue
		}

		if writePos > 0 && !lastMerged && out[writePos-1] == v {
			out[writePos-1] *= 2
			gained += out[writePos-1]
			merges = append(merges, merge{index: writePos - 1, value: out[writePos-1]})
			lastMerged = true
			continue
		}

		out[writePos] = v
		writePos++
		lastMerged = false
	}

	return out, gained, merges
}

// cellOf maps the i-th cell of line k, scanned for dir, to board coordinates.
// Index 0 is the cell nearest the edge the tiles move toward.
func cellOf(dir Direction, k, i int) core.Pos {
	switch dir {
	case DirLeft:
		return core.Pos{Row: k, Col: i}
	case DirRight:
		return core.Pos{Row: k, Col: BoardSize - 1 - i}
	case DirUp:
		return core.Pos{Row: i, Col: k}
	default:
		return core.Pos{Row: BoardSize - 1 - i, Col: k}
	}
}

// SlideResult describes one applied slide.
type SlideResult struct {
	Board  Board
	Gained int
	Moved  bool
	Merges []core.Event
}

// Slide performs a move in the given direction without spawning a tile.
func Slide(board Board, dir Direction) SlideResult {
	res := SlideResult{Board: board}
	if dir < DirUp || dir > DirRight {
		return res
	}

	for k := range BoardSize {
		var in line
		for i := range BoardSize {
			p := cellOf(dir, k, i)
			in[i] = board[p.Row][p.Col]
		}

		out, gained, merges := slideLine(in)
		res.Gained += gained
		if out != in {
			res.Moved = true
		}
		for i := range BoardSize {
			p := cellOf(dir, k, i)
			res.Board[p.Row][p.Col] = out[i]
		}
		for _, m := range merges {
			res.Merges = append(res.Merges, core.Event{
				Kind:  core.EventMerge,
				Pos:   cellOf(dir, k, m.index),
				Value: m.value,
			})
		}
	}

	return res
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []core.Pos {
	var cells []core.Pos
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == 0 {
				cells = append(cells, core.Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two adjacent tiles are equal.
func HasPossibleMerge(board Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			v := board[r][c]
			if v == 0 {
				continue
			}
			if c < BoardSize-1 && board[r][c+1] == v {
				return true
			}
			if r < BoardSize-1 && board[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move would change the board.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			maxVal = max(maxVal, board[r][c])
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(board Board) int {
	total := 0
	for r := range BoardSize {
		for c := range BoardSize {
			total += board[r][c]
		}
	}
	return total
}

// TileCount returns the number of non-empty cells.
func TileCount(board Board) int {
	return BoardSize*BoardSize - len(EmptyCells(board))
}
