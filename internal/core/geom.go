// Package core provides the shared types used by the puzzle engines and the
// platform layer. It has no external dependencies so engine logic stays pure
// and testable.
package core

// Pos addresses a cell on a row-major grid.
type Pos struct {
	Row, Col int
}

// In reports whether the position lies inside a rows x cols grid.
func (p Pos) In(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// Add returns the position offset by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Orthogonal offsets in the order up, down, left, right.
var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors4 returns the in-bounds orthogonal neighbours of p,
// in the order up, down, left, right.
func Neighbors4(p Pos, rows, cols int) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range orthogonal {
		if n := p.Add(d[0], d[1]); n.In(rows, cols) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors8 returns the in-bounds neighbours of p including diagonals.
func Neighbors8(p Pos, rows, cols int) []Pos {
	out := make([]Pos, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if n := p.Add(dr, dc); n.In(rows, cols) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
