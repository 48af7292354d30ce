// Package core provides the grid primitives shared by the simulation, the
// leaderboard service and the terminal front end. It has no external
// dependencies so game logic stays pure and testable.
package core

import "fmt"

// DefaultBoardPixels and DefaultCellPixels describe the classic 600px board
// split into 20px cells, which yields a 30x30 grid.
const (
	DefaultBoardPixels = 600
	DefaultCellPixels  = 20
)

// Cell is a unit grid location addressed by integer coordinates.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Move returns the neighbouring cell one step in the given direction.
func (c Cell) Move(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the taxicab distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return Abs(c.X-o.X) + Abs(c.Y-o.Y)
}

// Grid is a square board of Size x Size cells.
type Grid struct {
	Size int
}

// NewGrid creates a grid with the given side length.
func NewGrid(size int) Grid {
	return Grid{Size: size}
}

// GridFromPixels derives the grid side from a board and cell size in pixels.
// Non-positive inputs fall back to the 600/20 defaults.
func GridFromPixels(boardPx, cellPx int) Grid {
	if boardPx <= 0 {
		boardPx = DefaultBoardPixels
	}
	if cellPx <= 0 {
		cellPx = DefaultCellPixels
	}
	return Grid{Size: Max(1, boardPx/cellPx)}
}

// InBounds reports whether c lies inside the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// Area returns the number of cells on the board.
func (g Grid) Area() int {
	return g.Size * g.Size
}

// Occupies reports whether target equals any element of cells.
func Occupies(cells []Cell, target Cell) bool {
	for _, c := range cells {
		if c == target {
			return true
		}
	}
	return false
}

// Rect represents an axis-aligned box on a screen buffer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
