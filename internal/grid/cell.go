// Package grid provides integer cell addressing and the conversion between
// cells and continuous world positions. Everything that moves on the tile
// grid is expressed in these types.
package grid

import "fmt"

// Cell identifies one grid square. Y grows upward.
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Unit directions.
var (
	Up    = Cell{X: 0, Y: 1}
	Down  = Cell{X: 0, Y: -1}
	Left  = Cell{X: -1, Y: 0}
	Right = Cell{X: 1, Y: 0}
	Zero  = Cell{}
)

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two cells.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Scale multiplies both components by n.
func (c Cell) Scale(n int) Cell {
	return Cell{X: c.X * n, Y: c.Y * n}
}

// Below returns the cell directly underneath.
func (c Cell) Below() Cell {
	return c.Add(Down)
}

// Unit clamps each component to [-1, 1].
func (c Cell) Unit() Cell {
	return Cell{X: sign(c.X), Y: sign(c.Y)}
}

// IsZero reports whether both components are zero.
func (c Cell) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// IsDiagonal reports whether both components are non-zero.
func (c Cell) IsDiagonal() bool {
	return c.X != 0 && c.Y != 0
}

// IsUnit reports whether c is a legal single-cell step: each component in
// [-1, 1] and not both zero.
func (c Cell) IsUnit() bool {
	return !c.IsZero() && abs(c.X) <= 1 && abs(c.Y) <= 1
}

// Neighbors8 returns the eight surrounding cells, column-major from the
// bottom-left (dx=-1, dy=-1) to the top-right.
func (c Cell) Neighbors8() []Cell {
	out := make([]Cell, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Cell{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return out
}

// Chebyshev returns the chessboard distance to another cell.
func (c Cell) Chebyshev(o Cell) int {
	dx := abs(c.X - o.X)
	dy := abs(c.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
