package grid

import "math"

// Vec is a continuous world-space position.
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns a * s.
func (a Vec) Scale(s float64) Vec {
	return Vec{X: a.X * s, Y: a.Y * s}
}

// Lerp interpolates between a and b at t.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Layout maps cells to world space. Cell (0,0) spans [Origin, Origin+CellSize).
type Layout struct {
	CellSize Vec
	Origin   Vec
}

// UnitLayout returns a layout with 1x1 cells at the world origin.
func UnitLayout() Layout {
	return Layout{CellSize: Vec{X: 1, Y: 1}}
}

// CellToWorld returns the world position of the cell's lower-left corner.
func (l Layout) CellToWorld(c Cell) Vec {
	size := l.size()
	return Vec{
		X: l.Origin.X + float64(c.X)*size.X,
		Y: l.Origin.Y + float64(c.Y)*size.Y,
	}
}

// CellCenter returns the world position of the cell's center.
func (l Layout) CellCenter(c Cell) Vec {
	size := l.size()
	return l.CellToWorld(c).Add(size.Scale(0.5))
}

// WorldToCell returns the cell containing the world position.
func (l Layout) WorldToCell(p Vec) Cell {
	size := l.size()
	return Cell{
		X: int(math.Floor((p.X - l.Origin.X) / size.X)),
		Y: int(math.Floor((p.Y - l.Origin.Y) / size.Y)),
	}
}

// size guards against a zero-value layout.
func (l Layout) size() Vec {
	s := l.CellSize
	if s.X <= 0 {
		s.X = 1
	}
	if s.Y <= 0 {
		s.Y = 1
	}
	return s
}
