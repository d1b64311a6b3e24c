package collision

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// Body is anything with a world-space footprint that may block cells.
type Body interface {
	// Bounds returns the axis-aligned box covered by the body, min inclusive
	// and max exclusive.
	Bounds() (lo, hi grid.Vec)
	// Trigger bodies overlap but never block.
	Trigger() bool
}

// BodyOracle blocks a cell when the cell's world-space center lies inside a
// registered non-trigger body.
type BodyOracle struct {
	layout grid.Layout
	bodies mapset.Set[Body]
}

// NewBodyOracle creates an oracle with no bodies.
func NewBodyOracle(layout grid.Layout) *BodyOracle {
	return &BodyOracle{
		layout: layout,
		bodies: mapset.New[Body](),
	}
}

// Add registers a body.
func (o *BodyOracle) Add(b Body) {
	o.bodies.Put(b)
}

// Remove unregisters a body.
func (o *BodyOracle) Remove(b Body) {
	o.bodies.Remove(b)
}

// Len returns the number of registered bodies.
func (o *BodyOracle) Len() int {
	return o.bodies.Size()
}

// IsBlocked implements Oracle.
func (o *BodyOracle) IsBlocked(c grid.Cell) bool {
	return o.BlockedExcept(c, nil)
}

// BlockedExcept is IsBlocked ignoring one body, so a moving body does not
// collide with itself.
func (o *BodyOracle) BlockedExcept(c grid.Cell, self Body) bool {
	p := o.layout.CellCenter(c)
	blocked := false
	o.bodies.Each(func(b Body) {
		if blocked || b == self || b.Trigger() {
			return
		}
		lo, hi := b.Bounds()
		if p.X >= lo.X && p.X < hi.X && p.Y >= lo.Y && p.Y < hi.Y {
			blocked = true
		}
	})
	return blocked
}

// Without returns a view of the oracle that ignores self.
func (o *BodyOracle) Without(self Body) Oracle {
	return OracleFunc(func(c grid.Cell) bool {
		return o.BlockedExcept(c, self)
	})
}

// Box is a static Body, useful for fixed colliders and tests.
type Box struct {
	Lo, Hi    grid.Vec
	IsTrigger bool
}

// CellBox returns a box covering exactly one cell.
func CellBox(l grid.Layout, c grid.Cell) *Box {
	lo := l.CellToWorld(c)
	return &Box{Lo: lo, Hi: l.CellToWorld(c.Add(grid.C(1, 1)))}
}

// Bounds implements Body.
func (b *Box) Bounds() (lo, hi grid.Vec) {
	return b.Lo, b.Hi
}

// Trigger implements Body.
func (b *Box) Trigger() bool {
	return b.IsTrigger
}
