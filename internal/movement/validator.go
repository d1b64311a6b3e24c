package movement

import (
	"github.com/vovakirdan/tui-glorp/internal/collision"
	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// CanStep reports whether a single unit step from a cell is legal.
// A cardinal step needs a free target. A diagonal step also needs both
// orthogonal neighbours free, so nothing cuts across a wall corner.
func CanStep(o collision.Oracle, from, step grid.Cell) bool {
	if !step.IsUnit() {
		return false
	}
	target := from.Add(step)
	if o == nil {
		return true
	}
	if !step.IsDiagonal() {
		return !o.IsBlocked(target)
	}
	return !o.IsBlocked(target) &&
		!o.IsBlocked(from.Add(grid.C(step.X, 0))) &&
		!o.IsBlocked(from.Add(grid.C(0, step.Y)))
}
