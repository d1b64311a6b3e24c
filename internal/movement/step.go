// Package movement turns discrete commands into validated, tick-driven grid
// motion: step expansion, the corner-cutting rule, tweened transitions,
// gravity, the world-wide movement lock and platform carrying.
package movement

import (
	"fmt"

	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// CommandKind identifies a high-level movement command.
type CommandKind int

const (
	Forward CommandKind = iota
	JumpUp
	JumpForward
	Turn
)

// MinJumpForward is the shortest legal JumpForward: up-diagonal, down-diagonal
// and nothing in between.
const MinJumpForward = 3

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case Forward:
		return "forward"
	case JumpUp:
		return "jump_up"
	case JumpForward:
		return "jump_forward"
	case Turn:
		return "turn"
	default:
		return "unknown"
	}
}

// MoveStep is one command of a sequence. Param is the distance or height and
// is ignored for Turn.
type MoveStep struct {
	Kind  CommandKind
	Param int
}

// Step constructors.
func ForwardStep(distance int) MoveStep     { return MoveStep{Kind: Forward, Param: distance} }
func JumpUpStep(height int) MoveStep        { return MoveStep{Kind: JumpUp, Param: height} }
func JumpForwardStep(distance int) MoveStep { return MoveStep{Kind: JumpForward, Param: distance} }
func TurnStep() MoveStep                    { return MoveStep{Kind: Turn} }

// String returns e.g. "forward(2)".
func (s MoveStep) String() string {
	if s.Kind == Turn {
		return "turn"
	}
	return fmt.Sprintf("%s(%d)", s.Kind, s.Param)
}

// Valid reports whether the command is well formed.
func (s MoveStep) Valid() bool {
	switch s.Kind {
	case Forward, JumpUp:
		return s.Param >= 1
	case JumpForward:
		return s.Param >= MinJumpForward
	case Turn:
		return true
	}
	return false
}

// Expand resolves a command into unit steps for the given facing.
// Turn and malformed commands expand to nothing.
func Expand(s MoveStep, f grid.Facing) []grid.Cell {
	if !s.Valid() {
		return nil
	}
	fwd := f.Vector()
	var steps []grid.Cell

	switch s.Kind {
	case Forward:
		for i := 0; i < s.Param; i++ {
			steps = append(steps, fwd)
		}
	case JumpUp:
		for i := 0; i < s.Param; i++ {
			steps = append(steps, grid.Up)
		}
		steps = append(steps, fwd)
	case JumpForward:
		steps = append(steps, fwd.Add(grid.Up))
		for i := 0; i < s.Param-2; i++ {
			steps = append(steps, fwd)
		}
		steps = append(steps, fwd.Add(grid.Down))
	}
	return steps
}

// ChebyshevPath returns the unit steps covering delta: diagonals first, then
// the remaining straight run.
func ChebyshevPath(delta grid.Cell) []grid.Cell {
	u := delta.Unit()
	ax, ay := absInt(delta.X), absInt(delta.Y)
	diag := min(ax, ay)

	steps := make([]grid.Cell, 0, max(ax, ay))
	for i := 0; i < diag; i++ {
		steps = append(steps, u)
	}
	for i := 0; i < ax-diag; i++ {
		steps = append(steps, grid.C(u.X, 0))
	}
	for i := 0; i < ay-diag; i++ {
		steps = append(steps, grid.C(0, u.Y))
	}
	return steps
}

// plan is a command resolved against the mover's facing at the moment it
// starts.
type plan struct {
	steps       []grid.Cell
	arc         float64
	fallBetween bool // gravity is checked before every step
	gravity     bool // ground is checked once the command finishes
	turn        bool
}

// entry is either a MoveStep expanded lazily or a prebuilt plan.
type entry struct {
	step MoveStep
	plan *plan
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
