package grid

// Facing is the persistent horizontal orientation of a mover.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Vector returns the unit step "forward" resolves to.
func (f Facing) Vector() Cell {
	if f == FacingLeft {
		return Left
	}
	return Right
}

// Flip returns the opposite facing.
func (f Facing) Flip() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// String returns "left" or "right".
func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// ParseFacing converts "left"/"right" (or "l"/"r") to a Facing.
// Anything else yields FacingRight and false.
func ParseFacing(s string) (Facing, bool) {
	switch s {
	case "left", "l", "L":
		return FacingLeft, true
	case "right", "r", "R":
		return FacingRight, true
	}
	return FacingRight, false
}

// Direction names a cardinal direction in level files and platform config.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

// Vector returns the unit cell offset for the direction.
func (d Direction) Vector() Cell {
	switch d {
	case DirLeft:
		return Left
	case DirUp:
		return Up
	case DirDown:
		return Down
	default:
		return Right
	}
}

// Reverse returns the opposite direction (Right<->Left, Up<->Down).
func (d Direction) Reverse() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirLeft
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "right"
	}
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "right", "r":
		return DirRight, true
	case "left", "l":
		return DirLeft, true
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	}
	return DirRight, false
}
