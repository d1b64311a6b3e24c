// Package tilemap holds the mutable tile layer of a level: terrain, breakable
// blocks, hazards and pickups, keyed by grid cell.
package tilemap

// Kind identifies what occupies a cell.
type Kind uint8

const (
	Empty        Kind = iota
	Wall              // Solid terrain
	Destructible      // Solid, removed by explosions
	Explosion         // Transient animated debris left by a detonation
	Glorp             // Collectible left behind by some explosions
	Damage            // Hazard: touching it restarts the level
	Winning           // Level exit
)

// Solid reports whether the tile blocks movement.
func (k Kind) Solid() bool {
	switch k {
	case Wall, Destructible, Explosion:
		return true
	}
	return false
}

// String returns a human-readable tile name.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Destructible:
		return "destructible"
	case Explosion:
		return "explosion"
	case Glorp:
		return "glorp"
	case Damage:
		return "damage"
	case Winning:
		return "winning"
	default:
		return "unknown"
	}
}

// Glyph returns the ASCII character used in level files for the tile.
func (k Kind) Glyph() rune {
	switch k {
	case Wall:
		return '#'
	case Destructible:
		return 'D'
	case Explosion:
		return '*'
	case Glorp:
		return 'g'
	case Damage:
		return '^'
	case Winning:
		return 'W'
	default:
		return '.'
	}
}

// KindFromGlyph parses a level glyph. Unknown glyphs map to Empty and false.
func KindFromGlyph(r rune) (Kind, bool) {
	switch r {
	case '#':
		return Wall, true
	case 'D':
		return Destructible, true
	case '*':
		return Explosion, true
	case 'g':
		return Glorp, true
	case '^':
		return Damage, true
	case 'W':
		return Winning, true
	case '.', ' ':
		return Empty, true
	}
	return Empty, false
}
