// Package collision answers whether a grid cell is blocked. Callers depend
// only on the Oracle interface, so the backing mechanism (a solid tile
// layer, overlap queries against bodies, or both) can be swapped freely.
package collision

import (
	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

// Oracle reports whether a solid, non-trigger obstacle occupies a cell.
type Oracle interface {
	IsBlocked(c grid.Cell) bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(c grid.Cell) bool

// IsBlocked implements Oracle.
func (f OracleFunc) IsBlocked(c grid.Cell) bool {
	return f(c)
}

// HasGroundBelow reports whether the cell under c is blocked.
func HasGroundBelow(o Oracle, c grid.Cell) bool {
	return o.IsBlocked(c.Below())
}

// TileOracle treats every solid tile in a tilemap as blocked.
// A nil tilemap blocks nothing.
type TileOracle struct {
	tiles *tilemap.Tilemap
}

// NewTileOracle creates an oracle backed by a tilemap.
func NewTileOracle(tiles *tilemap.Tilemap) *TileOracle {
	return &TileOracle{tiles: tiles}
}

// IsBlocked implements Oracle.
func (o *TileOracle) IsBlocked(c grid.Cell) bool {
	if o.tiles == nil {
		return false
	}
	return o.tiles.Get(c).Solid()
}

// Any blocks a cell if any of its oracles does.
type Any []Oracle

// IsBlocked implements Oracle.
func (a Any) IsBlocked(c grid.Cell) bool {
	for _, o := range a {
		if o != nil && o.IsBlocked(c) {
			return true
		}
	}
	return false
}
