package tilemap

import (
	"sort"

	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// Change records one tile mutation.
type Change struct {
	Cell grid.Cell
	Old  Kind
	New  Kind
}

// Tilemap is a sparse cell -> tile store. Empty cells are not stored.
// It is not safe for concurrent use; the simulation is single-threaded.
type Tilemap struct {
	tiles     map[grid.Cell]Kind
	listeners []func(Change)
}

// New creates an empty tilemap.
func New() *Tilemap {
	return &Tilemap{tiles: make(map[grid.Cell]Kind)}
}

// Get returns the tile at c (Empty if none).
func (m *Tilemap) Get(c grid.Cell) Kind {
	return m.tiles[c]
}

// Has reports whether a non-empty tile occupies c.
func (m *Tilemap) Has(c grid.Cell) bool {
	_, ok := m.tiles[c]
	return ok
}

// Set places a tile. Setting Empty clears the cell. Listeners fire only when
// the tile actually changes.
func (m *Tilemap) Set(c grid.Cell, k Kind) {
	old := m.tiles[c]
	if old == k {
		return
	}
	if k == Empty {
		delete(m.tiles, c)
	} else {
		m.tiles[c] = k
	}
	ch := Change{Cell: c, Old: old, New: k}
	for _, fn := range m.listeners {
		fn(ch)
	}
}

// Clear empties the cell.
func (m *Tilemap) Clear(c grid.Cell) {
	m.Set(c, Empty)
}

// OnChange registers a listener for tile mutations.
func (m *Tilemap) OnChange(fn func(Change)) {
	m.listeners = append(m.listeners, fn)
}

// Len returns the number of non-empty cells.
func (m *Tilemap) Len() int {
	return len(m.tiles)
}

// Count returns the number of tiles of the given kind.
func (m *Tilemap) Count(k Kind) int {
	n := 0
	for _, t := range m.tiles {
		if t == k {
			n++
		}
	}
	return n
}

// Cells returns all cells holding kind k, ordered by row then column.
func (m *Tilemap) Cells(k Kind) []grid.Cell {
	var out []grid.Cell
	for c, t := range m.tiles {
		if t == k {
			out = append(out, c)
		}
	}
	sortCells(out)
	return out
}

// Bounds returns the inclusive min/max cells of all stored tiles.
// ok is false for an empty map.
func (m *Tilemap) Bounds() (lo, hi grid.Cell, ok bool) {
	first := true
	for c := range m.tiles {
		if first {
			lo, hi = c, c
			first = false
			continue
		}
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi, !first
}

// Clone returns a deep copy without listeners.
func (m *Tilemap) Clone() *Tilemap {
	out := New()
	for c, k := range m.tiles {
		out.tiles[c] = k
	}
	return out
}

func sortCells(cells []grid.Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
