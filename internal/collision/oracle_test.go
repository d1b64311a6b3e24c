package collision

import (
	"testing"

	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

func TestTileOracle(t *testing.T) {
	tiles := tilemap.New()
	tiles.Set(grid.C(0, 0), tilemap.Wall)
	tiles.Set(grid.C(1, 0), tilemap.Glorp)
	tiles.Set(grid.C(2, 0), tilemap.Destructible)

	o := NewTileOracle(tiles)
	tests := []struct {
		cell    grid.Cell
		blocked bool
	}{
		{grid.C(0, 0), true},
		{grid.C(1, 0), false},
		{grid.C(2, 0), true},
		{grid.C(3, 0), false},
	}
	for _, tc := range tests {
		if got := o.IsBlocked(tc.cell); got != tc.blocked {
			t.Errorf("IsBlocked(%v) = %v, expected %v", tc.cell, got, tc.blocked)
		}
	}

	if !HasGroundBelow(o, grid.C(0, 1)) {
		t.Error("cell above a wall should be grounded")
	}
	if HasGroundBelow(o, grid.C(1, 1)) {
		t.Error("cell above a glorp should not be grounded")
	}
}

func TestNilTileOracle(t *testing.T) {
	o := NewTileOracle(nil)
	if o.IsBlocked(grid.C(0, 0)) {
		t.Error("nil tilemap should block nothing")
	}
}

func TestBodyOracle(t *testing.T) {
	l := grid.Layout{CellSize: grid.V(16, 16)}
	o := NewBodyOracle(l)

	solid := CellBox(l, grid.C(2, 2))
	trigger := CellBox(l, grid.C(3, 3))
	trigger.IsTrigger = true
	o.Add(solid)
	o.Add(trigger)

	if o.Len() != 2 {
		t.Fatalf("Len = %d, expected 2", o.Len())
	}
	if !o.IsBlocked(grid.C(2, 2)) {
		t.Error("solid box should block its cell")
	}
	if o.IsBlocked(grid.C(3, 3)) {
		t.Error("trigger box must not block")
	}
	if o.IsBlocked(grid.C(2, 3)) {
		t.Error("neighbouring cell should be free")
	}
	if o.BlockedExcept(grid.C(2, 2), solid) {
		t.Error("a body must not block itself")
	}

	o.Remove(solid)
	if o.IsBlocked(grid.C(2, 2)) {
		t.Error("removed body should no longer block")
	}
}

func TestAny(t *testing.T) {
	tiles := tilemap.New()
	tiles.Set(grid.C(0, 0), tilemap.Wall)
	bodies := NewBodyOracle(grid.UnitLayout())
	bodies.Add(CellBox(grid.UnitLayout(), grid.C(5, 0)))

	o := Any{NewTileOracle(tiles), bodies, nil}
	if !o.IsBlocked(grid.C(0, 0)) || !o.IsBlocked(grid.C(5, 0)) {
		t.Error("composite should block cells from either source")
	}
	if o.IsBlocked(grid.C(1, 0)) {
		t.Error("composite should not block free cells")
	}

	var f Oracle = OracleFunc(func(c grid.Cell) bool { return c.X < 0 })
	if !f.IsBlocked(grid.C(-1, 0)) || f.IsBlocked(grid.C(1, 0)) {
		t.Error("OracleFunc misbehaves")
	}
}
