package grid

import "testing"

func TestCellArithmetic(t *testing.T) {
	c := C(2, 3)
	if got := c.Add(Right); got != C(3, 3) {
		t.Errorf("Add(Right) = %v, expected (3,3)", got)
	}
	if got := c.Below(); got != C(2, 2) {
		t.Errorf("Below() = %v, expected (2,2)", got)
	}
	if got := C(-5, 7).Unit(); got != C(-1, 1) {
		t.Errorf("Unit() = %v, expected (-1,1)", got)
	}
	if got := c.Scale(3); got != C(6, 9) {
		t.Errorf("Scale(3) = %v, expected (6,9)", got)
	}
}

func TestIsUnit(t *testing.T) {
	tests := []struct {
		name     string
		c        Cell
		unit     bool
		diagonal bool
	}{
		{"zero", Zero, false, false},
		{"right", Right, true, false},
		{"down", Down, true, false},
		{"up-left", C(-1, 1), true, true},
		{"two right", C(2, 0), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.IsUnit() != tc.unit {
				t.Errorf("IsUnit() = %v, expected %v", tc.c.IsUnit(), tc.unit)
			}
			if tc.c.IsDiagonal() != tc.diagonal {
				t.Errorf("IsDiagonal() = %v, expected %v", tc.c.IsDiagonal(), tc.diagonal)
			}
		})
	}
}

func TestNeighbors8(t *testing.T) {
	n := C(0, 0).Neighbors8()
	if len(n) != 8 {
		t.Fatalf("expected 8 neighbors, got %d", len(n))
	}
	seen := make(map[Cell]bool)
	for _, c := range n {
		if c == C(0, 0) {
			t.Error("neighbors must not include the center")
		}
		if c.Chebyshev(C(0, 0)) != 1 {
			t.Errorf("neighbor %v is not adjacent", c)
		}
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct neighbors, got %d", len(seen))
	}
}

func TestFacing(t *testing.T) {
	if FacingRight.Vector() != Right {
		t.Error("right facing should resolve to Right")
	}
	if FacingLeft.Vector() != Left {
		t.Error("left facing should resolve to Left")
	}
	if FacingRight.Flip() != FacingLeft || FacingLeft.Flip() != FacingRight {
		t.Error("Flip should toggle facing")
	}
	if f, ok := ParseFacing("left"); !ok || f != FacingLeft {
		t.Error("ParseFacing(left) failed")
	}
}

func TestDirectionReverse(t *testing.T) {
	pairs := map[Direction]Direction{
		DirRight: DirLeft,
		DirLeft:  DirRight,
		DirUp:    DirDown,
		DirDown:  DirUp,
	}
	for d, want := range pairs {
		if got := d.Reverse(); got != want {
			t.Errorf("%v.Reverse() = %v, expected %v", d, got, want)
		}
		if d.Reverse().Reverse() != d {
			t.Errorf("double reverse of %v is not identity", d)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	layouts := []Layout{
		UnitLayout(),
		{CellSize: V(16, 16), Origin: V(-8, 4)},
		{CellSize: V(0.5, 2)},
	}

	for _, l := range layouts {
		for x := -6; x <= 6; x++ {
			for y := -6; y <= 6; y++ {
				c := C(x, y)
				if got := l.WorldToCell(l.CellCenter(c)); got != c {
					t.Errorf("layout %+v: WorldToCell(CellCenter(%v)) = %v", l, c, got)
				}
			}
		}
	}
}

func TestLayoutCellCenter(t *testing.T) {
	l := Layout{CellSize: V(16, 16)}
	if got := l.CellCenter(C(1, 2)); got != V(24, 40) {
		t.Errorf("CellCenter = %v, expected (24,40)", got)
	}
	if got := l.WorldToCell(V(-0.1, 15.9)); got != C(-1, 0) {
		t.Errorf("WorldToCell = %v, expected (-1,0)", got)
	}
}
