package movement

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-glorp/internal/collision"
	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

type platformList []*Mover

func (l platformList) PlatformAt(c grid.Cell) *Mover {
	for _, p := range l {
		if p.CurrentCell() == c {
			return p
		}
	}
	return nil
}

type rig struct {
	tiles    *tilemap.Tilemap
	coord    *Coordinator
	platform *Platform
	rider    *Mover
}

func newRig(dir grid.Direction, distance int) *rig {
	layout := grid.UnitLayout()
	tm := tilemap.New()
	bodies := collision.NewBodyOracle(layout)
	coord := NewCoordinator(nil)

	pm := NewMover(grid.Zero, Options{
		Name:        "platform",
		Layout:      layout,
		Coordinator: coord,
		Solid:       true,
	})
	pm.SetOracle(collision.Any{collision.NewTileOracle(tm), bodies.Without(pm)})
	bodies.Add(pm)

	rider := NewMover(grid.C(0, 1), Options{
		Name:        "player",
		Layout:      layout,
		Oracle:      collision.Any{collision.NewTileOracle(tm), bodies},
		Coordinator: coord,
		Gravity:     true,
		Rider:       true,
		Platforms:   platformList{pm},
	})
	rider.WarpToCell(grid.C(0, 1))

	return &rig{
		tiles:    tm,
		coord:    coord,
		platform: NewPlatform(pm, dir, distance, nil),
		rider:    rider,
	}
}

func TestRiderAttachesOnWarp(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	if r.rider.Parent() != r.platform.Mover() {
		t.Fatal("rider should attach to the platform below")
	}
	if !r.rider.Grounded() {
		t.Error("platform should count as ground")
	}
}

func TestPlatformCarriesRider(t *testing.T) {
	r := newRig(grid.DirRight, 2)

	var visited []grid.Cell
	r.rider.OnCellChanged(func(c grid.Cell) { visited = append(visited, c) })

	if !r.platform.TryMoveAndReverse() {
		t.Fatal("TryMoveAndReverse rejected")
	}
	settle(t, r.platform.Mover(), 1.0/60)

	if got := r.platform.Cell(); got != grid.C(2, 0) {
		t.Errorf("platform cell = %v, expected (2,0)", got)
	}
	if got := r.rider.CurrentCell(); got != grid.C(2, 1) {
		t.Errorf("rider cell = %v, expected (2,1)", got)
	}
	if want := []grid.Cell{grid.C(1, 1), grid.C(2, 1)}; !slices.Equal(visited, want) {
		t.Errorf("rider notifications = %v, expected %v", visited, want)
	}
	if r.platform.Direction() != grid.DirLeft {
		t.Errorf("direction = %v, expected left after a trip", r.platform.Direction())
	}

	if !r.platform.TryMoveAndReverse() {
		t.Fatal("return trip rejected")
	}
	settle(t, r.platform.Mover(), 1.0/60)
	if got := r.rider.CurrentCell(); got != grid.C(0, 1) {
		t.Errorf("rider cell after return = %v, expected (0,1)", got)
	}
}

func TestPlatformCarriesTimed(t *testing.T) {
	r := newRig(grid.DirUp, 1)
	r.platform.Mover().stepTime = 0.1

	if !r.platform.TryMoveAndReverse() {
		t.Fatal("TryMoveAndReverse rejected")
	}
	for r.platform.Mover().Update(0.03) {
		p, q := r.platform.Mover().Position(), r.rider.Position()
		if q.Y-p.Y < 0.999 || q.Y-p.Y > 1.001 {
			t.Fatalf("rider drifted from platform: platform=%v rider=%v", p, q)
		}
	}
	if got := r.rider.CurrentCell(); got != grid.C(0, 2) {
		t.Errorf("rider cell = %v, expected (0,2)", got)
	}
}

func TestPlatformNeedsRider(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	r.rider.WarpToCell(grid.C(5, 5))
	if r.rider.Parent() != nil {
		t.Fatal("rider should detach after warping away")
	}
	if r.platform.TryMoveAndReverse() {
		t.Error("platform moved without a rider")
	}
}

func TestPlatformWaitsForLock(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	if !r.coord.TryAcquire(&Mover{name: "other"}) {
		t.Fatal("could not take the lock")
	}
	if r.platform.TryMoveAndReverse() {
		t.Error("platform moved while the lock was held")
	}
	if r.platform.Direction() != grid.DirRight {
		t.Error("rejected trip should not reverse direction")
	}
}

func TestPlatformBlockedFirstStep(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	r.tiles.Set(grid.C(1, 0), tilemap.Wall)
	if r.platform.TryMoveAndReverse() {
		t.Error("platform moved into a wall")
	}
}

func TestRiderStepsOff(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	r.tiles.Set(grid.C(-1, 0), tilemap.Wall)
	if !r.rider.TryTurn() {
		t.Fatal("TryTurn rejected")
	}
	settle(t, r.rider, 1.0/60)

	if !r.rider.TryForward() {
		t.Fatal("TryForward rejected")
	}
	settle(t, r.rider, 1.0/60)
	if r.rider.Parent() != nil {
		t.Error("rider should detach after leaving the platform")
	}
	if r.platform.Mover().HasRiders() {
		t.Error("platform still lists the rider")
	}
}

func TestPlatformRefusesTripBlockedForRider(t *testing.T) {
	r := newRig(grid.DirUp, 1)
	r.tiles.Set(grid.C(0, 2), tilemap.Wall)

	if r.platform.TryMoveAndReverse() {
		t.Fatal("platform lifted its rider into a wall")
	}
	if got := r.rider.CurrentCell(); got != grid.C(0, 1) {
		t.Errorf("rider cell = %v, expected (0,1)", got)
	}
	if !r.coord.Free() {
		t.Error("refused trip should leave the lock free")
	}
}

func TestPlatformStopsWhenRiderBlocked(t *testing.T) {
	r := newRig(grid.DirRight, 3)
	r.tiles.Set(grid.C(2, 1), tilemap.Wall)

	if !r.platform.TryMoveAndReverse() {
		t.Fatal("TryMoveAndReverse rejected")
	}
	settle(t, r.platform.Mover(), 1.0/60)

	if got := r.platform.Cell(); got != grid.C(1, 0) {
		t.Errorf("platform cell = %v, expected (1,0)", got)
	}
	if got := r.rider.CurrentCell(); got != grid.C(1, 1) {
		t.Errorf("rider cell = %v, expected (1,1)", got)
	}
	if r.tiles.Get(r.rider.CurrentCell()) == tilemap.Wall {
		t.Error("rider ended inside a wall")
	}
}

func TestPlatformLowersRider(t *testing.T) {
	r := newRig(grid.DirDown, 1)

	if !r.platform.TryMoveAndReverse() {
		t.Fatal("TryMoveAndReverse rejected")
	}
	settle(t, r.platform.Mover(), 1.0/60)

	if got := r.rider.CurrentCell(); got != grid.C(0, 0) {
		t.Errorf("rider cell = %v, expected (0,0)", got)
	}
}

func TestSetFacingRespectsLock(t *testing.T) {
	r := newRig(grid.DirRight, 2)
	other := &Mover{name: "other"}
	if !r.coord.TryAcquire(other) {
		t.Fatal("could not take the lock")
	}
	if r.rider.SetFacing(grid.FacingLeft) {
		t.Error("SetFacing succeeded while another mover held the lock")
	}
	if r.rider.Facing() != grid.FacingRight {
		t.Errorf("facing = %v, expected right", r.rider.Facing())
	}

	r.coord.Release(other)
	r.tiles.Set(grid.C(1, 0), tilemap.Wall)
	if !r.rider.TryForward() {
		t.Fatal("TryForward rejected")
	}
	if r.rider.SetFacing(grid.FacingLeft) {
		t.Error("SetFacing succeeded mid-sequence")
	}
	settle(t, r.rider, 1.0/60)

	if !r.rider.SetFacing(grid.FacingLeft) {
		t.Error("SetFacing refused on an idle mover")
	}
	if r.rider.Facing() != grid.FacingLeft {
		t.Errorf("facing = %v, expected left", r.rider.Facing())
	}
}
