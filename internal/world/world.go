// Package world wires a level's tiles, oracles, movers, platforms and
// explosions together and advances them once per tick.
package world

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/collision"
	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/explosion"
	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/movement"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

// Options configures a World.
type Options struct {
	Layout    grid.Layout
	Movement  config.MovementConfig
	Explosion config.ExplosionConfig
	Logger    *log.Logger
	Rand      explosion.Source
}

// World is one running level.
type World struct {
	layout     grid.Layout
	level      levels.Level
	tiles      *tilemap.Tilemap
	bodies     *collision.BodyOracle
	coord      *movement.Coordinator
	player     *movement.Mover
	platforms  []*movement.Platform
	explosions *explosion.Propagator
	unsettled  bool // ground under the idle player was cleared
	movement   config.MovementConfig
	log        *log.Logger
}

// New builds a world for lvl.
func New(lvl levels.Level, opts Options) *World {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Layout.CellSize.X <= 0 || opts.Layout.CellSize.Y <= 0 {
		opts.Layout = grid.UnitLayout()
	}
	mc := opts.Movement

	w := &World{
		layout:   opts.Layout,
		level:    lvl,
		tiles:    lvl.ToTilemap(),
		bodies:   collision.NewBodyOracle(opts.Layout),
		coord:    movement.NewCoordinator(opts.Logger),
		movement: mc,
		log:      opts.Logger,
	}
	tileOracle := collision.NewTileOracle(w.tiles)

	for i, p := range lvl.Platforms {
		m := movement.NewMover(p.Cell, movement.Options{
			Name:        fmt.Sprintf("platform-%d", i),
			Layout:      w.layout,
			Coordinator: w.coord,
			Logger:      w.log,
			StepTime:    mc.PlatformStepTime,
			MaxFall:     mc.MaxFall,
			Solid:       true,
		})
		m.SetOracle(collision.Any{tileOracle, w.bodies.Without(m)})
		w.bodies.Add(m)
		w.platforms = append(w.platforms, movement.NewPlatform(m, p.Direction, p.Distance, w.log))
	}

	w.player = movement.NewMover(lvl.Start, movement.Options{
		Name:        "player",
		Layout:      w.layout,
		Oracle:      collision.Any{tileOracle, w.bodies},
		Coordinator: w.coord,
		Logger:      w.log,
		StepTime:    mc.StepTime,
		ArcHeight:   mc.ArcHeight,
		MaxFall:     mc.MaxFall,
		Gravity:     true,
		Rider:       true,
		Platforms:   w,
		Facing:      lvl.Facing,
	})
	w.player.WarpToCell(lvl.Start)

	ec := opts.Explosion
	w.explosions = explosion.New(explosion.Options{
		Tiles:             w.tiles,
		Coordinator:       w.coord,
		Logger:            w.log,
		Rand:              opts.Rand,
		AnimationDuration: ec.AnimationDuration,
		Delay:             ec.Delay,
		GlorpChance:       ec.GlorpChance,
		LockMovement:      ec.LockMovement,
	})

	w.explosions.OnSettled(func(s explosion.Settled) {
		if s.Cell == w.player.CurrentCell().Below() {
			w.unsettled = true
		}
	})

	w.log.Debug("world ready", "level", lvl.ID, "start", lvl.Start, "platforms", len(w.platforms))
	return w
}

// PlatformAt implements movement.PlatformLocator.
func (w *World) PlatformAt(c grid.Cell) *movement.Mover {
	if p := w.platformAt(c); p != nil {
		return p.Mover()
	}
	return nil
}

func (w *World) platformAt(c grid.Cell) *movement.Platform {
	for _, p := range w.platforms {
		if p.Cell() == c {
			return p
		}
	}
	return nil
}

// Update advances every process by dt seconds and reports whether anything
// is still in motion.
func (w *World) Update(dt float64) bool {
	busy := w.player.Update(dt)
	for _, p := range w.platforms {
		if p.Mover().Update(dt) {
			busy = true
		}
	}
	if w.explosions.Update(dt) {
		busy = true
	}
	if w.unsettled && w.coord.Free() && !w.player.IsMoving() {
		w.unsettled = false
		if w.player.TrySettle() {
			w.log.Debug("player lost its footing", "cell", w.player.CurrentCell())
			busy = true
		}
	}
	return busy
}

// Busy reports whether any mover holds the lock or an explosion runs.
func (w *World) Busy() bool {
	return !w.coord.Free() || w.explosions.Active()
}

// Forward moves the player n cells forward.
func (w *World) Forward(n int) bool {
	return w.player.TryForwardN(n)
}

// Turn flips the player.
func (w *World) Turn() bool {
	return w.player.TryTurn()
}

// JumpUp rises then steps forward.
func (w *World) JumpUp() bool {
	return w.player.TryJumpUpThenForward(w.movement.JumpUpHeight, w.movement.JumpUpForward)
}

// JumpForward leaps over a one-cell hump.
func (w *World) JumpForward() bool {
	return w.player.TryJumpForward(w.movement.JumpForwardDistance)
}

// Explode detonates the cell in front of the player. The player must be
// idle.
func (w *World) Explode() bool {
	if w.player.IsMoving() {
		return false
	}
	return w.explosions.TryDetonate(w.player, w.player.CurrentCell(), w.player.Facing().Vector())
}

// Zap sends the platform under the player on its next trip.
func (w *World) Zap() bool {
	if w.player.IsMoving() {
		return false
	}
	p := w.platformAt(w.player.CurrentCell().Below())
	if p == nil {
		return false
	}
	return p.TryMoveAndReverse()
}

// Destroy stops all processes and releases the lock.
func (w *World) Destroy() {
	w.explosions.Reset()
	for _, p := range w.platforms {
		w.bodies.Remove(p.Mover())
		p.Mover().Destroy()
	}
	w.player.Destroy()
}

// Level returns the level the world was built from.
func (w *World) Level() levels.Level { return w.level }

// Layout returns the cell layout.
func (w *World) Layout() grid.Layout { return w.layout }

// Tiles returns the live tilemap.
func (w *World) Tiles() *tilemap.Tilemap { return w.tiles }

// Player returns the player mover.
func (w *World) Player() *movement.Mover { return w.player }

// Platforms returns the level's platforms.
func (w *World) Platforms() []*movement.Platform { return w.platforms }

// Explosions returns the explosion propagator.
func (w *World) Explosions() *explosion.Propagator { return w.explosions }

// Coordinator returns the movement lock.
func (w *World) Coordinator() *movement.Coordinator { return w.coord }

// TileAt returns the tile kind at c.
func (w *World) TileAt(c grid.Cell) tilemap.Kind { return w.tiles.Get(c) }

// PlayerCell returns the player's current cell.
func (w *World) PlayerCell() grid.Cell { return w.player.CurrentCell() }

// OutOfBounds reports whether c lies outside the level's columns or below
// its bottom row.
func (w *World) OutOfBounds(c grid.Cell) bool {
	return c.Y < 0 || c.X < 0 || c.X >= w.level.Width
}
