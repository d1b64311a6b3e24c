// Package explosion runs time-staggered chain reactions over destructible
// tiles.
package explosion

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/movement"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

// Defaults.
const (
	DefaultAnimationDuration = 1.8
	DefaultDelay             = 0.2
	DefaultGlorpChance       = 0.1
)

// Source supplies uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Options configures a Propagator.
type Options struct {
	Tiles       *tilemap.Tilemap
	Coordinator *movement.Coordinator
	Logger      *log.Logger
	Rand        Source

	AnimationDuration float64 // seconds a cell stays an explosion
	Delay             float64 // seconds before each neighbour detonates
	GlorpChance       float64 // probability a detonated cell becomes a glorp

	// LockMovement holds the movement lock until every chain and transient
	// tile has finished.
	LockMovement bool
}

// Detonation reports one cell entering the explosion state.
type Detonation struct {
	Cell  grid.Cell
	Depth int
}

// Settled reports a transient explosion tile reaching its end state.
type Settled struct {
	Cell grid.Cell
	Kind tilemap.Kind
}

type frame struct {
	neighbors []grid.Cell
	idx       int
}

// chain is one depth-first detonation walk. Each neighbour waits out the
// delay and is fully explored before its next sibling is examined.
type chain struct {
	stack   []*frame
	pending bool
	target  grid.Cell
	wait    float64
}

type transient struct {
	cell      grid.Cell
	remaining float64
}

// Propagator owns all running chains and transient tiles of a world.
type Propagator struct {
	tiles  *tilemap.Tilemap
	coord  *movement.Coordinator
	log    *log.Logger
	rng    Source
	anim   float64
	delay  float64
	chance float64
	lock   bool

	chains     []*chain
	transients []*transient

	detonateListeners []func(Detonation)
	settleListeners   []func(Settled)
}

// New creates a propagator.
func New(opts Options) *Propagator {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tiles == nil {
		opts.Logger.Warn("explosion propagator has no tilemap; detonations are disabled")
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.AnimationDuration < 0 {
		opts.AnimationDuration = 0
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Propagator{
		tiles:  opts.Tiles,
		coord:  opts.Coordinator,
		log:    opts.Logger,
		rng:    opts.Rand,
		anim:   opts.AnimationDuration,
		delay:  opts.Delay,
		chance: opts.GlorpChance,
		lock:   opts.LockMovement && opts.Coordinator != nil,
	}
}

// Name implements movement.Holder.
func (p *Propagator) Name() string { return "explosion" }

// SetRand replaces the random source.
func (p *Propagator) SetRand(r Source) {
	if r != nil {
		p.rng = r
	}
}

// OnDetonate registers fn to run for every detonated cell.
func (p *Propagator) OnDetonate(fn func(Detonation)) {
	p.detonateListeners = append(p.detonateListeners, fn)
}

// OnSettled registers fn to run when a transient tile reaches its end state.
func (p *Propagator) OnSettled(fn func(Settled)) {
	p.settleListeners = append(p.settleListeners, fn)
}

// Active reports whether any chain or transient tile is still running.
func (p *Propagator) Active() bool {
	return len(p.chains) > 0 || len(p.transients) > 0
}

// TryDetonate triggers an explosion at from+facing on behalf of h. It is
// refused when another holder owns the movement lock or the target is not
// destructible.
func (p *Propagator) TryDetonate(h movement.Holder, from, facing grid.Cell) bool {
	if p.tiles == nil {
		return false
	}
	if p.coord != nil && p.coord.HeldByOther(h) && p.coord.Holder() != movement.Holder(p) {
		return false
	}
	target := from.Add(facing)
	if p.tiles.Get(target) != tilemap.Destructible {
		return false
	}
	if p.lock && !p.coord.TryAcquire(p) {
		return false
	}

	c := &chain{}
	p.chains = append(p.chains, c)
	p.detonate(c, target, 0)
	// Zero delays resolve the whole chain immediately.
	p.runChain(c, 0)
	p.reap()
	return true
}

// Update advances every chain and transient tile by dt seconds and reports
// whether anything is still running.
func (p *Propagator) Update(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	for _, t := range p.transients {
		t.remaining -= dt
	}
	for _, c := range append([]*chain(nil), p.chains...) {
		p.runChain(c, dt)
	}
	p.reap()
	return p.Active()
}

// Reset drops all running work and releases the lock.
func (p *Propagator) Reset() {
	p.chains = nil
	p.transients = nil
	if p.coord != nil {
		p.coord.Release(p)
	}
}

// detonate turns a destructible cell into an explosion. left is the part of
// the current tick remaining after the detonation moment.
func (p *Propagator) detonate(c *chain, cell grid.Cell, left float64) bool {
	if p.tiles.Get(cell) != tilemap.Destructible {
		return false
	}
	p.tiles.Set(cell, tilemap.Explosion)
	p.transients = append(p.transients, &transient{cell: cell, remaining: p.anim - left})
	c.stack = append(c.stack, &frame{neighbors: cell.Neighbors8()})

	d := Detonation{Cell: cell, Depth: len(c.stack) - 1}
	p.log.Debug("detonation", "cell", cell, "depth", d.Depth)
	for _, fn := range p.detonateListeners {
		fn(d)
	}
	return true
}

// runChain spends budget seconds on a chain.
func (p *Propagator) runChain(c *chain, budget float64) {
	for len(c.stack) > 0 {
		if c.pending {
			if c.wait > budget {
				c.wait -= budget
				return
			}
			budget -= c.wait
			c.wait = 0
			c.pending = false
			p.detonate(c, c.target, budget)
			continue
		}

		top := c.stack[len(c.stack)-1]
		if top.idx >= len(top.neighbors) {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		n := top.neighbors[top.idx]
		top.idx++
		if p.tiles.Get(n) == tilemap.Destructible {
			c.pending = true
			c.target = n
			c.wait = p.delay
		}
	}

	for i, x := range p.chains {
		if x == c {
			p.chains = append(p.chains[:i], p.chains[i+1:]...)
			break
		}
	}
}

// reap finalizes expired transient tiles in detonation order.
func (p *Propagator) reap() {
	kept := p.transients[:0]
	var done []*transient
	for _, t := range p.transients {
		if t.remaining <= 0 {
			done = append(done, t)
		} else {
			kept = append(kept, t)
		}
	}
	p.transients = kept

	for _, t := range done {
		p.finalize(t.cell)
	}

	if p.lock && !p.Active() && p.coord.Release(p) {
		p.log.Debug("explosions finished")
	}
}

func (p *Propagator) finalize(cell grid.Cell) {
	if p.tiles.Get(cell) != tilemap.Explosion {
		return
	}
	kind := tilemap.Empty
	if p.rng.Float64() < p.chance {
		kind = tilemap.Glorp
	}
	p.tiles.Set(cell, kind)
	s := Settled{Cell: cell, Kind: kind}
	for _, fn := range p.settleListeners {
		fn(s)
	}
}
