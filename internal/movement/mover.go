package movement

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/collision"
	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// Movement defaults.
const (
	DefaultStepTime  = 0.12
	DefaultArcHeight = 0.5
	DefaultMaxFall   = 64
)

// PlatformLocator finds the platform occupying a cell, if any.
type PlatformLocator interface {
	PlatformAt(c grid.Cell) *Mover
}

// Options configures a Mover.
type Options struct {
	Name        string
	Layout      grid.Layout
	Oracle      collision.Oracle
	Coordinator *Coordinator
	Logger      *log.Logger

	StepTime  float64 // seconds per unit step, 0 snaps instantly
	ArcHeight float64 // world-unit bow of JumpForward diagonals
	MaxFall   int     // cells a single sequence may fall

	Gravity bool // falls when unsupported
	Rider   bool // attaches to platforms it lands on
	Solid   bool // blocks other movers when registered as a body

	Platforms PlatformLocator
	Facing    grid.Facing
}

// Outcome summarizes a finished sequence.
type Outcome struct {
	Steps      int
	Fell       int
	Turns      int
	Blocked    bool
	FallCapped bool
}

type phase int

const (
	phaseSettle phase = iota
	phaseNext
	phaseStep
	phaseTurnTick
	phaseMidFall
	phaseCommandFall
	phaseFinalFall
	phaseDone
)

type run struct {
	entries []entry
	next    int
	plan    plan
	idx     int
	phase   phase
	outcome Outcome
}

type cellListener struct {
	fn func(grid.Cell)
}

type finishListener struct {
	fn func(Outcome)
}

// Mover is a grid entity that executes command sequences one validated unit
// step at a time. It is driven by Update and never blocks.
type Mover struct {
	name      string
	layout    grid.Layout
	oracle    collision.Oracle
	coord     *Coordinator
	log       *log.Logger
	stepTime  float64
	arcHeight float64
	maxFall   int
	gravity   bool
	rider     bool
	solid     bool
	platforms PlatformLocator

	pos       grid.Vec
	facing    grid.Facing
	moving    bool
	destroyed bool

	parent   *Mover
	children []*Mover

	run   *run
	tween *Tween

	cellListeners   []*cellListener
	finishListeners []*finishListener
}

// NewMover creates a mover resting at the center of start.
func NewMover(start grid.Cell, opts Options) *Mover {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Coordinator == nil {
		opts.Coordinator = NewCoordinator(opts.Logger)
	}
	if opts.Name == "" {
		opts.Name = "mover"
	}
	if opts.StepTime < 0 {
		opts.StepTime = 0
	}
	if opts.MaxFall <= 0 {
		opts.MaxFall = DefaultMaxFall
	}
	return &Mover{
		name:      opts.Name,
		layout:    opts.Layout,
		oracle:    opts.Oracle,
		coord:     opts.Coordinator,
		log:       opts.Logger,
		stepTime:  opts.StepTime,
		arcHeight: opts.ArcHeight,
		maxFall:   opts.MaxFall,
		gravity:   opts.Gravity,
		rider:     opts.Rider,
		solid:     opts.Solid,
		platforms: opts.Platforms,
		pos:       opts.Layout.CellCenter(start),
		facing:    opts.Facing,
	}
}

// Name implements Holder.
func (m *Mover) Name() string { return m.name }

// SetOracle replaces the collision oracle.
func (m *Mover) SetOracle(o collision.Oracle) { m.oracle = o }

// Position returns the world-space position.
func (m *Mover) Position() grid.Vec { return m.pos }

// CurrentCell returns the cell containing the mover's position.
func (m *Mover) CurrentCell() grid.Cell { return m.layout.WorldToCell(m.pos) }

// Facing returns the horizontal facing.
func (m *Mover) Facing() grid.Facing { return m.facing }

// SetFacing changes facing immediately. It is refused while a sequence runs
// or another holder owns the movement lock.
func (m *Mover) SetFacing(f grid.Facing) bool {
	if m.destroyed || m.moving || m.coord.HeldByOther(m) {
		return false
	}
	m.facing = f
	return true
}

// IsMoving reports whether a sequence is running.
func (m *Mover) IsMoving() bool { return m.moving }

// Grounded reports whether the cell below is blocked.
func (m *Mover) Grounded() bool {
	return collision.HasGroundBelow(m.oracle, m.CurrentCell())
}

// Parent returns the platform carrying this mover, or nil.
func (m *Mover) Parent() *Mover { return m.parent }

// HasRiders reports whether anything rides on this mover.
func (m *Mover) HasRiders() bool { return len(m.children) > 0 }

// Bounds implements collision.Body: one cell centered on the position.
func (m *Mover) Bounds() (lo, hi grid.Vec) {
	half := m.layout.CellCenter(grid.Zero).Sub(m.layout.CellToWorld(grid.Zero))
	return m.pos.Sub(half), m.pos.Add(half)
}

// Trigger implements collision.Body.
func (m *Mover) Trigger() bool { return !m.solid }

// OnCellChanged registers fn to run whenever the mover enters a new cell.
// The returned func unsubscribes.
func (m *Mover) OnCellChanged(fn func(grid.Cell)) func() {
	l := &cellListener{fn: fn}
	m.cellListeners = append(m.cellListeners, l)
	return func() {
		for i, x := range m.cellListeners {
			if x == l {
				m.cellListeners = append(m.cellListeners[:i], m.cellListeners[i+1:]...)
				return
			}
		}
	}
}

// OnFinished registers fn to run when a sequence completes, after the lock is
// released. The returned func unsubscribes.
func (m *Mover) OnFinished(fn func(Outcome)) func() {
	l := &finishListener{fn: fn}
	m.finishListeners = append(m.finishListeners, l)
	return func() {
		for i, x := range m.finishListeners {
			if x == l {
				m.finishListeners = append(m.finishListeners[:i], m.finishListeners[i+1:]...)
				return
			}
		}
	}
}

// OnLanded registers fn to run with the resting cell once a sequence and
// its trailing fall complete.
func (m *Mover) OnLanded(fn func(grid.Cell)) func() {
	return m.OnFinished(func(Outcome) { fn(m.CurrentCell()) })
}

// WarpToCell teleports to the center of c without validation or tweening.
func (m *Mover) WarpToCell(c grid.Cell) {
	m.pos = m.layout.CellCenter(c)
	m.notifyCell(c)
	if m.rider {
		m.refreshPlatform()
	}
}

// TryExecuteSequence starts a command sequence. It returns false without
// side effects when another holder owns the movement lock, a sequence is
// already running, the sequence is empty or malformed, or the mover stands
// on ground and the first positional step is illegal.
func (m *Mover) TryExecuteSequence(seq []MoveStep) bool {
	if len(seq) == 0 {
		return false
	}
	entries := make([]entry, 0, len(seq))
	for _, s := range seq {
		if !s.Valid() {
			m.log.Debug("malformed command rejected", "mover", m.name, "command", s.String())
			return false
		}
		entries = append(entries, entry{step: s})
	}
	return m.start(entries)
}

// TryForward moves one cell in the facing direction.
func (m *Mover) TryForward() bool {
	return m.TryForwardN(1)
}

// TryForwardN moves n cells in the facing direction.
func (m *Mover) TryForwardN(n int) bool {
	return m.TryExecuteSequence([]MoveStep{ForwardStep(n)})
}

// TryTurn flips facing.
func (m *Mover) TryTurn() bool {
	return m.TryExecuteSequence([]MoveStep{TurnStep()})
}

// TryJumpUp rises height cells then steps one cell forward.
func (m *Mover) TryJumpUp(height int) bool {
	return m.TryExecuteSequence([]MoveStep{JumpUpStep(height)})
}

// TryJumpForward leaps distance cells forward over a one-cell hump.
func (m *Mover) TryJumpForward(distance int) bool {
	return m.TryExecuteSequence([]MoveStep{JumpForwardStep(distance)})
}

// TryJumpUpThenForward rises up cells then moves forward cells, with gravity
// applied only at the end.
func (m *Mover) TryJumpUpThenForward(up, forward int) bool {
	if up < 0 || forward < 0 || up+forward == 0 {
		return false
	}
	p := &plan{gravity: true}
	for i := 0; i < up; i++ {
		p.steps = append(p.steps, grid.Up)
	}
	fwd := m.facing.Vector()
	for i := 0; i < forward; i++ {
		p.steps = append(p.steps, fwd)
	}
	return m.start([]entry{{plan: p}})
}

// TryMoveInDirection moves n unit steps along dir. No ground checks run
// between steps.
func (m *Mover) TryMoveInDirection(dir grid.Cell, n int) bool {
	if n <= 0 || !dir.Unit().IsUnit() {
		return false
	}
	u := dir.Unit()
	p := &plan{}
	for i := 0; i < n; i++ {
		p.steps = append(p.steps, u)
	}
	return m.start([]entry{{plan: p}})
}

// TryJumpArc travels to CurrentCell()+delta along a Chebyshev path
// (diagonals first) with every diagonal bowed by arc. Gravity waits until
// the arc lands.
func (m *Mover) TryJumpArc(delta grid.Cell, arc float64) bool {
	if delta.IsZero() {
		return false
	}
	p := &plan{steps: ChebyshevPath(delta), arc: arc, gravity: true}
	return m.start([]entry{{plan: p}})
}

// TrySettle starts a fall-only sequence when the mover is idle and nothing
// supports it anymore.
func (m *Mover) TrySettle() bool {
	if m.destroyed || m.moving || !m.gravity || m.Grounded() {
		return false
	}
	if !m.coord.TryAcquire(m) {
		return false
	}
	m.moving = true
	m.run = &run{phase: phaseSettle}
	return true
}

// Destroy stops any running sequence, releases the lock and detaches from
// platforms and riders.
func (m *Mover) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.moving = false
	m.run = nil
	m.tween = nil
	m.coord.Release(m)
	m.detach()
	for _, c := range m.children {
		c.parent = nil
	}
	m.children = nil
	m.cellListeners = nil
	m.finishListeners = nil
}

// Update advances the running sequence by dt seconds and reports whether the
// mover is still moving.
func (m *Mover) Update(dt float64) bool {
	if !m.moving {
		return false
	}
	if m.tween != nil {
		pos, done := m.tween.Advance(dt)
		m.setPosition(pos)
		if !done {
			return true
		}
		to := m.tween.To
		m.tween = nil
		m.arrive(to)
	}
	m.advance()
	return m.moving
}

func (m *Mover) start(entries []entry) bool {
	if m.destroyed {
		return false
	}
	if m.coord.HeldByOther(m) {
		return false
	}
	if m.moving {
		return false
	}
	if len(entries) == 0 {
		return false
	}

	cell := m.CurrentCell()
	grounded := !m.gravity || m.Grounded()
	if grounded {
		f := m.facing
		for _, e := range entries {
			p := m.planFor(e, f)
			if p.turn {
				f = f.Flip()
				continue
			}
			if len(p.steps) == 0 {
				continue
			}
			if !m.canStep(cell, p.steps[0]) {
				m.log.Debug("sequence rejected: first step blocked",
					"mover", m.name, "cell", cell, "step", p.steps[0])
				return false
			}
			break
		}
	}

	if !m.coord.TryAcquire(m) {
		return false
	}
	m.moving = true
	m.run = &run{entries: entries, phase: phaseNext}
	if !grounded {
		m.run.phase = phaseSettle
	}
	return true
}

func (m *Mover) planFor(e entry, f grid.Facing) plan {
	if e.plan != nil {
		return *e.plan
	}
	p := plan{steps: Expand(e.step, f), gravity: true}
	switch e.step.Kind {
	case Forward:
		p.fallBetween = true
	case JumpForward:
		p.arc = m.arcHeight
	case Turn:
		p.turn = true
	}
	return p
}

// advance runs sequencer logic until a tween is pending, a tick is consumed
// or the sequence finishes.
func (m *Mover) advance() {
	for m.moving && m.tween == nil {
		r := m.run
		switch r.phase {
		case phaseSettle:
			m.fall(phaseNext)

		case phaseNext:
			if r.outcome.Blocked || r.next >= len(r.entries) {
				r.phase = phaseFinalFall
				continue
			}
			r.plan = m.planFor(r.entries[r.next], m.facing)
			r.next++
			r.idx = 0
			r.phase = phaseStep

		case phaseStep:
			if r.plan.turn {
				m.facing = m.facing.Flip()
				r.outcome.Turns++
				r.phase = phaseTurnTick
				return
			}
			if r.idx >= len(r.plan.steps) {
				r.phase = phaseCommandFall
				if !r.plan.gravity {
					r.phase = phaseNext
				}
				continue
			}
			if r.plan.fallBetween && m.gravity && r.outcome.Fell < m.maxFall && !m.Grounded() {
				r.phase = phaseMidFall
				continue
			}
			from := m.CurrentCell()
			step := r.plan.steps[r.idx]
			if !m.canStep(from, step) {
				m.log.Debug("step blocked", "mover", m.name, "cell", from, "step", step)
				r.outcome.Blocked = true
				r.phase = phaseFinalFall
				continue
			}
			r.idx++
			r.outcome.Steps++
			m.beginTween(from, from.Add(step), r.plan.arc)

		case phaseTurnTick:
			r.phase = phaseCommandFall

		case phaseMidFall:
			m.fall(phaseStep)

		case phaseCommandFall:
			m.fall(phaseNext)

		case phaseFinalFall:
			m.fall(phaseDone)

		case phaseDone:
			m.finish()
		}
	}
}

// fall drops one cell while unsupported and moves to next once grounded.
func (m *Mover) fall(next phase) {
	r := m.run
	if !m.gravity || m.Grounded() {
		r.phase = next
		return
	}
	if r.outcome.Fell >= m.maxFall {
		if !r.outcome.FallCapped {
			m.log.Warn("fall limit reached", "mover", m.name, "cell", m.CurrentCell(), "limit", m.maxFall)
		}
		r.outcome.FallCapped = true
		r.phase = next
		return
	}
	from := m.CurrentCell()
	if !m.canStep(from, grid.Down) {
		r.phase = next
		return
	}
	r.outcome.Fell++
	m.beginTween(from, from.Below(), 0)
}

// canStep validates a unit step for the mover and for everything it carries.
func (m *Mover) canStep(from, step grid.Cell) bool {
	return CanStep(m.oracle, from, step) && m.ridersCanStep(step)
}

// ridersCanStep checks each rider's own step. A rider moving into the cell
// its carrier is vacating is allowed.
func (m *Mover) ridersCanStep(step grid.Cell) bool {
	here := m.CurrentCell()
	for _, c := range m.children {
		from := c.CurrentCell()
		if from.Add(step) != here && !CanStep(c.oracle, from, step) {
			return false
		}
		if !c.ridersCanStep(step) {
			return false
		}
	}
	return true
}

func (m *Mover) beginTween(from, to grid.Cell, arc float64) {
	tw := NewTween(m.layout, from, to, arc, m.stepTime)
	if tw.Instant() {
		m.setPosition(tw.End())
		m.arrive(to)
		return
	}
	m.tween = tw
}

// setPosition moves the mover and carries its riders by the same delta.
func (m *Mover) setPosition(p grid.Vec) {
	delta := p.Sub(m.pos)
	m.pos = p
	for _, c := range m.children {
		c.setPosition(c.pos.Add(delta))
	}
}

// arrive snaps to the cell center and notifies listeners, including carried
// riders.
func (m *Mover) arrive(c grid.Cell) {
	m.setPosition(m.layout.CellCenter(c))
	m.notifyCell(c)
	for _, child := range m.children {
		child.settleCarried()
	}
}

func (m *Mover) settleCarried() {
	c := m.CurrentCell()
	m.setPosition(m.layout.CellCenter(c))
	m.notifyCell(c)
	for _, child := range m.children {
		child.settleCarried()
	}
}

func (m *Mover) notifyCell(c grid.Cell) {
	for _, l := range append([]*cellListener(nil), m.cellListeners...) {
		l.fn(c)
	}
}

func (m *Mover) finish() {
	out := m.run.outcome
	m.run = nil
	m.moving = false
	m.coord.Release(m)
	if m.rider {
		m.refreshPlatform()
	}
	m.log.Debug("sequence finished", "mover", m.name, "cell", m.CurrentCell(),
		"steps", out.Steps, "fell", out.Fell, "blocked", out.Blocked)
	for _, l := range append([]*finishListener(nil), m.finishListeners...) {
		l.fn(out)
	}
}

// refreshPlatform attaches to the platform directly below, or detaches when
// there is none.
func (m *Mover) refreshPlatform() {
	var p *Mover
	if m.platforms != nil {
		p = m.platforms.PlatformAt(m.CurrentCell().Below())
	}
	if p == m.parent {
		return
	}
	m.detach()
	if p != nil && p != m {
		m.parent = p
		p.children = append(p.children, m)
		m.log.Debug("attached to platform", "mover", m.name, "platform", p.name)
	}
}

func (m *Mover) detach() {
	p := m.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == m {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	m.parent = nil
}
