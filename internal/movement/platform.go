package movement

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// Platform is a gravity-free mover that shuttles riders back and forth along
// one axis. Each successful trip reverses its direction.
type Platform struct {
	mover     *Mover
	direction grid.Direction
	distance  int
	pending   bool
	log       *log.Logger
}

// NewPlatform wraps m. The mover should be created with Gravity off and
// Solid on.
func NewPlatform(m *Mover, dir grid.Direction, distance int, logger *log.Logger) *Platform {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if distance <= 0 {
		distance = 1
	}
	p := &Platform{mover: m, direction: dir, distance: distance, log: logger}
	m.OnFinished(func(Outcome) {
		if !p.pending {
			return
		}
		p.pending = false
		p.direction = p.direction.Reverse()
	})
	return p
}

// Mover returns the underlying mover.
func (p *Platform) Mover() *Mover { return p.mover }

// Direction returns the direction of the next trip.
func (p *Platform) Direction() grid.Direction { return p.direction }

// Distance returns the trip length in cells.
func (p *Platform) Distance() int { return p.distance }

// Cell returns the platform's current cell.
func (p *Platform) Cell() grid.Cell { return p.mover.CurrentCell() }

// IsMoving reports whether a trip is running.
func (p *Platform) IsMoving() bool { return p.mover.IsMoving() }

// TryMoveAndReverse starts a trip when the platform is idle, the movement
// lock is free, a rider is aboard and the first step is clear.
func (p *Platform) TryMoveAndReverse() bool {
	m := p.mover
	if m.IsMoving() {
		return false
	}
	if m.coord.HeldByOther(m) {
		p.log.Debug("platform waits for movement lock", "platform", m.Name())
		return false
	}
	if !m.HasRiders() {
		p.log.Debug("platform has no rider", "platform", m.Name())
		return false
	}
	if !m.TryMoveInDirection(p.direction.Vector(), p.distance) {
		return false
	}
	p.pending = true
	return true
}
