package movement

import (
	"github.com/vovakirdan/tui-glorp/internal/grid"
)

// Tween drives one cell-to-cell transition. Progress advances linearly with
// elapsed time over the step duration.
type Tween struct {
	From, To grid.Cell

	start    grid.Vec
	end      grid.Vec
	arc      float64
	duration float64
	t        float64
}

// NewTween creates a transition between the centers of two adjacent cells.
// The arc only applies to diagonal steps.
func NewTween(l grid.Layout, from, to grid.Cell, arcHeight, duration float64) *Tween {
	tw := &Tween{
		From:     from,
		To:       to,
		start:    l.CellCenter(from),
		end:      l.CellCenter(to),
		duration: duration,
	}
	if arcHeight > 0 && to.Sub(from).IsDiagonal() {
		tw.arc = arcHeight
	}
	return tw
}

// Instant reports whether the step snaps without interpolation.
func (tw *Tween) Instant() bool {
	return tw.duration <= 0
}

// End returns the exact destination position.
func (tw *Tween) End() grid.Vec {
	return tw.end
}

// Progress returns t in [0, 1].
func (tw *Tween) Progress() float64 {
	return tw.t
}

// Advance moves the tween forward by dt seconds and returns the new position
// and whether the step is complete. A completed step returns the exact end.
func (tw *Tween) Advance(dt float64) (grid.Vec, bool) {
	if tw.Instant() {
		tw.t = 1
		return tw.end, true
	}
	tw.t += dt / tw.duration
	if tw.t >= 1 {
		tw.t = 1
		return tw.end, true
	}
	if tw.t < 0 {
		tw.t = 0
	}
	return tw.At(tw.t), false
}

// At returns the interpolated position at progress t.
func (tw *Tween) At(t float64) grid.Vec {
	p := grid.Lerp(tw.start, tw.end, t)
	p.Y += ArcOffset(tw.arc, t)
	return p
}

// ArcOffset is the vertical bow of an arced step: a parabola peaking at t=0.5.
func ArcOffset(height, t float64) float64 {
	if height <= 0 {
		return 0
	}
	return 3 * height * t * (1 - t)
}
