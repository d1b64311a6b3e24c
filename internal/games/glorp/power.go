package glorp

import "math"

// Power is the per-level energy pool commands draw from.
type Power struct {
	left      int
	initial   int
	unlimited bool
}

// NewPower creates a pool holding initial units.
func NewPower(initial int, unlimited bool) Power {
	return Power{left: initial, initial: initial, unlimited: unlimited}
}

// HasEnoughPower reports whether cost can be paid.
func (p Power) HasEnoughPower(cost int) bool {
	return p.unlimited || cost <= p.left
}

// DecreasePower pays cost. The pool never drops below zero.
func (p *Power) DecreasePower(cost int) {
	if p.unlimited || cost <= 0 {
		return
	}
	p.left = max(p.left-cost, 0)
}

// Left returns the remaining power.
func (p Power) Left() int { return p.left }

// Initial returns the level's starting power.
func (p Power) Initial() int { return p.initial }

// Unlimited reports whether costs are ignored.
func (p Power) Unlimited() bool { return p.unlimited }

// LevelScore is the reward for finishing a level: a time bonus that shrinks
// with the seconds spent, the leftover power, and a bonus per glorp.
// Elapsed times under a second count as one second.
func LevelScore(baseTimePoints int, seconds float64, powerLeft, glorps, perGlorp int) int {
	seconds = math.Max(seconds, 1)
	return int(math.Round(float64(baseTimePoints)/seconds)) + powerLeft + glorps*perGlorp
}
