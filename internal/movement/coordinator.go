package movement

import (
	"io"

	"github.com/charmbracelet/log"
)

// Holder is anything that may own the movement lock.
type Holder interface {
	Name() string
}

// Coordinator is the single movement token shared by everything in a world
// that mutates position. At most one holder advances at a time.
type Coordinator struct {
	holder Holder
	log    *log.Logger
}

// NewCoordinator creates a free coordinator.
func NewCoordinator(logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{log: logger}
}

// TryAcquire takes the lock for h. It succeeds when the lock is free or
// already held by h.
func (c *Coordinator) TryAcquire(h Holder) bool {
	if c.holder != nil && c.holder != h {
		return false
	}
	if c.holder == nil {
		c.log.Debug("movement lock acquired", "holder", h.Name())
	}
	c.holder = h
	return true
}

// Release frees the lock if h holds it.
func (c *Coordinator) Release(h Holder) bool {
	if c.holder == nil || c.holder != h {
		return false
	}
	c.log.Debug("movement lock released", "holder", h.Name())
	c.holder = nil
	return true
}

// HeldByOther reports whether someone other than h holds the lock.
func (c *Coordinator) HeldByOther(h Holder) bool {
	return c.holder != nil && c.holder != h
}

// Holder returns the current holder, or nil.
func (c *Coordinator) Holder() Holder {
	return c.holder
}

// Free reports whether nobody holds the lock.
func (c *Coordinator) Free() bool {
	return c.holder == nil
}
