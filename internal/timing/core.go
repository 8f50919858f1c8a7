// Package timing tracks per-frame delta and elapsed time.
package timing

import (
	"time"

	"github.com/loov/hrtime"
)

// Core owns the frame clock. Update must run once at the top of every loop
// iteration, before any other per-frame work reads DeltaTime.
type Core struct {
	now     func() time.Duration
	started bool
	last    time.Duration

	delta   float64
	elapsed float64
	frames  uint64
}

// New returns a Core driven by the high resolution clock.
func New() *Core {
	return NewWithClock(hrtime.Now)
}

// NewWithClock returns a Core driven by now.
func NewWithClock(now func() time.Duration) *Core {
	return &Core{now: now}
}

// Update advances the clock by one frame. The first frame has zero delta.
func (c *Core) Update() {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
	}

	d := t - c.last
	if d < 0 {
		d = 0
	}
	c.last = t

	c.delta = d.Seconds()
	c.elapsed += c.delta
	c.frames++
}

// DeltaTime is the time in seconds between the two most recent updates.
func (c *Core) DeltaTime() float64 { return c.delta }

// ElapsedTime is the time in seconds since the first update.
func (c *Core) ElapsedTime() float64 { return c.elapsed }

// Frames is the number of updates so far.
func (c *Core) Frames() uint64 { return c.frames }
