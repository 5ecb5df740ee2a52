package runner

import (
	"time"

	"github.com/aretw0/puffin/pkg/domain"
)

// SystemClock measures tick timing with the monotonic wall clock.
type SystemClock struct {
	start time.Time
	last  time.Time
	index uint64
	now   func() time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{now: time.Now}
}

// Next returns the next tick. The first tick has zero elapsed time.
func (c *SystemClock) Next() domain.Tick {
	now := c.now()
	if c.start.IsZero() {
		c.start = now
		c.last = now
	}
	c.index++
	t := domain.Tick{
		Index:   c.index,
		Elapsed: now.Sub(c.last),
		Total:   now.Sub(c.start),
	}
	c.last = now
	return t
}

// FixedClock advances by a constant step on every tick, independent of wall time.
// Simulations and tests use it for reproducible runs.
type FixedClock struct {
	step  time.Duration
	index uint64
	total time.Duration
}

func NewFixedClock(step time.Duration) *FixedClock {
	if step <= 0 {
		step = DefaultTickRate
	}
	return &FixedClock{step: step}
}

func (c *FixedClock) Next() domain.Tick {
	c.index++
	c.total += c.step
	return domain.Tick{Index: c.index, Elapsed: c.step, Total: c.total}
}
