package herofx

import (
	"fmt"
	"math"
	"time"
)

// CounterState is the lifecycle state of a Counter.
type CounterState uint8

const (
	CounterIdle    CounterState = iota // not started
	CounterRunning                     // rolling toward the target
	CounterDone                        // reached the target or stopped
)

func (s CounterState) String() string {
	switch s {
	case CounterIdle:
		return "idle"
	case CounterRunning:
		return "running"
	case CounterDone:
		return "done"
	default:
		return fmt.Sprintf("CounterState(%d)", uint8(s))
	}
}

// Counter rolls a displayed integer from 0 up to a target in fixed
// increments. It has no timer of its own; the owner calls Update.
type Counter struct {
	// Interval is the time between increments.
	Interval time.Duration
	// Steps is the number of increments the roll takes.
	Steps int

	state   CounterState
	value   int
	target  int
	step    int
	elapsed time.Duration
}

// NewCounter creates an idle counter.
func NewCounter(interval time.Duration, steps int) *Counter {
	if steps <= 0 {
		steps = 1
	}
	return &Counter{Interval: interval, Steps: steps}
}

// Start begins rolling from zero toward target. Restarting a running
// counter resets it.
func (c *Counter) Start(target int) {
	c.value = 0
	c.target = max(target, 0)
	c.elapsed = 0
	c.step = int(math.Ceil(float64(c.target) / float64(c.Steps)))
	if c.step < 1 {
		c.step = 1
	}
	if c.target == 0 {
		c.state = CounterDone
		return
	}
	c.state = CounterRunning
}

// Stop halts the counter and keeps its current value.
func (c *Counter) Stop() {
	if c.state == CounterRunning {
		c.state = CounterDone
	}
}

// Update advances the counter by dt, applying one increment per elapsed
// Interval. The value never exceeds the target.
func (c *Counter) Update(dt time.Duration) {
	if c.state != CounterRunning {
		return
	}
	if c.Interval <= 0 {
		c.finish()
		return
	}
	c.elapsed += dt
	for c.elapsed >= c.Interval {
		c.elapsed -= c.Interval
		c.value += c.step
		if c.value >= c.target {
			c.finish()
			return
		}
	}
}

func (c *Counter) finish() {
	c.value = c.target
	c.state = CounterDone
}

// Value returns the currently displayed number.
func (c *Counter) Value() int { return c.value }

// Target returns the number the counter rolls toward.
func (c *Counter) Target() int { return c.target }

// State returns the lifecycle state.
func (c *Counter) State() CounterState { return c.state }
