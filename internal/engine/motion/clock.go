package motion

import "time"

// Delta conditioning bounds, in seconds. Huge pauses (window drag,
// debugger) and timer jitter are both clamped away before motion math
// sees the delta.
const (
	minDelta = 0.001
	maxDelta = 0.033

	// Exponential blend between the previous and the raw delta.
	deltaSmoothing = 0.7
)

// Animation speed multiplier bounds.
const (
	MinSpeed = 0.1
	MaxSpeed = 5.0
)

// Clock is the monotonic frame clock. It conditions raw frame deltas
// and accumulates the animation time that feeds every motion function.
// Animation time scales with the speed multiplier and freezes while
// paused; the per-frame delta does neither, so camera movement stays
// live during a pause.
type Clock struct {
	last    time.Time
	started bool

	delta   float32
	elapsed float64

	speed  float32
	paused bool
}

// NewClock returns a clock with speed 1.0, not yet ticked.
func NewClock() *Clock {
	return &Clock{speed: 1.0}
}

// Tick advances the clock to now and returns the conditioned frame
// delta in seconds. The first tick returns a nominal 60 Hz delta.
func (c *Clock) Tick(now time.Time) float32 {
	if !c.started {
		c.started = true
		c.last = now
		c.delta = 1.0 / 60.0
	} else {
		raw := float32(now.Sub(c.last).Seconds())
		c.last = now

		if raw > maxDelta {
			raw = maxDelta
		} else if raw < minDelta {
			raw = minDelta
		}
		c.delta = c.delta*deltaSmoothing + raw*(1-deltaSmoothing)
	}

	if !c.paused {
		c.elapsed += float64(c.delta * c.speed)
	}
	return c.delta
}

// Delta returns the last conditioned frame delta.
func (c *Clock) Delta() float32 {
	return c.delta
}

// Elapsed returns the accumulated animation time in seconds.
func (c *Clock) Elapsed() float32 {
	return float32(c.elapsed)
}

// Speed returns the current animation speed multiplier.
func (c *Clock) Speed() float32 {
	return c.speed
}

// AdjustSpeed moves the animation speed multiplier by delta, clamped to
// [MinSpeed, MaxSpeed]. Returns the new value.
func (c *Clock) AdjustSpeed(delta float32) float32 {
	c.speed += delta
	if c.speed < MinSpeed {
		c.speed = MinSpeed
	}
	if c.speed > MaxSpeed {
		c.speed = MaxSpeed
	}
	return c.speed
}

// SetPaused freezes or resumes animation time accumulation.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// Paused reports whether animation time is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Reset restores the clock to its initial state.
func (c *Clock) Reset() {
	*c = Clock{speed: 1.0}
}
