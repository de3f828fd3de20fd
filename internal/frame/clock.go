// Package frame measures and paces the render loop.
package frame

import "time"

// Clock measures frame deltas and counts frames per second
type Clock struct {
	now func() time.Time

	last        time.Time
	windowStart time.Time
	frames      int
	fps         int
}

// NewClock starts a clock at the current time
func NewClock() *Clock {
	return newClockWith(time.Now)
}

func newClockWith(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, last: t, windowStart: t}
}

// Tick marks the start of a frame. It returns the seconds since the previous tick
// and, once per second, true with the frame count of the window that just closed.
func (c *Clock) Tick() (dt float64, rolled bool) {
	t := c.now()
	dt = t.Sub(c.last).Seconds()
	c.last = t
	c.frames++

	if t.Sub(c.windowStart) >= time.Second {
		c.fps = c.frames
		c.frames = 0
		c.windowStart = t
		rolled = true
	}
	return dt, rolled
}

// FPS returns the frame count of the last full second
func (c *Clock) FPS() int {
	return c.fps
}
