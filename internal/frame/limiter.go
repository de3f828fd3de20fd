package frame

import (
	"time"

	"starship/internal/config"
)

// Limiter paces the frame loop to the configured FPS cap
type Limiter struct {
	next time.Time
}

// NewLimiter creates a new FPS limiter
func NewLimiter() *Limiter {
	return &Limiter{}
}

// Wait blocks until the next frame is due. It sleeps for most of the interval
// and spins for the last 200µs, which holds high caps more precisely.
func (f *Limiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch instead of rushing frames to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
