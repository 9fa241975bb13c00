package tracing

import "time"

// WallClock tells the seconds elapsed since it was created. Tracers that use
// it measure how long the work takes rather than how much model time it
// covers.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a clock starting now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// CurrentTime returns the seconds since the clock started.
func (c *WallClock) CurrentTime() float64 {
	return time.Since(c.start).Seconds()
}
