package clock

import "time"

// Clock provides the current time. Every timestamp in the core (task
// creation, completion, trend bucketing) flows through this so tests can
// control time.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system clock
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
