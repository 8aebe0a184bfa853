package mocks

import (
	"time"

	"github.com/taskglow/taskglow/internal/dependencies/clock"
)

// MockClock is a Clock whose time only moves when the test moves it
type MockClock struct {
	CurrentTime time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock returns a MockClock frozen at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the frozen time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set jumps the clock to t
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
