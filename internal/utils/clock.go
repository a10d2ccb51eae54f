package utils

import (
	"sync"
	"time"
)

// Clock abstracts the current time so that timestamping code can be tested
// with a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns the current UTC time truncated to milliseconds, the precision
// the remote API keeps in its ISO-8601 timestamps.
func (systemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewClock returns the wall clock.
func NewClock() Clock {
	return systemClock{}
}

// MockClock is a settable Clock for tests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock returns a MockClock frozen at now.
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

// Now returns the frozen time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// SetNow moves the clock to t.
func (c *MockClock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
