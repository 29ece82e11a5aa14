package testutil

import (
	"sync"
	"time"
)

// WallClock is a thread-safe fake wall clock for tests.
//
// The session engine computes elapsed time from wall-clock timestamps;
// tests inject WallClock.Now via session.WithNow so pause/resume
// bookkeeping can be asserted exactly instead of sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type WallClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewWallClock creates a clock frozen at the given instant.
func NewWallClock(start time.Time) *WallClock {
	return &WallClock{now: start}
}

// Now returns the current fake instant.
// Pass the method value to session.WithNow:
//
//	eng := session.New(kv, session.WithNow(clock.Now))
func (c *WallClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Time never moves backwards; tests
// that need an earlier instant create a new clock.
func (c *WallClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
