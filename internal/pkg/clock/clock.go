package clock

import (
	"sync"
	"time"
)

// Clock is the source of "now" for anything that derives state from time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ManagedClock is a hand driven clock for tests.
type ManagedClock struct {
	mu        sync.RWMutex
	startTime time.Time
	offset    time.Duration
}

func NewManaged(startTime time.Time) *ManagedClock {
	return &ManagedClock{startTime: startTime}
}

func (c *ManagedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startTime.Add(c.offset)
}

// WarpForward moves the clock forward and returns the new time.
func (c *ManagedClock) WarpForward(offset time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if offset > 0 {
		c.offset += offset
	}
	return c.startTime.Add(c.offset)
}

// Today formats the calendar date of now in its own location as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(time.DateOnly)
}
