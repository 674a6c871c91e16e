// Package idalloc hands out identifiers for new sections and items.
package idalloc

import (
	"sync/atomic"
	"time"
)

// Allocator produces identifiers that are unique for its lifetime.
type Allocator interface {
	Next() int64
}

// Clock allocates time-based identifiers (Unix milliseconds). Allocations
// within the same millisecond, or after the wall clock steps backwards,
// take last+1 instead, so ids are strictly increasing and never repeat.
type Clock struct {
	last atomic.Int64
	now  func() time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithFloor makes every allocated id strictly greater than floor.
func WithFloor(floor int64) Option {
	return func(c *Clock) {
		c.last.Store(floor)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock creates a Clock allocator.
func NewClock(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next returns the next identifier. Safe for concurrent use.
func (c *Clock) Next() int64 {
	candidate := c.now().UnixMilli()
	for {
		last := c.last.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if c.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Last returns the most recently allocated id (or the floor).
func (c *Clock) Last() int64 {
	return c.last.Load()
}
