package memdb

import (
	"time"
)

const (
	// DefaultCapacity the default number of messages a queue can hold.
	DefaultCapacity = 1024
)

type config struct {
	maxBytes uint
	now      func() time.Time
}

type Option func(*config)

// WithMaxBytes limits the size of the queue storage allocated up front.
func WithMaxBytes(maxBytes uint) Option {
	return func(c *config) {
		c.maxBytes = maxBytes
	}
}

// WithClock overrides the clock used to stamp enqueued messages.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
