package store

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when dequeuing or peeking an empty queue.
	ErrNotFound = errors.New("not found")
	// ErrQueueFull is returned when enqueuing into a full queue.
	ErrQueueFull = errors.New("queue is full")
)

type Message struct {
	Seq        uint64    `json:"seq"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// RejectedError is returned when a message could not be enqueued. It hands the message back to the caller.
type RejectedError struct {
	Message Message
	Err     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("message rejected: %v", e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

type Stats struct {
	Len      int    `json:"len"`
	Cap      int    `json:"cap"`
	Full     bool   `json:"full"`
	Enqueued uint64 `json:"enqueued"`
	Dequeued uint64 `json:"dequeued"`
	Rejected uint64 `json:"rejected"`
}
