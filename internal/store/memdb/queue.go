package memdb

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hedisam/ringqueue/internal/ringbuffer"
	"github.com/hedisam/ringqueue/internal/store"
)

// Queue is a bounded FIFO of messages shared between the http handlers and the forwarder.
// The underlying ring buffer is single owner, so every access goes through mu.
type Queue struct {
	rb       *ringbuffer.RingBuffer[store.Message]
	now      func() time.Time
	mu       sync.Mutex
	nextSeq  uint64
	dequeued uint64
	rejected uint64
}

func NewQueue(capacity uint, opts ...Option) (*Queue, error) {
	cfg := &config{now: time.Now}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	rb, err := ringbuffer.New[store.Message](capacity, ringbuffer.WithMaxBytes(cfg.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("create ring buffer: %w", err)
	}

	queueCapacity.Set(float64(rb.Cap()))
	return &Queue{
		rb:      rb,
		now:     cfg.now,
		nextSeq: 1,
	}, nil
}

// Enqueue appends a message with the given body.
// If the queue is full a *store.RejectedError wrapping store.ErrQueueFull is returned and no sequence number is used.
func (q *Queue) Enqueue(_ context.Context, body string) (store.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg := store.Message{
		Seq:        q.nextSeq,
		Body:       body,
		EnqueuedAt: q.now(),
	}
	err := q.rb.Push(msg)
	if err != nil {
		rejected, ok := ringbuffer.Rejected[store.Message](err)
		if !ok {
			return store.Message{}, fmt.Errorf("push message: %w", err)
		}
		q.rejected++
		rejectedMessages.Inc()
		return store.Message{}, &store.RejectedError{Message: rejected, Err: store.ErrQueueFull}
	}

	q.nextSeq++
	enqueuedMessages.Inc()
	queueLength.Set(float64(q.rb.Len()))
	return msg, nil
}

// Dequeue removes and returns the oldest message, or store.ErrNotFound if there is none.
func (q *Queue) Dequeue(_ context.Context) (store.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, ok := q.rb.Next()
	if !ok {
		return store.Message{}, store.ErrNotFound
	}

	q.dequeued++
	queueLength.Set(float64(q.rb.Len()))
	return msg, nil
}

// Peek returns the oldest message without removing it.
func (q *Queue) Peek(_ context.Context) (store.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, ok := q.rb.Peek()
	if !ok {
		return store.Message{}, store.ErrNotFound
	}
	return msg, nil
}

func (q *Queue) Stats(_ context.Context) (store.Stats, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return store.Stats{
		Len:      q.rb.Len(),
		Cap:      q.rb.Cap(),
		Full:     q.rb.IsFull(),
		Enqueued: q.nextSeq - 1,
		Dequeued: q.dequeued,
		Rejected: q.rejected,
	}, nil
}

// Close releases the queue storage. The queue rejects every message afterwards.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	queueLength.Set(0)
	return q.rb.Release()
}
