package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/pipeline/chans"
	"github.com/hedisam/ringqueue/internal/ringbuffer"
)

// Policy decides what Buffer does with a value received while its ring is full.
type Policy int

const (
	// PolicyBlock stops receiving until the consumer frees a slot.
	PolicyBlock Policy = iota
	// PolicyDropNewest discards the value that did not fit.
	PolicyDropNewest
	// PolicyDropOldest discards the oldest buffered value to make room.
	PolicyDropOldest
)

func (p Policy) String() string {
	switch p {
	case PolicyBlock:
		return "block"
	case PolicyDropNewest:
		return "drop-newest"
	case PolicyDropOldest:
		return "drop-oldest"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return PolicyBlock, nil
	case "drop-newest":
		return PolicyDropNewest, nil
	case "drop-oldest":
		return PolicyDropOldest, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// Buffer decouples a producer from a slower consumer by holding up to capacity values in a ring buffer.
// Values are emitted in the order they were received. Once in is closed the buffered values are flushed
// and the returned channel is closed. The ring is owned by a single goroutine, so no locking is needed.
func Buffer[T any](ctx context.Context, logger *logrus.Logger, in <-chan T, capacity uint, policy Policy) (<-chan T, error) {
	rb, err := ringbuffer.New[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("create relay ring buffer: %w", err)
	}

	out := make(chan T)
	log := logger.WithField("policy", policy.String())

	go func() {
		defer close(out)
		defer func() {
			_ = rb.Release()
			bufferedValues.Set(0)
		}()

		for in != nil {
			recv := in
			if policy == PolicyBlock && rb.IsFull() {
				// backpressure: leave the value with the producer until we have room
				recv = nil
			}
			var send chan<- T
			front, ok := rb.Peek()
			if ok {
				send = out
			}

			select {
			case <-ctx.Done():
				return
			case v, ok := <-recv:
				if !ok {
					in = nil
					continue
				}
				accept(log, rb, policy, v)
			case send <- front:
				_, _ = rb.Next()
				bufferedValues.Dec()
			}
		}

		log.WithField("remaining", rb.Len()).Debug("Input closed, flushing buffered values")
		for {
			v, ok := rb.Next()
			if !ok {
				return
			}
			bufferedValues.Dec()
			if !chans.SendOrDone(ctx, out, v) {
				return
			}
		}
	}()

	return out, nil
}

func accept[T any](logger *logrus.Entry, rb *ringbuffer.RingBuffer[T], policy Policy, v T) {
	err := rb.Push(v)
	if err == nil {
		bufferedValues.Inc()
		return
	}

	switch policy {
	case PolicyDropOldest:
		oldest, _ := rb.Next()
		// a slot was just freed
		_ = rb.Push(v)
		logger.WithField("dropped", oldest).Debug("Relay buffer full, dropped oldest value")
	default:
		rejected, _ := ringbuffer.Rejected[T](err)
		logger.WithField("dropped", rejected).Debug("Relay buffer full, dropped incoming value")
	}
	droppedValues.WithLabelValues(policy.String()).Inc()
}
