package ringbuffer

import (
	"fmt"
	"iter"
	"math"
	"runtime"
	"slices"
)

type config struct {
	maxBytes uintptr
}

type Option func(*config)

// WithMaxBytes caps the size of the storage block New is allowed to allocate.
// Requests above the limit fail with ErrInitializationAllocation.
func WithMaxBytes(maxBytes uint) Option {
	return func(c *config) {
		if maxBytes > 0 {
			c.maxBytes = uintptr(maxBytes)
		}
	}
}

// RingBuffer is a fixed capacity FIFO buffer backed by a single block allocated in New.
// It is not safe for concurrent use; a single owner drives both Push and Next.
type RingBuffer[T any] struct {
	storage  []T
	layout   Layout
	head     int
	tail     int
	empty    bool
	released bool
}

// New allocates a RingBuffer that holds up to capacity items.
func New[T any](capacity uint, opts ...Option) (*RingBuffer[T], error) {
	cfg := &config{maxBytes: math.MaxInt}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	layout, err := layoutFor[T](capacity)
	if err != nil {
		return nil, err
	}
	if layout.Size > cfg.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes requested, limit is %d", ErrInitializationAllocation, layout.Size, cfg.maxBytes)
	}

	storage, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}

	return &RingBuffer[T]{
		storage: storage,
		layout:  layout,
		empty:   true,
	}, nil
}

// allocate returns a zeroed slice of n items, turning a makeslice panic into ErrInitializationAllocation.
func allocate[T any](n uint) (storage []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			storage, err = nil, fmt.Errorf("%w: %v", ErrInitializationAllocation, r)
		}
	}()

	return make([]T, n), nil
}

// Layout returns the storage layout computed when the buffer was created.
func (r *RingBuffer[T]) Layout() Layout {
	return r.layout
}

// Cap returns the fixed number of slots. It is zero once the storage is released.
func (r *RingBuffer[T]) Cap() int {
	return len(r.storage)
}

// Len returns the number of elements currently in the buffer.
func (r *RingBuffer[T]) Len() int {
	switch {
	case r.empty || r.released:
		return 0
	case r.tail > r.head:
		return r.tail - r.head
	default:
		// head == tail on a non-empty buffer means it is full
		return len(r.storage) - r.head + r.tail
	}
}

// IsEmpty returns true if there is nothing to consume.
func (r *RingBuffer[T]) IsEmpty() bool {
	return r.empty
}

// IsFull returns true if a Push would overflow.
func (r *RingBuffer[T]) IsFull() bool {
	return !r.empty && r.head == r.tail
}

// Push writes value at the back of the buffer.
// It returns an *OverflowError holding value, without touching the buffer, if the buffer is full.
func (r *RingBuffer[T]) Push(value T) error {
	if r.released {
		return ErrReleased
	}
	if r.IsFull() {
		return &OverflowError[T]{Value: value}
	}

	r.storage[r.tail] = value
	r.tail = r.advance(r.tail)
	r.empty = false
	return nil
}

// Next removes and returns the oldest value. If empty, it returns (zero[T], false).
func (r *RingBuffer[T]) Next() (T, bool) {
	var zero T
	if r.empty {
		return zero, false
	}

	value := r.storage[r.head]
	r.storage[r.head] = zero
	r.head = r.advance(r.head)
	if r.head == r.tail {
		r.empty = true
	}
	return value, true
}

// Peek returns the oldest value without removing it.
func (r *RingBuffer[T]) Peek() (T, bool) {
	if r.empty {
		var zero T
		return zero, false
	}
	return r.storage[r.head], true
}

// Back returns the newest value without removing it.
func (r *RingBuffer[T]) Back() (T, bool) {
	if r.empty {
		var zero T
		return zero, false
	}
	return r.storage[r.retreat(r.tail)], true
}

// DropBack discards the newest value (if any) without returning it.
func (r *RingBuffer[T]) DropBack() {
	if r.empty {
		return
	}

	var zero T
	r.tail = r.retreat(r.tail)
	r.storage[r.tail] = zero
	if r.head == r.tail {
		r.empty = true
	}
}

// All iterates the buffered values from oldest to newest without consuming them.
// The buffer must not be mutated while iterating.
func (r *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		idx := r.head
		for range r.Len() {
			if !yield(r.storage[idx]) {
				return
			}
			idx = r.advance(idx)
		}
	}
}

// Reset discards every buffered value while keeping the storage.
func (r *RingBuffer[T]) Reset() {
	clear(r.storage)
	r.head, r.tail = 0, 0
	r.empty = true
}

// Clone returns a buffer with its own storage holding a copy of the live values, in the same order.
func (r *RingBuffer[T]) Clone() (*RingBuffer[T], error) {
	if r.released {
		return nil, ErrReleased
	}

	storage, err := allocate[T](uint(len(r.storage)))
	if err != nil {
		return nil, err
	}
	clone := &RingBuffer[T]{
		storage: storage,
		layout:  r.layout,
		empty:   true,
	}
	for v := range r.All() {
		// cannot overflow: same capacity, at most Len() values
		_ = clone.Push(v)
	}

	return clone, nil
}

// Release drops the storage. It must be called once; later calls return ErrReleased.
// A released buffer is permanently empty and rejects pushes.
func (r *RingBuffer[T]) Release() error {
	if r.released {
		return ErrReleased
	}

	clear(r.storage)
	r.storage = nil
	r.head, r.tail = 0, 0
	r.empty = true
	r.released = true
	return nil
}

// advance returns the slot after idx, wrapping to 0 past the last slot.
func (r *RingBuffer[T]) advance(idx int) int {
	if idx+1 > len(r.storage)-1 {
		return 0
	}
	return idx + 1
}

func (r *RingBuffer[T]) retreat(idx int) int {
	if idx == 0 {
		return len(r.storage) - 1
	}
	return idx - 1
}
