package ringbuffer

import (
	"errors"
	"fmt"
)

var (
	// ErrInitializationLayout is returned by New when the storage layout cannot be computed,
	// e.g. for zero sized elements, a zero capacity, or when the total size overflows.
	ErrInitializationLayout = errors.New("ringbuffer: invalid storage layout")
	// ErrInitializationAllocation is returned by New when the storage cannot be allocated.
	ErrInitializationAllocation = errors.New("ringbuffer: storage allocation failed")
	// ErrOverflow is matched by every *OverflowError.
	ErrOverflow = errors.New("ringbuffer: buffer is full")
	// ErrReleased is returned when using a buffer after its storage has been released.
	ErrReleased = errors.New("ringbuffer: storage already released")
)

// OverflowError is returned by Push when the buffer is full.
// Value holds the rejected item so the caller can retry, drop or reroute it.
type OverflowError[T any] struct {
	Value T
}

func (e *OverflowError[T]) Error() string {
	return fmt.Sprintf("ringbuffer: buffer is full, rejected value %v", e.Value)
}

func (e *OverflowError[T]) Is(target error) bool {
	return target == ErrOverflow
}

// Rejected extracts the value carried by an *OverflowError[T] in err's chain.
func Rejected[T any](err error) (T, bool) {
	var overflowErr *OverflowError[T]
	if errors.As(err, &overflowErr) {
		return overflowErr.Value, true
	}
	var zero T
	return zero, false
}
