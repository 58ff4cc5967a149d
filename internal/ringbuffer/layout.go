package ringbuffer

import (
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

// Layout describes the memory block requested for the buffer storage.
type Layout struct {
	// Stride is the per-slot size: the next power of two >= the element size.
	Stride uintptr
	// Align is the element alignment rounded up to a power of two.
	Align uintptr
	// Size is capacity * Stride.
	Size uintptr
}

func layoutFor[T any](capacity uint) (Layout, error) {
	var zero T
	stride, ok := nextPowerOfTwo(unsafe.Sizeof(zero))
	if !ok {
		return Layout{}, fmt.Errorf("%w: element size %d has no power of two stride", ErrInitializationLayout, unsafe.Sizeof(zero))
	}
	align, _ := nextPowerOfTwo(unsafe.Alignof(zero))

	if capacity == 0 {
		return Layout{}, fmt.Errorf("%w: capacity must be positive", ErrInitializationLayout)
	}
	hi, size := bits.Mul64(uint64(capacity), uint64(stride))
	if hi != 0 || size > math.MaxInt {
		return Layout{}, fmt.Errorf("%w: %d slots of %d bytes overflows", ErrInitializationLayout, capacity, stride)
	}

	return Layout{
		Stride: stride,
		Align:  align,
		Size:   uintptr(size),
	}, nil
}

// nextPowerOfTwo returns the smallest power of two >= n.
// It reports false for zero and when the result does not fit in a uintptr.
func nextPowerOfTwo(n uintptr) (uintptr, bool) {
	if n == 0 {
		return 0, false
	}
	shift := bits.Len64(uint64(n - 1))
	if shift >= bits.UintSize {
		return 0, false
	}
	return uintptr(1) << shift, true
}
