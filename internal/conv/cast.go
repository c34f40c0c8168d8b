package conv

import (
	"fmt"
	"math"
)

// MaxIndexCapacity is the largest capacity of an index space. It is bounded
// by int32 so that capacities stay representable as int on every platform.
const MaxIndexCapacity = math.MaxInt32

// ToIndex converts a slot position into a 32-bit index. Positions at or
// beyond MaxIndexCapacity have no index.
func ToIndex(pos int) (uint32, error) {
	if pos < 0 || pos >= MaxIndexCapacity {
		return 0, fmt.Errorf("integer overflow: position %d outside index space [0, %d)", pos, MaxIndexCapacity)
	}
	return uint32(pos), nil
}

// CapacityBytes returns n*elemSize as int64, failing instead of wrapping.
func CapacityBytes(n int, elemSize uintptr) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("integer overflow: negative element count %d", n)
	}
	if n == 0 || elemSize == 0 {
		return 0, nil
	}
	if uint64(n) > uint64(math.MaxInt64)/uint64(elemSize) {
		return 0, fmt.Errorf("integer overflow: %d elements of %d bytes exceed int64", n, elemSize)
	}
	return int64(n) * int64(elemSize), nil
}

// GrowCapacity returns the capacity to grow to so that at least need slots
// fit. Capacity doubles, starting from 1, and is clamped to MaxIndexCapacity.
func GrowCapacity(current, need int) (int, error) {
	if need > MaxIndexCapacity {
		return 0, fmt.Errorf("integer overflow: capacity %d exceeds index space (%d)", need, MaxIndexCapacity)
	}
	next := max(current, 1)
	for next < need {
		if next > MaxIndexCapacity/2 {
			return MaxIndexCapacity, nil
		}
		next *= 2
	}
	return next, nil
}
