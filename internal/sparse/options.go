package sparse

import (
	"errors"
	"unsafe"

	"github.com/hupe1980/sparsegraph/internal/conv"
)

var (
	// ErrIndexOutOfBounds is returned when an element lies outside the
	// container's current size.
	ErrIndexOutOfBounds = errors.New("sparse: index out of bounds")

	// ErrInvalidDimension is returned for negative or oversized dimensions.
	ErrInvalidDimension = errors.New("sparse: invalid dimension")
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

type options struct {
	acquirer MemoryAcquirer
}

// Option configures a Vector or Matrix.
type Option func(*options)

// WithMemoryAcquirer charges dimension-proportional memory to acquirer.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// charge acquires the memory needed to grow from oldSize to newSize slots of
// elemSize bytes and returns the amount acquired.
func (o *options) charge(oldSize, newSize int, elemSize uintptr) (int64, error) {
	if o.acquirer == nil || newSize <= oldSize {
		return 0, nil
	}
	bytes, err := conv.CapacityBytes(newSize-oldSize, elemSize)
	if err != nil {
		return 0, errors.Join(ErrInvalidDimension, err)
	}
	if err := o.acquirer.AcquireMemory(bytes); err != nil {
		return 0, err
	}
	return bytes, nil
}

func (o *options) release(bytes int64) {
	if o.acquirer != nil && bytes > 0 {
		o.acquirer.ReleaseMemory(bytes)
	}
}

func checkDimension(n int) error {
	if n < 0 || n > conv.MaxIndexCapacity {
		return ErrInvalidDimension
	}
	return nil
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
