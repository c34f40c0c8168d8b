package sparse

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index addresses an element of a Vector or a row/column of a Matrix.
type Index = uint32

// Vector is a growable sparse vector. Values live in a dense backing slice
// (one slot per index) and a roaring bitmap marks the populated slots.
type Vector[T Scalar] struct {
	values  []T
	present *roaring.Bitmap
	nvals   int

	opts    options
	charged int64
}

// NewVector creates a vector with the given size.
func NewVector[T Scalar](size int, opts ...Option) (*Vector[T], error) {
	if err := checkDimension(size); err != nil {
		return nil, err
	}
	v := &Vector[T]{
		present: roaring.New(),
		opts:    applyOptions(opts),
	}
	if err := v.Resize(size); err != nil {
		return nil, err
	}
	return v, nil
}

// Size returns the number of addressable slots.
func (v *Vector[T]) Size() int { return len(v.values) }

// Cardinality returns the number of populated elements.
func (v *Vector[T]) Cardinality() int { return v.nvals }

// Resize grows the vector to newSize slots. Populated elements keep their
// values. A newSize at or below the current size is a no-op.
func (v *Vector[T]) Resize(newSize int) error {
	if err := checkDimension(newSize); err != nil {
		return err
	}
	if newSize <= len(v.values) {
		return nil
	}
	bytes, err := v.opts.charge(len(v.values), newSize, sizeOf[T]())
	if err != nil {
		return err
	}
	v.charged += bytes

	if newSize <= cap(v.values) {
		v.values = v.values[:newSize]
		return nil
	}
	grown := make([]T, newSize)
	copy(grown, v.values)
	v.values = grown
	return nil
}

// Set stores value at index i.
func (v *Vector[T]) Set(i Index, value T) error {
	if int(i) >= len(v.values) {
		return ErrIndexOutOfBounds
	}
	v.values[i] = value
	if v.present.CheckedAdd(i) {
		v.nvals++
	}
	return nil
}

// Get returns the value at index i and whether it is populated.
func (v *Vector[T]) Get(i Index) (T, bool) {
	if int(i) >= len(v.values) || !v.present.Contains(i) {
		var zero T
		return zero, false
	}
	return v.values[i], true
}

// Remove clears index i. The backing slot keeps its stale value.
func (v *Vector[T]) Remove(i Index) bool {
	if v.present.CheckedRemove(i) {
		v.nvals--
		return true
	}
	return false
}

// All iterates over the populated elements in ascending index order.
func (v *Vector[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		it := v.present.Iterator()
		for it.HasNext() {
			i := it.Next()
			if !yield(i, v.values[i]) {
				return
			}
		}
	}
}

// Free drops the storage and releases the acquired memory.
// The vector must not be used afterwards.
func (v *Vector[T]) Free() {
	v.opts.release(v.charged)
	v.charged = 0
	v.values = nil
	v.present.Clear()
	v.nvals = 0
}
