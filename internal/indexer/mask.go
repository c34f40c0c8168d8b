package indexer

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a sparse boolean vector over the index space.
// Cardinality is tracked incrementally and is O(1).
type Mask struct {
	rb    *roaring.Bitmap
	size  int
	count int
}

// NewMask creates an empty mask with size allocated slots.
func NewMask(size int) *Mask {
	return &Mask{rb: roaring.New(), size: size}
}

// Size returns the number of allocated slots.
func (m *Mask) Size() int { return m.size }

// Cardinality returns the number of set bits.
func (m *Mask) Cardinality() int { return m.count }

// Resize grows the allocated size. It never shrinks.
func (m *Mask) Resize(size int) {
	if size > m.size {
		m.size = size
	}
}

// shrink lowers the allocated size. Slots at or beyond size must be clear.
func (m *Mask) shrink(size int) {
	if size < m.size {
		m.size = size
	}
}

// Set marks slot i as live. It reports false if i is outside the allocated
// size or was already set.
func (m *Mask) Set(i Index) bool {
	if int(i) >= m.size || !m.rb.CheckedAdd(i) {
		return false
	}
	m.count++
	return true
}

// Clear marks slot i as free and reports whether it was set.
func (m *Mask) Clear(i Index) bool {
	if !m.rb.CheckedRemove(i) {
		return false
	}
	m.count--
	return true
}

// Contains reports whether slot i is live.
func (m *Mask) Contains(i Index) bool {
	return m.rb.Contains(i)
}

// All iterates over the live slots in ascending order.
func (m *Mask) All() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{rb: m.rb.Clone(), size: m.size, count: m.count}
}
