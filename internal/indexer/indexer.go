package indexer

import (
	"iter"

	"github.com/hupe1980/sparsegraph/internal/conv"
	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/queue"
)

// Index is a dense identity inside one store.
type Index = uint32

// AssignedIndex is the result of a claim.
type AssignedIndex struct {
	index       Index
	newCapacity int
	oldCapacity int
	isNew       bool
	reused      bool // popped from the free list
}

// Existing describes an index that was already assigned.
func Existing(i Index) AssignedIndex { return AssignedIndex{index: i} }

// Index returns the assigned index.
func (a AssignedIndex) Index() Index { return a.index }

// NewCapacity returns the capacity the index space grew to, if it grew.
func (a AssignedIndex) NewCapacity() (int, bool) {
	return a.newCapacity, a.newCapacity > 0
}

// IsNew reports whether the index was claimed by this call, as opposed to
// an existing key keeping its index.
func (a AssignedIndex) IsNew() bool { return a.isNew }

// Indexer allocates indices, tracks their validity and maps keys to them.
// It is not safe for concurrent mutation.
type Indexer struct {
	mask   *Mask
	keys   map[string]Index
	keyOf  map[Index]string
	free   *queue.Queue[Index]
	length int // high-water mark: every index below it has been claimed once
}

// New creates an indexer with the given initial capacity.
func New(initialCapacity int) *Indexer {
	initialCapacity = min(max(initialCapacity, 0), conv.MaxIndexCapacity)
	return &Indexer{
		mask:  NewMask(initialCapacity),
		keys:  make(map[string]Index),
		keyOf: make(map[Index]string),
		free:  queue.New[Index](0),
	}
}

// Capacity returns the number of allocated index slots.
func (x *Indexer) Capacity() int { return x.mask.Size() }

// Len returns the number of valid indices.
func (x *Indexer) Len() int { return x.mask.Cardinality() }

// HighWaterMark returns the number of slots ever claimed.
func (x *Indexer) HighWaterMark() int { return x.length }

// FreeListLen returns the number of freed indices awaiting reuse.
func (x *Indexer) FreeListLen() int { return x.free.Len() }

// Resize grows the capacity. Requests at or below the current capacity are
// no-ops.
func (x *Indexer) Resize(newCapacity int) error {
	if newCapacity > conv.MaxIndexCapacity {
		return errs.User(errs.CodeIndexOutOfBounds, "capacity %d exceeds the index space (%d)", newCapacity, conv.MaxIndexCapacity)
	}
	x.mask.Resize(newCapacity)
	return nil
}

// ClaimIndex claims an index that is not bound to a key.
func (x *Indexer) ClaimIndex() (AssignedIndex, error) {
	return x.claim()
}

// ClaimIndexForKey claims an index for key.
func (x *Indexer) ClaimIndexForKey(key string) (AssignedIndex, error) {
	if i, ok := x.keys[key]; ok {
		return AssignedIndex{}, errs.User(errs.CodeKeyAlreadyExists, "key %q already exists at index %d", key, i)
	}
	a, err := x.claim()
	if err != nil {
		return AssignedIndex{}, err
	}
	x.keys[key] = a.index
	x.keyOf[a.index] = key
	return a, nil
}

// ReassignIndex returns the index of key if it exists, without consuming a
// free slot, and claims a new one otherwise.
func (x *Indexer) ReassignIndex(key string) (AssignedIndex, error) {
	if i, ok := x.keys[key]; ok {
		return Existing(i), nil
	}
	return x.ClaimIndexForKey(key)
}

func (x *Indexer) claim() (AssignedIndex, error) {
	if i, ok := x.free.Pop(); ok {
		x.mask.Set(i)
		return AssignedIndex{index: i, isNew: true, reused: true}, nil
	}

	i, err := conv.ToIndex(x.length)
	if err != nil {
		return AssignedIndex{}, errs.System(errs.CodeResourceExhausted, err, "index space exhausted at %d indices", x.length)
	}

	var grown int
	old := x.mask.Size()
	if x.length >= old {
		newCapacity, err := conv.GrowCapacity(old, x.length+1)
		if err != nil {
			return AssignedIndex{}, errs.System(errs.CodeResourceExhausted, err, "grow index space")
		}
		x.mask.Resize(newCapacity)
		grown = newCapacity
	}

	x.length++
	x.mask.Set(i)
	return AssignedIndex{index: i, newCapacity: grown, oldCapacity: old, isNew: true}, nil
}

// Unclaim reverts the most recent claim, as if it never happened. A reused
// index returns to the head of the free list; an appended index lowers the
// high-water mark again, and a claim that grew the index space shrinks it
// back. Unlike FreeIndex, nothing is left pending for dependent storage.
func (x *Indexer) Unclaim(a AssignedIndex) error {
	i := a.index
	if !a.isNew || !x.mask.Contains(i) {
		return errs.Logic("index %d is not a live claim", i)
	}
	if !a.reused && int(i) != x.length-1 {
		return errs.Logic("index %d is not the most recent claim (high-water mark %d)", i, x.length)
	}

	x.mask.Clear(i)
	if key, ok := x.keyOf[i]; ok {
		delete(x.keys, key)
		delete(x.keyOf, i)
	}
	if a.reused {
		x.free.PushFront(i)
		return nil
	}
	x.length--
	if a.newCapacity > 0 {
		x.mask.shrink(a.oldCapacity)
	}
	return nil
}

// FreeIndex releases index i for reuse. Dependent storage is untouched.
func (x *Indexer) FreeIndex(i Index) error {
	if !x.mask.Clear(i) {
		return errs.User(errs.CodeIndexOutOfBounds, "index %d is not a valid index", i)
	}
	if key, ok := x.keyOf[i]; ok {
		delete(x.keys, key)
		delete(x.keyOf, i)
	}
	x.free.Push(i)
	return nil
}

// IndexForKey returns the index mapped to key.
func (x *Indexer) IndexForKey(key string) (Index, bool) {
	i, ok := x.keys[key]
	return i, ok
}

// KeyForIndex returns the key mapped to index i.
func (x *Indexer) KeyForIndex(i Index) (string, bool) {
	key, ok := x.keyOf[i]
	return key, ok
}

// IsValidIndex reports whether i currently holds live data.
func (x *Indexer) IsValidIndex(i Index) bool {
	return x.mask.Contains(i)
}

// IsValidKey reports whether key is mapped.
func (x *Indexer) IsValidKey(key string) bool {
	_, ok := x.keys[key]
	return ok
}

// Indices iterates over the valid indices in ascending order.
func (x *Indexer) Indices() iter.Seq[Index] {
	return x.mask.All()
}

// Keys iterates over the keyed valid indices in ascending index order.
func (x *Indexer) Keys() iter.Seq2[string, Index] {
	return func(yield func(string, Index) bool) {
		for i := range x.mask.All() {
			key, ok := x.keyOf[i]
			if !ok {
				continue
			}
			if !yield(key, i) {
				return
			}
		}
	}
}

// ValidityMask returns a copy of the validity mask.
func (x *Indexer) ValidityMask() *Mask {
	return x.mask.Clone()
}
