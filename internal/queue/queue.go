// Package queue implements the FIFO free list used by the indexers.
package queue

// Queue is a growable ring buffer. The zero value is an empty queue.
// Value-based storage keeps the slots contiguous for cache locality.
type Queue[T any] struct {
	items []T
	head  int // index of the oldest item
	size  int
}

// New returns a queue with room for capacity items before it reallocates.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, max(capacity, 0))}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.size }

// Push appends v at the tail.
func (q *Queue[T]) Push(v T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = v
	q.size++
}

// PushFront puts v back at the head, ahead of every queued item.
func (q *Queue[T]) PushFront(v T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.head = (q.head - 1 + len(q.items)) % len(q.items)
	q.items[q.head] = v
	q.size++
}

// Pop removes and returns the head of the queue.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return v, true
}

// Peek returns the head without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Reset empties the queue, keeping its storage.
func (q *Queue[T]) Reset() {
	clear(q.items)
	q.head = 0
	q.size = 0
}

// grow doubles the storage and unrolls the ring so head is at 0.
func (q *Queue[T]) grow() {
	items := make([]T, max(2*len(q.items), 8))
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.items = items
	q.head = 0
}
