package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[uint32](2)

	for i := range uint32(5) {
		q.Push(i)
	}
	require.Equal(t, 5, q.Len())

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, uint32(0), head)

	for i := range uint32(5) {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueue_WrapAround(t *testing.T) {
	var q Queue[int]

	// Interleave pushes and pops so the ring wraps before it grows.
	for i := range 6 {
		q.Push(i)
	}
	for range 4 {
		q.Pop()
	}
	for i := 6; i < 20; i++ {
		q.Push(i)
	}

	got := make([]int, 0, q.Len())
	for q.Len() > 0 {
		v, _ := q.Pop()
		got = append(got, v)
	}
	want := make([]int, 0, 16)
	for i := 4; i < 20; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, got)
}

func TestQueue_Reset(t *testing.T) {
	q := New[string](4)
	q.Push("a")
	q.Push("b")
	q.Reset()

	assert.Zero(t, q.Len())
	_, ok := q.Peek()
	assert.False(t, ok)

	q.Push("c")
	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "c", v)
}

func TestQueue_PushFront(t *testing.T) {
	var q Queue[int]
	q.PushFront(2)
	q.Push(3)

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	q.PushFront(v)
	q.PushFront(1)
	for i := 4; i < 12; i++ {
		q.Push(i)
	}

	got := make([]int, 0, q.Len())
	for q.Len() > 0 {
		v, _ := q.Pop()
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, got)
}
