package sparse

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_SetGetRemove(t *testing.T) {
	m, err := NewMatrix[int32](3)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimension())

	require.NoError(t, m.Set(0, 1, 5))
	require.NoError(t, m.Set(0, 1, 6))
	assert.Equal(t, 1, m.Cardinality())

	got, ok := m.Get(0, 1)
	require.True(t, ok)
	assert.Equal(t, int32(6), got)

	_, ok = m.Get(1, 0)
	assert.False(t, ok, "matrix is directed")

	assert.ErrorIs(t, m.Set(3, 0, 1), ErrIndexOutOfBounds)
	assert.ErrorIs(t, m.Set(0, 3, 1), ErrIndexOutOfBounds)

	assert.True(t, m.Remove(0, 1))
	assert.False(t, m.Remove(0, 1))
	assert.False(t, m.Remove(9, 9))
	assert.Zero(t, m.Cardinality())
	assert.Zero(t, m.InDegree(1))
}

func TestMatrix_ClearRowAndColumn(t *testing.T) {
	m, err := NewMatrix[bool](4)
	require.NoError(t, err)

	for _, c := range []Coordinate{{0, 1}, {0, 2}, {1, 0}, {2, 0}, {2, 3}, {3, 3}} {
		require.NoError(t, m.Set(c.Row, c.Col, true))
	}

	assert.Equal(t, 2, m.ClearRow(0))
	assert.Equal(t, 2, m.ClearColumn(0))
	assert.Zero(t, m.ClearColumn(0))

	assert.Equal(t, map[Coordinate]bool{{2, 3}: true, {3, 3}: true}, maps.Collect(m.All()))
	assert.Equal(t, 2, m.Cardinality())
	assert.Equal(t, 2, m.InDegree(3))
	assert.Zero(t, m.OutDegree(0))
	assert.Zero(t, m.InDegree(1))
}

func TestMatrix_ResizeIsIdempotent(t *testing.T) {
	m, err := NewMatrix[float32](2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 1, 2.5))

	require.NoError(t, m.Resize(10))
	require.NoError(t, m.Resize(10))
	require.NoError(t, m.Resize(4))
	assert.Equal(t, 10, m.Dimension())

	got, ok := m.Get(1, 1)
	require.True(t, ok)
	assert.Equal(t, float32(2.5), got)

	require.NoError(t, m.Set(9, 0, 1))
	assert.Equal(t, 2, m.Cardinality())
}

func TestMatrix_Iteration(t *testing.T) {
	m, err := NewMatrix[int](5)
	require.NoError(t, err)
	require.NoError(t, m.Set(3, 4, 34))
	require.NoError(t, m.Set(3, 0, 30))
	require.NoError(t, m.Set(1, 4, 14))

	var coords []Coordinate
	for c := range m.All() {
		coords = append(coords, c)
	}
	assert.Equal(t, []Coordinate{{1, 4}, {3, 0}, {3, 4}}, coords)

	var row []Index
	for j := range m.Row(3) {
		row = append(row, j)
	}
	assert.Equal(t, []Index{0, 4}, row)

	assert.Equal(t, map[Index]int{1: 14, 3: 34}, maps.Collect(m.Column(4)))
	assert.Equal(t, 2, m.OutDegree(3))
}

func TestMatrix_MemoryAccounting(t *testing.T) {
	slot := int64(directorySlotSize[int8]())
	acq := &fakeAcquirer{limit: 4 * slot}

	m, err := NewMatrix[int8](2, WithMemoryAcquirer(acq))
	require.NoError(t, err)
	assert.Equal(t, 2*slot, acq.used)

	assert.ErrorIs(t, m.Resize(5), errFakeLimit)
	assert.Equal(t, 2, m.Dimension())

	require.NoError(t, m.Resize(4))
	m.Free()
	assert.Zero(t, acq.used)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindInt32, KindOf[int32]())
	assert.Equal(t, KindBool, KindOf[bool]())
	assert.Equal(t, KindFloat64, KindOf[float64]())
	assert.Equal(t, KindUint, KindOf[uint]())

	k, err := ParseKind("uint16")
	require.NoError(t, err)
	assert.Equal(t, KindUint16, k)
	assert.Equal(t, "uint16", k.String())

	_, err = ParseKind("none")
	assert.Error(t, err)
	_, err = ParseKind("complex128")
	assert.Error(t, err)
}
