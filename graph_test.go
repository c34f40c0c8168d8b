package sparsegraph

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		g := newGraph(t)
		assert.Equal(t, DefaultVertexCapacity, g.VertexCapacity())
		assert.Equal(t, 0, g.NumberOfVertices())
		assert.Equal(t, 0, g.NumberOfEdgeTypes())
		assert.Equal(t, 0, g.NumberOfEdges())
	})

	t.Run("invalid capacity", func(t *testing.T) {
		_, err := New(WithInitialVertexCapacity(-1))
		assert.ErrorIs(t, err, ErrInvalidOption)

		_, err = New(WithInitialEdgeTypeCapacity(-1))
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		g := newGraph(t, nil, WithLogger(nil), WithMetricsCollector(nil))
		_, err := AddVertex(g, "a", 1)
		require.NoError(t, err)
	})
}

func TestGraph_IndexStability(t *testing.T) {
	g := newGraph(t, WithInitialVertexCapacity(1))

	assigned := map[string]Index{}
	for i := range 20 {
		key := fmt.Sprintf("v%d", i)
		idx, err := AddVertex(g, key, int64(i))
		require.NoError(t, err)
		assigned[key] = idx
	}
	for i := 0; i < 20; i += 3 {
		key := fmt.Sprintf("v%d", i)
		require.NoError(t, g.DeleteVertex(key))
		delete(assigned, key)
	}
	for i := range 5 {
		_, err := AddVertex(g, fmt.Sprintf("w%d", i), int64(100+i))
		require.NoError(t, err)
	}

	for key, idx := range assigned {
		got, err := g.VertexIndex(key)
		require.NoError(t, err)
		assert.Equal(t, idx, got, key)

		k, err := g.VertexKey(idx)
		require.NoError(t, err)
		assert.Equal(t, key, k)
	}
}

func TestGraph_FreeBeforeGrow(t *testing.T) {
	g := newGraph(t, WithInitialVertexCapacity(4))
	for _, key := range []string{"a", "b", "c", "d"} {
		_, err := g.AddVertexKey(key)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, g.VertexCapacity())

	b, err := g.VertexIndex("b")
	require.NoError(t, err)
	require.NoError(t, g.DeleteVertex("b"))

	e, err := g.AddVertexKey("e")
	require.NoError(t, err)
	assert.Equal(t, b, e)
	assert.Equal(t, 4, g.VertexCapacity())
}

func TestGraph_Cardinality(t *testing.T) {
	g := newGraph(t, WithInitialVertexCapacity(2))
	live := map[string]bool{}

	for i := range 10 {
		key := fmt.Sprintf("k%d", i)
		_, err := AddVertex(g, key, uint8(i))
		require.NoError(t, err)
		live[key] = true
		if i%3 == 2 {
			victim := fmt.Sprintf("k%d", i-1)
			require.NoError(t, g.DeleteVertex(victim))
			delete(live, victim)
		}
		assert.Equal(t, len(live), g.NumberOfVertices())
	}

	seen := 0
	for key := range g.Vertices() {
		assert.True(t, live[key], key)
		seen++
	}
	assert.Equal(t, len(live), seen)
}

func TestGraph_CapacityCoherence(t *testing.T) {
	g := newGraph(t, WithInitialVertexCapacity(1), WithResizeWorkers(2))

	_, err := AddEdgeType[float64](g, "knows")
	require.NoError(t, err)
	_, err = AddEdgeType[bool](g, "blocks")
	require.NoError(t, err)

	for i := range 10 {
		_, err := AddVertex(g, fmt.Sprintf("v%d", i), float32(i))
		require.NoError(t, err)

		assert.Equal(t, g.vertices.Capacity(), g.VertexCapacity())

		knows, err := AdjacencyMatrix[float64](g, "knows")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, knows.Dimension(), g.VertexCapacity())

		blocks, err := AdjacencyMatrix[bool](g, "blocks")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, blocks.Dimension(), g.VertexCapacity())
	}
	assert.Equal(t, 16, g.VertexCapacity())

	// Edge types created after growth start at the current capacity.
	_, err = AddEdgeType[float64](g, "likes")
	require.NoError(t, err)
	likes, err := AdjacencyMatrix[float64](g, "likes")
	require.NoError(t, err)
	assert.Equal(t, 16, likes.Dimension())
}

func TestGraph_FailedPropagationRollsBack(t *testing.T) {
	slot := 2 * int64(unsafe.Sizeof(uintptr(0)))
	// Two kind bytes, two int64 values and one 2x2 matrix to start with.
	// Growing to 4 needs 2+16 more bytes plus 2 matrix slots; allow one.
	limit := int64(2+16+2*slot) + 2 + 16 + slot
	metrics := &BasicMetricsCollector{}

	g := newGraph(t,
		WithInitialVertexCapacity(2),
		WithInitialEdgeTypeCapacity(1),
		WithMemoryLimit(limit),
		WithMetricsCollector(metrics),
	)

	_, err := AddEdgeType[float64](g, "knows")
	require.NoError(t, err)
	_, err = AddVertex(g, "a", int64(1))
	require.NoError(t, err)
	_, err = AddVertex(g, "b", int64(2))
	require.NoError(t, err)

	_, err = AddVertex(g, "c", int64(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.True(t, IsSystemError(err))

	assert.False(t, g.IsValidVertexKey("c"))
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 2, g.VertexCapacity())
	assert.Equal(t, 2, g.vertices.Capacity())

	knows, err := AdjacencyMatrix[float64](g, "knows")
	require.NoError(t, err)
	assert.Equal(t, 2, knows.Dimension())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ResizeErrors)
	assert.Equal(t, int64(1), stats.AddVertexErrors)

	// Releasing the matrix lets the growth succeed on the next attempt,
	// which claims the same index again.
	require.NoError(t, DropEdgeType[float64](g, "knows"))
	c, err := AddVertex(g, "c", int64(3))
	require.NoError(t, err)
	assert.Equal(t, Index(2), c)
	assert.Equal(t, 4, g.VertexCapacity())

	v, err := VertexValue[int64](g, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestGraph_InsertsAfterFailedGrowth(t *testing.T) {
	slot := 2 * int64(unsafe.Sizeof(uintptr(0)))
	limit := int64(2+16+2*slot) + 2 + 16 + slot

	g := newGraph(t,
		WithInitialVertexCapacity(2),
		WithInitialEdgeTypeCapacity(1),
		WithMemoryLimit(limit),
	)
	_, err := AddEdgeType[float64](g, "knows")
	require.NoError(t, err)
	a, err := AddVertex(g, "a", int64(1))
	require.NoError(t, err)
	_, err = AddVertex(g, "b", int64(2))
	require.NoError(t, err)

	_, err = AddVertex(g, "c", int64(3))
	require.ErrorIs(t, err, ErrResourceExhausted)

	t.Run("replace needs no growth", func(t *testing.T) {
		_, err := AddOrReplaceVertex(g, "b", int64(20))
		require.NoError(t, err)
		v, err := VertexValue[int64](g, "b")
		require.NoError(t, err)
		assert.Equal(t, int64(20), v)
	})

	t.Run("freed index is reused within capacity", func(t *testing.T) {
		require.NoError(t, AddEdge(g, "knows", "a", "b", 1.0))
		require.NoError(t, g.DeleteVertex("a"))

		d, err := AddVertex(g, "d", int64(4))
		require.NoError(t, err)
		assert.Equal(t, a, d)
		assert.Equal(t, 2, g.VertexCapacity())

		_, err = g.AddVertexKey("e")
		assert.ErrorIs(t, err, ErrResourceExhausted)
		assert.Equal(t, 2, g.NumberOfVertices())
	})
}

func TestGraph_ResizeWorkers(t *testing.T) {
	rc := NewResourceController(ResourceConfig{MaxResizeWorkers: 3})

	g := newGraph(t, WithResourceController(rc))
	assert.Equal(t, 3, g.resizeWorkers)

	g = newGraph(t, WithResourceController(rc), WithResizeWorkers(1))
	assert.Equal(t, 1, g.resizeWorkers)

	g = newGraph(t, WithResizeWorkers(2))
	assert.Equal(t, 2, g.resizeWorkers)
}

func TestGraph_SharedResourceController(t *testing.T) {
	rc := NewResourceController(ResourceConfig{})
	g1 := newGraph(t, WithResourceController(rc), WithInitialVertexCapacity(8))
	g2 := newGraph(t, WithResourceController(rc), WithInitialVertexCapacity(8))

	_, err := AddVertex(g1, "a", int64(1))
	require.NoError(t, err)
	_, err = AddVertex(g2, "a", int64(1))
	require.NoError(t, err)

	// Kind vectors (8 bytes each) plus int64 value vectors (64 bytes each).
	assert.Equal(t, int64(2*(8+64)), rc.MemoryUsage())
	assert.Equal(t, rc.MemoryUsage(), g1.MemoryUsage())

	require.NoError(t, g1.Close())
	assert.Equal(t, int64(8+64), rc.MemoryUsage())
}

func TestGraph_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := newGraph(t, WithLogger(logger), WithInitialVertexCapacity(1))

	_, err := AddVertex(g, "a", true)
	require.NoError(t, err)
	_, err = AddVertex(g, "b", false)
	require.NoError(t, err)
	_, err = AddVertex(g, "a", true)
	require.Error(t, err)
	_, err = AddEdgeType[int16](g, "knows")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "add vertex completed")
	assert.Contains(t, out, "vertex capacity grown")
	assert.Contains(t, out, "add vertex failed")
	assert.Contains(t, out, "kind=bool")
	assert.Contains(t, out, `msg="add edge type completed" key=knows kind=int16`)
}
