package sparsegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparsegraph/testutil"
)

type edgeKey struct{ from, to string }

// TestGraph_RandomWorkload checks the graph against a map model under a
// random mix of vertex and edge operations.
func TestGraph_RandomWorkload(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		rng := testutil.NewRNG(seed)
		g := newGraph(t, WithInitialVertexCapacity(1), WithResizeWorkers(2))

		_, err := AddEdgeType[int64](g, "links")
		require.NoError(t, err)

		values := map[string]int64{}
		edges := map[edgeKey]int64{}

		for step, op := range rng.Workload(2000, 96) {
			switch op.Kind {
			case testutil.OpAddVertex:
				_, err := AddVertex(g, op.Key, op.Value)
				if _, ok := values[op.Key]; ok {
					require.ErrorIs(t, err, ErrKeyAlreadyExists, "step %d", step)
				} else {
					require.NoError(t, err, "step %d", step)
					values[op.Key] = op.Value
				}
			case testutil.OpReplaceVertex:
				_, err := AddOrReplaceVertex(g, op.Key, op.Value)
				require.NoError(t, err, "step %d", step)
				values[op.Key] = op.Value
			case testutil.OpDeleteVertex:
				err := g.DeleteVertex(op.Key)
				if _, ok := values[op.Key]; !ok {
					require.ErrorIs(t, err, ErrVertexKeyNotFound, "step %d", step)
					break
				}
				require.NoError(t, err, "step %d", step)
				delete(values, op.Key)
				for e := range edges {
					if e.from == op.Key || e.to == op.Key {
						delete(edges, e)
					}
				}
			case testutil.OpAddEdge, testutil.OpDeleteEdge:
				var err error
				if op.Kind == testutil.OpAddEdge {
					err = AddEdge(g, "links", op.Key, op.Target, op.Value)
				} else {
					err = DeleteEdge[int64](g, "links", op.Key, op.Target)
				}
				_, fromOK := values[op.Key]
				_, toOK := values[op.Target]
				if !fromOK || !toOK {
					require.ErrorIs(t, err, ErrVertexKeyNotFound, "step %d", step)
					break
				}
				require.NoError(t, err, "step %d", step)
				if op.Kind == testutil.OpAddEdge {
					edges[edgeKey{op.Key, op.Target}] = op.Value
				} else {
					delete(edges, edgeKey{op.Key, op.Target})
				}
			}

			require.Equal(t, len(values), g.NumberOfVertices(), "step %d", step)
			require.Equal(t, len(edges), g.NumberOfEdges(), "step %d", step)
			require.Equal(t, g.vertices.Capacity(), g.VertexCapacity(), "step %d", step)
		}

		for key, want := range values {
			got, err := VertexValue[int64](g, key)
			require.NoError(t, err)
			assert.Equal(t, want, got, key)
		}
		for e, want := range edges {
			got, err := EdgeWeight[int64](g, "links", e.from, e.to)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s -> %s", e.from, e.to)
		}

		m, err := AdjacencyMatrix[int64](g, "links")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.Dimension(), g.VertexCapacity())
	}
}
