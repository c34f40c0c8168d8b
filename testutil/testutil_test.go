package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42).Workload(200, 16)
	b := NewRNG(42).Workload(200, 16)
	assert.Equal(t, a, b)

	r := NewRNG(7)
	first := r.Workload(50, 8)
	r.Reset()
	assert.Equal(t, first, r.Workload(50, 8))
	assert.Equal(t, int64(7), r.Seed())
}

func TestWorkload(t *testing.T) {
	ops := NewRNG(1).Workload(1000, 32)
	require.Len(t, ops, 1000)

	seen := map[OpKind]int{}
	keys := map[string]bool{}
	for _, k := range Keys(32) {
		keys[k] = true
	}
	for _, op := range ops {
		seen[op.Kind]++
		assert.True(t, keys[op.Key], op.Key)
		if op.Kind == OpAddEdge || op.Kind == OpDeleteEdge {
			assert.True(t, keys[op.Target], op.Target)
		} else {
			assert.Empty(t, op.Target)
		}
	}
	for _, kind := range []OpKind{OpAddVertex, OpReplaceVertex, OpDeleteVertex, OpAddEdge, OpDeleteEdge} {
		assert.Positive(t, seen[kind], kind.String())
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"v000000", "v000001"}, Keys(2))
	assert.Equal(t, "op(9)", OpKind(9).String())
}
