package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparsegraph"
)

const friends = `
vertices:
  - {key: alice, kind: int32, value: 30}
  - {key: bob, kind: float64, value: 1.5}
  - {key: carol}
edgeTypes:
  - {key: knows, kind: float64}
  - {key: blocks, kind: bool}
edges:
  - {type: knows, kind: float64, from: alice, to: bob, weight: 0.5}
  - {type: knows, kind: float64, from: bob, to: carol}
  - {type: blocks, kind: bool, from: carol, to: alice}
deleteVertices: [carol]
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	scenario := writeTemp(t, "friends.yaml", friends)

	t.Run("summary", func(t *testing.T) {
		out, err := execute(t, "run", scenario)
		require.NoError(t, err)
		assert.Contains(t, out, "vertices:   2 (capacity 256)")
		assert.Contains(t, out, "edge types: 2")
		assert.Contains(t, out, "edges:      1")
		assert.NotContains(t, out, "alice [int32]")
	})

	t.Run("verbose", func(t *testing.T) {
		out, err := execute(t, "run", "--verbose", scenario)
		require.NoError(t, err)
		assert.Contains(t, out, "alice [int32] = 30")
		assert.Contains(t, out, "bob [float64] = 1.5")
		assert.Contains(t, out, "knows (float64): alice -> bob = 0.5")
		assert.NotContains(t, out, "carol")
	})

	t.Run("config", func(t *testing.T) {
		cfg := writeTemp(t, "engine.yaml", "vertexCapacity: 2\n")
		out, err := execute(t, "run", "--config", cfg, scenario)
		require.NoError(t, err)
		assert.Contains(t, out, "(capacity 4)")
	})
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		want     string
	}{
		{
			name:     "unknown kind",
			scenario: "vertices:\n  - {key: a, kind: complex128, value: 1}\n",
			want:     "unknown scalar kind",
		},
		{
			name:     "unknown field",
			scenario: "vertexes: []\n",
			want:     "decode scenario",
		},
		{
			name:     "missing vertex value",
			scenario: "vertices:\n  - {key: a, kind: int8}\n",
			want:     "missing int8 value",
		},
		{
			name:     "value out of range",
			scenario: "vertices:\n  - {key: a, kind: uint8, value: 300}\n",
			want:     "vertices[0]",
		},
		{
			name:     "edge type missing",
			scenario: "vertices: [{key: a}, {key: b}]\nedges:\n  - {type: knows, kind: float64, from: a, to: b}\n",
			want:     "edge type \"knows\" does not exist",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "scenario.yaml", tt.scenario)
			_, err := execute(t, "run", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("no argument", func(t *testing.T) {
		_, err := execute(t, "run")
		assert.Error(t, err)
	})
}

func TestRun_VerticesReplace(t *testing.T) {
	scenario := writeTemp(t, "replace.yaml", `
vertices:
  - {key: a, kind: int32, value: 1}
  - {key: b}
  - {key: a}
  - {key: b, kind: uint8, value: 7}
  - {key: b, kind: uint8, value: 8}
`)
	out, err := execute(t, "run", "--verbose", scenario)
	require.NoError(t, err)
	assert.Contains(t, out, "vertices:   2 (capacity 256)")
	assert.Contains(t, out, "  a\n")
	assert.NotContains(t, out, "a [int32]")
	assert.Contains(t, out, "b [uint8] = 8")
}

func TestDecodeScenario(t *testing.T) {
	s, err := DecodeScenario(strings.NewReader(friends))
	require.NoError(t, err)
	require.Len(t, s.Vertices, 3)
	assert.Equal(t, "int32", s.Vertices[0].Kind)
	assert.Empty(t, s.Vertices[2].Kind)
	assert.Equal(t, []string{"carol"}, s.DeleteVertices)

	empty, err := DecodeScenario(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Vertices)
}

func TestKindsCoverEveryScalar(t *testing.T) {
	for _, name := range []string{
		"bool", "int8", "int16", "int32", "int64", "int",
		"uint8", "uint16", "uint32", "uint64", "uint", "float32", "float64",
	} {
		kind, ops, err := opsForName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, kind.String())
		assert.NotNil(t, ops.addVertex, name)
	}

	_, _, err := opsForName("none")
	assert.Error(t, err)
}

func TestDefaultWeight(t *testing.T) {
	b, err := decodeScalar[bool](nil, defaultWeight[bool]())
	require.NoError(t, err)
	assert.True(t, b)

	f, err := decodeScalar[float32](nil, defaultWeight[float32]())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 0)

	_, err = decodeScalar[sparsegraph.Index](nil, "")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sparsegraph dev")
}
