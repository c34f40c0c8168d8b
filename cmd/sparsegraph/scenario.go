package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/sparsegraph"
)

// Scenario is a sequence of graph mutations read from YAML. Sections are
// applied in field order.
type Scenario struct {
	Vertices       []VertexSpec   `yaml:"vertices"`
	EdgeTypes      []EdgeTypeSpec `yaml:"edgeTypes"`
	Edges          []EdgeSpec     `yaml:"edges"`
	DeleteEdges    []EdgeSpec     `yaml:"deleteEdges"`
	DeleteVertices []string       `yaml:"deleteVertices"`
	DropEdgeTypes  []EdgeTypeSpec `yaml:"dropEdgeTypes"`
}

// VertexSpec adds or replaces a vertex. Without a kind the vertex carries
// no value.
type VertexSpec struct {
	Key   string    `yaml:"key"`
	Kind  string    `yaml:"kind,omitempty"`
	Value yaml.Node `yaml:"value,omitempty"`
}

// EdgeTypeSpec names an edge type and its weight kind.
type EdgeTypeSpec struct {
	Key  string `yaml:"key"`
	Kind string `yaml:"kind"`
}

// EdgeSpec is a weighted edge of a typed edge type.
type EdgeSpec struct {
	Type   string    `yaml:"type"`
	Kind   string    `yaml:"kind"`
	From   string    `yaml:"from"`
	To     string    `yaml:"to"`
	Weight yaml.Node `yaml:"weight,omitempty"`
}

// LoadScenario reads and decodes the scenario at path.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeScenario(f)
}

// DecodeScenario decodes a scenario, rejecting unknown fields.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

// kindOps binds the generic graph operations to one scalar kind so that
// scenario steps can dispatch on a kind parsed at runtime.
type kindOps struct {
	addVertex    func(g *sparsegraph.Graph, key string, value *yaml.Node) error
	vertexValue  func(g *sparsegraph.Graph, key string) (any, error)
	addEdgeType  func(g *sparsegraph.Graph, key string) error
	dropEdgeType func(g *sparsegraph.Graph, key string) error
	addEdge      func(g *sparsegraph.Graph, edgeType, from, to string, weight *yaml.Node) error
	deleteEdge   func(g *sparsegraph.Graph, edgeType, from, to string) error
	edges        func(g *sparsegraph.Graph, edgeType string, fn func(from, to sparsegraph.Index, weight any)) error
}

func opsFor[T sparsegraph.Scalar]() kindOps {
	return kindOps{
		addVertex: func(g *sparsegraph.Graph, key string, value *yaml.Node) error {
			v, err := decodeScalar[T](value, "")
			if err != nil {
				return fmt.Errorf("vertex %q: %w", key, err)
			}
			_, err = sparsegraph.AddOrReplaceVertex(g, key, v)
			return err
		},
		vertexValue: func(g *sparsegraph.Graph, key string) (any, error) {
			return sparsegraph.VertexValue[T](g, key)
		},
		addEdgeType: func(g *sparsegraph.Graph, key string) error {
			_, err := sparsegraph.AddEdgeType[T](g, key)
			return err
		},
		dropEdgeType: func(g *sparsegraph.Graph, key string) error {
			return sparsegraph.DropEdgeType[T](g, key)
		},
		addEdge: func(g *sparsegraph.Graph, edgeType, from, to string, weight *yaml.Node) error {
			w, err := decodeScalar[T](weight, defaultWeight[T]())
			if err != nil {
				return fmt.Errorf("edge %s %q -> %q: %w", edgeType, from, to, err)
			}
			return sparsegraph.AddEdge(g, edgeType, from, to, w)
		},
		deleteEdge: func(g *sparsegraph.Graph, edgeType, from, to string) error {
			return sparsegraph.DeleteEdge[T](g, edgeType, from, to)
		},
		edges: func(g *sparsegraph.Graph, edgeType string, fn func(from, to sparsegraph.Index, weight any)) error {
			m, err := sparsegraph.AdjacencyMatrix[T](g, edgeType)
			if err != nil {
				return err
			}
			for c, w := range m.All() {
				fn(c.Row, c.Col, w)
			}
			return nil
		},
	}
}

var kinds = map[sparsegraph.Kind]kindOps{
	sparsegraph.KindBool:    opsFor[bool](),
	sparsegraph.KindInt8:    opsFor[int8](),
	sparsegraph.KindInt16:   opsFor[int16](),
	sparsegraph.KindInt32:   opsFor[int32](),
	sparsegraph.KindInt64:   opsFor[int64](),
	sparsegraph.KindInt:     opsFor[int](),
	sparsegraph.KindUint8:   opsFor[uint8](),
	sparsegraph.KindUint16:  opsFor[uint16](),
	sparsegraph.KindUint32:  opsFor[uint32](),
	sparsegraph.KindUint64:  opsFor[uint64](),
	sparsegraph.KindUint:    opsFor[uint](),
	sparsegraph.KindFloat32: opsFor[float32](),
	sparsegraph.KindFloat64: opsFor[float64](),
}

func opsForName(name string) (sparsegraph.Kind, kindOps, error) {
	kind, err := sparsegraph.ParseKind(name)
	if err != nil {
		return sparsegraph.KindNone, kindOps{}, err
	}
	return kind, kinds[kind], nil
}

// decodeScalar decodes a YAML scalar into T. An absent node yields
// fallback when one is given.
func decodeScalar[T sparsegraph.Scalar](node *yaml.Node, fallback string) (T, error) {
	var v T
	if node == nil || node.Kind == 0 {
		if fallback == "" {
			return v, fmt.Errorf("missing %s value", sparsegraph.KindOf[T]())
		}
		err := yaml.Unmarshal([]byte(fallback), &v)
		return v, err
	}
	if node.Kind != yaml.ScalarNode {
		return v, fmt.Errorf("line %d: expected a scalar %s", node.Line, sparsegraph.KindOf[T]())
	}
	if err := node.Decode(&v); err != nil {
		return v, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}

// defaultWeight is the weight of an edge given without one.
func defaultWeight[T sparsegraph.Scalar]() string {
	if sparsegraph.KindOf[T]() == sparsegraph.KindBool {
		return "true"
	}
	return "1"
}
