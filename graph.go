package sparsegraph

import (
	"fmt"
	"iter"
	"time"

	"github.com/hupe1980/sparsegraph/internal/conv"
	"github.com/hupe1980/sparsegraph/internal/edgestore"
	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/indexer"
	"github.com/hupe1980/sparsegraph/internal/resource"
	"github.com/hupe1980/sparsegraph/internal/sparse"
	"github.com/hupe1980/sparsegraph/internal/vertexstore"
)

// Graph is an in-memory property graph stored as sparse vectors and
// matrices.
//
// All vertices share one index space regardless of the kind of their value.
// Each value kind has its own value vector and each weight kind its own set
// of edge types, one adjacency matrix per edge type. Whenever the vertex
// index space grows, every vector and matrix is resized before the inserting
// call returns.
//
// A Graph is not safe for concurrent mutation. Concurrent reads are safe
// while no mutation is in flight.
type Graph struct {
	vertices *indexer.Indexer
	// kinds records which value store holds each vertex. Absent means
	// KindNone. Entries of freed vertices are stale and gated by vertices.
	kinds    *sparse.Vector[uint8]
	values   [sparse.NumKinds]valueStore
	edges    [sparse.NumKinds]edgeStore
	capacity int

	edgeTypeCapacity int
	resizeWorkers    int
	resources        *resource.Controller
	metrics          MetricsCollector
	logger           *Logger
}

type valueStore interface {
	Resize(newCapacity int) error
	Forget(i indexer.Index)
	Free()
}

type edgeStore interface {
	ResizeAll(newVertexCapacity int) error
	DeleteVertexConnections(v indexer.Index) (int, error)
	NumberOfEdgeTypes() int
	NumberOfEdges() int
	Free()
}

// New creates an empty graph.
func New(optFns ...Option) (*Graph, error) {
	o := applyOptions(optFns)
	if o.vertexCapacity < 0 || o.vertexCapacity > conv.MaxIndexCapacity {
		return nil, fmt.Errorf("%w: vertex capacity %d", ErrInvalidOption, o.vertexCapacity)
	}
	if o.edgeTypeCapacity < 0 || o.edgeTypeCapacity > conv.MaxIndexCapacity {
		return nil, fmt.Errorf("%w: edge type capacity %d", ErrInvalidOption, o.edgeTypeCapacity)
	}

	g := &Graph{
		vertices:         indexer.New(o.vertexCapacity),
		capacity:         o.vertexCapacity,
		edgeTypeCapacity: o.edgeTypeCapacity,
		resizeWorkers:    o.resizeWorkers,
		resources:        o.resources,
		metrics:          o.metricsCollector,
		logger:           o.logger,
	}
	if g.resizeWorkers <= 0 {
		g.resizeWorkers = g.resources.ResizeWorkers()
	}

	kinds, err := sparse.NewVector[uint8](o.vertexCapacity, g.sparseOptions()...)
	if err != nil {
		return nil, errs.FromBackend(err, "allocate vertex kind vector")
	}
	g.kinds = kinds
	return g, nil
}

func (g *Graph) sparseOptions() []sparse.Option {
	return []sparse.Option{sparse.WithMemoryAcquirer(g.resources)}
}

// Close releases all storage and the memory charged for it. The graph must
// not be used afterwards.
func (g *Graph) Close() error {
	if g == nil {
		return nil
	}
	for k, vs := range g.values {
		if vs != nil {
			vs.Free()
			g.values[k] = nil
		}
	}
	for k, es := range g.edges {
		if es != nil {
			es.Free()
			g.edges[k] = nil
		}
	}
	if g.kinds != nil {
		g.kinds.Free()
	}
	return nil
}

// NumberOfVertices returns the number of live vertices.
func (g *Graph) NumberOfVertices() int { return g.vertices.Len() }

// NumberOfEdgeTypes returns the number of live edge types over all weight
// kinds.
func (g *Graph) NumberOfEdgeTypes() int {
	n := 0
	for _, es := range g.edges {
		if es != nil {
			n += es.NumberOfEdgeTypes()
		}
	}
	return n
}

// NumberOfEdges returns the number of edges over all edge types.
func (g *Graph) NumberOfEdges() int {
	n := 0
	for _, es := range g.edges {
		if es != nil {
			n += es.NumberOfEdges()
		}
	}
	return n
}

// VertexCapacity returns the vertex capacity every value vector and
// adjacency matrix has been resized to.
func (g *Graph) VertexCapacity() int { return g.capacity }

// MemoryUsage returns the bytes currently charged by the graph's storage to
// its resource controller.
func (g *Graph) MemoryUsage() int64 { return g.resources.MemoryUsage() }

// Vertices iterates over the live vertices in index order.
func (g *Graph) Vertices() iter.Seq2[string, Index] {
	return g.vertices.Keys()
}

// propagateCapacity resizes every dependent structure to the vertex
// indexer's capacity. It is a no-op when nothing is pending. On failure the
// recorded capacity is left unchanged and the caller undoes the claim that
// grew the indexer; structures that were already resized stay resized.
func (g *Graph) propagateCapacity() error {
	target := g.vertices.Capacity()
	if target <= g.capacity {
		return nil
	}

	start := time.Now()
	err := g.resizeDependents(target)
	g.metrics.RecordResize(g.capacity, target, time.Since(start), err)
	if err != nil {
		g.logger.LogResizeFailed(g.capacity, target, err)
		return fmt.Errorf("propagate vertex capacity %d: %w", target, err)
	}
	g.logger.LogCapacityGrowth(g.capacity, target)
	g.capacity = target
	return nil
}

func (g *Graph) resizeDependents(n int) error {
	if err := g.kinds.Resize(n); err != nil {
		return errs.FromBackend(err, "resize vertex kind vector to %d", n)
	}
	for _, vs := range g.values {
		if vs == nil {
			continue
		}
		if err := vs.Resize(n); err != nil {
			return err
		}
	}
	for _, es := range g.edges {
		if es == nil {
			continue
		}
		if err := es.ResizeAll(n); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) kindAt(i Index) Kind {
	k, ok := g.kinds.Get(i)
	if !ok {
		return KindNone
	}
	return Kind(k)
}

func (g *Graph) setKind(i Index, kind Kind) error {
	if kind == KindNone {
		g.kinds.Remove(i)
		return nil
	}
	if err := g.kinds.Set(i, uint8(kind)); err != nil {
		return errs.FromBackend(err, "record kind of vertex %d", i)
	}
	return nil
}

// valuesOf returns the value store of kind T, creating it on first use.
func valuesOf[T Scalar](g *Graph) (*vertexstore.Store[T], error) {
	k := sparse.KindOf[T]()
	if vs := g.values[k]; vs != nil {
		return vs.(*vertexstore.Store[T]), nil
	}
	vs, err := vertexstore.New[T](g.vertices, g.sparseOptions()...)
	if err != nil {
		return nil, err
	}
	g.values[k] = vs
	return vs, nil
}

func lookupValues[T Scalar](g *Graph) *vertexstore.Store[T] {
	vs, _ := g.values[sparse.KindOf[T]()].(*vertexstore.Store[T])
	return vs
}

// edgesOf returns the edge store of weight kind T, creating it on first use.
func edgesOf[T Scalar](g *Graph) *edgestore.Store[T] {
	k := sparse.KindOf[T]()
	if es := g.edges[k]; es != nil {
		return es.(*edgestore.Store[T])
	}
	es := edgestore.New[T](g.capacity, g.edgeTypeCapacity,
		edgestore.WithResizeWorkers(g.resizeWorkers),
		edgestore.WithMemoryAcquirer(g.resources),
	)
	g.edges[k] = es
	return es
}

func lookupEdges[T Scalar](g *Graph) *edgestore.Store[T] {
	es, _ := g.edges[sparse.KindOf[T]()].(*edgestore.Store[T])
	return es
}
