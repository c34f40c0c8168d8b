package sparsegraph

import (
	"iter"
	"time"

	"github.com/hupe1980/sparsegraph/internal/edgestore"
	"github.com/hupe1980/sparsegraph/internal/errs"
)

// AddEdgeType creates an edge type with weight kind T. Edge type keys are
// scoped per weight kind, so "knows" may exist for float64 and for bool
// weights independently.
func AddEdgeType[T Scalar](g *Graph, key string) (Index, error) {
	i, err := edgesOf[T](g).AddEdgeType(key)
	g.logger.LogEdgeType("add", key, KindOf[T](), err)
	return i, err
}

// DropEdgeType removes an edge type and all its edges. Indices of other edge
// types are unaffected.
func DropEdgeType[T Scalar](g *Graph, key string) error {
	es, err := edgeStoreFor[T](g, key)
	if err == nil {
		err = es.DropEdgeType(key)
	}
	g.logger.LogEdgeType("drop", key, KindOf[T](), err)
	return err
}

// EdgeTypeIndex resolves an edge type key of weight kind T.
func EdgeTypeIndex[T Scalar](g *Graph, key string) (Index, error) {
	es, err := edgeStoreFor[T](g, key)
	if err != nil {
		return 0, err
	}
	return es.EdgeTypeIndex(key)
}

// EdgeTypes iterates over the live edge types of weight kind T in index
// order.
func EdgeTypes[T Scalar](g *Graph) iter.Seq2[string, Index] {
	es := lookupEdges[T](g)
	if es == nil {
		return func(func(string, Index) bool) {}
	}
	return es.EdgeTypes()
}

// AdjacencyMatrix returns the adjacency matrix of edge type key. The matrix
// is owned by the graph: callers may read it but must not resize it, and it
// is only valid until the next mutation of the graph.
func AdjacencyMatrix[T Scalar](g *Graph, key string) (*Matrix[T], error) {
	es, err := edgeStoreFor[T](g, key)
	if err != nil {
		return nil, err
	}
	return es.AdjacencyMatrixForKey(key)
}

// AddEdge sets the edge source→target of edge type edgeType to weight,
// replacing an existing edge of that type between the two vertices.
func AddEdge[T Scalar](g *Graph, edgeType, source, target string, weight T) error {
	start := time.Now()
	err := addEdge(g, edgeType, source, target, weight)
	g.metrics.RecordAddEdge(time.Since(start), err)
	return err
}

func addEdge[T Scalar](g *Graph, edgeType, source, target string, weight T) error {
	es, err := edgeStoreFor[T](g, edgeType)
	if err != nil {
		return err
	}
	et, err := es.EdgeTypeIndex(edgeType)
	if err != nil {
		return err
	}
	src, dst, err := g.endpoints(source, target)
	if err != nil {
		return err
	}
	return es.AddEdge(et, src, dst, weight)
}

// AddEdgeByIndex is AddEdge addressing the edge type and both vertices by
// index.
func AddEdgeByIndex[T Scalar](g *Graph, edgeType, source, target Index, weight T) error {
	start := time.Now()
	err := addEdgeByIndex(g, edgeType, source, target, weight)
	g.metrics.RecordAddEdge(time.Since(start), err)
	return err
}

func addEdgeByIndex[T Scalar](g *Graph, edgeType, source, target Index, weight T) error {
	es := lookupEdges[T](g)
	if es == nil || !es.IsValidEdgeType(edgeType) {
		return errs.User(errs.CodeEdgeTypeMustExist, "no %s edge type at index %d", KindOf[T](), edgeType)
	}
	if err := g.checkEndpoints(source, target); err != nil {
		return err
	}
	return es.AddEdge(edgeType, source, target, weight)
}

// DeleteEdge removes the edge source→target of edge type edgeType. Removing
// an edge that does not exist is not an error.
func DeleteEdge[T Scalar](g *Graph, edgeType, source, target string) error {
	start := time.Now()
	err := deleteEdge[T](g, edgeType, source, target)
	g.metrics.RecordDeleteEdge(time.Since(start), err)
	return err
}

func deleteEdge[T Scalar](g *Graph, edgeType, source, target string) error {
	es, err := edgeStoreFor[T](g, edgeType)
	if err != nil {
		return err
	}
	et, err := es.EdgeTypeIndex(edgeType)
	if err != nil {
		return err
	}
	src, dst, err := g.endpoints(source, target)
	if err != nil {
		return err
	}
	return es.DeleteEdge(et, src, dst)
}

// EdgeWeight returns the weight of the edge source→target of edge type
// edgeType, or ErrEdgeNotFound.
func EdgeWeight[T Scalar](g *Graph, edgeType, source, target string) (T, error) {
	var zero T
	es, err := edgeStoreFor[T](g, edgeType)
	if err != nil {
		return zero, err
	}
	et, err := es.EdgeTypeIndex(edgeType)
	if err != nil {
		return zero, err
	}
	src, dst, err := g.endpoints(source, target)
	if err != nil {
		return zero, err
	}
	w, ok, err := es.EdgeWeight(et, src, dst)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, errs.User(errs.CodeEdgeNotFound, "no %q edge from %q to %q", edgeType, source, target)
	}
	return w, nil
}

// edgeStoreFor returns the edge store of weight kind T, failing like a
// missing edge type if no edge type of that kind was ever created.
func edgeStoreFor[T Scalar](g *Graph, key string) (*edgestore.Store[T], error) {
	es := lookupEdges[T](g)
	if es == nil {
		return nil, errs.User(errs.CodeEdgeTypeDoesNotExist, "edge type %q does not exist", key)
	}
	return es, nil
}

func (g *Graph) endpoints(source, target string) (Index, Index, error) {
	src, err := g.VertexIndex(source)
	if err != nil {
		return 0, 0, err
	}
	dst, err := g.VertexIndex(target)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}

func (g *Graph) checkEndpoints(source, target Index) error {
	if !g.vertices.IsValidIndex(source) {
		return errs.User(errs.CodeIndexOutOfBounds, "no source vertex at index %d", source)
	}
	if !g.vertices.IsValidIndex(target) {
		return errs.User(errs.CodeIndexOutOfBounds, "no target vertex at index %d", target)
	}
	return nil
}
