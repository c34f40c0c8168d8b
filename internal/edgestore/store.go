// Package edgestore stores typed, weighted, directed edges as one square
// adjacency matrix per edge type.
//
// Edge types are keyed and indexed by their own Indexer; the matrix of edge
// type i lives at slot i. Dropping an edge type frees its index but does not
// compact the slots, so sibling edge types keep their indices. Every live
// matrix is kept at least as large as the vertex capacity the store was last
// resized to.
package edgestore

import (
	"iter"

	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/indexer"
	"github.com/hupe1980/sparsegraph/internal/sparse"
)

// Store holds the adjacency matrices of weight kind T.
type Store[T sparse.Scalar] struct {
	indexer        *indexer.Indexer
	matrices       []*sparse.Matrix[T]
	vertexCapacity int
	opts           options
}

// New creates an empty store whose matrices will be sized to vertexCapacity.
func New[T sparse.Scalar](vertexCapacity, edgeTypeCapacity int, opts ...Option) *Store[T] {
	return &Store[T]{
		indexer:        indexer.New(edgeTypeCapacity),
		matrices:       make([]*sparse.Matrix[T], 0, max(edgeTypeCapacity, 0)),
		vertexCapacity: max(vertexCapacity, 0),
		opts:           applyOptions(opts),
	}
}

// Kind returns the weight kind of the store.
func (s *Store[T]) Kind() sparse.Kind { return sparse.KindOf[T]() }

// VertexCapacity returns the dimension every live matrix is guaranteed to
// have reached.
func (s *Store[T]) VertexCapacity() int { return s.vertexCapacity }

// NumberOfEdgeTypes returns the number of live edge types.
func (s *Store[T]) NumberOfEdgeTypes() int { return s.indexer.Len() }

// EdgeTypes iterates over the live edge types in index order.
func (s *Store[T]) EdgeTypes() iter.Seq2[string, indexer.Index] {
	return s.indexer.Keys()
}

// EdgeTypeIndex resolves an edge type key.
func (s *Store[T]) EdgeTypeIndex(key string) (indexer.Index, error) {
	i, ok := s.indexer.IndexForKey(key)
	if !ok {
		return 0, errs.User(errs.CodeEdgeTypeDoesNotExist, "edge type %q does not exist", key)
	}
	return i, nil
}

// IsValidEdgeType reports whether index i is a live edge type.
func (s *Store[T]) IsValidEdgeType(i indexer.Index) bool {
	return s.indexer.IsValidIndex(i)
}

// AddEdgeType creates an edge type with an empty matrix dimensioned to the
// current vertex capacity.
func (s *Store[T]) AddEdgeType(key string) (indexer.Index, error) {
	if i, ok := s.indexer.IndexForKey(key); ok {
		return 0, errs.User(errs.CodeEdgeTypeKeyAlreadyExists, "edge type %q already exists at index %d", key, i)
	}
	assigned, err := s.indexer.ClaimIndexForKey(key)
	if err != nil {
		return 0, err
	}
	i := assigned.Index()

	m, err := sparse.NewMatrix[T](s.vertexCapacity, s.opts.matrixOptions()...)
	if err != nil {
		if ferr := s.indexer.Unclaim(assigned); ferr != nil {
			return 0, errs.Logic("roll back edge type index %d: %v", i, ferr)
		}
		return 0, errs.FromBackend(err, "allocate adjacency matrix for edge type %q", key)
	}

	for len(s.matrices) <= int(i) {
		s.matrices = append(s.matrices, nil)
	}
	s.matrices[i] = m
	return i, nil
}

// DropEdgeType frees the edge type and its matrix. The slot stays in place.
func (s *Store[T]) DropEdgeType(key string) error {
	i, err := s.EdgeTypeIndex(key)
	if err != nil {
		return err
	}
	if err := s.indexer.FreeIndex(i); err != nil {
		return err
	}
	if int(i) < len(s.matrices) && s.matrices[i] != nil {
		s.matrices[i].Free()
		s.matrices[i] = nil
	}
	return nil
}

// AdjacencyMatrix returns the matrix of edge type i. The matrix is owned by
// the store and must not be resized by the caller.
func (s *Store[T]) AdjacencyMatrix(i indexer.Index) (*sparse.Matrix[T], error) {
	if !s.indexer.IsValidIndex(i) {
		return nil, errs.User(errs.CodeEdgeTypeMustExist, "no edge type at index %d", i)
	}
	if int(i) >= len(s.matrices) || s.matrices[i] == nil {
		return nil, errs.Logic("edge type index %d is valid but has no adjacency matrix", i)
	}
	return s.matrices[i], nil
}

// AdjacencyMatrixForKey returns the matrix of the edge type named key.
func (s *Store[T]) AdjacencyMatrixForKey(key string) (*sparse.Matrix[T], error) {
	i, err := s.EdgeTypeIndex(key)
	if err != nil {
		return nil, err
	}
	return s.AdjacencyMatrix(i)
}

func (s *Store[T]) checkVertices(m *sparse.Matrix[T], source, target indexer.Index) error {
	if int(source) >= m.Dimension() {
		return errs.User(errs.CodeIndexOutOfBounds, "source vertex index %d exceeds dimension %d", source, m.Dimension())
	}
	if int(target) >= m.Dimension() {
		return errs.User(errs.CodeIndexOutOfBounds, "target vertex index %d exceeds dimension %d", target, m.Dimension())
	}
	return nil
}

// AddEdge sets the edge source→target of edge type et to weight, replacing
// any previous edge of that type between the pair.
func (s *Store[T]) AddEdge(et, source, target indexer.Index, weight T) error {
	m, err := s.AdjacencyMatrix(et)
	if err != nil {
		return err
	}
	if err := s.checkVertices(m, source, target); err != nil {
		return err
	}
	if err := m.Set(source, target, weight); err != nil {
		return errs.FromBackend(err, "set edge (%d, %d) of edge type %d", source, target, et)
	}
	return nil
}

// DeleteEdge removes the edge source→target of edge type et. Removing an
// absent edge is not an error.
func (s *Store[T]) DeleteEdge(et, source, target indexer.Index) error {
	m, err := s.AdjacencyMatrix(et)
	if err != nil {
		return err
	}
	m.Remove(source, target)
	return nil
}

// EdgeWeight returns the weight of the edge source→target of edge type et.
func (s *Store[T]) EdgeWeight(et, source, target indexer.Index) (T, bool, error) {
	m, err := s.AdjacencyMatrix(et)
	if err != nil {
		var zero T
		return zero, false, err
	}
	w, ok := m.Get(source, target)
	return w, ok, nil
}

// NumberOfEdges returns the number of edges over all live edge types.
func (s *Store[T]) NumberOfEdges() int {
	n := 0
	for i := range s.indexer.Indices() {
		if int(i) < len(s.matrices) && s.matrices[i] != nil {
			n += s.matrices[i].Cardinality()
		}
	}
	return n
}

// Free releases every matrix.
func (s *Store[T]) Free() {
	for i, m := range s.matrices {
		if m != nil {
			m.Free()
			s.matrices[i] = nil
		}
	}
}
