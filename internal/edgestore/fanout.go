package edgestore

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/indexer"
	"github.com/hupe1980/sparsegraph/internal/sparse"
)

// liveMatrices returns the matrices of every live edge type.
func (s *Store[T]) liveMatrices() ([]*sparse.Matrix[T], error) {
	live := make([]*sparse.Matrix[T], 0, s.indexer.Len())
	for i := range s.indexer.Indices() {
		if int(i) >= len(s.matrices) || s.matrices[i] == nil {
			return nil, errs.Logic("edge type index %d is valid but has no adjacency matrix", i)
		}
		live = append(live, s.matrices[i])
	}
	return live, nil
}

// forEachLive applies fn to every live matrix in parallel. Matrices are
// independent, so no ordering is imposed. The first error is returned; work
// already done by other workers is kept and nothing is cancelled.
func (s *Store[T]) forEachLive(fn func(m *sparse.Matrix[T]) error) error {
	live, err := s.liveMatrices()
	if err != nil {
		return err
	}
	if len(live) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(s.opts.workers)
	for _, m := range live {
		g.Go(func() error {
			return fn(m)
		})
	}
	return g.Wait()
}

// ResizeAll grows every live matrix to newVertexCapacity. Resizing is
// idempotent per matrix, so after a failure some matrices may already be
// resized and the call can simply be repeated. The store's vertex capacity
// only advances once every matrix succeeded.
func (s *Store[T]) ResizeAll(newVertexCapacity int) error {
	if newVertexCapacity <= s.vertexCapacity {
		return nil
	}
	err := s.forEachLive(func(m *sparse.Matrix[T]) error {
		return m.Resize(newVertexCapacity)
	})
	if err != nil {
		return errs.FromBackend(err, "resize %s adjacency matrices to %d", s.Kind(), newVertexCapacity)
	}
	s.vertexCapacity = newVertexCapacity
	return nil
}

// DeleteVertexConnections removes every edge touching vertex v, in both
// directions and across all live edge types, and returns how many edges were
// removed.
func (s *Store[T]) DeleteVertexConnections(v indexer.Index) (int, error) {
	var removed atomic.Int64
	err := s.forEachLive(func(m *sparse.Matrix[T]) error {
		n := m.ClearRow(v)
		n += m.ClearColumn(v)
		removed.Add(int64(n))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(removed.Load()), nil
}
