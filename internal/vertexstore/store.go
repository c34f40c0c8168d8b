// Package vertexstore stores one scalar value per vertex index.
//
// A Store pairs an Indexer with a sparse value vector of a single scalar
// kind. Several stores may share one Indexer so that every kind agrees on
// the same vertex index space while each only pays for its own values.
package vertexstore

import (
	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/indexer"
	"github.com/hupe1980/sparsegraph/internal/sparse"
)

// Store holds the values of kind T.
type Store[T sparse.Scalar] struct {
	indexer *indexer.Indexer
	values  *sparse.Vector[T]
}

// New creates a store over idx. The value vector is sized to the indexer's
// current capacity.
func New[T sparse.Scalar](idx *indexer.Indexer, opts ...sparse.Option) (*Store[T], error) {
	values, err := sparse.NewVector[T](idx.Capacity(), opts...)
	if err != nil {
		return nil, errs.FromBackend(err, "allocate %s value vector", sparse.KindOf[T]())
	}
	return &Store[T]{indexer: idx, values: values}, nil
}

// Kind returns the scalar kind of the store.
func (s *Store[T]) Kind() sparse.Kind { return sparse.KindOf[T]() }

// Indexer returns the indexer the store allocates from.
func (s *Store[T]) Indexer() *indexer.Indexer { return s.indexer }

// Capacity returns the size of the value vector.
func (s *Store[T]) Capacity() int { return s.values.Size() }

// Len returns the number of valid indices of the underlying indexer.
func (s *Store[T]) Len() int { return s.indexer.Len() }

// AddNew claims a fresh index for key and stores value there.
func (s *Store[T]) AddNew(key string, value T) (indexer.AssignedIndex, error) {
	assigned, err := s.indexer.ClaimIndexForKey(key)
	if err != nil {
		return indexer.AssignedIndex{}, err
	}
	if err := s.write(assigned, value); err != nil {
		return indexer.AssignedIndex{}, err
	}
	return assigned, nil
}

// AddOrReplace stores value under key, keeping the index of an existing key.
func (s *Store[T]) AddOrReplace(key string, value T) (indexer.AssignedIndex, error) {
	assigned, err := s.indexer.ReassignIndex(key)
	if err != nil {
		return indexer.AssignedIndex{}, err
	}
	if err := s.write(assigned, value); err != nil {
		return indexer.AssignedIndex{}, err
	}
	return assigned, nil
}

// AddOrUpdate is AddOrReplace that additionally reports whether a new index
// was allocated. Only a new index can grow the index space.
func (s *Store[T]) AddOrUpdate(key string, value T) (indexer.AssignedIndex, bool, error) {
	if i, ok := s.indexer.IndexForKey(key); ok {
		if err := s.set(i, value); err != nil {
			return indexer.AssignedIndex{}, false, err
		}
		return indexer.Existing(i), false, nil
	}
	assigned, err := s.AddNew(key, value)
	if err != nil {
		return indexer.AssignedIndex{}, false, err
	}
	return assigned, true, nil
}

// write stores value at a claimed index. A fresh claim is undone if the
// value cannot be stored, including any growth of the index space.
func (s *Store[T]) write(assigned indexer.AssignedIndex, value T) error {
	err := s.set(assigned.Index(), value)
	if err != nil && assigned.IsNew() {
		if ferr := s.indexer.Unclaim(assigned); ferr != nil {
			return errs.Logic("roll back index %d after failed write: %v (write: %v)", assigned.Index(), ferr, err)
		}
	}
	return err
}

func (s *Store[T]) set(i indexer.Index, value T) error {
	if s.values.Size() < s.indexer.Capacity() {
		if err := s.Resize(s.indexer.Capacity()); err != nil {
			return err
		}
	}
	if err := s.values.Set(i, value); err != nil {
		return errs.FromBackend(err, "set value at index %d", i)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store[T]) Get(key string) (T, error) {
	i, ok := s.indexer.IndexForKey(key)
	if !ok {
		var zero T
		return zero, errs.User(errs.CodeVertexKeyNotFound, "no vertex for key %q", key)
	}
	return s.GetByIndex(i)
}

// GetByIndex returns the value stored at index i.
func (s *Store[T]) GetByIndex(i indexer.Index) (T, error) {
	var zero T
	if !s.indexer.IsValidIndex(i) {
		return zero, errs.User(errs.CodeIndexOutOfBounds, "no valid vertex at index %d", i)
	}
	v, ok := s.values.Get(i)
	if !ok {
		return zero, errs.Logic("valid index %d has no %s value", i, s.Kind())
	}
	return v, nil
}

// Delete frees index i. The value stays in the vector until the slot is
// reused.
func (s *Store[T]) Delete(i indexer.Index) error {
	return s.indexer.FreeIndex(i)
}

// Forget removes the value at index i without freeing the index. Used when a
// vertex changes kind and its value moves to another store.
func (s *Store[T]) Forget(i indexer.Index) {
	s.values.Remove(i)
}

// Resize grows the value vector. It never shrinks.
func (s *Store[T]) Resize(newCapacity int) error {
	if err := s.values.Resize(newCapacity); err != nil {
		return errs.FromBackend(err, "resize %s value vector to %d", s.Kind(), newCapacity)
	}
	return nil
}

// Free releases the value vector.
func (s *Store[T]) Free() {
	s.values.Free()
}
