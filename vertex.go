package sparsegraph

import (
	"time"

	"github.com/hupe1980/sparsegraph/internal/errs"
	"github.com/hupe1980/sparsegraph/internal/indexer"
)

type writeMode uint8

const (
	writeNew writeMode = iota
	writeReplace
	writeUpdate
)

// AddVertex inserts a vertex with a value of kind T. It fails with
// ErrKeyAlreadyExists if key is already present, whatever the kind of its
// value.
func AddVertex[T Scalar](g *Graph, key string, value T) (Index, error) {
	a, err := recordAddVertex(g, key, value, writeNew)
	return a.Index(), err
}

// AddOrReplaceVertex stores value under key. An existing vertex keeps its
// index; its value, and kind, are replaced.
func AddOrReplaceVertex[T Scalar](g *Graph, key string, value T) (Index, error) {
	a, err := recordAddVertex(g, key, value, writeReplace)
	return a.Index(), err
}

// AddOrUpdateVertex is AddOrReplaceVertex that also reports whether the
// vertex was created.
func AddOrUpdateVertex[T Scalar](g *Graph, key string, value T) (Index, bool, error) {
	a, err := recordAddVertex(g, key, value, writeUpdate)
	return a.Index(), a.IsNew(), err
}

func recordAddVertex[T Scalar](g *Graph, key string, value T, mode writeMode) (indexer.AssignedIndex, error) {
	start := time.Now()
	a, err := addVertex(g, key, value, mode)
	g.metrics.RecordAddVertex(time.Since(start), err)
	g.logger.LogAddVertex(key, KindOf[T](), a.Index(), err)
	return a, err
}

func addVertex[T Scalar](g *Graph, key string, value T, mode writeMode) (indexer.AssignedIndex, error) {
	prev := KindNone
	if i, ok := g.vertices.IndexForKey(key); ok {
		if mode == writeNew {
			return indexer.AssignedIndex{}, errs.User(errs.CodeKeyAlreadyExists, "key %q already exists at index %d", key, i)
		}
		prev = g.kindAt(i)
	}

	vs, err := valuesOf[T](g)
	if err != nil {
		return indexer.AssignedIndex{}, err
	}

	var a indexer.AssignedIndex
	switch mode {
	case writeNew:
		a, err = vs.AddNew(key, value)
	case writeReplace:
		a, err = vs.AddOrReplace(key, value)
	case writeUpdate:
		a, _, err = vs.AddOrUpdate(key, value)
	}
	if err != nil {
		return indexer.AssignedIndex{}, err
	}

	if err := g.commitVertex(a, prev, KindOf[T]()); err != nil {
		return indexer.AssignedIndex{}, err
	}
	return a, nil
}

// commitVertex finishes an insert. A new vertex at or beyond the propagated
// capacity first grows every dependent structure; then the vertex kind is
// recorded. If either step fails the claim is undone, so the index space
// is back at the propagated capacity and later inserts are unaffected.
func (g *Graph) commitVertex(a indexer.AssignedIndex, prev, kind Kind) error {
	i := a.Index()
	if a.IsNew() {
		var err error
		if int(i) >= g.capacity {
			err = g.propagateCapacity()
		}
		if err == nil {
			err = g.setKind(i, kind)
		}
		if err != nil {
			if vs := g.values[kind]; vs != nil {
				vs.Forget(i)
			}
			if uerr := g.vertices.Unclaim(a); uerr != nil {
				return errs.Logic("roll back vertex %d: %v (insert: %v)", i, uerr, err)
			}
			return err
		}
		return nil
	}

	if prev != kind {
		if old := g.values[prev]; old != nil {
			old.Forget(i)
		}
	}
	return g.setKind(i, kind)
}

// AddVertexKey inserts a vertex that carries no value.
func (g *Graph) AddVertexKey(key string) (Index, error) {
	return g.recordAddVertexKey(key, false)
}

// AddOrReplaceVertexKey makes key a vertex without value. An existing
// vertex keeps its index and drops its value.
func (g *Graph) AddOrReplaceVertexKey(key string) (Index, error) {
	return g.recordAddVertexKey(key, true)
}

func (g *Graph) recordAddVertexKey(key string, replace bool) (Index, error) {
	start := time.Now()
	a, err := g.addVertexKey(key, replace)
	g.metrics.RecordAddVertex(time.Since(start), err)
	g.logger.LogAddVertex(key, KindNone, a.Index(), err)
	return a.Index(), err
}

func (g *Graph) addVertexKey(key string, replace bool) (indexer.AssignedIndex, error) {
	prev := KindNone
	var a indexer.AssignedIndex
	if i, ok := g.vertices.IndexForKey(key); ok && replace {
		prev = g.kindAt(i)
		a = indexer.Existing(i)
	} else {
		var err error
		if a, err = g.vertices.ClaimIndexForKey(key); err != nil {
			return indexer.AssignedIndex{}, err
		}
	}
	if err := g.commitVertex(a, prev, KindNone); err != nil {
		return indexer.AssignedIndex{}, err
	}
	return a, nil
}

// VertexValue returns the value of the vertex key.
func VertexValue[T Scalar](g *Graph, key string) (T, error) {
	i, ok := g.vertices.IndexForKey(key)
	if !ok {
		var zero T
		return zero, errs.User(errs.CodeVertexKeyNotFound, "no vertex for key %q", key)
	}
	v, err := VertexValueByIndex[T](g, i)
	if errs.CodeOf(err) == errs.CodeIndexOutOfBounds {
		return v, errs.Logic("key %q maps to invalid vertex index %d", key, i)
	}
	return v, err
}

// VertexValueByIndex returns the value of the vertex at index i.
func VertexValueByIndex[T Scalar](g *Graph, i Index) (T, error) {
	var zero T
	if !g.vertices.IsValidIndex(i) {
		return zero, errs.User(errs.CodeIndexOutOfBounds, "no vertex at index %d", i)
	}
	if kind := g.kindAt(i); kind != KindOf[T]() {
		return zero, errs.User(errs.CodeVertexKindMismatch, "vertex %d holds %s, not %s", i, kind, KindOf[T]())
	}
	vs := lookupValues[T](g)
	if vs == nil {
		return zero, errs.Logic("vertex %d is of kind %s but no such value store exists", i, KindOf[T]())
	}
	return vs.GetByIndex(i)
}

// VertexIndex resolves a vertex key.
func (g *Graph) VertexIndex(key string) (Index, error) {
	i, ok := g.vertices.IndexForKey(key)
	if !ok {
		return 0, errs.User(errs.CodeVertexKeyNotFound, "no vertex for key %q", key)
	}
	return i, nil
}

// VertexKey returns the key of the vertex at index i.
func (g *Graph) VertexKey(i Index) (string, error) {
	if !g.vertices.IsValidIndex(i) {
		return "", errs.User(errs.CodeIndexOutOfBounds, "no vertex at index %d", i)
	}
	key, ok := g.vertices.KeyForIndex(i)
	if !ok {
		return "", errs.Logic("valid vertex index %d has no key", i)
	}
	return key, nil
}

// VertexKind returns the kind of the value held by vertex key, or KindNone
// for a vertex without value.
func (g *Graph) VertexKind(key string) (Kind, error) {
	i, err := g.VertexIndex(key)
	if err != nil {
		return KindNone, err
	}
	return g.kindAt(i), nil
}

// IsValidVertexKey reports whether key names a live vertex.
func (g *Graph) IsValidVertexKey(key string) bool {
	return g.vertices.IsValidKey(key)
}

// IsValidVertexIndex reports whether i is the index of a live vertex.
func (g *Graph) IsValidVertexIndex(i Index) bool {
	return g.vertices.IsValidIndex(i)
}

// DeleteVertex removes vertex key together with every edge touching it.
func (g *Graph) DeleteVertex(key string) error {
	i, err := g.VertexIndex(key)
	if err != nil {
		return err
	}
	return g.DeleteVertexByIndex(i)
}

// DeleteVertexByIndex removes the vertex at index i together with every edge
// touching it. The index becomes available for reuse.
func (g *Graph) DeleteVertexByIndex(i Index) error {
	start := time.Now()
	removed, err := g.deleteVertex(i)
	g.metrics.RecordDeleteVertex(removed, time.Since(start), err)
	g.logger.LogDeleteVertex(i, removed, err)
	return err
}

func (g *Graph) deleteVertex(i Index) (int, error) {
	if !g.vertices.IsValidIndex(i) {
		return 0, errs.User(errs.CodeIndexOutOfBounds, "no vertex at index %d", i)
	}
	removed := 0
	for _, es := range g.edges {
		if es == nil {
			continue
		}
		n, err := es.DeleteVertexConnections(i)
		removed += n
		if err != nil {
			return removed, err
		}
	}
	return removed, g.vertices.FreeIndex(i)
}
