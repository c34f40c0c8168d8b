package sparsegraph

import (
	"github.com/hupe1980/sparsegraph/internal/indexer"
	"github.com/hupe1980/sparsegraph/internal/resource"
	"github.com/hupe1980/sparsegraph/internal/sparse"
)

// Index identifies a vertex or an edge type within its store. Indices are
// dense, stable while live and reused after deletion.
type Index = indexer.Index

// Scalar is the set of value and weight types a Graph can store.
type Scalar = sparse.Scalar

// Kind names a scalar type.
type Kind = sparse.Kind

const (
	KindNone    = sparse.KindNone
	KindBool    = sparse.KindBool
	KindInt8    = sparse.KindInt8
	KindInt16   = sparse.KindInt16
	KindInt32   = sparse.KindInt32
	KindInt64   = sparse.KindInt64
	KindInt     = sparse.KindInt
	KindUint8   = sparse.KindUint8
	KindUint16  = sparse.KindUint16
	KindUint32  = sparse.KindUint32
	KindUint64  = sparse.KindUint64
	KindUint    = sparse.KindUint
	KindFloat32 = sparse.KindFloat32
	KindFloat64 = sparse.KindFloat64
)

// KindOf returns the Kind of T.
func KindOf[T Scalar]() Kind { return sparse.KindOf[T]() }

// ParseKind resolves a Kind from its name ("int32", "float64", ...).
func ParseKind(name string) (Kind, error) { return sparse.ParseKind(name) }

// Matrix is a square sparse adjacency matrix. Element (i, j) holds the
// weight of the edge from vertex i to vertex j.
type Matrix[T Scalar] = sparse.Matrix[T]

// Coordinate addresses a Matrix element.
type Coordinate = sparse.Coordinate

// ResourceController tracks and limits memory charged by sparse storage and
// bounds the resize fan-out. It is safe for concurrent use.
type ResourceController = resource.Controller

// ResourceConfig configures a ResourceController.
type ResourceConfig = resource.Config

// NewResourceController creates a controller shareable between graphs.
func NewResourceController(cfg ResourceConfig) *ResourceController {
	return resource.NewController(cfg)
}
