// Package sparsegraph provides an in-memory property graph stored as sparse
// linear-algebra structures.
//
// Vertices are addressed by string keys and mapped to dense, reusable
// integer indices. Every vertex may carry one scalar value; values of the
// same kind live in one sparse vector. Edges are typed and weighted: every
// edge type owns a square sparse adjacency matrix over the vertex index
// space, so graph traversals reduce to sparse matrix operations.
//
// # Quick Start
//
//	g, _ := sparsegraph.New()
//	defer g.Close()
//
//	sparsegraph.AddVertex(g, "alice", int32(42))
//	sparsegraph.AddVertex(g, "bob", int32(7))
//
//	sparsegraph.AddEdgeType[float64](g, "knows")
//	sparsegraph.AddEdge(g, "knows", "alice", "bob", 0.9)
//
//	m, _ := sparsegraph.AdjacencyMatrix[float64](g, "knows")
//	for c, w := range m.All() {
//	    fmt.Println(c.Row, c.Col, w)
//	}
//
// Methods cannot be generic in Go, so operations that depend on a value or
// weight kind are package functions taking the Graph as first argument.
//
// # Index Space
//
// Deleting a vertex frees its index; the next insert reuses freed indices in
// the order they were freed before the index space grows. When it does grow,
// the capacity doubles and every value vector and adjacency matrix is
// resized before the inserting call returns. Adjacency matrices are resized
// in parallel.
//
// # Errors
//
// Every error is an *Error classified by ErrorKindOf: caller mistakes are
// ErrorKindUser, broken engine invariants ErrorKindLogic, and memory limit
// or backend failures ErrorKindSystem. Use errors.Is with the Err* sentinels
// to test for a specific condition.
//
// # Concurrency
//
// A Graph has a single writer. Readers may run concurrently only while no
// mutation is in flight.
package sparsegraph
