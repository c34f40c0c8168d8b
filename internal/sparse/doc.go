// Package sparse provides the sparse linear-algebra containers the graph
// stores are built on.
//
// A Vector holds at most one scalar per index, a Matrix is square and holds
// at most one scalar per coordinate. Both are homogeneous in their scalar
// kind, grow in place and never shrink, and report their cardinality (the
// number of populated elements) in O(1).
//
// # Memory Accounting
//
// Containers charge the memory that is proportional to their dimension to an
// optional MemoryAcquirer (see WithMemoryAcquirer). A failed acquisition
// leaves the container unchanged and is returned to the caller. Free
// releases everything a container has acquired.
//
// # Thread Safety
//
// Containers are not safe for concurrent mutation. Distinct containers may be
// mutated from different goroutines, which is what the edge store's parallel
// resize relies on.
package sparse
