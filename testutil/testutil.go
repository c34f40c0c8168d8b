package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Key returns the vertex key for ordinal i.
func Key(i int) string {
	return fmt.Sprintf("v%06d", i)
}

// Keys returns n distinct vertex keys.
func Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// OpKind is the kind of a generated operation.
type OpKind uint8

const (
	OpAddVertex OpKind = iota
	OpReplaceVertex
	OpDeleteVertex
	OpAddEdge
	OpDeleteEdge
)

func (k OpKind) String() string {
	switch k {
	case OpAddVertex:
		return "add-vertex"
	case OpReplaceVertex:
		return "replace-vertex"
	case OpDeleteVertex:
		return "delete-vertex"
	case OpAddEdge:
		return "add-edge"
	case OpDeleteEdge:
		return "delete-edge"
	default:
		return fmt.Sprintf("op(%d)", uint8(k))
	}
}

// Op is one generated graph operation. Vertex operations use Key; edge
// operations connect Key to Target.
type Op struct {
	Kind   OpKind
	Key    string
	Target string
	Value  int64
}

// Workload generates n operations over a key space of keySpace vertices.
// The mix favours inserts so the graph grows. Operations may refer to
// vertices that are absent at that point and callers are expected to
// handle the resulting errors.
func (r *RNG) Workload(n, keySpace int) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		op := Op{
			Key:   Key(r.rand.Intn(keySpace)),
			Value: r.rand.Int63n(1 << 20),
		}
		switch p := r.rand.Intn(100); {
		case p < 40:
			op.Kind = OpAddVertex
		case p < 50:
			op.Kind = OpReplaceVertex
		case p < 65:
			op.Kind = OpDeleteVertex
		case p < 90:
			op.Kind = OpAddEdge
			op.Target = Key(r.rand.Intn(keySpace))
		default:
			op.Kind = OpDeleteEdge
			op.Target = Key(r.rand.Intn(keySpace))
		}
		ops[i] = op
	}
	return ops
}
