package edgestore

import (
	"runtime"

	"github.com/hupe1980/sparsegraph/internal/sparse"
)

type options struct {
	workers  int
	acquirer sparse.MemoryAcquirer
}

// Option configures a Store.
type Option func(*options)

// WithResizeWorkers bounds the number of matrices processed concurrently by
// ResizeAll and DeleteVertexConnections. Values <= 0 select GOMAXPROCS.
func WithResizeWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryAcquirer charges the matrices' memory to acquirer.
func WithMemoryAcquirer(acquirer sparse.MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

func (o *options) matrixOptions() []sparse.Option {
	if o.acquirer == nil {
		return nil
	}
	return []sparse.Option{sparse.WithMemoryAcquirer(o.acquirer)}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
