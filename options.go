package sparsegraph

import (
	"log/slog"

	"github.com/hupe1980/sparsegraph/internal/resource"
)

const (
	// DefaultVertexCapacity is the initial vertex capacity of a new Graph.
	DefaultVertexCapacity = 256

	// DefaultEdgeTypeCapacity is the initial number of edge type slots per
	// weight kind.
	DefaultEdgeTypeCapacity = 256
)

type options struct {
	vertexCapacity   int
	edgeTypeCapacity int
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	memoryLimit      int64
	resizeWorkers    int
}

// Option configures Graph construction.
type Option func(*options)

// WithInitialVertexCapacity sets the number of vertex slots allocated up
// front. The capacity doubles whenever it is exhausted.
func WithInitialVertexCapacity(n int) Option {
	return func(o *options) {
		o.vertexCapacity = n
	}
}

// WithInitialEdgeTypeCapacity sets the number of edge type slots allocated
// up front for each weight kind.
func WithInitialEdgeTypeCapacity(n int) Option {
	return func(o *options) {
		o.edgeTypeCapacity = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sparsegraph.BasicMetricsCollector{}
//	g, _ := sparsegraph.New(sparsegraph.WithMetricsCollector(metrics))
//	// ... use g ...
//	stats := metrics.GetStats()
//	fmt.Printf("Vertices added: %d, resizes: %d\n", stats.AddVertexCount, stats.ResizeCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sparsegraph.NewJSONLogger(slog.LevelInfo)
//	g, _ := sparsegraph.New(sparsegraph.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController charges the graph's sparse storage to rc. One
// controller may be shared by several graphs to enforce a joint memory limit.
// The controller's limit replaces WithMemoryLimit. Its fan-out width is used
// unless WithResizeWorkers sets one for this graph.
func WithResourceController(rc *ResourceController) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMemoryLimit caps the memory charged by the graph's vectors and
// matrices. Inserts that would need more fail with ErrResourceExhausted.
// 0 disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithResizeWorkers bounds the number of adjacency matrices resized or
// cleared concurrently. 0 selects the resource controller's width, which
// defaults to GOMAXPROCS.
func WithResizeWorkers(n int) Option {
	return func(o *options) {
		o.resizeWorkers = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		vertexCapacity:   DefaultVertexCapacity,
		edgeTypeCapacity: DefaultEdgeTypeCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.resources == nil {
		o.resources = resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxResizeWorkers: o.resizeWorkers,
		})
	}
	return o
}
