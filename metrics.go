package sparsegraph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addVertexCounter prometheus.Counter
//	    resizeHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAddVertex(duration time.Duration, err error) {
//	    p.addVertexCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAddVertex is called after each vertex insert or upsert.
	// duration is the total time taken including capacity propagation,
	// err is nil if successful.
	RecordAddVertex(duration time.Duration, err error)

	// RecordDeleteVertex is called after each vertex deletion.
	// edgesRemoved counts the edges cleared across all edge types.
	RecordDeleteVertex(edgesRemoved int, duration time.Duration, err error)

	// RecordAddEdge is called after each edge insert.
	RecordAddEdge(duration time.Duration, err error)

	// RecordDeleteEdge is called after each edge deletion.
	RecordDeleteEdge(duration time.Duration, err error)

	// RecordResize is called after each vertex capacity propagation.
	// from and to are the vertex capacities before and after.
	RecordResize(from, to int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAddVertex(time.Duration, error)         {}
func (NoopMetricsCollector) RecordDeleteVertex(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordAddEdge(time.Duration, error)           {}
func (NoopMetricsCollector) RecordDeleteEdge(time.Duration, error)        {}
func (NoopMetricsCollector) RecordResize(int, int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddVertexCount      atomic.Int64
	AddVertexErrors     atomic.Int64
	AddVertexTotalNanos atomic.Int64
	DeleteVertexCount   atomic.Int64
	DeleteVertexErrors  atomic.Int64
	EdgesRemoved        atomic.Int64
	AddEdgeCount        atomic.Int64
	AddEdgeErrors       atomic.Int64
	DeleteEdgeCount     atomic.Int64
	DeleteEdgeErrors    atomic.Int64
	ResizeCount         atomic.Int64
	ResizeErrors        atomic.Int64
	ResizeTotalNanos    atomic.Int64
	VertexCapacity      atomic.Int64
}

// RecordAddVertex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAddVertex(duration time.Duration, err error) {
	b.AddVertexCount.Add(1)
	b.AddVertexTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddVertexErrors.Add(1)
	}
}

// RecordDeleteVertex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeleteVertex(edgesRemoved int, duration time.Duration, err error) {
	b.DeleteVertexCount.Add(1)
	b.EdgesRemoved.Add(int64(edgesRemoved))
	if err != nil {
		b.DeleteVertexErrors.Add(1)
	}
}

// RecordAddEdge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAddEdge(duration time.Duration, err error) {
	b.AddEdgeCount.Add(1)
	if err != nil {
		b.AddEdgeErrors.Add(1)
	}
}

// RecordDeleteEdge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeleteEdge(duration time.Duration, err error) {
	b.DeleteEdgeCount.Add(1)
	if err != nil {
		b.DeleteEdgeErrors.Add(1)
	}
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(from, to int, duration time.Duration, err error) {
	b.ResizeCount.Add(1)
	b.ResizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ResizeErrors.Add(1)
		return
	}
	b.VertexCapacity.Store(int64(to))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddVertexCount:     b.AddVertexCount.Load(),
		AddVertexErrors:    b.AddVertexErrors.Load(),
		AddVertexAvgNanos:  avg(b.AddVertexTotalNanos.Load(), b.AddVertexCount.Load()),
		DeleteVertexCount:  b.DeleteVertexCount.Load(),
		DeleteVertexErrors: b.DeleteVertexErrors.Load(),
		EdgesRemoved:       b.EdgesRemoved.Load(),
		AddEdgeCount:       b.AddEdgeCount.Load(),
		AddEdgeErrors:      b.AddEdgeErrors.Load(),
		DeleteEdgeCount:    b.DeleteEdgeCount.Load(),
		DeleteEdgeErrors:   b.DeleteEdgeErrors.Load(),
		ResizeCount:        b.ResizeCount.Load(),
		ResizeErrors:       b.ResizeErrors.Load(),
		ResizeAvgNanos:     avg(b.ResizeTotalNanos.Load(), b.ResizeCount.Load()),
		VertexCapacity:     b.VertexCapacity.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddVertexCount     int64
	AddVertexErrors    int64
	AddVertexAvgNanos  int64
	DeleteVertexCount  int64
	DeleteVertexErrors int64
	EdgesRemoved       int64
	AddEdgeCount       int64
	AddEdgeErrors      int64
	DeleteEdgeCount    int64
	DeleteEdgeErrors   int64
	ResizeCount        int64
	ResizeErrors       int64
	ResizeAvgNanos     int64
	VertexCapacity     int64
}
