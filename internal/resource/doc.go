// Package resource implements the Controller for shared limits.
//
// The Controller governs two resources:
//
//   - Memory: Track and limit the memory charged by sparse vectors and
//     matrices (non-blocking, fail-fast)
//   - Concurrency: The number of workers used when every adjacency matrix
//     of an edge store is resized in parallel
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(1024*1024); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(1024*1024)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. Resize workers of one
// fan-out acquire memory concurrently.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
