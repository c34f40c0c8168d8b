// Package testutil provides testing utilities for sparsegraph.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and a generator of mixed vertex and
// edge workloads.
//
// # Workloads
//
//	rng := testutil.NewRNG(seed)
//	for _, op := range rng.Workload(1000, 64) {
//	    switch op.Kind {
//	    case testutil.OpAddVertex:
//	        // ...
//	    }
//	}
package testutil
