// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's platform-dependent int and the fixed-width
// 32-bit index space used by the stores.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by a capacity that was already checked), use direct type
// casts instead to avoid overhead.
package conv
