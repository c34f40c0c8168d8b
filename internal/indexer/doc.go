// Package indexer allocates dense, stable integer indices to keys.
//
// An Indexer owns three structures:
//
//   - a validity Mask (roaring bitmap) with one bit per allocated slot,
//     true iff the slot holds live data
//   - a one-to-one key→index map
//   - a FIFO free list of released indices
//
// Claiming an index reuses the head of the free list before appending at
// the high-water mark, so capacity only grows with the number of
// concurrently live indices. When an append crosses the mask's allocated
// size the mask doubles and the claim reports the new capacity; dependent
// storage (value vectors, adjacency matrices) must be grown by the caller.
//
// Freeing an index never touches dependent storage. Stale values stay
// where they are and are gated by the mask until the slot is reused.
package indexer
