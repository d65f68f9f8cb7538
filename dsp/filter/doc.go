// Package filter provides the stateless coefficient math and minimal
// stateful filter primitives used by the voice processing chain: an RBJ
// peaking-EQ biquad and one-pole RC high/low-pass filters.
//
// All filters here are sequential recurrences: sample n depends on the
// filter state left behind by sample n-1. Blocks must therefore be
// processed by a single logical thread per filter instance; parallelism
// belongs on the buffer/session axis, never inside one block.
package filter
