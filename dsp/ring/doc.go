// Package ring provides the fixed-capacity circular store shared by the
// streaming filters.
//
// A [Buffer] starts zero-filled and is mutated only by [Buffer.Insert],
// which overwrites the oldest slot and hands the evicted value back to the
// caller. The insertion cursor persists across calls, so the buffer always
// holds the last Len() inserted values (zeros until it has been primed).
//
// Buffers are not safe for concurrent use.
package ring
