// Package average provides an O(1) streaming moving-average filter.
//
// A [Filter] keeps the last Len() samples in a ring buffer together with
// their running sum. Each update subtracts the evicted sample and adds the
// new one, so the cost per sample does not depend on the window length.
//
// The element type selects the arithmetic: integer instantiations divide
// with Go's truncating integer division, float instantiations divide exactly.
// The running sum is held in the element type, so integer callers must pick
// a type wide enough for Len() times their largest sample.
package average
