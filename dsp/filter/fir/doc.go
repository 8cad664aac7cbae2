// Package fir provides streaming direct-form FIR filters built on the
// shared ring buffer.
//
// [Fixed] is the integer path: int32 samples and coefficients, a 64-bit
// accumulator and a right shift that emulates a fractional coefficient
// scale. [Filter] is the real-valued path with float64 coefficients.
//
// In both, coefficient 0 multiplies the newest sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
//
// and the window starts zero-filled, so the first N-1 outputs see a partial
// history. Coefficient design is a separate concern.
package fir
