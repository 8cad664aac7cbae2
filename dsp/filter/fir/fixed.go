package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
	"github.com/cwbudde/algo-ringdsp/dsp/ring"
)

// MaxShift is the largest accepted accumulator shift.
const MaxShift = 31

// Fixed is a fixed-point FIR filter. Products are accumulated in 64 bits and
// the sum is arithmetically shifted right by Shift() bits before it is
// narrowed back to int32.
type Fixed struct {
	coeffs []int32
	shift  uint
	ring   *ring.Buffer[int32]
}

// NewFixed returns a fixed-point filter holding capacity samples.
// len(coeffs) must equal capacity and shift must lie in [0, MaxShift].
func NewFixed(capacity int, coeffs []int32, shift int) (*Fixed, error) {
	r, err := ring.New[int32](capacity)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}
	if len(coeffs) != capacity {
		return nil, fmt.Errorf("fir: %w: %d coefficients for capacity %d",
			core.ErrConfiguration, len(coeffs), capacity)
	}
	if shift < 0 || shift > MaxShift {
		return nil, fmt.Errorf("fir: %w: shift must be in [0,%d]: %d",
			core.ErrConfiguration, MaxShift, shift)
	}
	c := make([]int32, len(coeffs))
	copy(c, coeffs)
	return &Fixed{coeffs: c, shift: uint(shift), ring: r}, nil
}

// Update inserts x and returns the scaled filter output.
//
// The shift rounds toward negative infinity: -3 >> 1 is -2. Shifted sums
// outside the int32 range saturate to math.MinInt32 or math.MaxInt32.
func (f *Fixed) Update(x int32) int32 {
	f.ring.Insert(x)
	var acc int64
	k := 0
	for v := range f.ring.All() {
		acc += int64(f.coeffs[k]) * int64(v)
		k++
	}
	acc >>= f.shift
	return int32(min(max(acc, math.MinInt32), math.MaxInt32))
}

// ProcessBlock replaces every sample in buf with its filtered value.
func (f *Fixed) ProcessBlock(buf []int32) {
	for i, x := range buf {
		buf[i] = f.Update(x)
	}
}

// Len returns the tap count.
func (f *Fixed) Len() int {
	return len(f.coeffs)
}

// Shift returns the accumulator right shift.
func (f *Fixed) Shift() int {
	return int(f.shift)
}

// Coefficients returns a copy of the filter coefficients.
func (f *Fixed) Coefficients() []int32 {
	c := make([]int32, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Reset clears the sample history.
func (f *Fixed) Reset() {
	f.ring.Reset()
}
