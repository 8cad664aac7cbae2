package average

import (
	"fmt"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
	"github.com/cwbudde/algo-ringdsp/dsp/ring"
)

// Filter is a moving-average filter over the last Len() samples.
// The running sum always equals the sum of the ring contents.
type Filter[T core.Number] struct {
	ring *ring.Buffer[T]
	sum  T
}

// New returns a moving-average filter averaging capacity samples.
// The window starts zero-filled.
func New[T core.Number](capacity int) (*Filter[T], error) {
	r, err := ring.New[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("average: %w", err)
	}
	return &Filter[T]{ring: r}, nil
}

// Update inserts x and returns the mean of the current window.
func (f *Filter[T]) Update(x T) T {
	evicted := f.ring.Insert(x)
	f.sum = f.sum - evicted + x
	return f.sum / T(f.ring.Len())
}

// ProcessBlock replaces every sample in buf with its filtered value.
func (f *Filter[T]) ProcessBlock(buf []T) {
	for i, x := range buf {
		buf[i] = f.Update(x)
	}
}

// Sum returns the running sum of the window.
func (f *Filter[T]) Sum() T {
	return f.sum
}

// Len returns the number of samples averaged.
func (f *Filter[T]) Len() int {
	return f.ring.Len()
}

// Window returns the window contents newest-first, reusing dst.
func (f *Filter[T]) Window(dst []T) []T {
	return f.ring.Snapshot(dst)
}

// Reset clears the window and the running sum.
func (f *Filter[T]) Reset() {
	f.ring.Reset()
	f.sum = 0
}
