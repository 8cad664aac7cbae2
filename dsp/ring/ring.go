package ring

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
)

// Buffer is a fixed-capacity circular store with a persisted insertion cursor.
//
// cursor always points at the slot the next Insert overwrites, which is the
// oldest value once the buffer has been filled.
type Buffer[T core.Number] struct {
	storage []T
	cursor  int
}

// New returns a zero-filled Buffer holding capacity values.
func New[T core.Number](capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("ring: %w: capacity must be > 0: %d", core.ErrConfiguration, capacity)
	}
	return &Buffer[T]{storage: make([]T, capacity)}, nil
}

// Len returns the buffer capacity.
func (b *Buffer[T]) Len() int {
	return len(b.storage)
}

// Insert stores v in the oldest slot, advances the cursor and returns the
// value that was overwritten.
func (b *Buffer[T]) Insert(v T) T {
	evicted := b.storage[b.cursor]
	b.storage[b.cursor] = v
	b.cursor++
	if b.cursor >= len(b.storage) {
		b.cursor = 0
	}
	return evicted
}

// Oldest returns the value the next Insert will evict.
func (b *Buffer[T]) Oldest() T {
	return b.storage[b.cursor]
}

// Newest returns the most recently inserted value.
func (b *Buffer[T]) Newest() T {
	return b.At(0)
}

// At returns the value k insertions back from the newest, so At(0) is the
// newest and At(Len()-1) the oldest. k wraps modulo Len().
func (b *Buffer[T]) At(k int) T {
	n := len(b.storage)
	p := (b.cursor - 1 - k%n) % n
	if p < 0 {
		p += n
	}
	return b.storage[p]
}

// All returns a sequence of exactly Len() values from the newest back to the
// oldest. The sequence reads the live buffer and can be ranged over again.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		n := len(b.storage)
		p := b.cursor
		for range n {
			p--
			if p < 0 {
				p = n - 1
			}
			if !yield(b.storage[p]) {
				return
			}
		}
	}
}

// Snapshot copies the contents newest-first into dst, reusing its capacity.
func (b *Buffer[T]) Snapshot(dst []T) []T {
	dst = core.EnsureLen(dst, len(b.storage))
	i := 0
	for v := range b.All() {
		dst[i] = v
		i++
	}
	return dst
}

// Reset zero-fills the storage and rewinds the cursor.
func (b *Buffer[T]) Reset() {
	core.Zero(b.storage)
	b.cursor = 0
}
