package bitset

import (
	"fmt"
	"math/bits"
	"sync/atomic"
)

// Atomic is a fixed size bit set whose bits can be set, cleared and tested
// concurrently without a structure-wide lock.
type Atomic struct {
	size  int64
	words []atomic.Uint64
}

// NewAtomic returns a bit set with size bits, all unset.
func NewAtomic(size int64) *Atomic {
	return &Atomic{
		size:  size,
		words: make([]atomic.Uint64, (size+63)/64),
	}
}

// Size returns the number of addressable bits.
func (b *Atomic) Size() int64 { return b.size }

// Get reports whether bit i is set.
func (b *Atomic) Get(i int64) bool {
	b.checkIndex(i)
	return b.words[i>>6].Load()&(1<<(uint64(i)&63)) != 0
}

// Set sets bit i.
func (b *Atomic) Set(i int64) {
	b.checkIndex(i)
	w, mask := &b.words[i>>6], uint64(1)<<(uint64(i)&63)
	for {
		old := w.Load()
		if old&mask != 0 || w.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

// Clear unsets bit i.
func (b *Atomic) Clear(i int64) {
	b.checkIndex(i)
	w, mask := &b.words[i>>6], uint64(1)<<(uint64(i)&63)
	for {
		old := w.Load()
		if old&mask == 0 || w.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

// GetAndClear unsets bit i and reports whether it was set before.
func (b *Atomic) GetAndClear(i int64) bool {
	b.checkIndex(i)
	w, mask := &b.words[i>>6], uint64(1)<<(uint64(i)&63)
	for {
		old := w.Load()
		if old&mask == 0 {
			return false
		}
		if w.CompareAndSwap(old, old&^mask) {
			return true
		}
	}
}

// AllSet reports whether every bit in [0, Size) is set. It is not atomic
// with respect to concurrent writers.
func (b *Atomic) AllSet() bool {
	if b.size == 0 {
		return true
	}
	full := len(b.words)
	if rem := b.size & 63; rem != 0 {
		full--
		if mask := uint64(1)<<uint64(rem) - 1; b.words[full].Load()&mask != mask {
			return false
		}
	}
	for i := 0; i < full; i++ {
		if b.words[i].Load() != ^uint64(0) {
			return false
		}
	}
	return true
}

// Cardinality returns the number of set bits.
func (b *Atomic) Cardinality() int64 {
	var n int
	for i := range b.words {
		n += bits.OnesCount64(b.words[i].Load())
	}
	return int64(n)
}

// ClearAll unsets every bit.
func (b *Atomic) ClearAll() {
	for i := range b.words {
		b.words[i].Store(0)
	}
}

// Release drops the backing words. The set must not be used afterwards.
func (b *Atomic) Release() {
	b.words = nil
	b.size = 0
}

func (b *Atomic) checkIndex(i int64) {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("bitset: index %d out of range [0, %d)", i, b.size))
	}
}
