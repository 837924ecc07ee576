/*
   Paged arrays addressed by int64 indexes. Values are split across fixed
   size pages so that very large arrays never require a single contiguous
   allocation.
*/
package hugearray

import "fmt"

const (
	pageShift = 14
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
)

// Array is a fixed capacity paged array. Concurrent Set calls for distinct
// indexes are safe; concurrent access to the same index is not.
type Array[T any] struct {
	size  int64
	pages [][]T
}

// New allocates an array that holds size zero values.
func New[T any](size int64) *Array[T] {
	if size < 0 {
		panic(fmt.Sprintf("hugearray: negative size %d", size))
	}

	numPages := (size + pageMask) >> pageShift
	pages := make([][]T, numPages)
	for i := range pages {
		n := int64(pageSize)
		if last := int64(i) == numPages-1; last && size&pageMask != 0 {
			n = size & pageMask
		}
		pages[i] = make([]T, n)
	}
	return &Array[T]{size: size, pages: pages}
}

// Size returns the capacity of the array.
func (a *Array[T]) Size() int64 { return a.size }

func (a *Array[T]) Get(index int64) T {
	a.checkIndex(index)
	return a.pages[index>>pageShift][index&pageMask]
}

func (a *Array[T]) Set(index int64, v T) {
	a.checkIndex(index)
	a.pages[index>>pageShift][index&pageMask] = v
}

// Swap stores v at index and returns the previous value.
func (a *Array[T]) Swap(index int64, v T) T {
	a.checkIndex(index)
	page := a.pages[index>>pageShift]
	old := page[index&pageMask]
	page[index&pageMask] = v
	return old
}

// Fill assigns v to every index.
func (a *Array[T]) Fill(v T) {
	for _, page := range a.pages {
		for i := range page {
			page[i] = v
		}
	}
}

// SetRange assigns fn(i) to every index i in [start, end).
func (a *Array[T]) SetRange(start, end int64, fn func(index int64) T) {
	for i := start; i < end; i++ {
		a.Set(i, fn(i))
	}
}

// Release drops the backing pages. The array must not be used afterwards.
func (a *Array[T]) Release() {
	a.pages = nil
	a.size = 0
}

func (a *Array[T]) checkIndex(index int64) {
	if index < 0 || index >= a.size {
		panic(fmt.Sprintf("hugearray: index %d out of range [0, %d)", index, a.size))
	}
}
