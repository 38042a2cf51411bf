// Package pq provides an array-backed binary min-heap priority queue.
//
// A Heap keeps the least element (according to the comparison it was
// built with) at the root at all times, giving O(1) Peek, O(log n) Push
// and Pop, and O(n) linear storage. It is meant as a building block for
// anything that repeatedly needs the smallest item of a changing set:
// schedulers picking the next due task, graph searches expanding the
// cheapest frontier node, k-way merges.
//
// The queue is not stable: elements that compare equal come out in no
// particular order. It is not safe for concurrent use; callers that
// share a Heap across goroutines must serialize access themselves. The
// operation counters (see Stats) are atomic, so a metrics scraper may
// read them without holding the caller's lock.
package pq

import (
	"errors"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

var ErrEmpty = errors.New("pq: empty priority queue")

// Heap is a binary min-heap over a slice. The element at index i has its
// parent at (i-1)/2 and its children at 2i+1 and 2i+2, so the tree is
// complete by construction: Push appends a leaf, Pop moves the last leaf
// into the vacated root. Growth of the backing slice is all-or-nothing
// (allocate, copy, commit), a partially moved heap is never observable.
type Heap[T any] struct {
	buf   []T
	less  func(a, b T) bool
	stats Stats
}

// New returns an empty heap ordered by less, which must be a strict
// order: less(a, a) is false, and less(a, b) && less(b, c) implies
// less(a, c). Panics if less is nil.
func New[T any](less func(a, b T) bool) *Heap[T] {
	if less == nil {
		panic("pq: nil comparison func")
	}
	return &Heap[T]{less: less}
}

// NewOrdered returns an empty heap over a naturally ordered type,
// comparing with <.
func NewOrdered[T constraints.Ordered]() *Heap[T] {
	return New[T](func(a, b T) bool { return a < b })
}

// From builds a heap holding items in O(n), which is cheaper than
// pushing them one by one. It takes ownership of the items slice and
// reorders it in place.
func From[T any](less func(a, b T) bool, items ...T) *Heap[T] {
	h := New[T](less)
	h.buf = items
	for i := len(items)/2 - 1; i >= 0; i-- {
		h.down(i, len(items))
	}
	h.stats.sync(len(h.buf), cap(h.buf))
	return h
}

// Len returns the number of stored elements. This is the logical size,
// not the backing capacity; see Cap.
func (h *Heap[T]) Len() int {
	return len(h.buf)
}

// Cap returns the capacity of the backing slice. It only shrinks when
// the queue is rebuilt, not when elements are popped.
func (h *Heap[T]) Cap() int {
	return cap(h.buf)
}

// Stats returns the operation counters of this queue. The returned
// pointer stays valid for the lifetime of the heap.
func (h *Heap[T]) Stats() *Stats {
	return &h.stats
}

// Push pushes the element x onto the heap.
// The complexity is O(log n) where n = h.Len().
func (h *Heap[T]) Push(x T) {
	h.buf = append(h.buf, x)
	h.up(h.Len() - 1)
	h.stats.pushes.Add(1)
	h.stats.sync(len(h.buf), cap(h.buf))
}

// Peek returns the minimum element without removing it, or ErrEmpty if
// the heap holds nothing. The complexity is O(1).
func (h *Heap[T]) Peek() (min T, err error) {
	if len(h.buf) == 0 {
		h.stats.misses.Add(1)
		return min, ErrEmpty
	}
	return h.buf[0], nil
}

// Pop removes and returns the minimum element (according to less) from
// the heap, or ErrEmpty if the heap holds nothing.
// The complexity is O(log n) where n = h.Len().
func (h *Heap[T]) Pop() (min T, err error) {
	if len(h.buf) == 0 {
		h.stats.misses.Add(1)
		return min, ErrEmpty
	}
	min = h.buf[0]
	n := h.Len() - 1
	h.swap(0, n)
	h.down(0, n)
	var zero T
	h.buf[n] = zero // drop the reference so T's pointers can be collected
	h.buf = h.buf[0:n]
	h.stats.pops.Add(1)
	h.stats.sync(len(h.buf), cap(h.buf))
	return min, nil
}

func (h *Heap[T]) swap(i, j int) {
	h.buf[i], h.buf[j] = h.buf[j], h.buf[i]
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

// lesserChild returns the index of the smaller in-bounds child of i, the
// left child if only it is in bounds, or i itself when i has no child
// below n. Returning i terminates a sift-down: a strict order never puts
// an element before itself.
func (h *Heap[T]) lesserChild(i, n int) int {
	l := left(i)
	if l >= n || l < 0 { // l < 0 after int overflow
		return i
	}
	if r := right(i); r < n && h.less(h.buf[r], h.buf[l]) {
		return r
	}
	return l
}

func (h *Heap[T]) up(j int) {
	for {
		i := parent(j)
		if i == j || !h.less(h.buf[j], h.buf[i]) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *Heap[T]) down(i0, n int) {
	i := i0
	for {
		j := h.lesserChild(i, n)
		if j == i || !h.less(h.buf[j], h.buf[i]) {
			break
		}
		h.swap(i, j)
		i = j
	}
}

// Stats counts the operations performed on a Heap. All fields are
// atomic: the owning goroutine writes them inline with each operation
// and a collector may load them concurrently (see Collector).
type Stats struct {
	pushes   atomic.Int64
	pops     atomic.Int64
	misses   atomic.Int64
	length   atomic.Int64
	capacity atomic.Int64
}

func (s *Stats) sync(length, capacity int) {
	s.length.Store(int64(length))
	s.capacity.Store(int64(capacity))
}

// Pushes returns the total number of successful Push calls.
func (s *Stats) Pushes() int64 { return s.pushes.Load() }

// Pops returns the total number of successful Pop calls.
func (s *Stats) Pops() int64 { return s.pops.Load() }

// Misses returns the number of Peek and Pop calls that found the queue
// empty and returned ErrEmpty.
func (s *Stats) Misses() int64 { return s.misses.Load() }

// Length returns the stored element count as of the last mutation.
func (s *Stats) Length() int64 { return s.length.Load() }

// Capacity returns the backing capacity as of the last mutation.
func (s *Stats) Capacity() int64 { return s.capacity.Load() }
