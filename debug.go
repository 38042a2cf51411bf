package pq

import (
	"fmt"
	"io"
)

// CheckInvariant reports whether the heap-order property holds for every
// stored element: no parent orders strictly after either of its
// children. The shape property cannot break in this representation, the
// layout is a slice. Meant for tests and debugging, it walks the whole
// backing array in O(n).
func (h *Heap[T]) CheckInvariant() bool {
	for i := 1; i < len(h.buf); i++ {
		if h.less(h.buf[i], h.buf[parent(i)]) {
			return false
		}
	}
	return true
}

// Dump writes one line per stored element with its position, value and
// parent/child links, in storage order.
func (h *Heap[T]) Dump(w io.Writer) {
	for i := range h.buf {
		fmt.Fprintf(w, "[%d]\t%v", i, h.buf[i])
		if i > 0 {
			fmt.Fprintf(w, "\tup:%d", parent(i))
		}
		if l := left(i); l < len(h.buf) {
			fmt.Fprintf(w, "\tleft:%d", l)
		}
		if r := right(i); r < len(h.buf) {
			fmt.Fprintf(w, "\tright:%d", r)
		}
		fmt.Fprintln(w)
	}
}
