package pq

import (
	"bytes"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeap_PushPeekLen(t *testing.T) {
	h := NewOrdered[int]()
	for _, v := range []int{5, 3, 8, 1} {
		h.Push(v)
		assert.True(t, h.CheckInvariant())
	}
	assert.Equal(t, 4, h.Len())

	// Peek does not mutate, however often it is called.
	for i := 0; i < 3; i++ {
		min, err := h.Peek()
		assert.NoError(t, err)
		assert.Equal(t, 1, min)
		assert.Equal(t, 4, h.Len())
	}
}

func TestHeap_PopOrder(t *testing.T) {
	h := NewOrdered[int]()
	for _, v := range []int{5, 3, 8, 1} {
		h.Push(v)
	}

	wantSizes := []int{3, 2, 1, 0}
	for i, want := range []int{1, 3, 5, 8} {
		min, err := h.Pop()
		assert.NoError(t, err)
		assert.Equal(t, want, min)
		assert.Equal(t, wantSizes[i], h.Len())
		assert.True(t, h.CheckInvariant())
	}
}

func TestHeap_Single(t *testing.T) {
	h := NewOrdered[int]()
	h.Push(42)

	min, err := h.Peek()
	assert.NoError(t, err)
	assert.Equal(t, 42, min)

	min, err = h.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 42, min)
	assert.Equal(t, 0, h.Len())
}

func TestHeap_Empty(t *testing.T) {
	h := NewOrdered[int]()
	assert.Equal(t, 0, h.Len())

	min, err := h.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, min)

	min, err = h.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, min)

	assert.Equal(t, int64(2), h.Stats().Misses())
}

func TestHeap_RandomSorted(t *testing.T) {
	h := NewOrdered[uint32]()
	mirror := make([]uint32, 0, 256)

	for i := 0; i < 256; i++ {
		v := rand.Uint32()
		mirror = append(mirror, v)
		h.Push(v)
		assert.True(t, h.CheckInvariant())
	}

	slices.Sort(mirror)
	for _, want := range mirror {
		min, err := h.Pop()
		assert.NoError(t, err)
		assert.Equal(t, want, min)
		assert.True(t, h.CheckInvariant())
	}
	assert.Equal(t, 0, h.Len())
}

func TestHeap_Duplicates(t *testing.T) {
	h := NewOrdered[int]()
	in := []int{2, 7, 2, 2, 7, 1, 1, 2}
	for _, v := range in {
		h.Push(v)
	}

	got := make([]int, 0, len(in))
	for h.Len() > 0 {
		min, err := h.Pop()
		assert.NoError(t, err)
		got = append(got, min)
	}

	want := slices.Clone(in)
	slices.Sort(want)
	assert.Equal(t, want, got)
}

func TestHeap_InterleavedRoundTrip(t *testing.T) {
	h := NewOrdered[int]()
	var out []int
	pop := func() {
		min, err := h.Pop()
		assert.NoError(t, err)
		out = append(out, min)
	}

	h.Push(5)
	h.Push(3)
	pop() // 3
	h.Push(1)
	h.Push(9)
	pop() // 1
	pop() // 5
	h.Push(0)
	for h.Len() > 0 {
		pop()
	}

	assert.Equal(t, []int{3, 1, 5, 0, 9}, out)
	slices.Sort(out)
	assert.Equal(t, []int{0, 1, 3, 5, 9}, out) // nothing lost, nothing invented
}

func TestOrdered_Pop(t *testing.T) {
	h := NewOrdered[uint64]()
	for i := uint64(0); i < 64; i++ {
		h.Push(i ^ 17)
	}
	for i := uint64(0); i < 64; i++ {
		min, err := h.Pop()
		assert.NoError(t, err)
		assert.Equal(t, i, min)
	}
}

func TestFrom(t *testing.T) {
	h := From(func(a, b int) bool { return a < b }, 9, 4, 7, 1, 3, 8, 1)
	assert.Equal(t, 7, h.Len())
	assert.True(t, h.CheckInvariant())

	got := make([]int, 0, 7)
	for h.Len() > 0 {
		min, err := h.Pop()
		assert.NoError(t, err)
		got = append(got, min)
	}
	assert.Equal(t, []int{1, 1, 3, 4, 7, 8, 9}, got)

	empty := From[int](func(a, b int) bool { return a < b })
	assert.Equal(t, 0, empty.Len())
	_, err := empty.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestHeap_Comparator(t *testing.T) {
	type job struct {
		priority int
		name     string
	}
	h := New[job](func(a, b job) bool { return a.priority < b.priority })

	h.Push(job{priority: 30, name: "compact"})
	h.Push(job{priority: 10, name: "flush"})
	h.Push(job{priority: 20, name: "sync"})

	var order []string
	for h.Len() > 0 {
		j, err := h.Pop()
		assert.NoError(t, err)
		order = append(order, j.name)
	}
	assert.Equal(t, []string{"flush", "sync", "compact"}, order)
}

func TestNew_NilLess(t *testing.T) {
	assert.Panics(t, func() { New[int](nil) })
}

func TestIndexHelpers(t *testing.T) {
	assert.Equal(t, 0, parent(1))
	assert.Equal(t, 0, parent(2))
	assert.Equal(t, 1, parent(3))
	assert.Equal(t, 1, parent(4))
	assert.Equal(t, 2, parent(5))
	assert.Equal(t, 1, left(0))
	assert.Equal(t, 2, right(0))
	assert.Equal(t, 7, left(3))
	assert.Equal(t, 8, right(3))

	h := NewOrdered[int]()
	h.buf = []int{1, 5, 2, 9} // 1 has children 5,2; 5 has left child 9

	assert.Equal(t, 2, h.lesserChild(0, 4)) // right child is smaller
	assert.Equal(t, 3, h.lesserChild(1, 4)) // only the left child in bounds
	assert.Equal(t, 2, h.lesserChild(2, 4)) // no children: the position itself
	assert.Equal(t, 3, h.lesserChild(3, 4))

	h.buf = []int{1, 4, 4}
	assert.Equal(t, 1, h.lesserChild(0, 3)) // tie goes to the left child
}

func TestCheckInvariant_Corrupt(t *testing.T) {
	h := NewOrdered[int]()
	for _, v := range []int{4, 9, 6, 11, 10, 8} {
		h.Push(v)
	}
	assert.True(t, h.CheckInvariant())

	h.buf[0] = 100 // root now greater than both children
	assert.False(t, h.CheckInvariant())

	h.buf[0] = 4
	assert.True(t, h.CheckInvariant())
	h.buf[4] = 3 // inner node now smaller than its parent
	assert.False(t, h.CheckInvariant())
}

func TestDump(t *testing.T) {
	h := NewOrdered[int]()
	for _, v := range []int{3, 5, 4} {
		h.Push(v)
	}

	var buf bytes.Buffer
	h.Dump(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[0]\t3"))
	assert.Contains(t, lines[0], "left:1")
	assert.Contains(t, lines[0], "right:2")
	assert.Contains(t, lines[1], "up:0")
	assert.NotContains(t, lines[2], "left:")
}

func TestStats(t *testing.T) {
	h := NewOrdered[int]()
	s := h.Stats()

	for i := 0; i < 5; i++ {
		h.Push(i)
	}
	_, _ = h.Pop()
	_, _ = h.Peek()

	assert.Equal(t, int64(5), s.Pushes())
	assert.Equal(t, int64(1), s.Pops())
	assert.Equal(t, int64(0), s.Misses())
	assert.Equal(t, int64(4), s.Length())
	assert.GreaterOrEqual(t, s.Capacity(), s.Length())

	for h.Len() > 0 {
		_, _ = h.Pop()
	}
	_, _ = h.Pop()
	assert.Equal(t, int64(5), s.Pops())
	assert.Equal(t, int64(1), s.Misses())
	assert.Equal(t, int64(0), s.Length())
}

func TestHeap_CapacityGrowth(t *testing.T) {
	h := NewOrdered[int]()
	for i := 0; i < 1000; i++ {
		h.Push(1000 - i) // descending input forces a sift on every push
	}
	assert.Equal(t, 1000, h.Len())
	assert.GreaterOrEqual(t, h.Cap(), h.Len())
	assert.True(t, h.CheckInvariant())

	for i := 0; i < 1000; i++ {
		_, err := h.Pop()
		assert.NoError(t, err)
	}
	// Draining shrinks the logical size only, storage is retained.
	assert.Equal(t, 0, h.Len())
	assert.GreaterOrEqual(t, h.Cap(), 1000)
}
