package bvh

import (
	"fmt"

	"go.viam.com/broadphase/utils"
)

type arenaSlot[T any] struct {
	value      T
	generation uint32
	used       bool
}

// arena is a growable pool of slots addressed by stable int32 indices. Slot 0 is reserved and never
// handed out. Freed slots are reused last in, first out; growth doubles the pool and never moves an
// index.
type arena[T any] struct {
	slots    []arenaSlot[T]
	freeList []int32
	live     int
}

func newArena[T any](capacity int) *arena[T] {
	a := &arena[T]{slots: make([]arenaSlot[T], 1, utils.MaxInt(capacity, 2))}
	a.slots[0].used = true
	a.grow(utils.MaxInt(capacity, 2))
	return a
}

// grow extends the pool to size slots. New indices are pushed in reverse so the lowest is handed out first.
func (a *arena[T]) grow(size int) {
	old := len(a.slots)
	if size <= old {
		return
	}
	a.slots = append(a.slots, make([]arenaSlot[T], size-old)...)
	for i := size - 1; i >= old; i-- {
		a.freeList = append(a.freeList, int32(i))
	}
}

// allocate stores v in a free slot and returns its index. It reports whether the pool had to grow.
func (a *arena[T]) allocate(v T) (int32, bool) {
	grew := false
	if len(a.freeList) == 0 {
		a.grow(utils.MaxInt(2*len(a.slots), 2))
		grew = true
	}
	last := len(a.freeList) - 1
	i := a.freeList[last]
	a.freeList = a.freeList[:last]

	s := &a.slots[i]
	s.value = v
	s.used = true
	a.live++
	return i, grew
}

func (a *arena[T]) free(i int32) {
	if i == 0 {
		panic("cannot free the reserved arena slot")
	}
	s := &a.slots[i]
	if !s.used {
		panic(fmt.Sprintf("double free of arena slot %d", i))
	}
	var zero T
	s.value = zero
	s.used = false
	s.generation++
	a.live--
	a.freeList = append(a.freeList, i)
}

// get returns a pointer to the slot's value. It is valid until the next allocate or free.
func (a *arena[T]) get(i int32) *T {
	return &a.slots[i].value
}

func (a *arena[T]) generation(i int32) uint32 {
	return a.slots[i].generation
}

// isLive reports whether i is an allocated, non-reserved slot.
func (a *arena[T]) isLive(i int32) bool {
	return i > 0 && int(i) < len(a.slots) && a.slots[i].used
}

// len returns the number of slots, the reserved one included.
func (a *arena[T]) len() int {
	return len(a.slots)
}

func (a *arena[T]) liveCount() int {
	return a.live
}
