package shortlock

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/llxisdsh/shortlock/internal/opt"
)

// listInitialCap is the slot capacity allocated by the first Add.
const listInitialCap = 32

// List is an unordered concurrent collection with stable indices.
//
// Writers are serialized by a SpinLock. Readers iterate without any lock:
// Values walks a snapshot of the slot array taken when the walk starts.
// This is safe because slots are only ever appended in increasing index
// order, tombstoned in place, or overwritten in place on reuse; they are
// never moved.
//
// Add returns the slot index of the value, which RemoveIndex accepts for
// O(1) removal. Freed indices are reused LIFO before the array grows.
//
// The slot array never shrinks: memory follows the peak item count.
//
// It is zero-value usable.
type List[T comparable] struct {
	_  noCopy
	mu SpinLock
	_  opt.Pad_

	slots atomic.Pointer[[]atomic.Pointer[listEntry[T]]]
	count atomic.Int64

	// writeIndex is the highest index ever assigned, -1 before the
	// first Add. Guarded by mu, as is free.
	writeIndex int
	free       *arraystack.Stack
}

// listEntry is the content of an assigned slot. A nil slot is unassigned.
// Reusing an index stores a new entry, so value never changes and removed
// only moves from false to true.
type listEntry[T comparable] struct {
	value   T
	removed atomic.Bool
}

// NewList creates an empty List.
func NewList[T comparable]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) initLocked() {
	slots := make([]atomic.Pointer[listEntry[T]], listInitialCap)
	l.slots.Store(&slots)
	l.writeIndex = -1
	l.free = arraystack.New()
}

// Add inserts v and returns its index.
func (l *List[T]) Add(v T) int {
	l.mu.Enter()
	defer l.mu.Exit()

	if l.free == nil {
		l.initLocked()
	}
	e := &listEntry[T]{value: v}
	slots := *l.slots.Load()

	if i, ok := l.free.Pop(); ok {
		idx := i.(int)
		slots[idx].Store(e)
		l.count.Add(1)
		return idx
	}

	idx := l.writeIndex + 1
	if idx == len(slots) {
		slots = l.growLocked(slots)
	}
	slots[idx].Store(e)
	l.writeIndex = idx
	l.count.Add(1)
	return idx
}

// growLocked publishes a copy of slots with twice the capacity. Walks
// already in progress keep the old array.
func (l *List[T]) growLocked(slots []atomic.Pointer[listEntry[T]]) []atomic.Pointer[listEntry[T]] {
	grown := make([]atomic.Pointer[listEntry[T]], len(slots)*2)
	for i := range slots {
		grown[i].Store(slots[i].Load())
	}
	l.slots.Store(&grown)
	return grown
}

// RemoveIndex removes the value stored at index. It returns an error
// wrapping ErrIndexOutOfRange if index was never assigned, or
// ErrIndexRemoved if its value is already gone.
func (l *List[T]) RemoveIndex(index int) error {
	l.mu.Enter()
	defer l.mu.Exit()

	if l.free == nil || index < 0 || index > l.writeIndex {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	e := (*l.slots.Load())[index].Load()
	if e.removed.Load() {
		return fmt.Errorf("%w: %d", ErrIndexRemoved, index)
	}
	l.removeLocked(index, e)
	return nil
}

func (l *List[T]) removeLocked(index int, e *listEntry[T]) {
	e.removed.Store(true)
	l.free.Push(index)
	l.count.Add(-1)
}

// Remove removes every live value equal to v and returns how many were
// removed. It scans all assigned slots.
func (l *List[T]) Remove(v T) int {
	l.mu.Enter()
	defer l.mu.Exit()

	if l.free == nil {
		return 0
	}
	slots := *l.slots.Load()
	n := 0
	for i := 0; i <= l.writeIndex; i++ {
		e := slots[i].Load()
		if e.removed.Load() || e.value != v {
			continue
		}
		l.removeLocked(i, e)
		n++
	}
	return n
}

// Count returns the number of live values. Concurrent writers may have
// changed it by the time the caller looks.
func (l *List[T]) Count() int {
	return int(l.count.Load())
}

// Cap returns the current slot capacity.
func (l *List[T]) Cap() int {
	slots := l.slots.Load()
	if slots == nil {
		return 0
	}
	return len(*slots)
}

// Values returns a sequence of the live values in index order. No lock is
// held while iterating. Each iteration walks the slot array as of its
// start; values added, removed or replaced meanwhile may or may not be
// observed. The sequence may be iterated any number of times.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// All is like Values but also yields the index of each value.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		p := l.slots.Load()
		if p == nil {
			return
		}
		slots := *p
		for i := range slots {
			e := slots[i].Load()
			if e == nil {
				// Slots are assigned in index order: nothing follows.
				return
			}
			if e.removed.Load() {
				continue
			}
			if !yield(i, e.value) {
				return
			}
		}
	}
}
