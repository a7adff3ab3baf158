package shortlock

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// RecursiveLock is a reentrant spin lock owned by a goroutine.
//
// The owner's goroutine id doubles as the lock word (0 means free), so
// acquisition is a CAS from 0 to the caller's id. The owner may Enter again
// without blocking; each Enter must be matched by one Exit from the same
// goroutine, and the lock is released when the depth returns to zero.
//
// The goroutine, not the OS thread, is the owner: the runtime may move a
// goroutine between threads inside the critical section without effect.
// Handing a held lock to another goroutine is not supported.
type RecursiveLock struct {
	_     noCopy
	owner atomic.Int64
	// depth is only touched by the owner.
	depth int32
}

// Enter acquires the lock or, if the calling goroutine already owns it,
// increments the recursion depth.
func (l *RecursiveLock) Enter() {
	id := goid.Get()
	if l.owner.Load() != id {
		if !l.owner.CompareAndSwap(0, id) {
			var spins int
			for {
				for l.owner.Load() != 0 {
					delay(&spins)
				}
				if l.owner.CompareAndSwap(0, id) {
					break
				}
			}
		}
	}
	l.depth++
}

// TryEnter acquires the lock without spinning. It always succeeds for the
// current owner.
func (l *RecursiveLock) TryEnter() bool {
	id := goid.Get()
	if l.owner.Load() != id && !l.owner.CompareAndSwap(0, id) {
		return false
	}
	l.depth++
	return true
}

// Exit undoes one Enter. It panics if the calling goroutine is not the owner.
func (l *RecursiveLock) Exit() {
	if l.owner.Load() != goid.Get() {
		panic("shortlock: RecursiveLock.Exit by a goroutine that does not own the lock")
	}
	l.depth--
	if l.depth == 0 {
		l.owner.Store(0)
	}
}

// Free reports whether no goroutine owned the lock at the time of the call.
func (l *RecursiveLock) Free() bool {
	return l.owner.Load() == 0
}

// Depth returns the recursion depth. Only meaningful to the owner.
func (l *RecursiveLock) Depth() int32 {
	if l.owner.Load() != goid.Get() {
		return 0
	}
	return l.depth
}
