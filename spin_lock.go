package shortlock

import (
	"sync/atomic"
)

// SpinLock is a non-reentrant mutual exclusion lock for very short critical
// sections. Acquisition is a single CAS on the fast path; contended callers
// spin on a plain load with adaptive back-off and retry the CAS once the
// lock is observed free.
//
// It is zero-value usable. There is no fairness: any waiter may win after
// Exit. Entering twice from the same goroutine deadlocks.
//
// Size: 4 bytes.
type SpinLock struct {
	_     noCopy
	state atomic.Uint32
}

// Enter acquires the lock, spinning until it is available.
func (l *SpinLock) Enter() {
	if l.state.CompareAndSwap(0, 1) {
		return
	}
	l.enterSlow()
}

func (l *SpinLock) enterSlow() {
	var spins int
	for {
		for l.state.Load() != 0 {
			delay(&spins)
		}
		if l.state.CompareAndSwap(0, 1) {
			return
		}
	}
}

// TryEnter makes one attempt to acquire the lock.
func (l *SpinLock) TryEnter() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Exit releases the lock. It is not tied to a goroutine: one goroutine may
// Enter and arrange for another to Exit.
func (l *SpinLock) Exit() {
	l.state.Store(0)
}

// Free reports whether the lock was unheld at the time of the call.
// The answer may be stale by the time the caller uses it.
func (l *SpinLock) Free() bool {
	return l.state.Load() == 0
}
