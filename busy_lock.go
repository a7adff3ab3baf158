package shortlock

import (
	"sync/atomic"
)

// BusyLock has the same contract as SpinLock but never backs off: Enter
// retries the CAS in a tight loop. Use it only where contention is known
// to be brief, a waiter keeps its CPU busy for the whole wait.
type BusyLock struct {
	_     noCopy
	state atomic.Uint32
}

// Enter acquires the lock.
func (l *BusyLock) Enter() {
	for !l.state.CompareAndSwap(0, 1) {
	}
}

// TryEnter makes one attempt to acquire the lock.
func (l *BusyLock) TryEnter() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Exit releases the lock.
func (l *BusyLock) Exit() {
	l.state.Store(0)
}

// Free reports whether the lock was unheld at the time of the call.
func (l *BusyLock) Free() bool {
	return l.state.Load() == 0
}
