package shortlock

import (
	"sync/atomic"
)

// RWSpinLock admits many readers or one writer through a single signed
// counter.
//
// State:
//   - counter > 0: that many readers inside.
//   - counter == 0: free.
//   - counter < 0: a writer holds the lock. Readers that raced in are
//     counted transiently on top of -rwWriterBias until they back out.
//
// There is no preference between readers and writers; a steady stream of
// readers can hold off a writer indefinitely.
//
// Size: 4 bytes.
type RWSpinLock struct {
	_     noCopy
	state atomic.Int32
}

// rwWriterBias keeps the counter negative while a writer holds the lock,
// even with up to 2^30 readers transiently incremented on top of it.
const rwWriterBias = 1 << 30

// EnterRead acquires a read lock.
func (l *RWSpinLock) EnterRead() {
	if l.state.Add(1) >= 0 {
		return
	}
	l.state.Add(-1)
	var spins int
	for {
		for l.state.Load() < 0 {
			delay(&spins)
		}
		if l.state.Add(1) >= 0 {
			return
		}
		l.state.Add(-1)
	}
}

// TryEnterRead makes one attempt to acquire a read lock.
func (l *RWSpinLock) TryEnterRead() bool {
	if l.state.Add(1) >= 0 {
		return true
	}
	l.state.Add(-1)
	return false
}

// ExitRead releases a read lock.
func (l *RWSpinLock) ExitRead() {
	l.state.Add(-1)
}

// EnterWrite acquires the write lock once every reader has left.
func (l *RWSpinLock) EnterWrite() {
	if l.state.CompareAndSwap(0, -rwWriterBias) {
		return
	}
	var spins int
	for {
		for l.state.Load() != 0 {
			delay(&spins)
		}
		if l.state.CompareAndSwap(0, -rwWriterBias) {
			return
		}
	}
}

// TryEnterWrite makes one attempt to acquire the write lock.
func (l *RWSpinLock) TryEnterWrite() bool {
	return l.state.CompareAndSwap(0, -rwWriterBias)
}

// ExitWrite releases the write lock.
func (l *RWSpinLock) ExitWrite() {
	l.state.Add(rwWriterBias)
}

// ReadFree reports whether no writer held the lock at the time of the call.
func (l *RWSpinLock) ReadFree() bool {
	return l.state.Load() >= 0
}

// WriteFree reports whether the lock was completely free at the time of
// the call.
func (l *RWSpinLock) WriteFree() bool {
	return l.state.Load() == 0
}
