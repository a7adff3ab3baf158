package shortlock

import (
	"sync/atomic"
)

// CountLock admits up to max concurrent holders.
//
// Enter optimistically increments the holder count and backs the increment
// out again when it overshoots max, retrying with back-off until it fits.
// It is not reentrant: two Enter calls from one goroutine take two slots.
// The zero value admits nobody; create it with NewCountLock.
//
// Size: 8 bytes.
type CountLock struct {
	_     noCopy
	count atomic.Int32
	max   int32
}

// NewCountLock creates a CountLock admitting max holders. It panics if max
// is less than 1.
func NewCountLock(max int32) *CountLock {
	if max < 1 {
		panic("shortlock: CountLock max must be at least 1")
	}
	return &CountLock{max: max}
}

// Enter takes one admission slot, spinning until one is available.
func (l *CountLock) Enter() {
	if l.count.Add(1) <= l.max {
		return
	}
	l.count.Add(-1)
	var spins int
	for {
		delay(&spins)
		if l.count.Add(1) <= l.max {
			return
		}
		l.count.Add(-1)
	}
}

// TryEnter makes one attempt to take an admission slot.
func (l *CountLock) TryEnter() bool {
	if l.count.Add(1) <= l.max {
		return true
	}
	l.count.Add(-1)
	return false
}

// Exit returns one admission slot.
func (l *CountLock) Exit() {
	l.count.Add(-1)
}

// Free reports whether fewer than max holders were inside at the time of
// the call. Advisory only.
func (l *CountLock) Free() bool {
	return l.count.Load() < l.max
}

// Count returns the holder count, including transient overshoots of
// callers about to back out.
func (l *CountLock) Count() int32 {
	return l.count.Load()
}

// Max returns the admission limit.
func (l *CountLock) Max() int32 {
	return l.max
}
