package shortlock

import (
	"github.com/llxisdsh/pb"
)

// SpinLockGroup locks on arbitrary keys, one SpinLock per key.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: an entry is dropped once its last holder or waiter
//     has left.
//
// Usage:
//
//	var group SpinLockGroup[string]
//	group.Enter("user-123")
//	// Critical section for user-123
//	group.Exit("user-123")
//
// Same-key calls follow the SpinLock contract: not reentrant, no fairness.
type SpinLockGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *spinLockGroupEntry]
}

type spinLockGroupEntry struct {
	mu SpinLock
	// ref counts holders and waiters; changed only inside ProcessEntry.
	ref int32
}

// Enter acquires the lock for k.
func (g *SpinLockGroup[K]) Enter(k K) {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &spinLockGroupEntry{ref: 1}
			return &pb.EntryOf[K, *spinLockGroupEntry]{Value: e}, e, false
		},
	)
	v.mu.Enter()
}

// Exit releases the lock for k. Exiting a key that is not held is a no-op.
func (g *SpinLockGroup[K]) Exit(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Exit()

	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}

// Len returns the number of keys currently held or waited on.
func (g *SpinLockGroup[K]) Len() int {
	return g.m.Size()
}
