package bench

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/llxisdsh/shortlock"
)

func init() {
	register(&Benchmark{ID: "M1", Group: "Monitor",
		Description: "SpinLock vs sync.Mutex around a shared counter.", run: runSpinVsMutex})
	register(&Benchmark{ID: "M2", Group: "Monitor",
		Description: "Every lock variant around a shared counter.", run: runAllLocks})
	register(&Benchmark{ID: "M3", Group: "Monitor",
		Description: "Correctness: no two holders inside an exclusive section.", run: runCorrectness})
	register(&Benchmark{ID: "Q1", Group: "Concurrent queue",
		Description: "Segmented Queue vs channel and lock-free baselines.", run: runQueues})
	register(&Benchmark{ID: "L1", Group: "Concurrent list",
		Description: "List add, iterate and remove-by-index mix.", run: runList})
}

// lockCase adapts one primitive for the lock benchmarks. The primitives
// deliberately share no interface.
type lockCase struct {
	name  string
	enter func()
	exit  func()
}

func exclusiveLocks() []lockCase {
	var mu sync.Mutex
	var spin shortlock.SpinLock
	var busy shortlock.BusyLock
	count := shortlock.NewCountLock(1)
	var rec shortlock.RecursiveLock
	var rw shortlock.RWSpinLock
	var group shortlock.SpinLockGroup[int]
	return []lockCase{
		{"sync.Mutex", mu.Lock, mu.Unlock},
		{"SpinLock", spin.Enter, spin.Exit},
		{"BusyLock", busy.Enter, busy.Exit},
		{"CountLock(1)", count.Enter, count.Exit},
		{"RecursiveLock", rec.Enter, rec.Exit},
		{"RWSpinLock.Write", rw.EnterWrite, rw.ExitWrite},
		{"SpinLockGroup", func() { group.Enter(0) }, func() { group.Exit(0) }},
	}
}

func (r *Runner) counterLoop(c lockCase) error {
	for _, th := range r.threadCounts() {
		var counter int64
		_, err := r.parallel(c.name, th, func(_, ops int) error {
			for range ops {
				c.enter()
				counter++
				c.exit()
			}
			return nil
		})
		if err != nil {
			return err
		}
		if want := int64(th) * int64(r.opts.Ops); counter != want {
			return fmt.Errorf("%s: counter = %d, want %d", c.name, counter, want)
		}
	}
	return nil
}

func runSpinVsMutex(r *Runner) error {
	for _, c := range exclusiveLocks()[:2] {
		if err := r.counterLoop(c); err != nil {
			return err
		}
	}
	return nil
}

func runAllLocks(r *Runner) error {
	for _, c := range exclusiveLocks() {
		if err := r.counterLoop(c); err != nil {
			return err
		}
	}
	var rw shortlock.RWSpinLock
	var reads atomic.Int64
	for _, th := range r.threadCounts() {
		_, err := r.parallel("RWSpinLock.Read", th, func(_, ops int) error {
			for range ops {
				rw.EnterRead()
				reads.Add(1)
				rw.ExitRead()
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func runCorrectness(r *Runner) error {
	for _, c := range exclusiveLocks()[1:] {
		var inside atomic.Int32
		_, err := r.parallel(c.name, r.opts.Threads, func(_, ops int) error {
			for range ops {
				c.enter()
				if v := inside.Add(1); v > 1 {
					c.exit()
					return fmt.Errorf("bad value: %d holders inside", v)
				}
				if v := inside.Add(-1); v < 0 {
					c.exit()
					return fmt.Errorf("bad value: %d holders inside", v)
				}
				c.exit()
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// queueCase adapts one queue implementation for Q1.
type queueCase struct {
	name    string
	enqueue func(v int)
	dequeue func() (int, bool)
}

// queueBaselines builds the comparison queues. Platform specific
// baselines append to it from init.
var queueBaselines = []func() queueCase{
	func() queueCase {
		q := shortlock.NewQueue[int]()
		return queueCase{"shortlock.Queue", q.Enqueue, q.TryDequeue}
	},
	func() queueCase {
		ch := make(chan int, shortlock.DefaultSegmentSize)
		return queueCase{
			name:    "chan",
			enqueue: func(v int) { ch <- v },
			dequeue: func() (int, bool) {
				select {
				case v := <-ch:
					return v, true
				default:
					return 0, false
				}
			},
		}
	},
}

// runQueues splits workers into producers (even ids) and consumers (odd
// ids) of equal number; each consumer stops after receiving ops elements.
func runQueues(r *Runner) error {
	for _, newQueue := range queueBaselines {
		last := 0
		for _, th := range r.threadCounts() {
			th = max(2, th-th%2)
			if th == last {
				continue
			}
			last = th
			q := newQueue()
			_, err := r.parallel(q.name, th, func(w, ops int) error {
				if w%2 == 0 {
					for i := range ops {
						q.enqueue(i)
					}
					return nil
				}
				for n := 0; n < ops; {
					if _, ok := q.dequeue(); ok {
						n++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func runList(r *Runner) error {
	for _, th := range r.threadCounts() {
		l := shortlock.NewList[int]()
		_, err := r.parallel("shortlock.List", th, func(w, ops int) error {
			for i := range ops {
				idx := l.Add(w*ops + i)
				if i%64 == 0 {
					for range l.Values() {
					}
				}
				if err := l.RemoveIndex(idx); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		if c := l.Count(); c != 0 {
			return fmt.Errorf("list count = %d after all removals", c)
		}
	}
	return nil
}
