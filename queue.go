package shortlock

import (
	"sync/atomic"

	"github.com/llxisdsh/shortlock/internal/opt"
)

// Queue is an unbounded FIFO queue backed by a linked chain of fixed-size
// array segments.
//
// Every mutation is serialized through one SpinLock, which makes the FIFO
// order exact across the whole chain. It is not lock-free and makes no
// fairness promise to competing producers or consumers.
//
// Create it with NewQueue.
type Queue[T any] struct {
	_  noCopy
	mu SpinLock
	_  opt.Pad_

	// length mirrors the element count for the unlocked empty check in
	// TryDequeue. Written only under mu.
	length atomic.Int64

	write   *segment[T]
	read    *segment[T]
	segSize int
}

// segment is one link of the chain. head is the write cursor, tail the
// read cursor; tail <= head <= len(items).
type segment[T any] struct {
	head  int
	tail  int
	items []T
	next  *segment[T]
}

// NewQueue creates an empty Queue.
func NewQueue[T any](options ...QueueOption) *Queue[T] {
	c := loadQueueConfig(options...)
	s := &segment[T]{items: make([]T, c.segmentSize)}
	return &Queue[T]{write: s, read: s, segSize: c.segmentSize}
}

// Enqueue appends v at the tail of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.mu.Enter()
	s := q.write
	if s.head == len(s.items) {
		s = &segment[T]{items: make([]T, q.segSize)}
		q.write.next = s
		q.write = s
	}
	s.items[s.head] = v
	s.head++
	q.length.Add(1)
	q.mu.Exit()
}

// TryDequeue removes and returns the element at the head of the queue.
// It reports false, with the zero value, if the queue is empty.
func (q *Queue[T]) TryDequeue() (v T, ok bool) {
	if q.length.Load() == 0 {
		return v, false
	}
	q.mu.Enter()
	s := q.read
	for s.tail == s.head {
		if s.tail < len(s.items) || s.next == nil {
			q.mu.Exit()
			return v, false
		}
		s = s.next
		q.read = s
	}
	v = s.items[s.tail]
	var zero T
	s.items[s.tail] = zero
	s.tail++
	q.length.Add(-1)
	q.mu.Exit()
	return v, true
}

// Len returns the number of queued elements. Advisory only.
func (q *Queue[T]) Len() int {
	return int(q.length.Load())
}
