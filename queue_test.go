package shortlock

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Empty(t *testing.T) {
	q := NewQueue[int]()
	v, ok := q.TryDequeue()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := range 100 {
		q.Enqueue(i)
	}
	assert.Equal(t, 100, q.Len())
	for i := range 100 {
		v, ok := q.TryDequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := q.TryDequeue()
	assert.False(t, ok)
}

func TestQueue_AcrossSegments(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 64} {
		t.Run(fmt.Sprintf("segment=%d", size), func(t *testing.T) {
			q := NewQueue[int](WithSegmentSize(size))
			n := size*5 + 1
			for i := range n {
				q.Enqueue(i)
			}
			for i := range n {
				v, ok := q.TryDequeue()
				require.True(t, ok)
				require.Equal(t, i, v)
			}
			_, ok := q.TryDequeue()
			assert.False(t, ok)
		})
	}
}

func TestQueue_DefaultSegmentBoundary(t *testing.T) {
	q := NewQueue[int]()
	n := DefaultSegmentSize*2 + 10
	for i := range n {
		q.Enqueue(i)
	}
	for i := range n {
		v, ok := q.TryDequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

// Draining to empty at a segment boundary and refilling must not lose or
// reorder elements.
func TestQueue_InterleavedDrain(t *testing.T) {
	q := NewQueue[string](WithSegmentSize(4))
	next := 0
	want := 0
	for round := range 20 {
		for range round % 7 {
			q.Enqueue(fmt.Sprint(next))
			next++
		}
		for range round % 5 {
			v, ok := q.TryDequeue()
			if want == next {
				require.False(t, ok)
				continue
			}
			require.True(t, ok)
			require.Equal(t, fmt.Sprint(want), v)
			want++
		}
	}
	for ; want < next; want++ {
		v, ok := q.TryDequeue()
		require.True(t, ok)
		require.Equal(t, fmt.Sprint(want), v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ReleasesDequeuedValues(t *testing.T) {
	q := NewQueue[*int](WithSegmentSize(4))
	x := 1
	q.Enqueue(&x)
	_, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Nil(t, q.read.items[0])
}

func TestQueue_InvalidSegmentSize(t *testing.T) {
	assert.Panics(t, func() { WithSegmentSize(0) })
}

// Each producer enqueues an increasing sequence tagged with its id; a
// consumer must see every producer's values in order, and all of them.
func TestQueue_ConcurrentProducersConsumers(t *testing.T) {
	const producers = 3
	const consumers = 3
	q := NewQueue[[2]int](WithSegmentSize(128))
	loops := stressLoops()
	var consumed atomic.Int64
	total := int64(producers * loops)
	var sums [producers]atomic.Int64

	runWorkers(t, producers+consumers, func(w int) error {
		if w < producers {
			for i := range loops {
				q.Enqueue([2]int{w, i})
			}
			return nil
		}
		last := [producers]int{-1, -1, -1}
		for consumed.Load() < total {
			v, ok := q.TryDequeue()
			if !ok {
				continue
			}
			consumed.Add(1)
			p, seq := v[0], v[1]
			if seq <= last[p] {
				return fmt.Errorf("producer %d: got %d after %d", p, seq, last[p])
			}
			last[p] = seq
			sums[p].Add(int64(seq))
		}
		return nil
	})

	want := int64(loops) * int64(loops-1) / 2
	for p := range producers {
		assert.Equal(t, want, sums[p].Load(), "producer %d", p)
	}
	assert.Equal(t, 0, q.Len())
}

func BenchmarkQueue(b *testing.B) {
	q := NewQueue[int]()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i&1 == 0 {
				q.Enqueue(i)
			} else {
				q.TryDequeue()
			}
			i++
		}
	})
}
