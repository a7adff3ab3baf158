//go:build (amd64 || arm64) && !gccgo

package bench

import (
	"github.com/bytedance/gopkg/collection/lscq"
)

func init() {
	queueBaselines = append(queueBaselines, func() queueCase {
		q := lscq.NewUint64()
		return queueCase{
			name:    "lscq.Uint64Queue",
			enqueue: func(v int) { q.Enqueue(uint64(v)) },
			dequeue: func() (int, bool) {
				v, ok := q.Dequeue()
				return int(v), ok
			},
		}
	})
}
