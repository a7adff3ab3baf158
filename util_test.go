package shortlock

import (
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/shortlock/internal/opt"
)

// stressLoops returns the per-worker iteration count for contention tests.
func stressLoops() int {
	if opt.Race_ || testing.Short() {
		return 2_000
	}
	return 20_000
}

// workerCounts is the set of worker counts every contention test runs with.
func workerCounts() []int {
	return []int{1, 2, 3, 4, max(runtime.GOMAXPROCS(0), 4)}
}

// runWorkers runs fn on n goroutines and fails the test with the first
// error any of them returns.
func runWorkers(t *testing.T, n int, fn func(worker int) error) {
	t.Helper()
	var g errgroup.Group
	for w := range n {
		g.Go(func() error {
			return fn(w)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
