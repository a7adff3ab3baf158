package bench

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/shortlock"
)

// Result is one timed measurement.
type Result struct {
	Benchmark string
	Name      string
	Threads   int
	Ops       int64
	Elapsed   time.Duration
	GCs       uint32
}

// DelayPerOp returns the average wall time per operation.
func (r Result) DelayPerOp() time.Duration {
	if r.Ops == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Ops)
}

// Runner executes benchmarks and collects their results.
type Runner struct {
	opts    *Options
	id      uuid.UUID
	log     *zap.Logger
	results *shortlock.List[Result]

	// current is the id of the benchmark being run.
	current string
}

// NewRunner creates a Runner. Every Runner gets a fresh run id that tags
// all of its log records.
func NewRunner(options ...Option) *Runner {
	opts := loadOptions(options...)
	id := uuid.New()
	return &Runner{
		opts:    opts,
		id:      id,
		log:     opts.Logger.With(zap.String("run_id", id.String())),
		results: shortlock.NewList[Result](),
	}
}

// ID returns the run id.
func (r *Runner) ID() uuid.UUID {
	return r.id
}

// Run executes the benchmark registered under id.
func (r *Runner) Run(id string) error {
	b, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("bench: unknown benchmark %q", id)
	}
	r.current = b.ID
	r.log.Info("benchmark started",
		zap.String("benchmark", b.ID),
		zap.String("description", b.Description))
	if err := b.run(r); err != nil {
		r.log.Error("benchmark failed", zap.String("benchmark", b.ID), zap.Error(err))
		return fmt.Errorf("bench %s: %w", b.ID, err)
	}
	return nil
}

// Results returns every measurement taken so far, in completion order.
func (r *Runner) Results() []Result {
	var out []Result
	for v := range r.results.Values() {
		out = append(out, v)
	}
	return out
}

// threadCounts returns 1, 2, 4, ... up to the configured maximum.
func (r *Runner) threadCounts() []int {
	var out []int
	for n := 1; n < r.opts.Threads; n *= 2 {
		out = append(out, n)
	}
	return append(out, r.opts.Threads)
}

// parallel runs fn on threads workers, each performing ops operations, and
// records the elapsed wall time. A worker error aborts the measurement.
func (r *Runner) parallel(name string, threads int, fn func(worker, ops int) error) (Result, error) {
	ops := r.opts.Ops
	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	var g errgroup.Group
	for w := range threads {
		g.Go(func() error {
			return fn(w, ops)
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	res := Result{
		Benchmark: r.current,
		Name:      name,
		Threads:   threads,
		Ops:       int64(threads) * int64(ops),
		Elapsed:   elapsed,
		GCs:       after.NumGC - before.NumGC,
	}
	if err != nil {
		return res, fmt.Errorf("%s with %d threads: %w", name, threads, err)
	}
	r.results.Add(res)
	r.log.Info("measurement",
		zap.String("benchmark", res.Benchmark),
		zap.String("name", res.Name),
		zap.Int("threads", res.Threads),
		zap.Int64("ops", res.Ops),
		zap.Duration("elapsed", res.Elapsed),
		zap.Duration("per_op", res.DelayPerOp()),
		zap.Uint32("gc", res.GCs))
	return res, nil
}
