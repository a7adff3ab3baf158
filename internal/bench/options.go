package bench

import (
	"runtime"

	"go.uber.org/zap"
)

// Option configures a Runner.
type Option func(opts *Options)

func loadOptions(options ...Option) *Options {
	opts := &Options{
		Threads: runtime.GOMAXPROCS(0),
		Ops:     1_000_000,
	}
	for _, option := range options {
		option(opts)
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.Ops < 1 {
		opts.Ops = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// Options are the knobs shared by every benchmark.
type Options struct {
	// Threads is the largest worker count a benchmark scales up to.
	// Defaults to GOMAXPROCS.
	Threads int

	// Ops is the number of operations each worker performs.
	Ops int

	// Logger receives one record per measurement. Defaults to a no-op logger.
	Logger *zap.Logger
}

// WithOptions replaces all options at once.
func WithOptions(options Options) Option {
	return func(opts *Options) {
		*opts = options
	}
}

// WithThreads sets the maximum worker count.
func WithThreads(n int) Option {
	return func(opts *Options) {
		opts.Threads = n
	}
}

// WithOps sets the per-worker operation count.
func WithOps(n int) Option {
	return func(opts *Options) {
		opts.Ops = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}
