// Command shortbench runs the shortlock benchmarks and reports their timing.
//
//	shortbench -list
//	shortbench -run M3,Q1 -threads 8 -ops 1000000
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/llxisdsh/shortlock/internal/bench"
)

func main() {
	var (
		list    = flag.Bool("list", false, "list the available benchmarks and exit")
		run     = flag.String("run", "", "comma separated benchmark ids (default: all)")
		threads = flag.Int("threads", 0, "maximum worker count (default: GOMAXPROCS)")
		ops     = flag.Int("ops", 1_000_000, "operations per worker")
	)
	flag.Parse()

	if *list {
		for _, b := range bench.All() {
			fmt.Printf("%-4s %-18s %s\n", b.ID, b.Group, b.Description)
		}
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	options := []bench.Option{bench.WithOps(*ops), bench.WithLogger(logger)}
	if *threads > 0 {
		options = append(options, bench.WithThreads(*threads))
	}
	r := bench.NewRunner(options...)

	var ids []string
	if *run == "" {
		for _, b := range bench.All() {
			ids = append(ids, b.ID)
		}
	} else {
		for _, id := range strings.Split(*run, ",") {
			ids = append(ids, strings.ToUpper(strings.TrimSpace(id)))
		}
	}

	failed := false
	for _, id := range ids {
		if err := r.Run(id); err != nil {
			logger.Error("run failed", zap.String("run_id", r.ID().String()), zap.Error(err))
			failed = true
		}
	}
	if failed {
		_ = logger.Sync()
		os.Exit(1)
	}
}
