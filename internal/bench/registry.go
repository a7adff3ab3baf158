package bench

import (
	"fmt"

	"github.com/google/btree"
)

// Benchmark is one runnable entry of the menu.
type Benchmark struct {
	ID          string
	Group       string
	Description string
	run         func(r *Runner) error
}

var registry = btree.NewG[*Benchmark](2, func(a, b *Benchmark) bool {
	return a.ID < b.ID
})

// register adds b to the registry. Duplicate ids are a programming error.
func register(b *Benchmark) {
	if registry.Has(b) {
		panic(fmt.Sprintf("bench: duplicate benchmark id %q", b.ID))
	}
	registry.ReplaceOrInsert(b)
}

// Lookup returns the benchmark registered under id.
func Lookup(id string) (*Benchmark, bool) {
	return registry.Get(&Benchmark{ID: id})
}

// All returns every registered benchmark ordered by id.
func All() []*Benchmark {
	out := make([]*Benchmark, 0, registry.Len())
	registry.Ascend(func(b *Benchmark) bool {
		out = append(out, b)
		return true
	})
	return out
}
