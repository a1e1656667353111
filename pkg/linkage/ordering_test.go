package linkage_test

import (
	"testing"

	"github.com/vanderheijden86/clustermap/pkg/linkage"
)

// leafOrder walks the merge tree child-A-first, the same traversal the
// dendrogram package uses.
func leafOrder(res *linkage.Result) []int {
	var walk func(id int) []int
	walk = func(id int) []int {
		if id < res.N {
			return []int{id}
		}
		s := res.Merges[id-res.N]
		return append(walk(s.A), walk(s.B)...)
	}
	return walk(res.N + len(res.Merges) - 1)
}

func TestOptimalOrderingFlipsForCloserJunction(t *testing.T) {
	// Points 0, 10, 1: default traversal yields [1, 0, 2], putting values
	// 10 and 0 side by side at the junction. Flipping the right subtree
	// narrows the junction gap from 10 to 9.
	data := points1D(0, 10, 1)

	plain := compute(t, data, linkage.Options{Method: linkage.MethodAverage})
	if got := leafOrder(plain); !equalInts(got, []int{1, 0, 2}) {
		t.Fatalf("unexpected default order %v", got)
	}

	opt := compute(t, data, linkage.Options{Method: linkage.MethodAverage, OptimalOrdering: true})
	if got := leafOrder(opt); !equalInts(got, []int{1, 2, 0}) {
		t.Errorf("optimal order = %v, want [1 2 0]", got)
	}

	// Ordering never changes merge distances or sizes.
	for i := range plain.Merges {
		if plain.Merges[i].Distance != opt.Merges[i].Distance {
			t.Errorf("step %d distance changed: %v vs %v",
				i, plain.Merges[i].Distance, opt.Merges[i].Distance)
		}
		if plain.Merges[i].Size != opt.Merges[i].Size {
			t.Errorf("step %d size changed", i)
		}
	}
}

func TestOptimalOrderingKeepsAlreadyGoodLayout(t *testing.T) {
	// Points 1, 0, 10: the default order [2, 0, 1] already has the closer
	// value (1) at the junction, so no flip strictly improves it.
	data := points1D(1, 0, 10)
	plain := compute(t, data, linkage.Options{Method: linkage.MethodSingle})
	if got := leafOrder(plain); !equalInts(got, []int{2, 0, 1}) {
		t.Fatalf("unexpected default order %v", got)
	}
	opt := compute(t, data, linkage.Options{Method: linkage.MethodSingle, OptimalOrdering: true})
	if !equalInts(leafOrder(plain), leafOrder(opt)) {
		t.Errorf("ordering changed an optimal layout: %v vs %v", leafOrder(plain), leafOrder(opt))
	}
}

func TestOptimalOrderingIsDeterministic(t *testing.T) {
	data := points1D(3, 1, 4, 1.5, 9, 2.6, 5.3)
	first := compute(t, data, linkage.Options{Method: linkage.MethodComplete, OptimalOrdering: true})
	for i := 0; i < 3; i++ {
		again := compute(t, data, linkage.Options{Method: linkage.MethodComplete, OptimalOrdering: true})
		if !equalInts(leafOrder(first), leafOrder(again)) {
			t.Fatalf("run %d produced different order", i)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
