package linkage

import (
	"fmt"
	"math"
)

// Strategy is a clustering backend. The set is closed: both shipped
// strategies produce raw merges with identical semantics, differing only
// in algorithmic cost, and tests cross-check them against each other.
type Strategy interface {
	Name() string
	// linkage consumes d (it may overwrite entries) and returns the n-1
	// raw merges in formation order.
	linkage(d [][]float64, n int, method Method) ([]rawMerge, error)
}

var (
	// NNChain is the accelerated backend: O(n^2) nearest-neighbor chain,
	// valid for every reducible method.
	NNChain Strategy = nnChainStrategy{}
	// Reference is the canonical Lance-Williams pair scan, O(n^3). Slow
	// but transparently correct; used as the fallback and as the test
	// oracle.
	Reference Strategy = lanceWilliamsStrategy{}
)

// defaultStrategy picks the fastest backend capable of the method.
func defaultStrategy(method Method) Strategy {
	if (nnChainStrategy{}).supports(method) {
		return NNChain
	}
	return Reference
}

// updateFunc returns the Lance-Williams distance update for a method:
// given d(i,x), d(j,x), d(i,j) and the sizes of i, j, x, the distance
// from the merged cluster (i ∪ j) to x.
func updateFunc(method Method) func(dix, djx, dij float64, ni, nj, nx int) float64 {
	switch method {
	case MethodSingle:
		return func(dix, djx, _ float64, _, _, _ int) float64 {
			return math.Min(dix, djx)
		}
	case MethodComplete:
		return func(dix, djx, _ float64, _, _, _ int) float64 {
			return math.Max(dix, djx)
		}
	case MethodAverage:
		return func(dix, djx, _ float64, ni, nj, _ int) float64 {
			return (float64(ni)*dix + float64(nj)*djx) / float64(ni+nj)
		}
	case MethodWeighted:
		return func(dix, djx, _ float64, _, _, _ int) float64 {
			return (dix + djx) / 2
		}
	case MethodWard:
		return func(dix, djx, dij float64, ni, nj, nx int) float64 {
			t := float64(ni + nj + nx)
			v := (float64(ni+nx)*dix*dix + float64(nj+nx)*djx*djx - float64(nx)*dij*dij) / t
			if v < 0 {
				v = 0
			}
			return math.Sqrt(v)
		}
	default:
		return nil
	}
}

// --- nearest-neighbor chain ---------------------------------------------

type nnChainStrategy struct{}

func (nnChainStrategy) Name() string { return "nn-chain" }

func (nnChainStrategy) supports(method Method) bool {
	// The chain argument needs a reducible update rule; every shipped
	// method qualifies (centroid/median would not).
	return updateFunc(method) != nil
}

func (s nnChainStrategy) linkage(d [][]float64, n int, method Method) ([]rawMerge, error) {
	update := updateFunc(method)
	if update == nil {
		return nil, fmt.Errorf("%w: method %q has no update rule", ErrInvalidInput, method)
	}

	size := make([]int, n)
	for i := range size {
		size[i] = 1
	}
	chain := make([]int, 0, n)
	merges := make([]rawMerge, 0, n-1)

	for k := 0; k < n-1; k++ {
		if len(chain) == 0 {
			for i := 0; i < n; i++ {
				if size[i] > 0 {
					chain = append(chain, i)
					break
				}
			}
		}

		// Walk nearest neighbors until a reciprocal pair appears.
		var x, y int
		for {
			x = chain[len(chain)-1]
			min := math.Inf(1)
			if len(chain) > 1 {
				y = chain[len(chain)-2]
				min = d[x][y]
			}
			for i := 0; i < n; i++ {
				if size[i] == 0 || i == x {
					continue
				}
				if d[x][i] < min {
					min = d[x][i]
					y = i
				}
			}
			if len(chain) > 1 && y == chain[len(chain)-2] {
				break
			}
			chain = append(chain, y)
		}
		chain = chain[:len(chain)-2]

		if x > y {
			x, y = y, x
		}
		nx, ny := size[x], size[y]
		dxy := d[x][y]
		merges = append(merges, rawMerge{a: x, b: y, dist: dxy})

		// Slot y absorbs the merge, slot x retires.
		size[x] = 0
		size[y] = nx + ny
		for i := 0; i < n; i++ {
			if size[i] == 0 || i == y {
				continue
			}
			v := update(d[i][x], d[i][y], dxy, nx, ny, size[i])
			d[i][y] = v
			d[y][i] = v
		}
	}
	return merges, nil
}

// --- reference Lance-Williams scan --------------------------------------

type lanceWilliamsStrategy struct{}

func (lanceWilliamsStrategy) Name() string { return "lance-williams" }

func (s lanceWilliamsStrategy) linkage(d [][]float64, n int, method Method) ([]rawMerge, error) {
	update := updateFunc(method)
	if update == nil {
		return nil, fmt.Errorf("%w: method %q has no update rule", ErrInvalidInput, method)
	}

	size := make([]int, n)
	for i := range size {
		size[i] = 1
	}
	merges := make([]rawMerge, 0, n-1)

	for k := 0; k < n-1; k++ {
		// Global minimum over active pairs; strict < keeps the first
		// (lowest-index) pair on ties, so output is deterministic.
		bx, by := -1, -1
		min := math.Inf(1)
		for i := 0; i < n; i++ {
			if size[i] == 0 {
				continue
			}
			for j := i + 1; j < n; j++ {
				if size[j] == 0 {
					continue
				}
				if d[i][j] < min {
					min = d[i][j]
					bx, by = i, j
				}
			}
		}

		nx, ny := size[bx], size[by]
		merges = append(merges, rawMerge{a: bx, b: by, dist: min})
		size[bx] = 0
		size[by] = nx + ny
		for i := 0; i < n; i++ {
			if size[i] == 0 || i == by {
				continue
			}
			v := update(d[i][bx], d[i][by], min, nx, ny, size[i])
			d[i][by] = v
			d[by][i] = v
		}
	}
	return merges, nil
}
