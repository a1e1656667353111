// Package linkage computes hierarchical agglomerative clusterings. The
// output follows the scipy linkage-matrix convention: n-1 merge steps,
// each naming two child cluster ids (leaves are [0,n), the cluster created
// by step i is n+i), the merge distance, and the member count; steps are
// ordered by non-decreasing distance.
//
// Two interchangeable strategies compute the raw merges: a nearest-neighbor
// chain (the fast path) and a reference Lance-Williams pair scan. Both feed
// the same canonicalization pass, so callers can swap strategies without
// observing a difference.
package linkage

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/vanderheijden86/clustermap/pkg/debug"
)

// Method selects the cluster-distance update rule.
type Method string

const (
	MethodWard     Method = "ward"
	MethodSingle   Method = "single"
	MethodComplete Method = "complete"
	MethodAverage  Method = "average"
	MethodWeighted Method = "weighted"
)

// Methods lists every supported method.
func Methods() []Method {
	return []Method{MethodWard, MethodSingle, MethodComplete, MethodAverage, MethodWeighted}
}

// ParseMethod resolves a method name.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown method %q", ErrInvalidInput, s)
}

// Metric selects the pairwise distance between observations.
type Metric string

const (
	MetricEuclidean   Metric = "euclidean"
	MetricSqEuclidean Metric = "sqeuclidean"
	MetricManhattan   Metric = "manhattan"
	MetricCosine      Metric = "cosine"
	MetricCorrelation Metric = "correlation"
)

// Metrics lists every supported metric.
func Metrics() []Metric {
	return []Metric{MetricEuclidean, MetricSqEuclidean, MetricManhattan, MetricCosine, MetricCorrelation}
}

// ParseMetric resolves a metric name.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, s)
}

// Options configures a linkage computation. Zero-valued Method and Metric
// fall back to the DefaultOptions choices.
type Options struct {
	Method Method
	Metric Metric
	// OptimalOrdering orients subtrees so junction-adjacent leaves are
	// close in the original metric, for visual coherence.
	OptimalOrdering bool
	// Strategy overrides automatic backend selection. Nil picks the
	// nn-chain backend when it supports Method, the reference backend
	// otherwise.
	Strategy Strategy
}

// DefaultOptions returns average linkage over euclidean distances.
func DefaultOptions() Options {
	return Options{Method: MethodAverage, Metric: MetricEuclidean}
}

// Step is one merge: clusters A and B joined at Distance into a cluster
// of Size members. A is visited first when deriving leaf order.
type Step struct {
	A        int
	B        int
	Distance float64
	Size     int
}

// Result is a complete linkage over N observations: exactly N-1 steps,
// sorted by non-decreasing distance, ids in [0, 2N-1).
type Result struct {
	N      int
	Merges []Step
	Method Method
	Metric Metric
}

// Compute clusters the rows of data. It is a pure function: data is only
// read, and identical inputs produce identical results.
func Compute(data mat.Matrix, opts Options) (*Result, error) {
	n, c := data.Dims()
	if n < 2 {
		return nil, fmt.Errorf("%w: %d observations, need at least 2", ErrInvalidInput, n)
	}
	if c < 1 {
		return nil, fmt.Errorf("%w: observations have no features", ErrInvalidInput)
	}
	if opts.Method == "" {
		opts.Method = MethodAverage
	}
	if opts.Metric == "" {
		opts.Metric = MetricEuclidean
	}
	if _, err := ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if _, err := ParseMetric(string(opts.Metric)); err != nil {
		return nil, err
	}
	if opts.Method == MethodWard && opts.Metric != MetricEuclidean {
		return nil, fmt.Errorf("%w: ward requires the euclidean metric, got %q", ErrInvalidInput, opts.Metric)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			if v := data.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at (%d, %d)", ErrInvalidInput, i, j)
			}
		}
	}

	dist := distanceMatrix(data, opts.Metric)

	strat := opts.Strategy
	if strat == nil {
		strat = defaultStrategy(opts.Method)
	}
	debug.Log("linkage: %d observations, method=%s metric=%s strategy=%s",
		n, opts.Method, opts.Metric, strat.Name())

	// Strategies consume their distance matrix; keep a pristine copy when
	// the ordering pass still needs original distances.
	work := dist
	if opts.OptimalOrdering {
		work = copyMatrix(dist)
	}
	raw, err := strat.linkage(work, n, opts.Method)
	if err != nil {
		return nil, err
	}
	steps := canonicalize(raw, n)
	if opts.OptimalOrdering {
		steps = applyOptimalOrdering(steps, n, dist)
	}
	return &Result{N: n, Merges: steps, Method: opts.Method, Metric: opts.Metric}, nil
}

func copyMatrix(d [][]float64) [][]float64 {
	out := make([][]float64, len(d))
	for i, row := range d {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// rawMerge records a merge in strategy slot space: a and b are leaf-slot
// representatives of the two clusters at merge time.
type rawMerge struct {
	a, b int
	dist float64
}

// canonicalize sorts raw merges by distance (stable, so equal-distance
// merges keep formation order) and relabels cluster ids into the scipy
// convention via union-find.
func canonicalize(raw []rawMerge, n int) []Step {
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].dist < raw[j].dist })
	uf := newUnionFind(n)
	steps := make([]Step, len(raw))
	for i, m := range raw {
		ra, rb := uf.find(m.a), uf.find(m.b)
		if ra > rb {
			ra, rb = rb, ra
		}
		size := uf.union(ra, rb)
		steps[i] = Step{A: ra, B: rb, Distance: m.dist, Size: size}
	}
	return steps
}

// unionFind tracks cluster labels during relabeling. Labels [0,n) are
// leaves; each union mints the next internal label.
type unionFind struct {
	parent []int
	size   []int
	next   int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, 2*n-1)
	s := make([]int, 2*n-1)
	for i := range p {
		p[i] = i
	}
	for i := 0; i < n; i++ {
		s[i] = 1
	}
	return &unionFind{parent: p, size: s, next: n}
}

func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}
	return root
}

// union joins two roots under a fresh label and returns the merged size.
func (u *unionFind) union(x, y int) int {
	label := u.next
	u.next++
	u.parent[x] = label
	u.parent[y] = label
	u.size[label] = u.size[x] + u.size[y]
	return u.size[label]
}
