// Package dendrogram derives leaf orderings and drawable merge-line
// geometry from linkage results. Coordinates follow the scipy convention:
// the k-th leaf in drawing order sits at raw x = 5 + 10k, each merge
// contributes one 4-point link, and RescaleCoords maps raw spacing onto
// unit spacing so leaf k lands at exactly k. That alignment is what lets
// dendrogram leaves coincide with heatmap cell centers.
package dendrogram

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/vanderheijden86/clustermap/pkg/linkage"
)

// Orientation selects the axis layout of emitted traces.
type Orientation string

const (
	// OrientTop draws the tree above the matrix: x is leaf position,
	// y is merge height.
	OrientTop Orientation = "top"
	// OrientLeft draws the tree to the left: axes swap and heights
	// negate, so the root extends furthest left and leaves touch x = 0.
	OrientLeft Orientation = "left"
)

// Dendrogram couples a leaf ordering with its merge-link geometry.
// Icoord/Dcoord are parallel: entry i is the 4-point link of merge i, in
// raw scipy spacing. A trivial single-leaf dendrogram has no links and a
// nil Linkage.
type Dendrogram struct {
	LeafOrder []int
	Icoord    [][4]float64
	Dcoord    [][4]float64
	Linkage   *linkage.Result
}

// Compute clusters the rows of data and derives the dendrogram in one
// call.
func Compute(data mat.Matrix, opts linkage.Options) (*Dendrogram, error) {
	res, err := linkage.Compute(data, opts)
	if err != nil {
		return nil, err
	}
	return FromLinkage(res), nil
}

// FromLinkage derives leaf order and link geometry from a linkage result.
// The traversal visits child A before child B at every merge, so the
// linkage's subtree orientation carries through to the drawing.
func FromLinkage(res *linkage.Result) *Dendrogram {
	n := res.N
	root := n + len(res.Merges) - 1

	order := make([]int, 0, n)
	stack := make([]int, 0, n)
	stack = append(stack, root)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < n {
			order = append(order, id)
			continue
		}
		s := res.Merges[id-n]
		stack = append(stack, s.B, s.A)
	}

	// Node centers and heights, filled leaves-first then per merge.
	pos := make([]float64, 2*n-1)
	height := make([]float64, 2*n-1)
	for k, leaf := range order {
		pos[leaf] = 5 + 10*float64(k)
	}

	ic := make([][4]float64, len(res.Merges))
	dc := make([][4]float64, len(res.Merges))
	for i, s := range res.Merges {
		xa, xb := pos[s.A], pos[s.B]
		ic[i] = [4]float64{xa, xa, xb, xb}
		dc[i] = [4]float64{height[s.A], s.Distance, s.Distance, height[s.B]}
		node := n + i
		pos[node] = (xa + xb) / 2
		height[node] = s.Distance
	}

	return &Dendrogram{LeafOrder: order, Icoord: ic, Dcoord: dc, Linkage: res}
}

// Trivial returns the degenerate single-leaf dendrogram: no merges, leaf
// order = itself. Split groups of size 1 use it instead of failing.
func Trivial() *Dendrogram {
	return &Dendrogram{LeafOrder: []int{0}}
}

// Leaves returns the leaf count.
func (d *Dendrogram) Leaves() int { return len(d.LeafOrder) }

// MaxHeight returns the root merge distance, 0 for a trivial tree.
func (d *Dendrogram) MaxHeight() float64 {
	if len(d.Dcoord) == 0 {
		return 0
	}
	return d.Dcoord[len(d.Dcoord)-1][1]
}

// RescaleCoords maps raw leaf spacing onto unit spacing: v -> (v-5)/10,
// so leaf k sits at exactly k.
func RescaleCoords(coords [][4]float64) [][4]float64 {
	out := make([][4]float64, len(coords))
	for i, c := range coords {
		for k, v := range c {
			out[i][k] = (v - 5.0) / 10.0
		}
	}
	return out
}

// Trace is one drawable merge link: a 4-point polyline with styling.
// Links are independent polylines, never one connected path.
type Trace struct {
	X     [4]float64
	Y     [4]float64
	Color string
	Width float64
}

// Traces lays the dendrogram out for drawing. OrientTop emits
// (leaf position, height) pairs with positions rescaled to unit spacing;
// OrientLeft swaps the axes and negates heights, so every x <= 0 and the
// leaves line up along x = 0. Any other orientation is rejected.
func (d *Dendrogram) Traces(orient Orientation, color string, width float64) ([]Trace, error) {
	switch orient {
	case OrientTop, OrientLeft:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOrientation, orient)
	}

	ic := RescaleCoords(d.Icoord)
	out := make([]Trace, len(ic))
	for i := range ic {
		tr := Trace{Color: color, Width: width}
		if orient == OrientTop {
			tr.X = ic[i]
			tr.Y = d.Dcoord[i]
		} else {
			for k := 0; k < 4; k++ {
				tr.X[k] = -d.Dcoord[i][k]
				tr.Y[k] = ic[i][k]
			}
		}
		out[i] = tr
	}
	return out, nil
}
