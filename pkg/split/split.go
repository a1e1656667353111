// Package split partitions a matrix into labeled row groups, clusters each
// group independently, and stitches the group-local orderings back into one
// global leaf order with boundaries recorded for divider lines.
package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vanderheijden86/clustermap/pkg/debug"
	"github.com/vanderheijden86/clustermap/pkg/dendrogram"
	"github.com/vanderheijden86/clustermap/pkg/linkage"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

var (
	// ErrEmptyGroup reports a group label that maps to zero rows.
	ErrEmptyGroup = errors.New("split: group has no rows")
	// ErrAxisUnsupported reports a request to split along an axis other
	// than rows.
	ErrAxisUnsupported = errors.New("split: unsupported split axis")
)

// ClusterFunc produces a dendrogram for one group's submatrix.
type ClusterFunc func(m *matrix.Matrix, opts linkage.Options) (*dendrogram.Dendrogram, error)

// Options tunes how groups are formed and clustered.
type Options struct {
	// Linkage configures the per-group clustering. Zero value means the
	// linkage defaults.
	Linkage linkage.Options

	// Alphabetical sorts groups by label instead of first-seen order.
	Alphabetical bool

	// GroupOrder forces an explicit group ordering. It must mention every
	// observed label exactly once; labels that map to no rows fail with
	// ErrEmptyGroup. Overrides Alphabetical.
	GroupOrder []string

	// Cluster overrides the per-group clustering step. Nil uses the
	// linkage engine directly. Groups of size 1 never reach it.
	Cluster ClusterFunc
}

// Group is one label's rows with its independent clustering.
type Group struct {
	Label string
	// Rows holds the group's global row indices in input order. The
	// dendrogram's leaf order indexes into this slice.
	Rows       []int
	Dendrogram *dendrogram.Dendrogram
}

// Leaves is the number of rows in the group.
func (g Group) Leaves() int { return len(g.Rows) }

// Result combines the per-group clusterings into one global ordering.
type Result struct {
	Groups []Group
	// Order is the global leaf order: each group's local leaf order
	// translated back to global row indices and concatenated in group
	// order.
	Order []int
	// Boundaries lists the cumulative leaf count after each group except
	// the last, one entry per divider line between adjacent groups.
	Boundaries []int
}

// Split partitions the matrix rows by label, clusters each group with the
// same options, and concatenates the group orderings. Only the row axis can
// be split.
func Split(m *matrix.Matrix, axis matrix.Axis, labels []string, opts Options) (*Result, error) {
	if axis != matrix.AxisRows {
		return nil, fmt.Errorf("%w: %q", ErrAxisUnsupported, axis)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", matrix.ErrInvalidInput)
	}
	if len(labels) != m.Rows() {
		return nil, fmt.Errorf("%w: %d group labels for %d rows",
			matrix.ErrInvalidInput, len(labels), m.Rows())
	}

	order, byLabel := groupRows(labels, opts.Alphabetical)
	if opts.GroupOrder != nil {
		forced, err := forcedOrder(opts.GroupOrder, byLabel)
		if err != nil {
			return nil, err
		}
		order = forced
	}

	cluster := opts.Cluster
	if cluster == nil {
		cluster = func(sub *matrix.Matrix, lo linkage.Options) (*dendrogram.Dendrogram, error) {
			return dendrogram.Compute(sub.View(), lo)
		}
	}

	res := &Result{
		Groups: make([]Group, 0, len(order)),
		Order:  make([]int, 0, len(labels)),
	}
	for _, label := range order {
		rows := byLabel[label]
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyGroup, label)
		}
		var d *dendrogram.Dendrogram
		if len(rows) == 1 {
			d = dendrogram.Trivial()
		} else {
			sub, err := m.SelectRows(rows)
			if err != nil {
				return nil, fmt.Errorf("split: group %q: %w", label, err)
			}
			d, err = cluster(sub, opts.Linkage)
			if err != nil {
				return nil, fmt.Errorf("split: group %q: %w", label, err)
			}
		}
		for _, local := range d.LeafOrder {
			res.Order = append(res.Order, rows[local])
		}
		res.Groups = append(res.Groups, Group{Label: label, Rows: rows, Dendrogram: d})
	}

	cum := 0
	for _, g := range res.Groups[:len(res.Groups)-1] {
		cum += len(g.Rows)
		res.Boundaries = append(res.Boundaries, cum)
	}

	debug.Log("split: %d rows into %d groups, %d boundaries",
		len(labels), len(res.Groups), len(res.Boundaries))
	return res, nil
}

// groupRows buckets row indices by label, recording first-seen label order.
func groupRows(labels []string, alphabetical bool) ([]string, map[string][]int) {
	byLabel := make(map[string][]int, len(labels))
	var order []string
	for i, label := range labels {
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], i)
	}
	if alphabetical {
		sort.Strings(order)
	}
	return order, byLabel
}

// forcedOrder validates an explicit group ordering against the observed
// labels. Every observed label must appear exactly once.
func forcedOrder(want []string, byLabel map[string][]int) ([]string, error) {
	seen := make(map[string]bool, len(want))
	for _, label := range want {
		if seen[label] {
			return nil, fmt.Errorf("%w: group order repeats %q", matrix.ErrInvalidInput, label)
		}
		seen[label] = true
		if len(byLabel[label]) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyGroup, label)
		}
	}
	for label := range byLabel {
		if !seen[label] {
			return nil, fmt.Errorf("%w: group order omits %q", matrix.ErrInvalidInput, label)
		}
	}
	return append([]string(nil), want...), nil
}
