// Package heatmap composes clustered heatmaps: it clusters the matrix,
// reorders values and annotations by the resulting leaf orders, carves out
// layout bands for dendrograms, annotation tracks, and the legend, and
// emits one figure with every layer positioned in fractional coordinates.
package heatmap

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/clustermap/pkg/annotation"
	"github.com/vanderheijden86/clustermap/pkg/colorscale"
	"github.com/vanderheijden86/clustermap/pkg/debug"
	"github.com/vanderheijden86/clustermap/pkg/dendrogram"
	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/linkage"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
	"github.com/vanderheijden86/clustermap/pkg/split"
)

// ErrLayoutOverflow reports dendrogram and annotation bands that would
// squeeze the main matrix below the safety ceiling on one axis.
var ErrLayoutOverflow = errors.New("heatmap: layout bands exceed axis ceiling")

// Normalize selects optional per-row or per-column z-scoring before
// clustering.
type Normalize string

const (
	NormalizeNone   Normalize = "none"
	NormalizeRow    Normalize = "row"
	NormalizeColumn Normalize = "column"
)

// Options configures one composition. The zero value of numeric and string
// fields means the default; boolean flags are taken as given, so start from
// DefaultOptions to get both clusterings enabled.
type Options struct {
	// ClusterRows orders rows by hierarchical clustering and draws a left
	// dendrogram. Ignored when SplitRowsBy is set.
	ClusterRows bool
	// ClusterCols orders columns bottom-up the same way, drawn on top.
	ClusterCols bool

	// Linkage configures every clustering this composition runs.
	Linkage linkage.Options

	// Top annotates columns, Right annotates rows. Both are optional and
	// validated against the matrix axes at composition time.
	Top   *annotation.Annotation
	Right *annotation.Annotation

	// SplitRowsBy partitions rows into labeled groups clustered
	// independently, with divider lines between groups. One label per
	// matrix row.
	SplitRowsBy []string
	// SplitAlphabetical orders groups by label instead of first-seen.
	SplitAlphabetical bool
	// SplitGroupOrder forces an explicit group ordering.
	SplitGroupOrder []string

	// Colorscale names the scale the matrix values map through.
	Colorscale string
	// Normalize z-scores rows or columns before clustering.
	Normalize Normalize

	// Name labels the figure and its heatmap layer.
	Name string

	// Width and Height are the output surface dimensions in pixels.
	Width  int
	Height int

	// DendrogramBand is the canvas fraction reserved per dendrogram.
	DendrogramBand float64
	// LegendBand is the canvas fraction reserved for the legend column
	// when any track contributes entries.
	LegendBand float64
}

// DefaultOptions returns the standard composition: both axes clustered,
// diverging red-blue scale, 900x600 surface.
func DefaultOptions() Options {
	return Options{
		ClusterRows:    true,
		ClusterCols:    true,
		Colorscale:     "RdBu_r",
		Normalize:      NormalizeNone,
		Width:          900,
		Height:         600,
		DendrogramBand: 0.12,
		LegendBand:     0.14,
	}
}

// Heatmap binds a matrix to composition options. Figure may be called any
// number of times; the inputs are never mutated.
type Heatmap struct {
	m    *matrix.Matrix
	opts Options
}

// New captures the matrix and options, filling defaulted fields.
func New(m *matrix.Matrix, opts Options) *Heatmap {
	def := DefaultOptions()
	if opts.Colorscale == "" {
		opts.Colorscale = def.Colorscale
	}
	if opts.Normalize == "" {
		opts.Normalize = def.Normalize
	}
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.DendrogramBand <= 0 {
		opts.DendrogramBand = def.DendrogramBand
	}
	if opts.LegendBand <= 0 {
		opts.LegendBand = def.LegendBand
	}
	return &Heatmap{m: m, opts: opts}
}

// rowOrdering is the outcome of the row-axis ordering stage: exactly one of
// dendro and groups is set when rows were clustered, neither for identity
// order.
type rowOrdering struct {
	order  []int
	dendro *dendrogram.Dendrogram
	groups *split.Result
}

type colOrdering struct {
	order  []int
	dendro *dendrogram.Dendrogram
}

// Figure runs the composition pipeline: validate, normalize, order, reorder,
// lay out, assemble.
func (h *Heatmap) Figure() (*figure.Figure, error) {
	defer debug.LogEnterExit("heatmap.Figure")()

	if h.m == nil {
		return nil, fmt.Errorf("%w: nil matrix", matrix.ErrInvalidInput)
	}
	opts := h.opts

	if err := opts.Top.Validate(h.m.Cols()); err != nil {
		return nil, fmt.Errorf("top annotation: %w", err)
	}
	if err := opts.Right.Validate(h.m.Rows()); err != nil {
		return nil, fmt.Errorf("right annotation: %w", err)
	}
	scale, err := colorscale.Lookup(opts.Colorscale)
	if err != nil {
		return nil, err
	}

	m, err := normalized(h.m, opts.Normalize)
	if err != nil {
		return nil, err
	}

	rows, err := h.orderRows(m)
	if err != nil {
		return nil, err
	}
	cols, err := h.orderCols(m)
	if err != nil {
		return nil, err
	}
	debug.Log("heatmap: ordered %dx%d (split=%v rowDendro=%v colDendro=%v)",
		m.Rows(), m.Cols(), rows.groups != nil, rows.dendro != nil, cols.dendro != nil)

	m, err = m.SelectRows(rows.order)
	if err != nil {
		return nil, err
	}
	m, err = m.SelectCols(cols.order)
	if err != nil {
		return nil, err
	}
	top := opts.Top.Reorder(cols.order)
	right := opts.Right.Reorder(rows.order)

	entries := dedupeEntries(append(top.LegendEntries(), right.LegendEntries()...))

	lay, err := computeLayout(opts, top, right,
		cols.dendro != nil, rows.dendro != nil || rows.groups != nil, len(entries) > 0)
	if err != nil {
		return nil, err
	}

	layers, err := h.assemble(m, scale, rows, cols, top, right, entries, lay)
	if err != nil {
		return nil, err
	}
	debug.Log("heatmap: assembled %d layers", len(layers))

	return &figure.Figure{
		Name:   opts.Name,
		Width:  opts.Width,
		Height: opts.Height,
		Layers: layers,
	}, nil
}

func (h *Heatmap) orderRows(m *matrix.Matrix) (rowOrdering, error) {
	opts := h.opts
	if len(opts.SplitRowsBy) > 0 {
		res, err := split.Split(m, matrix.AxisRows, opts.SplitRowsBy, split.Options{
			Linkage:      opts.Linkage,
			Alphabetical: opts.SplitAlphabetical,
			GroupOrder:   opts.SplitGroupOrder,
		})
		if err != nil {
			return rowOrdering{}, err
		}
		return rowOrdering{order: res.Order, groups: res}, nil
	}
	if opts.ClusterRows {
		d, err := dendrogram.Compute(m.View(), opts.Linkage)
		if err != nil {
			return rowOrdering{}, err
		}
		return rowOrdering{order: d.LeafOrder, dendro: d}, nil
	}
	return rowOrdering{order: identity(m.Rows())}, nil
}

func (h *Heatmap) orderCols(m *matrix.Matrix) (colOrdering, error) {
	if h.opts.ClusterCols {
		d, err := dendrogram.Compute(m.TView(), h.opts.Linkage)
		if err != nil {
			return colOrdering{}, err
		}
		return colOrdering{order: d.LeafOrder, dendro: d}, nil
	}
	return colOrdering{order: identity(h.m.Cols())}, nil
}

func normalized(m *matrix.Matrix, mode Normalize) (*matrix.Matrix, error) {
	switch mode {
	case NormalizeNone, "":
		return m, nil
	case NormalizeRow:
		return m.NormalizeRows(), nil
	case NormalizeColumn:
		return m.NormalizeCols(), nil
	default:
		return nil, fmt.Errorf("%w: unknown normalize mode %q", matrix.ErrInvalidInput, mode)
	}
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// dedupeEntries drops repeated legend labels, keeping first occurrence. The
// label embeds track name and value, so the pair is the key.
func dedupeEntries(entries []figure.LegendEntry) []figure.LegendEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		out = append(out, e)
	}
	return out
}
