package heatmap

import (
	"github.com/vanderheijden86/clustermap/pkg/annotation"
	"github.com/vanderheijden86/clustermap/pkg/colorscale"
	"github.com/vanderheijden86/clustermap/pkg/dendrogram"
	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
	"github.com/vanderheijden86/clustermap/pkg/split"
)

const (
	dendrogramColor = "#333333"
	dendrogramWidth = 1.0
	dividerColor    = "#ffffff"
	dividerWidth    = 2.0
)

// assemble turns the ordered matrix, clusterings, and annotations into
// positioned layers.
func (h *Heatmap) assemble(m *matrix.Matrix, scale colorscale.Scale, rows rowOrdering, cols colOrdering, top, right *annotation.Annotation, entries []figure.LegendEntry, lay layout) ([]figure.Layer, error) {
	var layers []figure.Layer

	layers = append(layers, heatmapLayer(m, scale, h.opts, lay.heat))

	if cols.dendro != nil {
		l, err := topDendroLayer(cols.dendro, lay.topDendro)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if rows.dendro != nil {
		l, err := leftDendroLayer(rows.dendro, "row-dendrogram", lay.leftBand)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if rows.groups != nil {
		gls, err := groupDendroLayers(rows.groups, lay.leftBand)
		if err != nil {
			return nil, err
		}
		layers = append(layers, gls...)
	}

	if top != nil {
		for i, t := range top.Tracks {
			l := t.Layer(matrix.AxisColumns)
			l.Rect = lay.topTracks[i]
			l.Z = figure.ZAnnotation
			layers = append(layers, l)
		}
	}
	if right != nil {
		for i, t := range right.Tracks {
			l := t.Layer(matrix.AxisRows)
			l.Rect = lay.rightTracks[i]
			l.Z = figure.ZAnnotation
			layers = append(layers, l)
		}
	}

	if rows.groups != nil && len(rows.groups.Boundaries) > 0 {
		layers = append(layers, dividerLayer(rows.groups, m.Rows(), lay.heat))
	}

	if len(entries) > 0 {
		layers = append(layers, figure.Layer{
			Kind:   figure.KindLegend,
			Name:   "legend",
			Rect:   lay.legend,
			Z:      figure.ZLegend,
			Legend: &figure.LegendData{Entries: entries},
		})
	}
	return layers, nil
}

func heatmapLayer(m *matrix.Matrix, scale colorscale.Scale, opts Options, rect figure.Rect) figure.Layer {
	values := m.Values()
	lo, hi := m.MinMax()
	name := opts.Name
	if name == "" {
		name = "heatmap"
	}
	return figure.Layer{
		Kind: figure.KindHeatmap,
		Name: name,
		Rect: rect,
		Z:    figure.ZHeatmap,
		Heatmap: &figure.HeatmapData{
			Values:    values,
			Colors:    colorscale.MapValues(scale, values, lo, hi),
			RowLabels: m.RowLabels(),
			ColLabels: m.ColLabels(),
			Min:       lo,
			Max:       hi,
			Scale:     opts.Colorscale,
		},
	}
}

// topDendroLayer maps a column dendrogram into its band: leaf i centers on
// heatmap column i, heights grow upward away from the matrix.
func topDendroLayer(d *dendrogram.Dendrogram, rect figure.Rect) (figure.Layer, error) {
	traces, err := d.Traces(dendrogram.OrientTop, dendrogramColor, dendrogramWidth)
	if err != nil {
		return figure.Layer{}, err
	}
	n := float64(d.Leaves())
	maxH := d.MaxHeight()
	lines := make([]figure.Polyline, 0, len(traces))
	for _, tr := range traces {
		x := make([]float64, 4)
		y := make([]float64, 4)
		for k := 0; k < 4; k++ {
			x[k] = (tr.X[k] + 0.5) / n
			y[k] = heightFrac(tr.Y[k], maxH)
		}
		lines = append(lines, figure.Polyline{X: x, Y: y})
	}
	return figure.Layer{
		Kind: figure.KindLine,
		Name: "col-dendrogram",
		Rect: rect,
		Z:    figure.ZDendrogram,
		Line: &figure.LineData{Lines: lines, Color: dendrogramColor, Width: dendrogramWidth},
	}, nil
}

// leftDendroLayer maps a row dendrogram into its band: leaf i centers on
// heatmap row i (row 0 at the top), heights grow leftward away from the
// matrix edge.
func leftDendroLayer(d *dendrogram.Dendrogram, name string, rect figure.Rect) (figure.Layer, error) {
	traces, err := d.Traces(dendrogram.OrientLeft, dendrogramColor, dendrogramWidth)
	if err != nil {
		return figure.Layer{}, err
	}
	n := float64(d.Leaves())
	maxH := d.MaxHeight()
	lines := make([]figure.Polyline, 0, len(traces))
	for _, tr := range traces {
		x := make([]float64, 4)
		y := make([]float64, 4)
		for k := 0; k < 4; k++ {
			x[k] = 1 - heightFrac(-tr.X[k], maxH)
			y[k] = 1 - (tr.Y[k]+0.5)/n
		}
		lines = append(lines, figure.Polyline{X: x, Y: y})
	}
	return figure.Layer{
		Kind: figure.KindLine,
		Name: name,
		Rect: rect,
		Z:    figure.ZDendrogram,
		Line: &figure.LineData{Lines: lines, Color: dendrogramColor, Width: dendrogramWidth},
	}, nil
}

// groupDendroLayers slices the left band vertically, one sub-rect per split
// group aligned with the group's rows. Singleton groups draw nothing.
func groupDendroLayers(res *split.Result, band figure.Rect) ([]figure.Layer, error) {
	n := float64(len(res.Order))
	var layers []figure.Layer
	start := 0
	for _, g := range res.Groups {
		end := start + g.Leaves()
		if g.Leaves() >= 2 {
			rect := figure.Rect{
				X: band.X,
				Y: band.Y + band.H*(1-float64(end)/n),
				W: band.W,
				H: band.H * float64(g.Leaves()) / n,
			}
			l, err := leftDendroLayer(g.Dendrogram, "row-dendrogram/"+g.Label, rect)
			if err != nil {
				return nil, err
			}
			layers = append(layers, l)
		}
		start = end
	}
	return layers, nil
}

// dividerLayer draws a horizontal line across the heatmap at each group
// boundary.
func dividerLayer(res *split.Result, nrows int, rect figure.Rect) figure.Layer {
	n := float64(nrows)
	lines := make([]figure.Polyline, 0, len(res.Boundaries))
	for _, b := range res.Boundaries {
		y := 1 - float64(b)/n
		lines = append(lines, figure.Polyline{X: []float64{0, 1}, Y: []float64{y, y}})
	}
	return figure.Layer{
		Kind: figure.KindLine,
		Name: "row-split-dividers",
		Rect: rect,
		Z:    figure.ZDivider,
		Line: &figure.LineData{Lines: lines, Color: dividerColor, Width: dividerWidth},
	}
}

func heightFrac(h, maxH float64) float64 {
	if maxH <= 0 {
		return 0
	}
	return h / maxH
}
