package heatmap

import (
	"fmt"

	"github.com/vanderheijden86/clustermap/pkg/annotation"
	"github.com/vanderheijden86/clustermap/pkg/figure"
)

// axisCeiling caps the combined dendrogram and annotation fraction per axis
// so the main matrix keeps at least half of it. The legend column sits
// outside the ceiling.
const axisCeiling = 0.5

// layout holds the computed band rectangles in canvas fractions. The canvas
// is the unit square, origin bottom-left.
type layout struct {
	heat        figure.Rect
	topDendro   figure.Rect
	leftBand    figure.Rect
	topTracks   []figure.Rect
	rightTracks []figure.Rect
	legend      figure.Rect
}

// computeLayout carves the canvas into bands: top dendrogram, then top
// annotation tracks above the matrix; right annotation tracks, then the
// legend column beside it; left dendrogram band when rows are clustered.
func computeLayout(opts Options, top, right *annotation.Annotation, colDendro, rowDendro, hasLegend bool) (layout, error) {
	topBand, leftBand := 0.0, 0.0
	if colDendro {
		topBand = opts.DendrogramBand
	}
	if rowDendro {
		leftBand = opts.DendrogramBand
	}
	topAnn := top.TotalSize()
	rightAnn := right.TotalSize()

	if total := topBand + topAnn; total > axisCeiling {
		return layout{}, fmt.Errorf("%w: column-axis bands take %.3f of the canvas (ceiling %.2f)",
			ErrLayoutOverflow, total, axisCeiling)
	}
	if total := leftBand + rightAnn; total > axisCeiling {
		return layout{}, fmt.Errorf("%w: row-axis bands take %.3f of the canvas (ceiling %.2f)",
			ErrLayoutOverflow, total, axisCeiling)
	}

	legendBand := 0.0
	if hasLegend {
		legendBand = opts.LegendBand
	}

	matW := 1 - leftBand - rightAnn - legendBand
	matH := 1 - topBand - topAnn
	if matW <= 0 || matH <= 0 {
		return layout{}, fmt.Errorf("%w: matrix area collapsed to %.3f x %.3f",
			ErrLayoutOverflow, matW, matH)
	}

	lay := layout{
		heat: figure.Rect{X: leftBand, Y: 0, W: matW, H: matH},
	}
	if colDendro {
		lay.topDendro = figure.Rect{X: leftBand, Y: 1 - topBand, W: matW, H: topBand}
	}
	if rowDendro {
		lay.leftBand = figure.Rect{X: 0, Y: 0, W: leftBand, H: matH}
	}

	// Top tracks stack downward toward the matrix in declaration order;
	// right tracks extend rightward away from it.
	if top != nil {
		y := 1 - topBand
		for _, t := range top.Tracks {
			lay.topTracks = append(lay.topTracks, figure.Rect{
				X: leftBand, Y: y - t.Fraction(), W: matW, H: t.Fraction(),
			})
			y -= t.Fraction() + top.Gap
		}
	}
	if right != nil {
		x := leftBand + matW
		for _, t := range right.Tracks {
			lay.rightTracks = append(lay.rightTracks, figure.Rect{
				X: x, Y: 0, W: t.Fraction(), H: matH,
			})
			x += t.Fraction() + right.Gap
		}
	}
	if hasLegend {
		lay.legend = figure.Rect{X: 1 - legendBand, Y: 0, W: legendBand, H: matH}
	}
	return lay, nil
}
