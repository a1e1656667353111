package export

import (
	"fmt"
	"io"
	"math"

	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/version"

	"github.com/ajstarks/svgo"
)

// SVG renders the figure as an SVG document on w.
func SVG(w io.Writer, f *figure.Figure, opts RenderOptions) error {
	geom, opts, err := prepare(f, opts)
	if err != nil {
		return err
	}

	doc := svg.New(w)
	doc.Start(f.Width, f.Height)
	doc.Desc("clustermap " + version.Version)
	doc.Rect(0, 0, f.Width, f.Height, "fill:"+opts.Background)
	renderErr := f.Render(&svgCanvas{doc: doc, geom: geom, maxLabel: opts.MaxLabelWidth})
	doc.End()
	if renderErr != nil {
		return fmt.Errorf("render svg: %w", renderErr)
	}
	return nil
}

// svgCanvas implements figure.Canvas on an svgo document. svgo works in
// integer pixels; coordinates round to nearest.
type svgCanvas struct {
	doc      *svg.SVG
	geom     geometry
	maxLabel int
}

func (c *svgCanvas) FillRect(r figure.Rect, col string) {
	x, y := c.geom.device(r.X, r.Y+r.H)
	c.doc.Rect(round(x), round(y), round(c.geom.spanX(r.W)), round(c.geom.spanY(r.H)), "fill:"+col)
}

func (c *svgCanvas) Polyline(xs, ys []float64, col string, width float64) {
	if len(xs) == 0 {
		return
	}
	if width <= 0 {
		width = defaultStrokeWidth
	}
	px := make([]int, len(xs))
	py := make([]int, len(ys))
	for i := range xs {
		x, y := c.geom.device(xs[i], ys[i])
		px[i] = round(x)
		py[i] = round(y)
	}
	c.doc.Polyline(px, py, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", col, width))
}

func (c *svgCanvas) Marker(x, y float64, col string, size float64) {
	dx, dy := c.geom.device(x, y)
	r := round(size)
	if r < 1 {
		r = 1
	}
	c.doc.Circle(round(dx), round(dy), r, "fill:"+col)
}

func (c *svgCanvas) Text(x, y float64, s, col string, size float64, anchor figure.Anchor) {
	dx, dy := c.geom.device(x, y)
	style := fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:monospace", col, size)
	switch anchor {
	case figure.AnchorMiddle:
		style += ";text-anchor:middle"
	case figure.AnchorEnd:
		style += ";text-anchor:end"
	}
	c.doc.Text(round(dx), round(dy), truncateLabel(s, c.maxLabel), style)
}

func round(v float64) int { return int(math.Round(v)) }
