package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/vanderheijden86/clustermap/pkg/figure"

	"git.sr.ht/~sbinet/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
)

// PNG renders the figure as a PNG image on w. Text uses the fixed 7x13
// bitmap face.
func PNG(w io.Writer, f *figure.Figure, opts RenderOptions) error {
	geom, opts, err := prepare(f, opts)
	if err != nil {
		return err
	}

	dc := gg.NewContext(f.Width, f.Height)
	dc.SetColor(parseHex(opts.Background))
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	if err := f.Render(&pngCanvas{dc: dc, geom: geom, maxLabel: opts.MaxLabelWidth}); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return dc.EncodePNG(w)
}

// pngCanvas implements figure.Canvas on a gg raster context.
type pngCanvas struct {
	dc       *gg.Context
	geom     geometry
	maxLabel int
}

func (c *pngCanvas) FillRect(r figure.Rect, col string) {
	x, y := c.geom.device(r.X, r.Y+r.H)
	c.dc.SetColor(parseHex(col))
	c.dc.DrawRectangle(x, y, c.geom.spanX(r.W), c.geom.spanY(r.H))
	c.dc.Fill()
}

func (c *pngCanvas) Polyline(xs, ys []float64, col string, width float64) {
	if len(xs) == 0 {
		return
	}
	if width <= 0 {
		width = defaultStrokeWidth
	}
	c.dc.SetColor(parseHex(col))
	c.dc.SetLineWidth(width)
	x, y := c.geom.device(xs[0], ys[0])
	c.dc.MoveTo(x, y)
	for i := 1; i < len(xs); i++ {
		x, y = c.geom.device(xs[i], ys[i])
		c.dc.LineTo(x, y)
	}
	c.dc.Stroke()
}

func (c *pngCanvas) Marker(x, y float64, col string, size float64) {
	dx, dy := c.geom.device(x, y)
	c.dc.SetColor(parseHex(col))
	c.dc.DrawCircle(dx, dy, size)
	c.dc.Fill()
}

// Text ignores the size hint: basicfont is a fixed 7x13 face.
func (c *pngCanvas) Text(x, y float64, s, col string, _ float64, anchor figure.Anchor) {
	dx, dy := c.geom.device(x, y)
	ax := 0.0
	switch anchor {
	case figure.AnchorMiddle:
		ax = 0.5
	case figure.AnchorEnd:
		ax = 1.0
	}
	c.dc.SetColor(parseHex(col))
	c.dc.DrawStringAnchored(truncateLabel(s, c.maxLabel), dx, dy, ax, 0.5)
}

// parseHex converts "#rrggbb" to an opaque color. Canvas draw calls have
// no error path, so bad input falls back to black.
func parseHex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
