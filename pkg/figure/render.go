package figure

import (
	"fmt"
	"sort"
)

// Anchor selects horizontal text anchoring relative to the given point.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Canvas is the narrow surface a rendering backend provides. All
// coordinates are in unit canvas space (origin bottom-left, y up);
// implementations own the mapping to device pixels, including the y flip.
// Colors are hex strings ("#rrggbb"); widths and sizes are device pixels.
type Canvas interface {
	FillRect(r Rect, color string)
	Polyline(xs, ys []float64, color string, width float64)
	Marker(x, y float64, color string, size float64)
	Text(x, y float64, s, color string, size float64, anchor Anchor)
}

const (
	defaultMarkerSize = 3.0
	legendRowHeight   = 0.045
	legendSwatch      = 0.018
	labelFontSize     = 11.0
)

// Render walks the layers in ascending z-order (stable within a band) and
// draws each through the canvas. Layer payload coordinates are mapped from
// layer-rect space into unit canvas space here, so a Canvas never sees a
// Rect it has to interpret beyond affine placement.
func (f *Figure) Render(c Canvas) error {
	layers := make([]Layer, len(f.Layers))
	copy(layers, f.Layers)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Z < layers[j].Z })

	for _, l := range layers {
		if err := l.Validate(); err != nil {
			return err
		}
		switch l.Kind {
		case KindHeatmap:
			renderHeatmap(c, l.Rect, l.Heatmap)
		case KindLine:
			renderLines(c, l.Rect, l.Line)
		case KindBar:
			renderBars(c, l.Rect, l.Bar)
		case KindScatter:
			renderScatter(c, l.Rect, l.Scatter)
		case KindStrip:
			renderStrip(c, l.Rect, l.Strip)
		case KindBox:
			renderBoxes(c, l.Rect, l.Box)
		case KindLegend:
			renderLegend(c, l.Rect, l.Legend)
		default:
			return fmt.Errorf("%w: kind %q", ErrInvalidLayer, l.Kind)
		}
	}
	return nil
}

// toCanvas maps a point from layer-rect space into unit canvas space.
func toCanvas(r Rect, u, v float64) (float64, float64) {
	return r.X + u*r.W, r.Y + v*r.H
}

// cellRect returns the canvas-space rectangle of grid cell (row, col) in a
// rows x cols grid filling r, with row 0 at the top.
func cellRect(r Rect, row, col, rows, cols int) Rect {
	w := r.W / float64(cols)
	h := r.H / float64(rows)
	return Rect{
		X: r.X + float64(col)*w,
		Y: r.Y + r.H - float64(row+1)*h,
		W: w,
		H: h,
	}
}

func renderHeatmap(c Canvas, r Rect, d *HeatmapData) {
	rows := len(d.Colors)
	if rows == 0 {
		return
	}
	cols := len(d.Colors[0])
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c.FillRect(cellRect(r, i, j, rows, cols), d.Colors[i][j])
		}
	}
}

func renderLines(c Canvas, r Rect, d *LineData) {
	for _, pl := range d.Lines {
		xs := make([]float64, len(pl.X))
		ys := make([]float64, len(pl.Y))
		for i := range pl.X {
			xs[i], ys[i] = toCanvas(r, pl.X[i], pl.Y[i])
		}
		c.Polyline(xs, ys, d.Color, d.Width)
	}
}

// bar cells leave a sliver of padding so adjacent bars read as separate.
const barPad = 0.15

func renderBars(c Canvas, r Rect, d *BarData) {
	n := len(d.Heights)
	for k, h := range d.Heights {
		if d.Horizontal {
			y0 := 1.0 - (float64(k)+1.0-barPad)/float64(n)
			c.FillRect(Rect{
				X: r.X,
				Y: r.Y + y0*r.H,
				W: h * r.W,
				H: (1.0 - 2*barPad) / float64(n) * r.H,
			}, d.Color)
		} else {
			x0 := (float64(k) + barPad) / float64(n)
			c.FillRect(Rect{
				X: r.X + x0*r.W,
				Y: r.Y,
				W: (1.0 - 2*barPad) / float64(n) * r.W,
				H: h * r.H,
			}, d.Color)
		}
	}
}

func renderScatter(c Canvas, r Rect, d *ScatterData) {
	size := d.Size
	if size <= 0 {
		size = defaultMarkerSize
	}
	n := len(d.Heights)
	for k, h := range d.Heights {
		var x, y float64
		if d.Horizontal {
			x, y = toCanvas(r, h, 1.0-(float64(k)+0.5)/float64(n))
		} else {
			x, y = toCanvas(r, (float64(k)+0.5)/float64(n), h)
		}
		c.Marker(x, y, d.Color, size)
	}
}

func renderStrip(c Canvas, r Rect, d *StripData) {
	n := len(d.Colors)
	for k, col := range d.Colors {
		if d.Horizontal {
			c.FillRect(cellRect(r, 0, k, 1, n), col)
		} else {
			c.FillRect(cellRect(r, k, 0, n, 1), col)
		}
	}
}

const boxWidth = 0.6

func renderBoxes(c Canvas, r Rect, d *BoxData) {
	n := len(d.Stats)
	for k, s := range d.Stats {
		center := (float64(k) + 0.5) / float64(n)
		half := boxWidth / (2 * float64(n))
		if d.Horizontal {
			cy := 1.0 - center
			// whisker
			x0, y0 := toCanvas(r, s.Min, cy)
			x1, _ := toCanvas(r, s.Max, cy)
			c.Polyline([]float64{x0, x1}, []float64{y0, y0}, d.Color, 1)
			// box
			bx, by := toCanvas(r, s.Q1, cy-half)
			bx1, by1 := toCanvas(r, s.Q3, cy+half)
			c.FillRect(Rect{X: bx, Y: by, W: bx1 - bx, H: by1 - by}, d.Color)
			// median
			mx, my0 := toCanvas(r, s.Median, cy-half)
			_, my1 := toCanvas(r, s.Median, cy+half)
			c.Polyline([]float64{mx, mx}, []float64{my0, my1}, "#ffffff", 1)
		} else {
			x0, y0 := toCanvas(r, center, s.Min)
			_, y1 := toCanvas(r, center, s.Max)
			c.Polyline([]float64{x0, x0}, []float64{y0, y1}, d.Color, 1)
			bx, by := toCanvas(r, center-half, s.Q1)
			bx1, by1 := toCanvas(r, center+half, s.Q3)
			c.FillRect(Rect{X: bx, Y: by, W: bx1 - bx, H: by1 - by}, d.Color)
			mx0, my := toCanvas(r, center-half, s.Median)
			mx1, _ := toCanvas(r, center+half, s.Median)
			c.Polyline([]float64{mx0, mx1}, []float64{my, my}, "#ffffff", 1)
		}
	}
}

func renderLegend(c Canvas, r Rect, d *LegendData) {
	rowH := legendRowHeight
	if n := len(d.Entries); n > 0 && float64(n)*rowH > r.H {
		rowH = r.H / float64(n)
	}
	y := r.Top()
	if d.Title != "" {
		c.Text(r.X, y-rowH/2, d.Title, "#000000", labelFontSize, AnchorStart)
		y -= rowH
	}
	for _, e := range d.Entries {
		c.FillRect(Rect{
			X: r.X,
			Y: y - rowH/2 - legendSwatch/2,
			W: legendSwatch,
			H: legendSwatch,
		}, e.Color)
		c.Text(r.X+legendSwatch*1.5, y-rowH/2, e.Label, "#000000", labelFontSize, AnchorStart)
		y -= rowH
	}
}
