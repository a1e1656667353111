// Package figure defines the engine's output model: a declarative list of
// positioned visual layers plus the narrow Canvas interface rendering
// backends implement. Figures are produced once, never mutated, and carry
// everything a renderer needs (precomputed hex colors, normalized
// geometry) so backends stay pure coordinate mappers.
package figure

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrInvalidLayer reports a layer whose payload does not agree with its kind.
var ErrInvalidLayer = errors.New("figure: layer payload does not match kind")

// Rect is a rectangle in fractional canvas coordinates: the canvas is the
// unit square with origin at the bottom-left corner and y increasing upward.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// LayerKind tags the payload carried by a Layer.
type LayerKind string

const (
	KindHeatmap LayerKind = "heatmap"
	KindLine    LayerKind = "line"
	KindBar     LayerKind = "bar"
	KindScatter LayerKind = "scatter"
	KindStrip   LayerKind = "categorical-strip"
	KindBox     LayerKind = "box"
	KindLegend  LayerKind = "legend"
)

// Z-order bands. Higher draws later (on top).
const (
	ZHeatmap    = 0
	ZAnnotation = 1
	ZDendrogram = 2
	ZDivider    = 3
	ZLegend     = 4
)

// HeatmapData is the payload for a heatmap layer. Values and Colors are
// parallel row-major grids; row 0 is drawn at the top of the layer rect.
// Colors holds one precomputed hex color per cell. Min/Max record the
// value range the colors were mapped over, for colorbar labeling.
type HeatmapData struct {
	Values    [][]float64 `json:"values"`
	Colors    [][]string  `json:"colors"`
	RowLabels []string    `json:"row_labels,omitempty"`
	ColLabels []string    `json:"col_labels,omitempty"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Scale     string      `json:"scale,omitempty"`
}

// Polyline is an open line strip in layer-rect space ([0,1] per axis).
type Polyline struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// LineData is the payload for a line layer: independent polylines sharing
// one color and stroke width (width is in device pixels).
type LineData struct {
	Lines []Polyline `json:"lines"`
	Color string     `json:"color"`
	Width float64    `json:"width"`
}

// BarData is the payload for a bar annotation track. Heights are scaled to
// [0,1] of the track band. Horizontal bars grow along x and stack along y
// (row-axis tracks); vertical bars grow along y and stack along x. The
// orientation is explicit rather than inferred from the layer rect.
type BarData struct {
	Heights    []float64 `json:"heights"`
	Labels     []string  `json:"labels,omitempty"`
	Color      string    `json:"color"`
	Horizontal bool      `json:"horizontal,omitempty"`
}

// ScatterData is the payload for a scatter annotation track: one marker per
// position at its scaled height, never connected by lines. Size is the
// marker radius in device pixels (0 means renderer default).
type ScatterData struct {
	Heights    []float64 `json:"heights"`
	Labels     []string  `json:"labels,omitempty"`
	Color      string    `json:"color"`
	Horizontal bool      `json:"horizontal,omitempty"`
	Size       float64   `json:"size,omitempty"`
}

// StripData is the payload for a categorical strip: one colored cell per
// position plus the raw value for hover text. Horizontal strips lay cells
// along x (column-axis tracks); vertical strips along y.
type StripData struct {
	Colors     []string `json:"colors"`
	Labels     []string `json:"labels"`
	Horizontal bool     `json:"horizontal,omitempty"`
}

// BoxStats is a five-number summary scaled to [0,1] of the track band.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// BoxData is the payload for a box annotation track.
type BoxData struct {
	Stats      []BoxStats `json:"stats"`
	Color      string     `json:"color"`
	Horizontal bool       `json:"horizontal,omitempty"`
}

// LegendEntry is one swatch + label pair.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// LegendData is the payload for the legend layer.
type LegendData struct {
	Entries []LegendEntry `json:"entries"`
	Title   string        `json:"title,omitempty"`
}

// Layer is one positioned visual element. Exactly one payload pointer is
// set, and it must match Kind.
type Layer struct {
	Kind LayerKind `json:"kind"`
	Name string    `json:"name,omitempty"`
	Rect Rect      `json:"rect"`
	Z    int       `json:"z"`

	Heatmap *HeatmapData `json:"heatmap,omitempty"`
	Line    *LineData    `json:"line,omitempty"`
	Bar     *BarData     `json:"bar,omitempty"`
	Scatter *ScatterData `json:"scatter,omitempty"`
	Strip   *StripData   `json:"strip,omitempty"`
	Box     *BoxData     `json:"box,omitempty"`
	Legend  *LegendData  `json:"legend,omitempty"`
}

// Validate checks that the layer carries exactly the payload its kind
// demands.
func (l Layer) Validate() error {
	payloads := 0
	var want bool
	for _, p := range []struct {
		set  bool
		kind LayerKind
	}{
		{l.Heatmap != nil, KindHeatmap},
		{l.Line != nil, KindLine},
		{l.Bar != nil, KindBar},
		{l.Scatter != nil, KindScatter},
		{l.Strip != nil, KindStrip},
		{l.Box != nil, KindBox},
		{l.Legend != nil, KindLegend},
	} {
		if p.set {
			payloads++
			if p.kind == l.Kind {
				want = true
			}
		}
	}
	if payloads != 1 || !want {
		return fmt.Errorf("%w: kind %q with %d payload(s)", ErrInvalidLayer, l.Kind, payloads)
	}
	return nil
}

// Figure is the engine's complete output: explicit device dimensions plus
// layers in fractional coordinates, ready for any Canvas backend.
type Figure struct {
	Name   string  `json:"name,omitempty"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Layers []Layer `json:"layers"`
}

// LayersOfKind returns the layers matching kind, in insertion order.
func (f *Figure) LayersOfKind(kind LayerKind) []Layer {
	var out []Layer
	for _, l := range f.Layers {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// Validate checks every layer.
func (f *Figure) Validate() error {
	for i, l := range f.Layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
	}
	return nil
}

// JSON serializes the figure for dashboard consumption.
func (f *Figure) JSON() ([]byte, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding figure: %w", err)
	}
	return b, nil
}
