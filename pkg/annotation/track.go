package annotation

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/clustermap/pkg/colorscale"
	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

// Kind names a track variant for explicit Spec construction.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindBar         Kind = "bar"
	KindScatter     Kind = "scatter"
	KindBox         Kind = "box"
)

// defaultColor styles numeric tracks when no color is given.
const defaultColor = "#1f77b4"

// Spec describes a track for NewTrack when a plain value slice is not
// enough: an explicit kind override or custom colors.
type Spec struct {
	// Values holds the track data: []string, []float64, []int, or
	// [][]float64 for per-position box samples.
	Values any
	// Type overrides kind inference. Empty means infer from Values.
	Type Kind
	// Color styles numeric glyphs. Categorical tracks ignore it.
	Color string
	// Colors pins categorical values to colors. Values not listed fall
	// back to the qualitative palette.
	Colors map[string]string
}

// NewTrack builds a track from a raw value sequence or a Spec, inferring
// the kind from the value type once at this boundary: strings become a
// categorical strip, numbers a bar track, sample slices a box track. A
// Spec's Type field can force scatter rendering for numeric values.
func NewTrack(name string, values any) (Track, error) {
	spec, ok := values.(Spec)
	if !ok {
		spec = Spec{Values: values}
	}
	switch v := spec.Values.(type) {
	case []string:
		if spec.Type != "" && spec.Type != KindCategorical {
			return nil, fmt.Errorf("annotation: track %q: string values cannot render as %q", name, spec.Type)
		}
		return NewCategorical(name, v, spec.Colors), nil
	case []float64:
		return numericTrack(name, v, spec)
	case []int:
		vals := make([]float64, len(v))
		for i, x := range v {
			vals[i] = float64(x)
		}
		return numericTrack(name, vals, spec)
	case [][]float64:
		if spec.Type != "" && spec.Type != KindBox {
			return nil, fmt.Errorf("annotation: track %q: sample slices cannot render as %q", name, spec.Type)
		}
		return NewBox(name, v, spec.Color), nil
	case nil:
		return nil, fmt.Errorf("annotation: track %q has no values", name)
	default:
		return nil, fmt.Errorf("annotation: track %q: unsupported value type %T", name, spec.Values)
	}
}

func numericTrack(name string, values []float64, spec Spec) (Track, error) {
	switch spec.Type {
	case "", KindBar:
		return NewBar(name, values, spec.Color), nil
	case KindScatter:
		return NewScatter(name, values, spec.Color), nil
	default:
		return nil, fmt.Errorf("annotation: track %q: numeric values cannot render as %q", name, spec.Type)
	}
}

// ---------------------------------------------------------------------------
// Categorical
// ---------------------------------------------------------------------------

// Categorical is a color-coded strip with one cell per position.
type Categorical struct {
	name   string
	values []string
	colors map[string]string
	levels []string
}

// NewCategorical builds a categorical strip. Distinct values receive
// qualitative palette colors in first-seen order; the colors map pins
// specific values and the palette fills the rest.
func NewCategorical(name string, values []string, colors map[string]string) *Categorical {
	t := &Categorical{
		name:   name,
		values: append([]string(nil), values...),
		colors: make(map[string]string),
	}
	for _, v := range values {
		if _, seen := t.colors[v]; seen {
			continue
		}
		t.levels = append(t.levels, v)
		if c, ok := colors[v]; ok {
			t.colors[v] = c
		} else {
			t.colors[v] = colorscale.QualitativeColor(len(t.levels) - 1)
		}
	}
	return t
}

func (t *Categorical) Name() string      { return t.name }
func (t *Categorical) Len() int          { return len(t.values) }
func (t *Categorical) Fraction() float64 { return categoricalFraction }
func (t *Categorical) isTrack()          {}

// Values returns a copy of the track values in display order.
func (t *Categorical) Values() []string { return append([]string(nil), t.values...) }

// Color returns the color assigned to a value, or "" if the value never
// appeared.
func (t *Categorical) Color(value string) string { return t.colors[value] }

// Reorder permutes the strip. The color assignment and legend order stay
// bound to the original first-seen order.
func (t *Categorical) Reorder(perm []int) Track {
	out := *t
	out.values = permute(t.values, perm)
	return &out
}

// LegendEntries lists one entry per distinct value, labeled "name: value",
// in first-seen order.
func (t *Categorical) LegendEntries() []figure.LegendEntry {
	entries := make([]figure.LegendEntry, 0, len(t.levels))
	for _, v := range t.levels {
		entries = append(entries, figure.LegendEntry{
			Label: t.name + ": " + v,
			Color: t.colors[v],
		})
	}
	return entries
}

func (t *Categorical) Layer(axis matrix.Axis) figure.Layer {
	colors := make([]string, len(t.values))
	for i, v := range t.values {
		colors[i] = t.colors[v]
	}
	return figure.Layer{
		Kind: figure.KindStrip,
		Name: t.name,
		Strip: &figure.StripData{
			Colors:     colors,
			Labels:     append([]string(nil), t.values...),
			Horizontal: axis == matrix.AxisColumns,
		},
	}
}

// ---------------------------------------------------------------------------
// Bar
// ---------------------------------------------------------------------------

// Bar is a numeric track rendered as bars scaled to the band height.
type Bar struct {
	name   string
	values []float64
	color  string
}

// NewBar builds a bar track. An empty color selects the default.
func NewBar(name string, values []float64, color string) *Bar {
	if color == "" {
		color = defaultColor
	}
	return &Bar{name: name, values: append([]float64(nil), values...), color: color}
}

func (t *Bar) Name() string      { return t.name }
func (t *Bar) Len() int          { return len(t.values) }
func (t *Bar) Fraction() float64 { return numericFraction }
func (t *Bar) isTrack()          {}

// Values returns a copy of the raw values in display order.
func (t *Bar) Values() []float64 { return append([]float64(nil), t.values...) }

func (t *Bar) Reorder(perm []int) Track {
	out := *t
	out.values = permute(t.values, perm)
	return &out
}

func (t *Bar) LegendEntries() []figure.LegendEntry { return nil }

func (t *Bar) Layer(axis matrix.Axis) figure.Layer {
	return figure.Layer{
		Kind: figure.KindBar,
		Name: t.name,
		Bar: &figure.BarData{
			Heights:    scaleBand(t.values),
			Labels:     formatValues(t.values),
			Color:      t.color,
			Horizontal: axis == matrix.AxisRows,
		},
	}
}

// ---------------------------------------------------------------------------
// Scatter
// ---------------------------------------------------------------------------

// Scatter is a numeric track rendered as one marker per position, never
// connected by lines.
type Scatter struct {
	name   string
	values []float64
	color  string
}

// NewScatter builds a scatter track. An empty color selects the default.
func NewScatter(name string, values []float64, color string) *Scatter {
	if color == "" {
		color = defaultColor
	}
	return &Scatter{name: name, values: append([]float64(nil), values...), color: color}
}

func (t *Scatter) Name() string      { return t.name }
func (t *Scatter) Len() int          { return len(t.values) }
func (t *Scatter) Fraction() float64 { return numericFraction }
func (t *Scatter) isTrack()          {}

// Values returns a copy of the raw values in display order.
func (t *Scatter) Values() []float64 { return append([]float64(nil), t.values...) }

func (t *Scatter) Reorder(perm []int) Track {
	out := *t
	out.values = permute(t.values, perm)
	return &out
}

func (t *Scatter) LegendEntries() []figure.LegendEntry { return nil }

func (t *Scatter) Layer(axis matrix.Axis) figure.Layer {
	return figure.Layer{
		Kind: figure.KindScatter,
		Name: t.name,
		Scatter: &figure.ScatterData{
			Heights:    scaleBand(t.values),
			Labels:     formatValues(t.values),
			Color:      t.color,
			Horizontal: axis == matrix.AxisRows,
		},
	}
}

// ---------------------------------------------------------------------------
// Box
// ---------------------------------------------------------------------------

// Box summarizes one sample slice per position as a five-number box.
type Box struct {
	name    string
	samples [][]float64
	color   string
}

// NewBox builds a box track from per-position samples. An empty color
// selects the default.
func NewBox(name string, samples [][]float64, color string) *Box {
	if color == "" {
		color = defaultColor
	}
	copied := make([][]float64, len(samples))
	for i, s := range samples {
		copied[i] = append([]float64(nil), s...)
	}
	return &Box{name: name, samples: copied, color: color}
}

func (t *Box) Name() string      { return t.name }
func (t *Box) Len() int          { return len(t.samples) }
func (t *Box) Fraction() float64 { return numericFraction }
func (t *Box) isTrack()          {}

// Samples returns a copy of the per-position samples in display order.
func (t *Box) Samples() [][]float64 {
	out := make([][]float64, len(t.samples))
	for i, s := range t.samples {
		out[i] = append([]float64(nil), s...)
	}
	return out
}

func (t *Box) Reorder(perm []int) Track {
	out := *t
	out.samples = permute(t.samples, perm)
	return &out
}

func (t *Box) LegendEntries() []figure.LegendEntry { return nil }

func (t *Box) Layer(axis matrix.Axis) figure.Layer {
	return figure.Layer{
		Kind: figure.KindBox,
		Name: t.name,
		Box: &figure.BoxData{
			Stats:      t.stats(),
			Color:      t.color,
			Horizontal: axis == matrix.AxisRows,
		},
	}
}

// stats computes five-number summaries scaled to [0,1] over the global
// value range, so boxes across positions share one axis. An empty sample
// yields a zero summary.
func (t *Box) stats() []figure.BoxStats {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range t.samples {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	scale := func(v float64) float64 {
		if !(span > 0) {
			return 0.5
		}
		return (v - lo) / span
	}
	out := make([]figure.BoxStats, len(t.samples))
	for i, s := range t.samples {
		if len(s) == 0 {
			continue
		}
		sorted := append([]float64(nil), s...)
		sort.Float64s(sorted)
		out[i] = figure.BoxStats{
			Min:    scale(sorted[0]),
			Q1:     scale(quantile(sorted, 0.25)),
			Median: scale(quantile(sorted, 0.5)),
			Q3:     scale(quantile(sorted, 0.75)),
			Max:    scale(sorted[len(sorted)-1]),
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func permute[T any](values []T, perm []int) []T {
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = values[p]
	}
	return out
}

// scaleBand maps values onto [0,1] of the track band. Non-negative data
// keeps its zero baseline so glyph heights stay proportional to the raw
// values; data containing negatives is min-max scaled instead.
func scaleBand(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	lo := floats.Min(values)
	hi := floats.Max(values)
	out := make([]float64, len(values))
	switch {
	case lo >= 0 && hi > 0:
		for i, v := range values {
			out[i] = v / hi
		}
	case lo >= 0:
		// All zero, nothing to draw.
	case hi > lo:
		span := hi - lo
		for i, v := range values {
			out[i] = (v - lo) / span
		}
	default:
		for i := range out {
			out[i] = 0.5
		}
	}
	return out
}

// quantile returns the linearly interpolated q-quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}
