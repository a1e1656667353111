// Package colorscale provides the named continuous color scales used for
// heatmap values and the qualitative palette used for categorical
// annotation tracks. Continuous scales interpolate between anchor stops in
// Lab space so midpoints stay perceptually even.
package colorscale

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownScale reports a colorscale name with no registered gradient.
var ErrUnknownScale = errors.New("colorscale: unknown scale")

type stop struct {
	pos float64
	col colorful.Color
}

// Scale is a continuous gradient defined by ordered anchor stops on [0,1].
type Scale struct {
	name  string
	stops []stop
}

// Name returns the name the scale was looked up under.
func (s Scale) Name() string { return s.name }

// At maps t (clamped to [0,1]) to a hex color.
func (s Scale) At(t float64) string {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	st := s.stops
	if t <= st[0].pos {
		return st[0].col.Hex()
	}
	if t >= st[len(st)-1].pos {
		return st[len(st)-1].col.Hex()
	}
	for i := 1; i < len(st); i++ {
		if t <= st[i].pos {
			span := st[i].pos - st[i-1].pos
			u := 0.0
			if span > 0 {
				u = (t - st[i-1].pos) / span
			}
			return st[i-1].col.BlendLab(st[i].col, u).Clamped().Hex()
		}
	}
	return st[len(st)-1].col.Hex()
}

// Reversed returns the scale flipped end to end.
func (s Scale) Reversed() Scale {
	rev := make([]stop, len(s.stops))
	for i, st := range s.stops {
		rev[len(s.stops)-1-i] = stop{pos: 1 - st.pos, col: st.col}
	}
	return Scale{name: s.name, stops: rev}
}

// Lookup resolves a scale by name, case-insensitively. A "_r" suffix
// reverses the base scale, matching the plotly/matplotlib convention.
func Lookup(name string) (Scale, error) {
	base := name
	reversed := false
	if strings.HasSuffix(strings.ToLower(base), "_r") {
		base = base[:len(base)-2]
		reversed = true
	}
	s, ok := registry[strings.ToLower(base)]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	s.name = name
	if reversed {
		s = s.Reversed()
	}
	return s, nil
}

// MapValues maps a value grid to hex colors over [min, max]. A degenerate
// range maps every cell to the scale midpoint.
func MapValues(s Scale, values [][]float64, min, max float64) [][]string {
	span := max - min
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if span == 0 {
				out[i][j] = s.At(0.5)
				continue
			}
			out[i][j] = s.At((v - min) / span)
		}
	}
	return out
}

// Qualitative is the categorical palette (the d3/plotly category-10 set).
// Assignment wraps when a track has more distinct values than colors.
var Qualitative = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// QualitativeColor returns the palette entry for index i, wrapping.
func QualitativeColor(i int) string {
	return Qualitative[i%len(Qualitative)]
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(fmt.Sprintf("colorscale: bad anchor %q: %v", h, err))
	}
	return c
}

func anchors(hexes ...string) []stop {
	st := make([]stop, len(hexes))
	for i, h := range hexes {
		st[i] = stop{
			pos: float64(i) / float64(len(hexes)-1),
			col: mustHex(h),
		}
	}
	return st
}

// registry keys are lowercase base names; "_r" variants derive at lookup.
var registry = map[string]Scale{
	// ColorBrewer diverging red-white-blue; RdBu_r is the usual pick for
	// z-scored expression matrices (high = red).
	"rdbu":    {stops: anchors("#67001f", "#d6604d", "#f7f7f7", "#4393c3", "#053061")},
	"viridis": {stops: anchors("#440154", "#3b528b", "#21918c", "#5ec962", "#fde725")},
	"blues":   {stops: anchors("#f7fbff", "#6baed6", "#08306b")},
	"greys":   {stops: anchors("#ffffff", "#959595", "#000000")},
	"magma":   {stops: anchors("#000004", "#711f81", "#b73779", "#fec287", "#fcfdbf")},
}
