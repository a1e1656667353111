package annotation_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/clustermap/pkg/annotation"
	"github.com/vanderheijden86/clustermap/pkg/colorscale"
	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

func TestNewTrackInference(t *testing.T) {
	tests := []struct {
		name   string
		values any
		want   annotation.Kind
	}{
		{"strings", []string{"A", "B"}, annotation.KindCategorical},
		{"floats", []float64{1, 2}, annotation.KindBar},
		{"ints", []int{1, 2}, annotation.KindBar},
		{"scatter override", annotation.Spec{Values: []float64{1, 2}, Type: annotation.KindScatter}, annotation.KindScatter},
		{"samples", [][]float64{{1}, {2}}, annotation.KindBox},
		{"explicit box", annotation.Spec{Values: [][]float64{{1}}, Type: annotation.KindBox}, annotation.KindBox},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := annotation.NewTrack("t", tc.values)
			if err != nil {
				t.Fatalf("NewTrack: %v", err)
			}
			var got annotation.Kind
			switch tr.(type) {
			case *annotation.Categorical:
				got = annotation.KindCategorical
			case *annotation.Bar:
				got = annotation.KindBar
			case *annotation.Scatter:
				got = annotation.KindScatter
			case *annotation.Box:
				got = annotation.KindBox
			}
			if got != tc.want {
				t.Errorf("inferred %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewTrackRejectsBadSpecs(t *testing.T) {
	bad := []struct {
		name   string
		values any
	}{
		{"strings as bar", annotation.Spec{Values: []string{"A"}, Type: annotation.KindBar}},
		{"floats as box", annotation.Spec{Values: []float64{1}, Type: annotation.KindBox}},
		{"unknown kind", annotation.Spec{Values: []float64{1}, Type: annotation.Kind("violin")}},
		{"samples as scatter", annotation.Spec{Values: [][]float64{{1}}, Type: annotation.KindScatter}},
		{"unsupported type", []bool{true}},
		{"no values", nil},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := annotation.NewTrack("t", tc.values); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestCategoricalPaletteFirstSeen(t *testing.T) {
	tr := annotation.NewCategorical("group", []string{"B", "A", "B", "C"}, nil)
	for i, v := range []string{"B", "A", "C"} {
		if got, want := tr.Color(v), colorscale.QualitativeColor(i); got != want {
			t.Errorf("color(%q) = %q, want palette slot %d (%q)", v, got, i, want)
		}
	}
}

func TestCategoricalPinnedColors(t *testing.T) {
	tr := annotation.NewCategorical("group", []string{"B", "A", "C"}, map[string]string{"A": "#112233"})
	if got := tr.Color("A"); got != "#112233" {
		t.Errorf("pinned color lost: %q", got)
	}
	if got, want := tr.Color("B"), colorscale.QualitativeColor(0); got != want {
		t.Errorf("color(B) = %q, want %q", got, want)
	}
	if got, want := tr.Color("C"), colorscale.QualitativeColor(2); got != want {
		t.Errorf("color(C) = %q, want %q", got, want)
	}
}

func TestCategoricalReorderKeepsColors(t *testing.T) {
	tr := annotation.NewCategorical("group", []string{"A", "B", "C"}, nil)
	before := map[string]string{}
	for _, v := range []string{"A", "B", "C"} {
		before[v] = tr.Color(v)
	}

	got := tr.Reorder([]int{2, 0, 1})
	cat, ok := got.(*annotation.Categorical)
	if !ok {
		t.Fatalf("Reorder returned %T", got)
	}
	want := []string{"C", "A", "B"}
	values := cat.Values()
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values = %v, want %v", values, want)
		}
	}
	for v, c := range before {
		if cat.Color(v) != c {
			t.Errorf("color(%q) changed: %q -> %q", v, c, cat.Color(v))
		}
	}
	// Legend order stays bound to first-seen order, not display order.
	entries := cat.LegendEntries()
	wantLabels := []string{"group: A", "group: B", "group: C"}
	if len(entries) != 3 {
		t.Fatalf("legend entries = %d, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Label != wantLabels[i] {
			t.Errorf("entry %d label = %q, want %q", i, e.Label, wantLabels[i])
		}
	}
}

func TestNumericTracksContributeNoLegend(t *testing.T) {
	if got := annotation.NewBar("b", []float64{1, 2}, "").LegendEntries(); len(got) != 0 {
		t.Errorf("bar legend entries = %v", got)
	}
	if got := annotation.NewScatter("s", []float64{1, 2}, "").LegendEntries(); len(got) != 0 {
		t.Errorf("scatter legend entries = %v", got)
	}
	if got := annotation.NewBox("x", [][]float64{{1}}, "").LegendEntries(); len(got) != 0 {
		t.Errorf("box legend entries = %v", got)
	}
}

func TestLayerOrientationPerAxis(t *testing.T) {
	cat := annotation.NewCategorical("c", []string{"A", "B"}, nil)
	if l := cat.Layer(matrix.AxisColumns); l.Kind != figure.KindStrip || !l.Strip.Horizontal {
		t.Errorf("column strip: kind=%v horizontal=%v", l.Kind, l.Strip.Horizontal)
	}
	if l := cat.Layer(matrix.AxisRows); l.Strip.Horizontal {
		t.Error("row strip should be vertical")
	}

	bar := annotation.NewBar("b", []float64{1, 2}, "")
	if l := bar.Layer(matrix.AxisRows); l.Kind != figure.KindBar || !l.Bar.Horizontal {
		t.Errorf("row bars: kind=%v horizontal=%v", l.Kind, l.Bar.Horizontal)
	}
	if l := bar.Layer(matrix.AxisColumns); l.Bar.Horizontal {
		t.Error("column bars should be vertical")
	}

	sc := annotation.NewScatter("s", []float64{1, 2}, "")
	if l := sc.Layer(matrix.AxisRows); l.Kind != figure.KindScatter || !l.Scatter.Horizontal {
		t.Errorf("row scatter: kind=%v horizontal=%v", l.Kind, l.Scatter.Horizontal)
	}

	box := annotation.NewBox("x", [][]float64{{1}, {2}}, "")
	if l := box.Layer(matrix.AxisColumns); l.Kind != figure.KindBox || l.Box.Horizontal {
		t.Errorf("column boxes: kind=%v horizontal=%v", l.Kind, l.Box.Horizontal)
	}

	for _, l := range []figure.Layer{
		cat.Layer(matrix.AxisColumns),
		bar.Layer(matrix.AxisRows),
		sc.Layer(matrix.AxisColumns),
		box.Layer(matrix.AxisRows),
	} {
		if err := l.Validate(); err != nil {
			t.Errorf("emitted layer invalid: %v", err)
		}
	}
}

func TestBarHeightScaling(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"positive keeps zero baseline", []float64{1, 2, 4}, []float64{0.25, 0.5, 1}},
		{"negatives min-max scaled", []float64{-1, 0, 1}, []float64{0, 0.5, 1}},
		{"all zero", []float64{0, 0}, []float64{0, 0}},
		{"equal positive", []float64{5, 5}, []float64{1, 1}},
		{"equal negative", []float64{-2, -2}, []float64{0.5, 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := annotation.NewBar("b", tc.values, "").Layer(matrix.AxisColumns)
			got := l.Bar.Heights
			if len(got) != len(tc.want) {
				t.Fatalf("heights = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("heights = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestBoxFiveNumberSummary(t *testing.T) {
	l := annotation.NewBox("x", [][]float64{{5, 1, 3, 2, 4}, {5, 5, 5, 5, 5}}, "").Layer(matrix.AxisColumns)
	stats := l.Box.Stats
	if len(stats) != 2 {
		t.Fatalf("stats = %d boxes, want 2", len(stats))
	}
	want := figure.BoxStats{Min: 0, Q1: 0.25, Median: 0.5, Q3: 0.75, Max: 1}
	if stats[0] != want {
		t.Errorf("box 0 = %+v, want %+v", stats[0], want)
	}
	flat := figure.BoxStats{Min: 1, Q1: 1, Median: 1, Q3: 1, Max: 1}
	if stats[1] != flat {
		t.Errorf("box 1 = %+v, want %+v", stats[1], flat)
	}
}

func TestBoxEmptySample(t *testing.T) {
	l := annotation.NewBox("x", [][]float64{{}, {1, 2}}, "").Layer(matrix.AxisColumns)
	if got := l.Box.Stats[0]; got != (figure.BoxStats{}) {
		t.Errorf("empty sample = %+v, want zero summary", got)
	}
	if got := l.Box.Stats[1]; got.Min != 0 || got.Max != 1 || got.Median != 0.5 {
		t.Errorf("box 1 = %+v", got)
	}
}

func TestDefaultNumericColor(t *testing.T) {
	plain := annotation.NewBar("b", []float64{1}, "").Layer(matrix.AxisColumns)
	if plain.Bar.Color == "" {
		t.Error("default color not applied")
	}
	styled := annotation.NewBar("b", []float64{1}, "#aa0000").Layer(matrix.AxisColumns)
	if styled.Bar.Color != "#aa0000" {
		t.Errorf("explicit color lost: %q", styled.Bar.Color)
	}
}

// Scaled glyph heights never leave the track band.
func TestBarHeightsStayInBand(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(rt, "n")
		values := make([]float64, n)
		for i := range values {
			values[i] = rapid.Float64Range(-1e6, 1e6).Draw(rt, "v")
		}
		l := annotation.NewBar("b", values, "").Layer(matrix.AxisColumns)
		for i, h := range l.Bar.Heights {
			if h < 0 || h > 1 {
				rt.Fatalf("height[%d] = %v outside [0,1] for %v", i, h, values)
			}
		}
	})
}
