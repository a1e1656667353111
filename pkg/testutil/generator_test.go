package testutil

import (
	"math"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestBlocks(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		name     string
		groups   int
		rowsPer  int
		colsPer  int
		wantRows int
		wantCols int
	}{
		{"blocks_1", 1, 2, 2, 2, 2},
		{"blocks_2", 2, 3, 2, 6, 4},
		{"blocks_3", 3, 4, 3, 12, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gen.Blocks(tt.groups, tt.rowsPer, tt.colsPer)

			if len(f.Values) != tt.wantRows {
				t.Fatalf("Blocks rows = %d, want %d", len(f.Values), tt.wantRows)
			}
			if len(f.Values[0]) != tt.wantCols {
				t.Fatalf("Blocks cols = %d, want %d", len(f.Values[0]), tt.wantCols)
			}
			if len(f.RowLabels) != tt.wantRows || len(f.ColLabels) != tt.wantCols {
				t.Errorf("label counts = %d/%d, want %d/%d", len(f.RowLabels), len(f.ColLabels), tt.wantRows, tt.wantCols)
			}
			if f.RowLabels[0] != "r0" || f.ColLabels[0] != "c0" {
				t.Errorf("first labels = %q/%q, want r0/c0", f.RowLabels[0], f.ColLabels[0])
			}
			if f.Properties.Groups != tt.groups {
				t.Errorf("Properties.Groups = %d, want %d", f.Properties.Groups, tt.groups)
			}

			distinct := make(map[string]bool)
			for i, gr := range f.RowGroups {
				distinct[gr] = true
				if want := groupName(i / tt.rowsPer); gr != want {
					t.Errorf("row %d group = %q, want %q", i, gr, want)
				}
			}
			if len(distinct) != tt.groups {
				t.Errorf("distinct groups = %d, want %d", len(distinct), tt.groups)
			}

			// On-block cells sit at Separation, off-block at zero, each
			// within the noise amplitude.
			for i, row := range f.Values {
				for j, v := range row {
					base := 0.0
					if j/tt.colsPer == i/tt.rowsPer {
						base = gen.cfg.Separation
					}
					if math.Abs(v-base) > gen.cfg.Noise {
						t.Fatalf("cell (%d,%d) = %v, want within %v of %v", i, j, v, gen.cfg.Noise, base)
					}
				}
			}
		})
	}
}

func TestBlocksSeparatesGroups(t *testing.T) {
	f := NewDefault().Blocks(2, 3, 2)

	dist := func(a, b []float64) float64 {
		var sum float64
		for k := range a {
			d := a[k] - b[k]
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	within, between := 0.0, math.Inf(1)
	for i := range f.Values {
		for j := i + 1; j < len(f.Values); j++ {
			d := dist(f.Values[i], f.Values[j])
			if f.RowGroups[i] == f.RowGroups[j] {
				if d > within {
					within = d
				}
			} else if d < between {
				between = d
			}
		}
	}

	if within >= between {
		t.Errorf("max within-group distance %v should be below min between-group distance %v", within, between)
	}
}

func TestGradient(t *testing.T) {
	f := NewDefault().Gradient(3, 4)

	if len(f.Values) != 3 || len(f.Values[0]) != 4 {
		t.Fatalf("Gradient dims = %dx%d, want 3x4", len(f.Values), len(f.Values[0]))
	}
	for i, row := range f.Values {
		for j, v := range row {
			if want := float64(i) + float64(j)/2; v != want {
				t.Errorf("cell (%d,%d) = %v, want %v", i, j, v, want)
			}
		}
	}
	if f.RowGroups != nil {
		t.Errorf("Gradient should not plant groups, got %v", f.RowGroups)
	}
	if f.Properties.Groups != 0 || f.Properties.Constant {
		t.Errorf("Gradient properties should be empty, got %+v", f.Properties)
	}
}

func TestConstant(t *testing.T) {
	f := NewDefault().Constant(2, 3, 7.5)

	for i, row := range f.Values {
		for j, v := range row {
			if v != 7.5 {
				t.Errorf("cell (%d,%d) = %v, want 7.5", i, j, v)
			}
		}
	}
	if !f.Properties.Constant {
		t.Error("Constant fixture should set Properties.Constant")
	}
}

func TestRandom(t *testing.T) {
	f := NewDefault().Random(4, 5)

	if len(f.Values) != 4 || len(f.Values[0]) != 5 {
		t.Fatalf("Random dims = %dx%d, want 4x5", len(f.Values), len(f.Values[0]))
	}
	seen := make(map[float64]bool)
	for _, row := range f.Values {
		for _, v := range row {
			seen[v] = true
		}
	}
	if len(seen) < 2 {
		t.Error("Random should produce varying values")
	}
}

func TestOutlier(t *testing.T) {
	f := NewDefault().Outlier(5, 3)

	last := len(f.Values) - 1
	for i, row := range f.Values {
		for j, v := range row {
			if i == last && v < 30 {
				t.Errorf("outlier cell (%d,%d) = %v, want displaced above 30", i, j, v)
			}
			if i != last && math.Abs(v) > 30 {
				t.Errorf("cell (%d,%d) = %v, want an ordinary draw", i, j, v)
			}
		}
	}
	if !strings.Contains(f.Description, "displaced") {
		t.Errorf("Description = %q, want it to mention the displacement", f.Description)
	}
}

func TestToMatrix(t *testing.T) {
	f := NewDefault().Blocks(2, 2, 2)

	m, err := ToMatrix(f)
	if err != nil {
		t.Fatalf("ToMatrix: %v", err)
	}
	if m.Rows() != 4 || m.Cols() != 4 {
		t.Fatalf("matrix dims = %dx%d, want 4x4", m.Rows(), m.Cols())
	}
	if got := m.RowLabels(); !reflect.DeepEqual(got, f.RowLabels) {
		t.Errorf("row labels = %v, want %v", got, f.RowLabels)
	}
	if m.At(1, 2) != f.Values[1][2] {
		t.Errorf("value (1,2) = %v, want %v", m.At(1, 2), f.Values[1][2])
	}
}

func TestToJSON(t *testing.T) {
	f := NewDefault().Blocks(2, 2, 2)

	s, err := ToJSON(f)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("ToJSON output should end with a newline")
	}

	var back MatrixFixture
	if err := json.Unmarshal([]byte(s), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back.Description != f.Description {
		t.Errorf("Description = %q, want %q", back.Description, f.Description)
	}
	if !reflect.DeepEqual(back.Values, f.Values) {
		t.Error("Values differ after round-trip")
	}
	if !reflect.DeepEqual(back.RowGroups, f.RowGroups) {
		t.Errorf("RowGroups = %v, want %v", back.RowGroups, f.RowGroups)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()

	f1 := New(cfg).Blocks(3, 3, 2)
	f2 := New(cfg).Blocks(3, 3, 2)
	if !reflect.DeepEqual(f1, f2) {
		t.Error("same config should reproduce the fixture exactly")
	}

	cfg.Seed = 7
	f3 := New(cfg).Blocks(3, 3, 2)
	if reflect.DeepEqual(f1.Values, f3.Values) {
		t.Error("different seeds should produce different values")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	gen := New(GeneratorConfig{Seed: 1})

	if gen.cfg.RowPrefix != "r" || gen.cfg.ColPrefix != "c" {
		t.Errorf("prefixes = %q/%q, want r/c", gen.cfg.RowPrefix, gen.cfg.ColPrefix)
	}
	if gen.cfg.Separation != 6 || gen.cfg.Noise != 0.25 {
		t.Errorf("separation/noise = %v/%v, want 6/0.25", gen.cfg.Separation, gen.cfg.Noise)
	}
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "a"},
		{1, "b"},
		{25, "z"},
		{26, "g26"},
		{100, "g100"},
	}
	for _, tt := range tests {
		if got := groupName(tt.in); got != tt.want {
			t.Errorf("groupName(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuickFunctions(t *testing.T) {
	m, groups := QuickBlocks(t, 2, 3, 2)
	if m.Rows() != 6 || m.Cols() != 4 {
		t.Errorf("QuickBlocks dims = %dx%d, want 6x4", m.Rows(), m.Cols())
	}
	if len(groups) != 6 {
		t.Errorf("QuickBlocks groups = %d, want 6", len(groups))
	}

	if g := QuickGradient(t, 3, 4); g.Rows() != 3 || g.Cols() != 4 {
		t.Errorf("QuickGradient dims = %dx%d, want 3x4", g.Rows(), g.Cols())
	}
	if r := QuickRandom(t, 5, 2); r.Rows() != 5 || r.Cols() != 2 {
		t.Errorf("QuickRandom dims = %dx%d, want 5x2", r.Rows(), r.Cols())
	}
	if s := Single(t); s.Rows() != 1 || s.Cols() != 1 {
		t.Errorf("Single dims = %dx%d, want 1x1", s.Rows(), s.Cols())
	}
}

// Benchmarks

func BenchmarkBlocks(b *testing.B) {
	gen := NewDefault()
	for i := 0; i < b.N; i++ {
		_ = gen.Blocks(5, 10, 4)
	}
}

func BenchmarkToJSON(b *testing.B) {
	f := NewDefault().Blocks(5, 10, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ToJSON(f)
	}
}
