package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

func mustMatrix(t *testing.T, values [][]float64, rowLabels, colLabels []string) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(values, rowLabels, colLabels)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name      string
		values    [][]float64
		rowLabels []string
		colLabels []string
	}{
		{name: "empty", values: nil},
		{name: "empty rows", values: [][]float64{}},
		{name: "empty cols", values: [][]float64{{}}},
		{name: "ragged", values: [][]float64{{1, 2}, {3}}},
		{name: "nan", values: [][]float64{{1, math.NaN()}}},
		{name: "inf", values: [][]float64{{1, math.Inf(1)}}},
		{name: "row label count", values: [][]float64{{1, 2}}, rowLabels: []string{"a", "b"}},
		{name: "col label count", values: [][]float64{{1, 2}}, colLabels: []string{"x"}},
		{name: "duplicate row labels", values: [][]float64{{1}, {2}}, rowLabels: []string{"a", "a"}},
		{name: "duplicate col labels", values: [][]float64{{1, 2}}, colLabels: []string{"x", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.New(tc.values, tc.rowLabels, tc.colLabels)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, matrix.ErrInvalidInput) {
				t.Errorf("error %v is not ErrInvalidInput", err)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	values := [][]float64{{1, 2}, {3, 4}}
	labels := []string{"r0", "r1"}
	m := mustMatrix(t, values, labels, nil)

	values[0][0] = 99
	labels[0] = "mutated"

	if m.At(0, 0) != 1 {
		t.Errorf("matrix shares storage with input values: At(0,0) = %v", m.At(0, 0))
	}
	if m.RowLabels()[0] != "r0" {
		t.Errorf("matrix shares storage with input labels: %v", m.RowLabels())
	}
}

func TestDims(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, nil, nil)
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("dims = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if m.RowLabels() != nil {
		t.Error("unnamed axis should report nil labels")
	}
}

func TestMinMax(t *testing.T) {
	m := mustMatrix(t, [][]float64{{3, -1}, {7, 0}}, nil, nil)
	min, max := m.MinMax()
	if min != -1 || max != 7 {
		t.Errorf("MinMax = %v, %v; want -1, 7", min, max)
	}
}

func TestSelectRowsPermutation(t *testing.T) {
	m := mustMatrix(t,
		[][]float64{{1, 1}, {2, 2}, {3, 3}},
		[]string{"a", "b", "c"},
		[]string{"x", "y"},
	)
	p, err := m.SelectRows([]int{2, 0, 1})
	if err != nil {
		t.Fatalf("SelectRows: %v", err)
	}
	if p.At(0, 0) != 3 || p.At(1, 0) != 1 || p.At(2, 0) != 2 {
		t.Errorf("rows not permuted: %v", p.Values())
	}
	got := p.RowLabels()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels not permuted: %v", got)
			break
		}
	}
	// Source untouched.
	if m.At(0, 0) != 1 {
		t.Error("SelectRows mutated the source")
	}
}

func TestSelectRowsSubset(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 0}, {2, 0}, {3, 0}}, nil, nil)
	s, err := m.SelectRows([]int{1})
	if err != nil {
		t.Fatalf("SelectRows: %v", err)
	}
	if s.Rows() != 1 || s.At(0, 0) != 2 {
		t.Errorf("subset wrong: %v", s.Values())
	}
}

func TestSelectRowsBounds(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1}, {2}}, nil, nil)
	for _, idx := range [][]int{{-1}, {2}, {}} {
		if _, err := m.SelectRows(idx); !errors.Is(err, matrix.ErrInvalidInput) {
			t.Errorf("SelectRows(%v) error = %v, want ErrInvalidInput", idx, err)
		}
	}
}

func TestSelectCols(t *testing.T) {
	m := mustMatrix(t,
		[][]float64{{1, 2, 3}, {4, 5, 6}},
		nil,
		[]string{"x", "y", "z"},
	)
	s, err := m.SelectCols([]int{2, 0})
	if err != nil {
		t.Fatalf("SelectCols: %v", err)
	}
	if s.Cols() != 2 || s.At(0, 0) != 3 || s.At(1, 1) != 4 {
		t.Errorf("columns not selected: %v", s.Values())
	}
	labels := s.ColLabels()
	if labels[0] != "z" || labels[1] != "x" {
		t.Errorf("labels not carried: %v", labels)
	}
}

func TestNormalizeRows(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 2, 3}, {10, 20, 30}}, []string{"a", "b"}, nil)
	n := m.NormalizeRows()

	for i := 0; i < n.Rows(); i++ {
		sum := 0.0
		for j := 0; j < n.Cols(); j++ {
			sum += n.At(i, j)
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("row %d mean not 0: sum=%v", i, sum)
		}
	}
	// Both rows are linear ramps, so their z-scores coincide.
	for j := 0; j < n.Cols(); j++ {
		if math.Abs(n.At(0, j)-n.At(1, j)) > 1e-9 {
			t.Errorf("z-scores differ at col %d: %v vs %v", j, n.At(0, j), n.At(1, j))
		}
	}
	// Labels survive, source untouched.
	if n.RowLabels()[1] != "b" {
		t.Errorf("labels lost: %v", n.RowLabels())
	}
	if m.At(0, 0) != 1 {
		t.Error("NormalizeRows mutated the source")
	}
}

func TestNormalizeRowsZeroVariance(t *testing.T) {
	m := mustMatrix(t, [][]float64{{5, 5, 5}, {1, 2, 3}}, nil, nil)
	n := m.NormalizeRows()
	for j := 0; j < 3; j++ {
		if n.At(0, j) != 0 {
			t.Errorf("zero-variance row should normalize to zeros, got %v", n.At(0, j))
		}
	}
	if n.At(1, 0) == 0 {
		t.Error("varying row should not be zeroed")
	}
}

func TestNormalizeCols(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 7}, {2, 7}, {3, 7}}, nil, nil)
	n := m.NormalizeCols()
	sum := n.At(0, 0) + n.At(1, 0) + n.At(2, 0)
	if math.Abs(sum) > 1e-9 {
		t.Errorf("col 0 mean not 0: %v", sum)
	}
	for i := 0; i < 3; i++ {
		if n.At(i, 1) != 0 {
			t.Errorf("constant column should zero out, got %v", n.At(i, 1))
		}
	}
}

func TestValuesIsACopy(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 2}}, nil, nil)
	v := m.Values()
	v[0][0] = 42
	if m.At(0, 0) != 1 {
		t.Error("Values() exposed internal storage")
	}
}
