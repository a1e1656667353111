package testutil

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

// AssertPermutation checks that order is a permutation of [0, n).
func AssertPermutation(t *testing.T, name string, order []int, n int) {
	t.Helper()
	if len(order) != n {
		t.Errorf("%s: got %d indices, want %d", name, len(order), n)
		return
	}
	seen := make([]bool, n)
	for pos, idx := range order {
		if idx < 0 || idx >= n {
			t.Errorf("%s: index %d at position %d out of range [0, %d)", name, idx, pos, n)
			return
		}
		if seen[idx] {
			t.Errorf("%s: index %d appears more than once", name, idx)
			return
		}
		seen[idx] = true
	}
}

// AssertMatrixDims checks the dimensions of a matrix.
func AssertMatrixDims(t *testing.T, name string, m *matrix.Matrix, rows, cols int) {
	t.Helper()
	if m.Rows() != rows || m.Cols() != cols {
		t.Errorf("%s: dims %dx%d, want %dx%d", name, m.Rows(), m.Cols(), rows, cols)
	}
}

// AssertInDelta checks that got is within tol of want. Two NaNs count as
// equal.
func AssertInDelta(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) != math.IsNaN(want) || math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

// AssertSliceInDelta checks element-wise closeness, reporting the first
// index that differs.
func AssertSliceInDelta(t *testing.T, name string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %d values, want %d", name, len(got), len(want))
		return
	}
	if floats.EqualApprox(got, want, tol) {
		return
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s: value %d is %v, want %v (tolerance %v)", name, i, got[i], want[i], tol)
			return
		}
	}
	t.Errorf("%s: got %v, want %v", name, got, want)
}

// AssertNondecreasing checks that vals never step downward. Merge heights
// from the monotone linkage methods must satisfy this.
func AssertNondecreasing(t *testing.T, name string, vals []float64) {
	t.Helper()
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			t.Errorf("%s: value %d (%v) is below value %d (%v)", name, i, vals[i], i-1, vals[i-1])
			return
		}
	}
}

// AssertGroupsContiguous checks that equal group labels form one
// contiguous run each, the order a grouped axis must present.
func AssertGroupsContiguous(t *testing.T, name string, groups []string) {
	t.Helper()
	seen := make(map[string]bool)
	for i, gr := range groups {
		if i > 0 && gr == groups[i-1] {
			continue
		}
		if seen[gr] {
			t.Errorf("%s: group %q at position %d restarts after being interrupted", name, gr, i)
			return
		}
		seen[gr] = true
	}
}

// AssertJSONEqual checks that two values marshal to identical JSON.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	wantData, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("marshal expected value: %v", err)
	}
	gotData, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("marshal actual value: %v", err)
	}
	if string(wantData) != string(gotData) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", wantData, gotData)
	}
}

// GoldenFile compares rendered output against a checked-in reference.
// Setting GENERATE_GOLDEN regenerates the reference instead of comparing.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile builds a comparator for dir/name.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual against the stored reference, reporting the
// first line that disagrees. In update mode it rewrites the reference.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()
	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file %s does not exist; run with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(expected) == actual {
		return
	}
	line, want, got := firstDiffLine(string(expected), actual)
	g.t.Errorf("%s: golden mismatch at line %d:\nwant: %s\ngot:  %s", g.name, line, want, got)
}

// AssertJSON marshals actual with indentation and compares it against the
// golden file.
func (g *GoldenFile) AssertJSON(actual interface{}) {
	g.t.Helper()
	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		g.t.Fatalf("failed to marshal for golden compare: %v", err)
	}
	g.Assert(string(data))
}

// firstDiffLine locates the first line where two texts disagree. A text
// that ends early compares against the empty string.
func firstDiffLine(a, b string) (line int, want, got string) {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < len(al) || i < len(bl); i++ {
		var av, bv string
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		if av != bv {
			return i + 1, av, bv
		}
	}
	return 0, "", ""
}
