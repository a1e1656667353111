// Package matrix provides the labeled numeric matrix the engine operates
// on. A Matrix is immutable after construction: normalization and
// selection return new values, so sharing one Matrix across goroutines is
// safe as long as callers do not mutate the raw input they built it from.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput reports an empty, ragged, non-finite, or mislabeled
// input matrix.
var ErrInvalidInput = errors.New("matrix: invalid input")

// Matrix is a 2-D numeric table with optional row/column labels. Labels,
// when present, are unique within their axis and positionally aligned
// with the data.
type Matrix struct {
	data      *mat.Dense
	rowLabels []string
	colLabels []string
}

// New builds a Matrix from row-major values. Labels may be nil (unnamed
// axis); when provided their length must match the axis and entries must
// be unique. Values must be rectangular and finite.
func New(values [][]float64, rowLabels, colLabels []string) (*Matrix, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}
	rows := len(values)
	cols := len(values[0])
	d := mat.NewDense(rows, cols, nil)
	for i, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidInput, i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at (%d, %d)", ErrInvalidInput, i, j)
			}
			d.Set(i, j, v)
		}
	}
	return fromDense(d, rowLabels, colLabels)
}

// FromDense copies a gonum Dense into a Matrix, validating like New.
func FromDense(d *mat.Dense, rowLabels, colLabels []string) (*Matrix, error) {
	rows, cols := d.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := d.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at (%d, %d)", ErrInvalidInput, i, j)
			}
		}
	}
	return fromDense(mat.DenseCopyOf(d), rowLabels, colLabels)
}

func fromDense(d *mat.Dense, rowLabels, colLabels []string) (*Matrix, error) {
	rows, cols := d.Dims()
	if err := checkLabels("row", rowLabels, rows); err != nil {
		return nil, err
	}
	if err := checkLabels("column", colLabels, cols); err != nil {
		return nil, err
	}
	return &Matrix{
		data:      d,
		rowLabels: copyLabels(rowLabels),
		colLabels: copyLabels(colLabels),
	}, nil
}

func checkLabels(axis string, labels []string, n int) error {
	if labels == nil {
		return nil
	}
	if len(labels) != n {
		return fmt.Errorf("%w: %d %s labels for %d %ss", ErrInvalidInput, len(labels), axis, n, axis)
	}
	seen := make(map[string]struct{}, n)
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: duplicate %s label %q", ErrInvalidInput, axis, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

func copyLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Rows returns the row count.
func (m *Matrix) Rows() int {
	r, _ := m.data.Dims()
	return r
}

// Cols returns the column count.
func (m *Matrix) Cols() int {
	_, c := m.data.Dims()
	return c
}

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// RowLabels returns a copy of the row labels, or nil for an unnamed axis.
func (m *Matrix) RowLabels() []string { return copyLabels(m.rowLabels) }

// ColLabels returns a copy of the column labels, or nil.
func (m *Matrix) ColLabels() []string { return copyLabels(m.colLabels) }

// View exposes the underlying data as a read-only gonum matrix for
// numeric consumers. Callers must not type-assert and mutate it.
func (m *Matrix) View() mat.Matrix { return m.data }

// TView exposes the transpose without copying, for column-axis clustering.
func (m *Matrix) TView() mat.Matrix { return m.data.T() }

// Data returns an independent copy of the underlying Dense.
func (m *Matrix) Data() *mat.Dense { return mat.DenseCopyOf(m.data) }

// Values returns the data as a fresh row-major slice grid.
func (m *Matrix) Values() [][]float64 {
	rows, cols := m.data.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		copy(out[i], m.data.RawRowView(i))
	}
	return out
}

// MinMax returns the smallest and largest values in the matrix.
func (m *Matrix) MinMax() (float64, float64) {
	return mat.Min(m.data), mat.Max(m.data)
}

// SelectRows returns a new Matrix holding the given rows in the given
// order; idx may be any permutation or subset of valid row indices.
// Labels follow the selection.
func (m *Matrix) SelectRows(idx []int) (*Matrix, error) {
	rows, cols := m.data.Dims()
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: empty row selection", ErrInvalidInput)
	}
	d := mat.NewDense(len(idx), cols, nil)
	var labels []string
	if m.rowLabels != nil {
		labels = make([]string, len(idx))
	}
	for out, i := range idx {
		if i < 0 || i >= rows {
			return nil, fmt.Errorf("%w: row index %d out of range [0, %d)", ErrInvalidInput, i, rows)
		}
		d.SetRow(out, m.data.RawRowView(i))
		if labels != nil {
			labels[out] = m.rowLabels[i]
		}
	}
	return &Matrix{data: d, rowLabels: labels, colLabels: copyLabels(m.colLabels)}, nil
}

// SelectCols is the column-axis counterpart of SelectRows.
func (m *Matrix) SelectCols(idx []int) (*Matrix, error) {
	rows, cols := m.data.Dims()
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: empty column selection", ErrInvalidInput)
	}
	d := mat.NewDense(rows, len(idx), nil)
	var labels []string
	if m.colLabels != nil {
		labels = make([]string, len(idx))
	}
	for out, j := range idx {
		if j < 0 || j >= cols {
			return nil, fmt.Errorf("%w: column index %d out of range [0, %d)", ErrInvalidInput, j, cols)
		}
		for i := 0; i < rows; i++ {
			d.Set(i, out, m.data.At(i, j))
		}
		if labels != nil {
			labels[out] = m.colLabels[j]
		}
	}
	return &Matrix{data: d, rowLabels: copyLabels(m.rowLabels), colLabels: labels}, nil
}
