package matrix

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NormalizeRows returns a new Matrix with every row independently z-scored
// (mean 0, std 1) so rows on different scales become visually comparable.
// A zero-variance row becomes all zeros instead of propagating NaN.
func (m *Matrix) NormalizeRows() *Matrix {
	rows, cols := m.data.Dims()
	d := mat.NewDense(rows, cols, nil)
	buf := make([]float64, cols)
	for i := 0; i < rows; i++ {
		copy(buf, m.data.RawRowView(i))
		zscore(buf)
		d.SetRow(i, buf)
	}
	return &Matrix{data: d, rowLabels: copyLabels(m.rowLabels), colLabels: copyLabels(m.colLabels)}
}

// NormalizeCols is the transpose case of NormalizeRows.
func (m *Matrix) NormalizeCols() *Matrix {
	rows, cols := m.data.Dims()
	d := mat.NewDense(rows, cols, nil)
	buf := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(buf, j, m.data)
		zscore(buf)
		d.SetCol(j, buf)
	}
	return &Matrix{data: d, rowLabels: copyLabels(m.rowLabels), colLabels: copyLabels(m.colLabels)}
}

// zscore standardizes v in place; zero-variance input zeroes out.
func zscore(v []float64) {
	mean, std := stat.MeanStdDev(v, nil)
	if !(std > 0) {
		for i := range v {
			v[i] = 0
		}
		return
	}
	for i := range v {
		v[i] = (v[i] - mean) / std
	}
}
