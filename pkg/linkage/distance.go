package linkage

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// distanceMatrix computes the full symmetric pairwise distance matrix over
// the rows of data. The metric must already be validated.
func distanceMatrix(data mat.Matrix, metric Metric) [][]float64 {
	n, _ := data.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, data)
	}

	kernel := metricKernel(metric)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := kernel(rows[i], rows[j])
			d[i][j] = v
			d[j][i] = v
		}
	}
	return d
}

func metricKernel(metric Metric) func(a, b []float64) float64 {
	switch metric {
	case MetricSqEuclidean:
		return func(a, b []float64) float64 {
			v := floats.Distance(a, b, 2)
			return v * v
		}
	case MetricManhattan:
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, 1)
		}
	case MetricCosine:
		return cosineDistance
	case MetricCorrelation:
		return correlationDistance
	default:
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, 2)
		}
	}
}

// cosineDistance is 1 - cosine similarity. Zero vectors have no direction:
// two of them count as identical, one against a real vector as maximally
// distant.
func cosineDistance(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 && nb == 0 {
		return 0
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(na*nb)
}

// correlationDistance is 1 - Pearson correlation, with the same
// degenerate-vector policy as cosineDistance for constant inputs.
func correlationDistance(a, b []float64) float64 {
	va := stat.Variance(a, nil)
	vb := stat.Variance(b, nil)
	if va == 0 && vb == 0 {
		return 0
	}
	if va == 0 || vb == 0 {
		return 1
	}
	return 1 - stat.Correlation(a, b, nil)
}
