package linkage_test

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/vanderheijden86/clustermap/pkg/linkage"
)

func randomDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	d := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d.Set(i, j, rng.NormFloat64())
		}
	}
	return d
}

// The two backends must be interchangeable: same merges, same labels,
// same distances on identical input.
func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, method := range linkage.Methods() {
		for trial := 0; trial < 4; trial++ {
			rows := 5 + rng.Intn(20)
			data := randomDense(rng, rows, 4)

			fast := compute(t, data, linkage.Options{Method: method, Strategy: linkage.NNChain})
			ref := compute(t, data, linkage.Options{Method: method, Strategy: linkage.Reference})

			if len(fast.Merges) != len(ref.Merges) {
				t.Fatalf("%s: step counts differ: %d vs %d", method, len(fast.Merges), len(ref.Merges))
			}
			for i := range fast.Merges {
				f, r := fast.Merges[i], ref.Merges[i]
				if f.A != r.A || f.B != r.B || f.Size != r.Size {
					t.Errorf("%s trial %d step %d: ids/sizes differ: %+v vs %+v", method, trial, i, f, r)
				}
				if math.Abs(f.Distance-r.Distance) > 1e-9 {
					t.Errorf("%s trial %d step %d: distances differ: %v vs %v", method, trial, i, f.Distance, r.Distance)
				}
			}
		}
	}
}

func TestStrategyNames(t *testing.T) {
	if linkage.NNChain.Name() != "nn-chain" {
		t.Errorf("NNChain.Name() = %q", linkage.NNChain.Name())
	}
	if linkage.Reference.Name() != "lance-williams" {
		t.Errorf("Reference.Name() = %q", linkage.Reference.Name())
	}
}

// Default selection must transparently pick a working backend for every
// supported method.
func TestDefaultSelectionCoversAllMethods(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := randomDense(rng, 12, 3)
	for _, method := range linkage.Methods() {
		res := compute(t, data, linkage.Options{Method: method})
		if len(res.Merges) != 11 {
			t.Errorf("%s: got %d merges, want 11", method, len(res.Merges))
		}
	}
}

func TestMetricsProduceValidLinkages(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	data := randomDense(rng, 10, 6)
	for _, metric := range linkage.Metrics() {
		if metric == linkage.MetricEuclidean {
			continue // covered everywhere else
		}
		res := compute(t, data, linkage.Options{Method: linkage.MethodAverage, Metric: metric})
		if len(res.Merges) != 9 {
			t.Errorf("%s: got %d merges, want 9", metric, len(res.Merges))
		}
		for i, s := range res.Merges {
			if math.IsNaN(s.Distance) || math.IsInf(s.Distance, 0) {
				t.Errorf("%s: non-finite merge distance at step %d", metric, i)
			}
		}
	}
}

// Cosine and correlation must stay finite on degenerate vectors rather
// than poisoning the linkage with NaN.
func TestDegenerateVectorsStayFinite(t *testing.T) {
	data := mat.NewDense(4, 3, []float64{
		0, 0, 0, // zero vector
		1, 1, 1, // constant vector
		1, 2, 3,
		3, 2, 1,
	})
	for _, metric := range []linkage.Metric{linkage.MetricCosine, linkage.MetricCorrelation} {
		res := compute(t, data, linkage.Options{Method: linkage.MethodAverage, Metric: metric})
		for i, s := range res.Merges {
			if math.IsNaN(s.Distance) || math.IsInf(s.Distance, 0) {
				t.Errorf("%s: non-finite distance at step %d: %v", metric, i, s.Distance)
			}
		}
	}
}
