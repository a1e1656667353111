//go:build ignore

// generate_testdata.go creates the standard matrix fixtures used by tests
// and benchmarks.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/matrices/blocks_small.json  (3 groups, 4x3 cells per block)
//	testdata/matrices/blocks_large.json  (5 groups, 20x8 cells per block)
//	testdata/matrices/gradient.json      (smooth ramp, no structure)
//	testdata/matrices/constant.json      (zero variance)
//	testdata/matrices/outlier.json       (one displaced row)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/clustermap/pkg/testutil"
)

type datasetSpec struct {
	name  string
	seed  int64
	build func(gen *testutil.Generator) testutil.MatrixFixture
}

var datasets = []datasetSpec{
	{"blocks_small", 1, func(gen *testutil.Generator) testutil.MatrixFixture {
		return gen.Blocks(3, 4, 3)
	}},
	{"blocks_large", 2, func(gen *testutil.Generator) testutil.MatrixFixture {
		return gen.Blocks(5, 20, 8)
	}},
	{"gradient", 3, func(gen *testutil.Generator) testutil.MatrixFixture {
		return gen.Gradient(16, 12)
	}},
	{"constant", 4, func(gen *testutil.Generator) testutil.MatrixFixture {
		return gen.Constant(8, 6, 1)
	}},
	{"outlier", 5, func(gen *testutil.Generator) testutil.MatrixFixture {
		return gen.Outlier(10, 6)
	}},
}

func main() {
	outputDir := filepath.Join("testdata", "matrices")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s fixture...\n", ds.name)

		cfg := testutil.DefaultConfig()
		cfg.Seed = ds.seed
		fixture := ds.build(testutil.New(cfg))

		data, err := testutil.ToJSON(fixture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", ds.name, err)
			os.Exit(1)
		}

		outputPath := filepath.Join(outputDir, ds.name+".json")
		if err := os.WriteFile(outputPath, []byte(data), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes)\n", outputPath, len(data))
	}

	fmt.Println("\nDone! Matrix fixtures created in", outputDir)
}
