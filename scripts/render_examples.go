//go:build ignore

// render_examples.go composes a demonstration clustered heatmap and
// renders it to examples/clustermap.svg and examples/clustermap.png.
// Usage: go run scripts/render_examples.go
package main

import (
	"fmt"
	"os"

	"github.com/vanderheijden86/clustermap/pkg/annotation"
	"github.com/vanderheijden86/clustermap/pkg/export"
	"github.com/vanderheijden86/clustermap/pkg/heatmap"
	"github.com/vanderheijden86/clustermap/pkg/testutil"
)

func main() {
	gen := testutil.New(testutil.GeneratorConfig{Seed: 7})
	fixture := gen.Blocks(3, 8, 5)

	m, err := testutil.ToMatrix(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build matrix: %v\n", err)
		os.Exit(1)
	}

	group, err := annotation.NewTrack("group", fixture.RowGroups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build group track: %v\n", err)
		os.Exit(1)
	}

	opts := heatmap.DefaultOptions()
	opts.Name = "clustermap demo"
	opts.Right = annotation.New(group)

	fig, err := heatmap.New(m, opts).Figure()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compose figure: %v\n", err)
		os.Exit(1)
	}

	for _, path := range []string{"examples/clustermap.svg", "examples/clustermap.png"} {
		if err := export.Save(path, fig, export.DefaultRenderOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Println("Written", path)
	}
}
