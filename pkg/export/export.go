// Package export renders figures to SVG and PNG files or writers. Each
// backend implements figure.Canvas over a shared unit-to-device mapping;
// the figure already carries every color and coordinate, so the adapters
// here only place pixels and never recompute geometry.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/clustermap/pkg/debug"
	"github.com/vanderheijden86/clustermap/pkg/figure"

	"github.com/mattn/go-runewidth"
)

// RenderOptions controls the device mapping shared by both backends.
type RenderOptions struct {
	// Padding is the margin in device pixels between the surface edge and
	// the unit canvas. Negative values are treated as zero.
	Padding int
	// Background fills the whole surface before any layer draws. Empty
	// means white.
	Background string
	// MaxLabelWidth caps drawn text at this many display cells, wide runes
	// counting double, with a trailing ellipsis. Zero keeps labels whole.
	MaxLabelWidth int
}

// DefaultRenderOptions returns a small margin on a white surface with
// labels drawn whole.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Padding: 16, Background: "#ffffff"}
}

// Save renders the figure to path, inferring the format from the file
// extension. A path without an extension gets ".svg" appended. Parent
// directories are created as needed.
func Save(path string, f *figure.Figure, opts RenderOptions) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	if f == nil {
		return fmt.Errorf("figure is required")
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "svg"
		path += ".svg"
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	start := time.Now()
	if format == "png" {
		err = PNG(out, f, opts)
	} else {
		err = SVG(out, f, opts)
	}
	debug.LogTiming("export "+format, time.Since(start))
	return err
}

// --- device mapping ---

// Stroke width used when a layer carries none.
const defaultStrokeWidth = 1.0

// geometry maps unit canvas coordinates to device pixels. The canvas y
// axis points up; device y points down, so the map flips y.
type geometry struct {
	pad   float64
	drawW float64
	drawH float64
}

func newGeometry(f *figure.Figure, opts RenderOptions) (geometry, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return geometry{}, fmt.Errorf("figure surface is %dx%d; dimensions must be positive", f.Width, f.Height)
	}
	pad := float64(opts.Padding)
	g := geometry{
		pad:   pad,
		drawW: float64(f.Width) - 2*pad,
		drawH: float64(f.Height) - 2*pad,
	}
	if g.drawW <= 0 || g.drawH <= 0 {
		return geometry{}, fmt.Errorf("padding %dpx leaves no drawing area on a %dx%d surface", opts.Padding, f.Width, f.Height)
	}
	return g, nil
}

// device maps a unit canvas point to device pixels.
func (g geometry) device(x, y float64) (float64, float64) {
	return g.pad + x*g.drawW, g.pad + (1-y)*g.drawH
}

// spanX and spanY convert unit extents to device extents.
func (g geometry) spanX(w float64) float64 { return w * g.drawW }
func (g geometry) spanY(h float64) float64 { return h * g.drawH }

// prepare validates the figure, fills option defaults, and builds the
// device mapping. Both backends start here.
func prepare(f *figure.Figure, opts RenderOptions) (geometry, RenderOptions, error) {
	if f == nil {
		return geometry{}, opts, fmt.Errorf("figure is required")
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	if opts.Background == "" {
		opts.Background = "#ffffff"
	}
	g, err := newGeometry(f, opts)
	return g, opts, err
}

// truncateLabel shortens s to at most maxWidth display cells, wide runes
// counting double. A nonpositive maxWidth keeps s whole.
func truncateLabel(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const suffix = "..."
	if sw := runewidth.StringWidth(suffix); sw < maxWidth {
		return runewidth.Truncate(s, maxWidth-sw, "") + suffix
	}
	return runewidth.Truncate(s, maxWidth, "")
}
