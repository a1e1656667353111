// Package annotation models the metadata tracks drawn alongside a heatmap:
// categorical color strips, numeric bars, scatter markers, and box summaries.
// The track set is closed so the composer can handle every kind exhaustively
// when carving out layout space and assembling the legend.
package annotation

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/clustermap/pkg/figure"
	"github.com/vanderheijden86/clustermap/pkg/matrix"
)

// ErrLengthMismatch reports a track whose values do not line up with the
// matrix axis it is attached to. The check runs at composition time, not at
// construction, because tracks may be built before splitting fixes the final
// axis length.
var ErrLengthMismatch = errors.New("annotation: values do not match axis length")

// Layout fractions of the figure reserved per track kind. Categorical
// strips are thin; numeric glyph tracks need room for their value range.
const (
	categoricalFraction = 0.025
	numericFraction     = 0.06
)

// DefaultGap separates adjacent tracks within an annotation block.
const DefaultGap = 0.01

// Track is one metadata strip aligned with heatmap rows or columns. The set
// of implementations is closed: Categorical, Bar, Scatter, and Box.
type Track interface {
	// Name labels the track in legends and hover text.
	Name() string
	// Len is the number of positions the track covers.
	Len() int
	// Fraction is the share of the figure reserved for the track's band.
	Fraction() float64
	// Reorder returns a copy with values permuted so that position i shows
	// the value previously at perm[i]. Colors and style are unchanged.
	Reorder(perm []int) Track
	// LegendEntries returns the track's legend contribution. Only
	// categorical tracks contribute entries.
	LegendEntries() []figure.LegendEntry
	// Layer emits the unpositioned figure layer for the given axis. The
	// composer assigns the rect and z-order.
	Layer(axis matrix.Axis) figure.Layer

	isTrack()
}

// Annotation is an ordered block of tracks attached to one matrix axis.
// The zero gap between block and heatmap is the composer's concern; Gap
// only separates the tracks from each other.
type Annotation struct {
	Tracks []Track
	Gap    float64
}

// New bundles tracks into a block with the default gap.
func New(tracks ...Track) *Annotation {
	return &Annotation{Tracks: tracks, Gap: DefaultGap}
}

// TotalSize is the figure fraction the block occupies: the sum of per-track
// fractions plus Gap between adjacent tracks. A nil or empty block takes no
// space.
func (a *Annotation) TotalSize() float64 {
	if a == nil || len(a.Tracks) == 0 {
		return 0
	}
	total := a.Gap * float64(len(a.Tracks)-1)
	for _, t := range a.Tracks {
		total += t.Fraction()
	}
	return total
}

// Validate checks every track against the axis length n.
func (a *Annotation) Validate(n int) error {
	if a == nil {
		return nil
	}
	for _, t := range a.Tracks {
		if t.Len() != n {
			return fmt.Errorf("%w: track %q has %d values, axis has %d",
				ErrLengthMismatch, t.Name(), t.Len(), n)
		}
	}
	return nil
}

// Reorder applies the axis permutation to every track, returning a new
// block. Nil stays nil so optional annotations pass through unchanged.
func (a *Annotation) Reorder(perm []int) *Annotation {
	if a == nil {
		return nil
	}
	tracks := make([]Track, len(a.Tracks))
	for i, t := range a.Tracks {
		tracks[i] = t.Reorder(perm)
	}
	return &Annotation{Tracks: tracks, Gap: a.Gap}
}

// LegendEntries concatenates the legend contributions of all tracks in
// track order.
func (a *Annotation) LegendEntries() []figure.LegendEntry {
	if a == nil {
		return nil
	}
	var entries []figure.LegendEntry
	for _, t := range a.Tracks {
		entries = append(entries, t.LegendEntries()...)
	}
	return entries
}
