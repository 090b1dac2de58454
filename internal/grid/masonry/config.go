// File: internal/grid/masonry/config.go

// Package masonry implements track sizing, placement, and alignment for
// CSS Grid Level 3 masonry containers: one axis carries definite tracks,
// the other packs items into whichever track has the least extent.
package masonry

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

const (
	// MinTrackCount is the floor for the grid axis.
	MinTrackCount = 1
	// MaxTrackCount guards against pathological templates.
	MaxTrackCount = 10000
)

// Config is the resolved masonry setup for one container.
type Config struct {
	// MasonryAxis is the packing axis; GridAxis is perpendicular and
	// carries the definite tracks.
	MasonryAxis grid.Axis
	GridAxis    grid.Axis

	// TrackCount is the number of grid-axis tracks, at least one.
	TrackCount int

	// ItemTolerance is the shortest-track tie window, one em of the
	// container's font size.
	ItemTolerance float64

	// DensePacking enables backfilling gaps per grid-auto-flow dense.
	DensePacking bool
}

// ConfigFromStyle derives the masonry configuration from a container's
// style. When neither axis declares masonry explicitly, the axis without
// explicit tracks becomes the masonry axis, defaulting to rows.
func ConfigFromStyle(st *tree.Style) (*Config, error) {
	if st == nil {
		return nil, &grid.AxisConfigError{Reason: "missing container style"}
	}
	rowMasonry := st.MasonryAxis(grid.AxisRow)
	colMasonry := st.MasonryAxis(grid.AxisColumn)
	if rowMasonry && colMasonry {
		return nil, &grid.AxisConfigError{Reason: "masonry declared on both axes"}
	}

	var masonryAxis grid.Axis
	switch {
	case rowMasonry:
		masonryAxis = grid.AxisRow
	case colMasonry:
		masonryAxis = grid.AxisColumn
	default:
		// Infer: the axis without explicit tracks packs.
		rowTracks := st.TemplateRows.HasExplicitTracks()
		colTracks := st.TemplateColumns.HasExplicitTracks()
		switch {
		case rowTracks && !colTracks:
			masonryAxis = grid.AxisColumn
		case colTracks && !rowTracks:
			masonryAxis = grid.AxisRow
		default:
			masonryAxis = grid.AxisRow
		}
	}
	gridAxis := masonryAxis.Cross()

	trackCount := st.Template(gridAxis).TrackCount()
	if trackCount < MinTrackCount {
		trackCount = MinTrackCount
	}
	if trackCount > MaxTrackCount {
		return nil, &grid.InvalidTrackCountError{TrackCount: trackCount, Min: MinTrackCount, Max: MaxTrackCount}
	}

	return &Config{
		MasonryAxis:   masonryAxis,
		GridAxis:      gridAxis,
		TrackCount:    trackCount,
		ItemTolerance: st.EffectiveFontSize(),
		DensePacking:  st.DensePacking,
	}, nil
}

// IsMasonryContainer reports whether a style requests masonry layout on
// either axis.
func IsMasonryContainer(st *tree.Style) bool {
	if st == nil || !st.Display.IsGrid() {
		return false
	}
	return st.MasonryAxis(grid.AxisRow) || st.MasonryAxis(grid.AxisColumn)
}

// GridAxisGap returns the gap between grid-axis tracks.
func (c *Config) GridAxisGap(st *tree.Style) float64 {
	return st.Gap(c.GridAxis)
}

// MasonryAxisGap returns the gap between stacked items on the masonry
// axis.
func (c *Config) MasonryAxisGap(st *tree.Style) float64 {
	return st.Gap(c.MasonryAxis)
}
