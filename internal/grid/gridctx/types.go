// File: internal/grid/gridctx/types.go

// Package gridctx resolves the nearest grid-container ancestor of a node
// and extracts its track and line name data, memoized in an explicit,
// caller-owned cache.
package gridctx

import "github.com/xkilldash9x/gridcore/internal/grid"

// ParentGridContext is the resolved description of an ancestor grid
// container. It is immutable once returned; cached copies are shared.
type ParentGridContext struct {
	// Parent is the grid container node this context describes.
	Parent grid.NodeID

	RowTracks    []grid.TrackSize
	ColumnTracks []grid.TrackSize

	// Line names per grid line, len(tracks)+1 entries per axis when known.
	RowLineNames    [][]string
	ColumnLineNames [][]string

	// Subgrid flags for the parent's own axes, relevant for nested chains.
	SubgridRows    bool
	SubgridColumns bool

	RowTrackCount    int
	ColumnTrackCount int

	// ParentSize is the parent's content box size when definite. A
	// negative component means that axis is not yet resolved.
	ParentSize grid.Size
}

// Tracks returns the track list for the given axis.
func (c *ParentGridContext) Tracks(axis grid.Axis) []grid.TrackSize {
	if axis == grid.AxisRow {
		return c.RowTracks
	}
	return c.ColumnTracks
}

// LineNames returns the line name lists for the given axis.
func (c *ParentGridContext) LineNames(axis grid.Axis) [][]string {
	if axis == grid.AxisRow {
		return c.RowLineNames
	}
	return c.ColumnLineNames
}

// TrackCount returns the track count for the given axis.
func (c *ParentGridContext) TrackCount(axis grid.Axis) int {
	if axis == grid.AxisRow {
		return c.RowTrackCount
	}
	return c.ColumnTrackCount
}

// SubgridAxis reports whether the parent itself subgrids the given axis.
func (c *ParentGridContext) SubgridAxis(axis grid.Axis) bool {
	if axis == grid.AxisRow {
		return c.SubgridRows
	}
	return c.SubgridColumns
}
