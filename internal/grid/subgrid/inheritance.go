// File: internal/grid/subgrid/inheritance.go
package subgrid

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/gridctx"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// Span is a half-open track range [Start, End) in a parent's track space.
type Span struct {
	Start int
	End   int
}

// Count returns the number of tracks the span covers.
func (s Span) Count() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// SubgridTrackInheritance is one subgrid's snapshot of the tracks and line
// names it inherits from its parent, plus the transform from its local
// track space into the parent's. Built once per layout pass and never
// mutated, only superseded.
type SubgridTrackInheritance struct {
	RowTracks    []grid.TrackSize
	ColumnTracks []grid.TrackSize

	RowLineNames    [][]string
	ColumnLineNames [][]string

	UsesSubgridRows    bool
	UsesSubgridColumns bool

	Transform grid.CoordinateTransform
}

// Tracks returns the inherited tracks for an axis.
func (i *SubgridTrackInheritance) Tracks(axis grid.Axis) []grid.TrackSize {
	if axis == grid.AxisRow {
		return i.RowTracks
	}
	return i.ColumnTracks
}

// SpanInParent derives the track span a subgrid occupies in its parent's
// axis from its placement. Auto-placed subgrids default to the start of
// the parent grid; spans clamp to at least one track.
func SpanInParent(placement tree.Placement, parentTrackCount int) Span {
	span := placement.Span()
	if span < 1 {
		span = 1
	}
	start, explicit := placement.ExplicitStart()
	if start < 0 {
		start = 0
	}
	end := start + span
	// Auto placements shrink to the parent rather than erroring; explicit
	// out-of-range placements surface during inheritance validation.
	if !explicit && parentTrackCount > 0 && end > parentTrackCount {
		end = parentTrackCount
		if end <= start {
			start = end - 1
			if start < 0 {
				start = 0
				end = 1
			}
		}
	}
	return Span{Start: start, End: end}
}

// BuildTrackInheritance combines the parent's resolved context with the
// subgrid's own style and placement spans. Inherited tracks are the
// parent's tracks restricted to the span; the transform offset is the
// span start with scale 1.0, since subgrids cannot resize parent tracks.
func BuildTrackInheritance(parent *gridctx.ParentGridContext, st *tree.Style, rowSpan, colSpan Span) (*SubgridTrackInheritance, error) {
	if parent == nil {
		return nil, &grid.InvalidTrackInheritanceError{Reason: "no parent grid context"}
	}

	inh := &SubgridTrackInheritance{
		UsesSubgridRows:    st.SubgridAxis(grid.AxisRow),
		UsesSubgridColumns: st.SubgridAxis(grid.AxisColumn),
	}
	if !inh.UsesSubgridRows && !inh.UsesSubgridColumns {
		return nil, &grid.InvalidTrackInheritanceError{Reason: "node does not subgrid either axis"}
	}

	rowOffset, colOffset := 0, 0
	if inh.UsesSubgridRows {
		tracks, names, err := inheritAxis(parent, grid.AxisRow, rowSpan, st.TemplateRows)
		if err != nil {
			return nil, err
		}
		inh.RowTracks = tracks
		inh.RowLineNames = names
		rowOffset = rowSpan.Start
	}
	if inh.UsesSubgridColumns {
		tracks, names, err := inheritAxis(parent, grid.AxisColumn, colSpan, st.TemplateColumns)
		if err != nil {
			return nil, err
		}
		inh.ColumnTracks = tracks
		inh.ColumnLineNames = names
		colOffset = colSpan.Start
	}

	inh.Transform = grid.TransformForSpan(rowOffset, colOffset)
	return inh, nil
}

// inheritAxis slices one axis of the parent's tracks down to the span and
// merges the subgrid's declared line names over the inherited ones.
func inheritAxis(parent *gridctx.ParentGridContext, axis grid.Axis, span Span, tpl *grid.TrackTemplate) ([]grid.TrackSize, [][]string, error) {
	total := parent.TrackCount(axis)
	if span.Count() < 1 {
		return nil, nil, &grid.TrackCountMismatchError{Expected: 1, Actual: span.Count()}
	}
	if span.Start < 0 || span.End > total {
		return nil, nil, &grid.TrackCountMismatchError{Expected: total, Actual: span.End}
	}

	parentTracks := parent.Tracks(axis)
	tracks := append([]grid.TrackSize(nil), parentTracks[span.Start:span.End]...)

	var names [][]string
	parentNames := parent.LineNames(axis)
	if len(parentNames) >= span.End+1 {
		inherited, err := gridctx.ExtractParentNamesForSpan(parentNames, span.Start, span.End)
		if err != nil {
			return nil, nil, err
		}
		var declared [][]string
		if tpl != nil {
			declared = tpl.SubgridNames
		}
		names = gridctx.MergeWithDeclaredNames(inherited, declared)
	}
	return tracks, names, nil
}
