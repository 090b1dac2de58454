// File: internal/grid/masonry/styleadapt.go
package masonry

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// SolverGridStyle adapts a masonry container's style for a generic grid
// solver that has no masonry mode: definite tracks stay on the grid axis,
// the masonry axis becomes a single auto track, and auto flow follows the
// masonry axis so the solver fills tracks in packing order.
func SolverGridStyle(cfg *Config, st *tree.Style) *tree.Style {
	out := *st

	gridTemplate := st.Template(cfg.GridAxis)
	masonryTemplate := &grid.TrackTemplate{
		Components: []grid.TemplateComponent{{Track: grid.Auto()}},
	}

	if cfg.GridAxis == grid.AxisRow {
		out.TemplateRows = gridTemplate
		out.TemplateColumns = masonryTemplate
	} else {
		out.TemplateColumns = gridTemplate
		out.TemplateRows = masonryTemplate
	}

	if cfg.MasonryAxis == grid.AxisRow {
		out.AutoFlow = grid.FlowRow
	} else {
		out.AutoFlow = grid.FlowColumn
	}
	return &out
}

// SolverItemStyle adapts one item's style for the generic solver:
// grid-axis spans are kept, clamped to the track count, and masonry-axis
// placement is released to auto so the solver stacks freely.
func SolverItemStyle(cfg *Config, item ItemInfo, st *tree.Style) *tree.Style {
	out := *st

	span := item.SpanOn(cfg.GridAxis)
	if span < 1 {
		span = 1
	}
	if span > cfg.TrackCount {
		span = cfg.TrackCount
	}
	gridPlacement := st.PlacementFor(cfg.GridAxis)
	if start, ok := gridPlacement.ExplicitStart(); ok {
		gridPlacement = tree.Placement{
			Start: tree.LineAt(start + 1),
			End:   tree.LineAt(start + 1 + span),
		}
	} else {
		gridPlacement = tree.Placement{Start: tree.SpanOf(span), End: tree.AutoLine()}
	}
	auto := tree.Placement{Start: tree.AutoLine(), End: tree.AutoLine()}

	if cfg.GridAxis == grid.AxisRow {
		out.GridRow = gridPlacement
		out.GridColumn = auto
	} else {
		out.GridColumn = gridPlacement
		out.GridRow = auto
	}
	return &out
}
