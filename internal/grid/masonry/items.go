// File: internal/grid/masonry/items.go
package masonry

import (
	"sort"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// ItemInfo is an item's static placement input: identity, source order,
// and its span on each axis.
type ItemInfo struct {
	Node       grid.NodeID
	Order      int
	RowSpan    int
	ColumnSpan int
}

// SpanOn returns the item's span along the given axis.
func (i ItemInfo) SpanOn(axis grid.Axis) int {
	if axis == grid.AxisRow {
		return i.RowSpan
	}
	return i.ColumnSpan
}

// CollectItems gathers the in-flow children of a masonry container in
// document order. Out-of-flow and display:none children do not
// participate in masonry placement.
func CollectItems(src tree.Source, container grid.NodeID) ([]ItemInfo, error) {
	children := src.Children(container)
	items := make([]ItemInfo, 0, len(children))
	for order, child := range children {
		st, ok := src.Style(child)
		if !ok {
			return nil, &grid.ItemCollectionError{Reason: "child style unavailable"}
		}
		if st.Display == tree.DisplayNone || st.Position.OutOfFlow() {
			continue
		}
		items = append(items, ItemInfo{
			Node:       child,
			Order:      order,
			RowSpan:    st.GridRow.Span(),
			ColumnSpan: st.GridColumn.Span(),
		})
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Order < items[b].Order })
	return items, nil
}

// MeasuredItem couples an item with its intrinsic size on the masonry
// axis, measured with the masonry axis unconstrained and the grid axis
// fixed to the item's track extent.
type MeasuredItem struct {
	Info          ItemInfo
	IntrinsicSize float64
}

// MeasureItems resolves each item's masonry-axis intrinsic size. The
// content-measurement capability is used when the source provides it;
// otherwise the style's definite size on the masonry axis is used, and
// zero when neither is available.
func MeasureItems(src tree.Source, cfg *Config, items []ItemInfo, trackSizes []float64, gridGap float64) ([]MeasuredItem, error) {
	measurer, canMeasure := src.(tree.ContentMeasurer)

	out := make([]MeasuredItem, 0, len(items))
	for _, item := range items {
		span := item.SpanOn(cfg.GridAxis)
		if span < 1 {
			span = 1
		}
		crossExtent := spanExtent(trackSizes, 0, span, gridGap)

		var size float64
		resolved := false
		if canMeasure {
			var w, h float64 = -1, -1
			if cfg.GridAxis == grid.AxisColumn {
				w = crossExtent
			} else {
				h = crossExtent
			}
			if sz, ok := measurer.MeasureContent(item.Node, w, h); ok {
				size = sz.Get(cfg.MasonryAxis)
				resolved = true
			}
		}
		if !resolved {
			if st, ok := src.Style(item.Node); ok {
				if cfg.MasonryAxis == grid.AxisRow && st.Height != nil {
					size = *st.Height
					resolved = true
				} else if cfg.MasonryAxis == grid.AxisColumn && st.Width != nil {
					size = *st.Width
					resolved = true
				}
			}
		}
		if size < 0 {
			size = 0
		}
		out = append(out, MeasuredItem{Info: item, IntrinsicSize: size})
	}
	return out, nil
}

// spanExtent sums the track sizes of [start, start+span) plus the gaps
// between them, using the mean fallback for unknown tracks.
func spanExtent(trackSizes []float64, start, span int, gap float64) float64 {
	if span < 1 {
		return 0
	}
	total := 0.0
	for i := start; i < start+span; i++ {
		total += trackSizeOrFallback(trackSizes, i)
	}
	total += gap * float64(span-1)
	if total < 0 {
		return 0
	}
	return total
}

// trackSizeOrFallback returns the solved size of a track, falling back to
// the mean of known sizes when the index is unresolved, and to zero when
// nothing is known. Placement math never panics on a missing track.
func trackSizeOrFallback(trackSizes []float64, idx int) float64 {
	if idx >= 0 && idx < len(trackSizes) && trackSizes[idx] >= 0 {
		return trackSizes[idx]
	}
	sum, known := 0.0, 0
	for _, s := range trackSizes {
		if s >= 0 {
			sum += s
			known++
		}
	}
	if known == 0 {
		return 0
	}
	return sum / float64(known)
}
