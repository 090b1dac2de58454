// File: internal/grid/masonry/baseline.go
package masonry

import (
	"math"
	"sort"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// ascentRatio approximates the first baseline of text content from the
// font size when no measured baseline is available.
const ascentRatio = 0.8

// ItemBaseline is one participating item's baseline inputs. A nil
// BaselineOffset means no real baseline was found; the item's height
// still anchors it within its group.
type ItemBaseline struct {
	Node           grid.NodeID
	GridAxisTrack  int
	BaselineOffset *float64
	ItemHeight     float64
	TopMargin      float64
}

// composed returns the item's baseline position including its leading
// margin, using the height fallback when no baseline exists.
func (b ItemBaseline) composed() float64 {
	if b.BaselineOffset != nil {
		return *b.BaselineOffset + b.TopMargin
	}
	return b.ItemHeight + b.TopMargin
}

// hasRealBaseline reports whether the item contributes to the group
// maximum rather than only following it.
func (b ItemBaseline) hasRealBaseline() bool { return b.BaselineOffset != nil }

// BaselineGroup is the set of baseline-aligned items sharing a grid-axis
// track, with the group's target baseline.
type BaselineGroup struct {
	Items       []ItemBaseline
	MaxBaseline float64
	Position    int
}

// BaselineAdjustment is a positive masonry-axis shim for one item, indexed
// into the input slice.
type BaselineAdjustment struct {
	ItemIndex          int
	PositionAdjustment float64
}

// CollectItemBaselines gathers baseline inputs for items whose cross-axis
// self-alignment is baseline. Vertical masonry aligns on align-self,
// horizontal masonry on justify-self. The baseline comes from the
// measured layout when the source can provide one, else from a font
// ascent estimate.
func CollectItemBaselines(src tree.Source, cfg *Config, placed []PlacedItem) []ItemBaseline {
	measurer, canMeasure := src.(tree.BaselineMeasurer)

	var out []ItemBaseline
	for _, p := range placed {
		st, ok := src.Style(p.Item)
		if !ok {
			continue
		}
		align := st.JustifySelf
		if cfg.MasonryAxis == grid.AxisRow {
			align = st.AlignSelf
		}
		if align != tree.AlignBaseline {
			continue
		}

		item := ItemBaseline{
			Node:          p.Item,
			GridAxisTrack: p.Area.GridAxisStart,
			ItemHeight:    p.Area.MasonryAxisSize,
			TopMargin:     st.Margin.Top,
		}
		if cfg.MasonryAxis == grid.AxisColumn {
			item.TopMargin = st.Margin.Left
		}
		if canMeasure {
			if bl, ok := measurer.FirstBaseline(p.Item); ok {
				item.BaselineOffset = &bl
			}
		}
		if item.BaselineOffset == nil && st.FontSize > 0 {
			ascent := st.FontSize * ascentRatio
			item.BaselineOffset = &ascent
		}
		out = append(out, item)
	}
	return out
}

// GroupBaselines buckets items by their grid-axis track. The group
// maximum considers only real baselines; groups without any valid finite
// positive baseline keep MaxBaseline at zero and are skipped during
// adjustment.
func GroupBaselines(items []ItemBaseline) []BaselineGroup {
	byTrack := make(map[int][]ItemBaseline)
	for _, it := range items {
		byTrack[it.GridAxisTrack] = append(byTrack[it.GridAxisTrack], it)
	}

	tracks := make([]int, 0, len(byTrack))
	for t := range byTrack {
		tracks = append(tracks, t)
	}
	sort.Ints(tracks)

	groups := make([]BaselineGroup, 0, len(tracks))
	for _, t := range tracks {
		g := BaselineGroup{Items: byTrack[t], Position: t}
		for _, it := range g.Items {
			if !it.hasRealBaseline() {
				continue
			}
			c := it.composed()
			if math.IsInf(c, 0) || math.IsNaN(c) || c <= 0 {
				continue
			}
			if c > g.MaxBaseline {
				g.MaxBaseline = c
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// CalculateBaselineAdjustments produces the per-item shims that align
// each group on its maximum baseline. Shims are strictly positive; items
// at or above the group target get none, and groups with no valid
// baseline are skipped so alignment never pushes a group backward.
func CalculateBaselineAdjustments(items []ItemBaseline) []BaselineAdjustment {
	indexOf := make(map[grid.NodeID]int, len(items))
	for i, it := range items {
		indexOf[it.Node] = i
	}

	var out []BaselineAdjustment
	for _, g := range GroupBaselines(items) {
		if g.MaxBaseline <= 0 {
			continue
		}
		for _, it := range g.Items {
			shim := g.MaxBaseline - it.composed()
			if shim <= 0 {
				continue
			}
			out = append(out, BaselineAdjustment{
				ItemIndex:          indexOf[it.Node],
				PositionAdjustment: shim,
			})
		}
	}
	return out
}
