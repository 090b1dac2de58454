// File: internal/grid/masonry/engine.go
package masonry

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// ItemLayout is one item's final masonry outcome.
type ItemLayout struct {
	Node         grid.NodeID
	Area         GridArea
	Rect         Rect
	BaselineShim float64
}

// Result is the outcome of laying out one masonry container.
type Result struct {
	Config        *Config
	TrackSizes    []float64
	Items         []ItemLayout
	ContainerSize grid.Size
}

// LayoutContainer runs the full masonry pipeline for one container:
// configuration, item collection, measurement, packing, intrinsic track
// sizing, baseline alignment, and final rectangle conversion. available
// components below zero mean indefinite.
func LayoutContainer(src tree.Source, container grid.NodeID, available grid.Size, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	st, ok := src.Style(container)
	if !ok {
		return nil, grid.NewPreprocessingFailed("masonry_layout", container, "container style unavailable")
	}
	cfg, err := ConfigFromStyle(st)
	if err != nil {
		return nil, grid.WrapPreprocessing("masonry_config", container, err)
	}

	items, err := CollectItems(src, container)
	if err != nil {
		return nil, grid.WrapPreprocessing("masonry_item_collection", container, err)
	}

	gridGap := cfg.GridAxisGap(st)
	masonryGap := cfg.MasonryAxisGap(st)

	// Seed track sizes from the definite template entries; unknown tracks
	// are negative so downstream math uses the mean fallback.
	var templateTracks []grid.TrackSize
	if tpl := st.Template(cfg.GridAxis); tpl.HasExplicitTracks() {
		if tracks, _, err := tpl.Expand(); err == nil {
			templateTracks = tracks
		}
	}
	availGrid := available.Get(cfg.GridAxis)
	seed := make([]float64, cfg.TrackCount)
	for t := range seed {
		seed[t] = -1
		if t < len(templateTracks) {
			if px, ok := templateTracks[t].Definite(availGrid); ok {
				seed[t] = px
			}
		}
	}

	measured, err := MeasureItems(src, cfg, items, seed, gridGap)
	if err != nil {
		return nil, grid.WrapPreprocessing("masonry_measurement", container, err)
	}

	// Packing pass. Explicit grid-axis starts pin their items; everything
	// else takes the shortest track.
	state := NewState(cfg)
	for _, m := range measured {
		var (
			start    int
			explicit bool
		)
		if ist, ok := src.Style(m.Info.Node); ok {
			start, explicit = ist.PlacementFor(cfg.GridAxis).ExplicitStart()
		}
		if _, err := state.PlaceItem(m, seed, gridGap, masonryGap, start, explicit); err != nil {
			return nil, grid.WrapPreprocessing("masonry_placement", m.Info.Node, err)
		}
	}
	placed := state.Placed()

	// Intrinsic sizing uses the packed positions of single-track items and
	// virtual placements for spanning ones.
	singleTrack := make(map[grid.NodeID]int, len(placed))
	for _, p := range placed {
		if p.Area.Span() == 1 {
			singleTrack[p.Item] = p.Area.GridAxisStart
		}
	}
	intrinsic := IntrinsicTrackSizes(cfg, measured, singleTrack, gridGap)
	trackSizes := ResolveTrackSizes(cfg, templateTracks, intrinsic, availGrid)

	// Baseline shims adjust masonry-axis positions within track groups.
	baselines := CollectItemBaselines(src, cfg, placed)
	shims := make(map[grid.NodeID]float64)
	for _, adj := range CalculateBaselineAdjustments(baselines) {
		shims[baselines[adj.ItemIndex].Node] = adj.PositionAdjustment
	}

	result := &Result{Config: cfg, TrackSizes: trackSizes}
	for _, p := range placed {
		area := p.Area
		if shim, ok := shims[p.Item]; ok {
			area.MasonryAxisPosition += shim
		}
		result.Items = append(result.Items, ItemLayout{
			Node:         p.Item,
			Area:         area,
			Rect:         GridAreaToLayout(area, cfg, trackSizes, gridGap),
			BaselineShim: shims[p.Item],
		})
	}

	adjusted := make([]PlacedItem, len(result.Items))
	for i, it := range result.Items {
		adjusted[i] = PlacedItem{Item: it.Node, Area: it.Area}
	}
	result.ContainerSize = CalculateContainerSizeFromPlacements(adjusted, cfg, trackSizes, gridGap, available)

	log.Debug("masonry container laid out",
		zap.Uint64("container", uint64(container)),
		zap.String("masonry_axis", cfg.MasonryAxis.String()),
		zap.Int("tracks", cfg.TrackCount),
		zap.Int("items", len(result.Items)),
		zap.Float64("grid_extent", result.ContainerSize.Get(cfg.GridAxis)),
		zap.Float64("masonry_extent", result.ContainerSize.Get(cfg.MasonryAxis)))
	return result, nil
}
