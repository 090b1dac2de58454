// File: internal/grid/masonry/virtual.go
package masonry

import "github.com/xkilldash9x/gridcore/internal/grid"

// VirtualPlacement is a derived record used only during intrinsic track
// sizing: a spanning item considered as if placed at one admissible start
// track, carrying an equal share of the item's gap-adjusted size.
type VirtualPlacement struct {
	Item                  grid.NodeID
	VirtualTrackStart     int
	TrackSpan             int
	PlacementWeight       float64
	IntrinsicContribution float64
}

// Covers reports whether the placement spans the given track.
func (v VirtualPlacement) Covers(track int) bool {
	return track >= v.VirtualTrackStart && track < v.VirtualTrackStart+v.TrackSpan
}

// CreateVirtualPlacementsForSpanningItems emits one placement per
// (spanning item, admissible start track). An item of span s in t tracks
// yields t-s+1 placements, each weighted 1/(t-s+1); the per-track
// contribution is the item's intrinsic size minus the internal gaps,
// split evenly across the spanned tracks and floored at zero.
func CreateVirtualPlacementsForSpanningItems(items []MeasuredItem, cfg *Config, gridGap float64) []VirtualPlacement {
	var out []VirtualPlacement
	for _, m := range items {
		span := m.Info.SpanOn(cfg.GridAxis)
		if span <= 1 || span > cfg.TrackCount {
			continue
		}
		positions := cfg.TrackCount - span + 1
		weight := 1.0 / float64(positions)
		contribution := (m.IntrinsicSize - gridGap*float64(span-1)) / float64(span)
		if contribution < 0 {
			contribution = 0
		}
		for start := 0; start <= cfg.TrackCount-span; start++ {
			out = append(out, VirtualPlacement{
				Item:                  m.Info.Node,
				VirtualTrackStart:     start,
				TrackSpan:             span,
				PlacementWeight:       weight,
				IntrinsicContribution: contribution,
			})
		}
	}
	return out
}
