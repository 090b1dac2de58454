// File: internal/grid/masonry/tracksizing.go
package masonry

import "github.com/xkilldash9x/gridcore/internal/grid"

// NonSpanningPlacement is a single-track item's contribution input for
// intrinsic sizing: which track it sits in and its intrinsic size.
type NonSpanningPlacement struct {
	Item          grid.NodeID
	Track         int
	IntrinsicSize float64
}

// CalculateTrackIntrinsicSizeWithSpanning returns the intrinsic size of
// one track: the maximum over single-track items placed in it and over
// every virtual placement covering it. Contributions combine by maximum,
// never by sum, matching track sizing semantics.
func CalculateTrackIntrinsicSizeWithSpanning(track int, nonSpanning []NonSpanningPlacement, virtuals []VirtualPlacement) float64 {
	size := 0.0
	for _, p := range nonSpanning {
		if p.Track == track && p.IntrinsicSize > size {
			size = p.IntrinsicSize
		}
	}
	for _, v := range virtuals {
		if v.Covers(track) && v.IntrinsicContribution > size {
			size = v.IntrinsicContribution
		}
	}
	return size
}

// IntrinsicTrackSizes computes every track's intrinsic size for the grid
// axis from the measured items: single-track items contribute directly to
// their placed track, spanning items through virtual placements.
func IntrinsicTrackSizes(cfg *Config, items []MeasuredItem, placements map[grid.NodeID]int, gridGap float64) []float64 {
	var nonSpanning []NonSpanningPlacement
	for _, m := range items {
		if m.Info.SpanOn(cfg.GridAxis) != 1 {
			continue
		}
		track, ok := placements[m.Info.Node]
		if !ok || track < 0 || track >= cfg.TrackCount {
			continue
		}
		nonSpanning = append(nonSpanning, NonSpanningPlacement{
			Item:          m.Info.Node,
			Track:         track,
			IntrinsicSize: m.IntrinsicSize,
		})
	}
	virtuals := CreateVirtualPlacementsForSpanningItems(items, cfg, gridGap)

	sizes := make([]float64, cfg.TrackCount)
	for t := 0; t < cfg.TrackCount; t++ {
		sizes[t] = CalculateTrackIntrinsicSizeWithSpanning(t, nonSpanning, virtuals)
	}
	return sizes
}

// ResolveTrackSizes produces the used grid-axis track sizes: definite
// template sizes win, intrinsic sizes fill the rest, and percentages
// resolve against the available grid-axis extent when definite.
func ResolveTrackSizes(cfg *Config, template []grid.TrackSize, intrinsic []float64, availableGridAxis float64) []float64 {
	sizes := make([]float64, cfg.TrackCount)
	for t := 0; t < cfg.TrackCount; t++ {
		var fromIntrinsic float64
		if t < len(intrinsic) {
			fromIntrinsic = intrinsic[t]
		}
		if t < len(template) {
			if px, ok := template[t].Definite(availableGridAxis); ok {
				sizes[t] = px
				continue
			}
		}
		sizes[t] = fromIntrinsic
	}
	return sizes
}
