// File: internal/grid/masonry/layout.go
package masonry

import "github.com/xkilldash9x/gridcore/internal/grid"

// Rect is an absolute rectangle in the container's coordinate space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// GridAreaToLayout converts a grid area into an absolute rectangle using
// the solved track sizes. The grid-axis position is the sum of preceding
// track sizes plus the gaps before the start line; the grid-axis size is
// the spanned tracks plus internal gaps. Unknown track sizes fall back to
// the mean of known sizes, then zero; the result is never negative.
func GridAreaToLayout(area GridArea, cfg *Config, trackSizes []float64, gridGap float64) Rect {
	gridPos := 0.0
	for t := 0; t < area.GridAxisStart; t++ {
		gridPos += trackSizeOrFallback(trackSizes, t)
	}
	gridPos += gridGap * float64(area.GridAxisStart)

	gridSize := spanExtent(trackSizes, area.GridAxisStart, area.Span(), gridGap)

	masonryPos := area.MasonryAxisPosition
	masonrySize := area.MasonryAxisSize
	if masonrySize < 0 {
		masonrySize = 0
	}
	if gridPos < 0 {
		gridPos = 0
	}

	if cfg.MasonryAxis == grid.AxisRow {
		// Items stack vertically; the grid axis runs horizontally.
		return Rect{X: gridPos, Y: masonryPos, Width: gridSize, Height: masonrySize}
	}
	return Rect{X: masonryPos, Y: gridPos, Width: masonrySize, Height: gridSize}
}

// CalculateContainerSizeFromPlacements derives the container's content
// size: the furthest grid-axis track edge any item uses and the maximum
// position plus size on the masonry axis. A definite available size only
// ever widens the result, never narrows it.
func CalculateContainerSizeFromPlacements(placed []PlacedItem, cfg *Config, trackSizes []float64, gridGap float64, available grid.Size) grid.Size {
	gridExtent := 0.0
	masonryExtent := 0.0
	for _, p := range placed {
		r := GridAreaToLayout(p.Area, cfg, trackSizes, gridGap)
		var gridEdge, masonryEdge float64
		if cfg.MasonryAxis == grid.AxisRow {
			gridEdge = r.X + r.Width
			masonryEdge = r.Y + r.Height
		} else {
			gridEdge = r.Y + r.Height
			masonryEdge = r.X + r.Width
		}
		if gridEdge > gridExtent {
			gridExtent = gridEdge
		}
		if masonryEdge > masonryExtent {
			masonryExtent = masonryEdge
		}
	}

	var size grid.Size
	size.Set(cfg.GridAxis, gridExtent)
	size.Set(cfg.MasonryAxis, masonryExtent)

	if avail := available.Get(cfg.GridAxis); avail >= 0 && avail > size.Get(cfg.GridAxis) {
		size.Set(cfg.GridAxis, avail)
	}
	if avail := available.Get(cfg.MasonryAxis); avail >= 0 && avail > size.Get(cfg.MasonryAxis) {
		size.Set(cfg.MasonryAxis, avail)
	}
	return size
}
