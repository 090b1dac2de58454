// File: internal/grid/masonry/virtual_test.go
package masonry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

func measuredItem(node grid.NodeID, colSpan int, size float64) MeasuredItem {
	return MeasuredItem{
		Info:          ItemInfo{Node: node, RowSpan: 1, ColumnSpan: colSpan},
		IntrinsicSize: size,
	}
}

func rowMasonryConfig(trackCount int) *Config {
	return &Config{
		MasonryAxis:   grid.AxisRow,
		GridAxis:      grid.AxisColumn,
		TrackCount:    trackCount,
		ItemTolerance: 16,
	}
}

func TestVirtualPlacementCountAndWeights(t *testing.T) {
	cfg := rowMasonryConfig(5)
	items := []MeasuredItem{measuredItem(1, 3, 90)}

	virtuals := CreateVirtualPlacementsForSpanningItems(items, cfg, 0)
	require.Len(t, virtuals, 3, "span 3 in 5 tracks has 5-3+1 admissible starts")

	weightSum := 0.0
	for i, v := range virtuals {
		assert.Equal(t, i, v.VirtualTrackStart)
		assert.Equal(t, 3, v.TrackSpan)
		assert.InDelta(t, 30.0, v.IntrinsicContribution, 1e-9)
		weightSum += v.PlacementWeight
	}
	assert.InDelta(t, 1.0, weightSum, 1e-9, "weights sum to one per item")
}

func TestVirtualPlacementGapAdjustment(t *testing.T) {
	cfg := rowMasonryConfig(3)
	items := []MeasuredItem{measuredItem(1, 2, 60)}

	virtuals := CreateVirtualPlacementsForSpanningItems(items, cfg, 10)
	require.Len(t, virtuals, 2)
	// (60 - 10*1) / 2
	assert.InDelta(t, 25.0, virtuals[0].IntrinsicContribution, 1e-9)

	// Gaps larger than the item floor the contribution at zero.
	virtuals = CreateVirtualPlacementsForSpanningItems(items, cfg, 100)
	require.Len(t, virtuals, 2)
	assert.Zero(t, virtuals[0].IntrinsicContribution)
}

func TestVirtualPlacementSkipsNonSpanning(t *testing.T) {
	cfg := rowMasonryConfig(3)
	items := []MeasuredItem{
		measuredItem(1, 1, 100),
		measuredItem(2, 4, 100), // wider than the grid
	}

	assert.Empty(t, CreateVirtualPlacementsForSpanningItems(items, cfg, 0))
}

func TestVirtualPlacementCovers(t *testing.T) {
	v := VirtualPlacement{VirtualTrackStart: 1, TrackSpan: 2}
	assert.False(t, v.Covers(0))
	assert.True(t, v.Covers(1))
	assert.True(t, v.Covers(2))
	assert.False(t, v.Covers(3))
}

func TestTrackIntrinsicSizeCombinesByMax(t *testing.T) {
	nonSpanning := []NonSpanningPlacement{
		{Item: 1, Track: 0, IntrinsicSize: 100},
		{Item: 2, Track: 0, IntrinsicSize: 40},
	}
	virtuals := []VirtualPlacement{
		{Item: 3, VirtualTrackStart: 0, TrackSpan: 2, IntrinsicContribution: 30},
	}

	assert.InDelta(t, 100.0, CalculateTrackIntrinsicSizeWithSpanning(0, nonSpanning, virtuals), 1e-9,
		"contributions combine by max, never by sum")
	assert.InDelta(t, 30.0, CalculateTrackIntrinsicSizeWithSpanning(1, nonSpanning, virtuals), 1e-9)
	assert.Zero(t, CalculateTrackIntrinsicSizeWithSpanning(2, nonSpanning, virtuals))
}

// Growing any item's intrinsic size never shrinks a track.
func TestIntrinsicTrackSizesMonotonic(t *testing.T) {
	cfg := rowMasonryConfig(3)
	items := []MeasuredItem{
		measuredItem(1, 1, 50),
		measuredItem(2, 2, 60),
	}
	placements := map[grid.NodeID]int{1: 0}

	before := IntrinsicTrackSizes(cfg, items, placements, 0)

	items[1].IntrinsicSize = 120
	after := IntrinsicTrackSizes(cfg, items, placements, 0)

	require.Len(t, after, len(before))
	for i := range before {
		assert.GreaterOrEqual(t, after[i], before[i], "track %d", i)
	}
}

func TestResolveTrackSizesDefiniteTemplateWins(t *testing.T) {
	cfg := rowMasonryConfig(3)
	template := []grid.TrackSize{grid.Fixed(80), grid.Auto()}
	intrinsic := []float64{50, 60, 70}

	sizes := ResolveTrackSizes(cfg, template, intrinsic, -1)
	require.Len(t, sizes, 3)
	assert.InDelta(t, 80.0, sizes[0], 1e-9)
	assert.InDelta(t, 60.0, sizes[1], 1e-9)
	assert.InDelta(t, 70.0, sizes[2], 1e-9)
}
