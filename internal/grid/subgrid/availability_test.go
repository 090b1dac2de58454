// File: internal/grid/subgrid/availability_test.go
package subgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

func TestAvailabilityExactIntervalConflicts(t *testing.T) {
	ta := NewTrackAvailability(300, 2)

	assert.True(t, ta.IsRangeAvailable(0, 100))
	require.NoError(t, ta.MarkRangeOccupied(0, 100, 1, PlacementAuto))

	assert.False(t, ta.IsRangeAvailable(0, 100), "exact occupied interval is unavailable")
	assert.False(t, ta.IsRangeAvailable(50, 150))
	assert.True(t, ta.IsRangeAvailable(100, 200), "ranges are half-open")
}

func TestAvailabilityDisjointRangesStaySeparate(t *testing.T) {
	ta := NewTrackAvailability(300, 0)

	require.NoError(t, ta.MarkRangeOccupied(0, 50, 1, PlacementAuto))
	require.NoError(t, ta.MarkRangeOccupied(100, 150, 2, PlacementAuto))

	assert.Len(t, ta.Occupied, 2)
	assert.True(t, ta.IsRangeAvailable(50, 100))
	assert.InDelta(t, 150.0, ta.OccupiedExtent(), 1e-9)
}

func TestAvailabilityAdjacentRangesMerge(t *testing.T) {
	ta := NewTrackAvailability(300, 0)

	require.NoError(t, ta.MarkRangeOccupied(0, 50, 1, PlacementAuto))
	require.NoError(t, ta.MarkRangeOccupied(50, 120, 2, PlacementExplicit))

	require.Len(t, ta.Occupied, 1)
	merged := ta.Occupied[0]
	assert.InDelta(t, 0.0, merged.Start, 1e-9)
	assert.InDelta(t, 120.0, merged.End, 1e-9)
	// The earlier range's item and method survive the merge.
	assert.EqualValues(t, 1, merged.Item)
	assert.Equal(t, PlacementAuto, merged.Method)
}

func TestAvailabilityOutOfOrderInsertMerges(t *testing.T) {
	ta := NewTrackAvailability(300, 0)

	require.NoError(t, ta.MarkRangeOccupied(200, 260, 3, PlacementAuto))
	require.NoError(t, ta.MarkRangeOccupied(0, 80, 1, PlacementAuto))
	require.NoError(t, ta.MarkRangeOccupied(60, 210, 2, PlacementAuto))

	require.Len(t, ta.Occupied, 1)
	assert.InDelta(t, 0.0, ta.Occupied[0].Start, 1e-9)
	assert.InDelta(t, 260.0, ta.Occupied[0].End, 1e-9)
}

func TestAvailabilityRejectsEmptyRange(t *testing.T) {
	ta := NewTrackAvailability(300, 4)

	err := ta.MarkRangeOccupied(100, 100, 1, PlacementAuto)
	var placementErr *grid.PlacementError
	require.ErrorAs(t, err, &placementErr)
	assert.Equal(t, 4, placementErr.TrackIndex)

	assert.True(t, ta.IsRangeAvailable(100, 100), "empty queries are trivially available")
}
