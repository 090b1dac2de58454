// File: internal/grid/subgrid/autoplace_test.go
package subgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func TestCursorAdvanceRowFlow(t *testing.T) {
	c := NewAutoPlacementCursor(2, 3, grid.FlowRow, false)

	var visited [][2]int
	visited = append(visited, [2]int{c.Row, c.Column})
	for c.Advance() {
		visited = append(visited, [2]int{c.Row, c.Column})
	}

	assert.Equal(t, [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}, visited, "row flow wraps columns before stepping rows")
	assert.False(t, c.InBounds())
}

func TestCursorAdvanceColumnFlow(t *testing.T) {
	c := NewAutoPlacementCursor(2, 2, grid.FlowColumn, false)

	var visited [][2]int
	visited = append(visited, [2]int{c.Row, c.Column})
	for c.Advance() {
		visited = append(visited, [2]int{c.Row, c.Column})
	}

	assert.Equal(t, [][2]int{
		{0, 0}, {1, 0},
		{0, 1}, {1, 1},
	}, visited, "column flow wraps rows before stepping columns")
}

func TestPlaceAutoFillsInFlowOrder(t *testing.T) {
	p := NewAutoPlacer(2, 2, grid.FlowRow, false)

	a, err := p.PlaceAuto(1, 1, 1)
	require.NoError(t, err)
	b, err := p.PlaceAuto(2, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, [2]int{0, 0}, [2]int{a.Row, a.Column})
	assert.Equal(t, [2]int{0, 1}, [2]int{b.Row, b.Column})
	assert.Equal(t, PlacementAuto, a.Method)
}

func TestPlaceAutoOverflowIsAnError(t *testing.T) {
	p := NewAutoPlacer(1, 2, grid.FlowRow, false)

	_, err := p.PlaceAuto(1, 1, 1)
	require.NoError(t, err)
	_, err = p.PlaceAuto(2, 1, 1)
	require.NoError(t, err)

	var overflow *grid.CursorOverflowError
	_, err = p.PlaceAuto(3, 1, 1)
	require.ErrorAs(t, err, &overflow)
}

func TestPlaceAutoSpanTooLarge(t *testing.T) {
	p := NewAutoPlacer(2, 2, grid.FlowRow, false)

	var spanErr *grid.SpanExceedsTracksError
	_, err := p.PlaceAuto(1, 1, 3)
	require.ErrorAs(t, err, &spanErr)
	assert.Equal(t, 3, spanErr.Span)
	assert.Equal(t, 2, spanErr.AvailableTracks)
}

func TestPlaceExplicitClaimsCells(t *testing.T) {
	p := NewAutoPlacer(2, 3, grid.FlowRow, false)

	placed, err := p.PlaceExplicit(1, 0, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, PlacementExplicit, placed.Method)

	// Auto items route around the explicit claim.
	auto, err := p.PlaceAuto(2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 0}, [2]int{auto.Row, auto.Column})
	next, err := p.PlaceAuto(3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, [2]int{next.Row, next.Column})
}

func TestPlaceExplicitOutsideGrid(t *testing.T) {
	p := NewAutoPlacer(2, 2, grid.FlowRow, false)

	var placementErr *grid.PlacementError
	_, err := p.PlaceExplicit(1, 1, 1, 2, 1)
	require.ErrorAs(t, err, &placementErr)
}

func TestDensePackingBackfills(t *testing.T) {
	p := NewAutoPlacer(2, 3, grid.FlowRow, true)

	// A wide item leaves a hole at (0,2) after a 2-wide item lands first.
	_, err := p.PlaceAuto(1, 1, 2)
	require.NoError(t, err)
	wide, err := p.PlaceAuto(2, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, [2]int{wide.Row, wide.Column})

	small, err := p.PlaceAuto(3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 2}, [2]int{small.Row, small.Column}, "dense packing backfills the hole")
	assert.Equal(t, PlacementDense, small.Method)
}

func TestPlaceSubgridItems(t *testing.T) {
	tr := tree.NewTree()
	sub := tr.AddRoot(&tree.Style{Display: tree.DisplayGrid,
		TemplateColumns: &grid.TrackTemplate{Subgrid: true}})
	tr.AddChild(sub, &tree.Style{})
	tr.AddChild(sub, &tree.Style{Display: tree.DisplayNone})
	tr.AddChild(sub, &tree.Style{Position: tree.PositionAbsolute})
	tr.AddChild(sub, &tree.Style{
		GridRow:    tree.Placement{Start: tree.LineAt(1), End: tree.LineAt(2)},
		GridColumn: tree.Placement{Start: tree.LineAt(2), End: tree.LineAt(3)},
	})

	inh := &SubgridTrackInheritance{
		RowTracks:    []grid.TrackSize{grid.Auto()},
		ColumnTracks: []grid.TrackSize{grid.Fixed(100), grid.Fixed(100)},
	}

	placed, err := PlaceSubgridItems(tr, sub, inh, grid.FlowRow, false)
	require.NoError(t, err)
	require.Len(t, placed, 2, "hidden and out-of-flow children are skipped")

	assert.Equal(t, [2]int{0, 0}, [2]int{placed[0].Row, placed[0].Column})
	assert.Equal(t, PlacementExplicit, placed[1].Method)
	assert.Equal(t, 1, placed[1].Column)
}
