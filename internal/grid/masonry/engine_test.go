// File: internal/grid/masonry/engine_test.go
package masonry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func indefinite() grid.Size { return grid.Size{Width: -1, Height: -1} }

func TestLayoutContainerIntrinsicTracks(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(masonryContainerStyle(3))
	tall := tr.AddChild(root, &tree.Style{Height: px(100)})
	wide := tr.AddChild(root, &tree.Style{
		Height:     px(60),
		GridColumn: tree.Placement{Start: tree.SpanOf(2)},
	})

	res, err := LayoutContainer(tr, root, indefinite(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, grid.AxisRow, res.Config.MasonryAxis)
	require.Len(t, res.TrackSizes, 3)
	assert.InDelta(t, 100.0, res.TrackSizes[0], 1e-9)
	assert.InDelta(t, 30.0, res.TrackSizes[1], 1e-9, "spanning contribution splits across tracks")
	assert.InDelta(t, 30.0, res.TrackSizes[2], 1e-9)

	require.Len(t, res.Items, 2)
	first, second := res.Items[0], res.Items[1]
	assert.Equal(t, tall, first.Node)
	assert.Equal(t, 0, first.Area.GridAxisStart)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 100}, first.Rect)

	assert.Equal(t, wide, second.Node)
	assert.Equal(t, 1, second.Area.GridAxisStart)
	assert.Equal(t, 3, second.Area.GridAxisEnd)
	assert.Equal(t, Rect{X: 100, Y: 0, Width: 60, Height: 60}, second.Rect)

	assert.InDelta(t, 160.0, res.ContainerSize.Width, 1e-9)
	assert.InDelta(t, 100.0, res.ContainerSize.Height, 1e-9)
}

func TestLayoutContainerFixedTemplateAndGaps(t *testing.T) {
	style := &tree.Style{
		Display:         tree.DisplayGrid,
		TemplateRows:    masonryTemplate(),
		TemplateColumns: explicitTracks(grid.Fixed(80), grid.Fixed(80)),
		RowGap:          10,
		ColumnGap:       20,
	}
	tr := tree.NewTree()
	root := tr.AddRoot(style)
	a := tr.AddChild(root, &tree.Style{Height: px(50)})
	b := tr.AddChild(root, &tree.Style{Height: px(50)})
	c := tr.AddChild(root, &tree.Style{Height: px(50)})

	res, err := LayoutContainer(tr, root, indefinite(), nil)
	require.NoError(t, err)

	require.Len(t, res.TrackSizes, 2)
	assert.InDelta(t, 80.0, res.TrackSizes[0], 1e-9, "definite template wins over intrinsic")
	assert.InDelta(t, 80.0, res.TrackSizes[1], 1e-9)

	byNode := make(map[grid.NodeID]ItemLayout, len(res.Items))
	for _, it := range res.Items {
		byNode[it.Node] = it
	}
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 80, Height: 50}, byNode[a].Rect)
	assert.Equal(t, Rect{X: 100, Y: 0, Width: 80, Height: 50}, byNode[b].Rect, "column gap offsets the second track")
	assert.InDelta(t, 60.0, byNode[c].Rect.Y, 1e-9, "row gap stacks below the first item")
	assert.Equal(t, 0, byNode[c].Area.GridAxisStart)
}

func TestLayoutContainerExplicitPlacement(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(masonryContainerStyle(3))
	pinned := tr.AddChild(root, &tree.Style{
		Height:     px(40),
		GridColumn: tree.Placement{Start: tree.LineAt(3)},
	})

	res, err := LayoutContainer(tr, root, indefinite(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, pinned, res.Items[0].Node)
	assert.Equal(t, 2, res.Items[0].Area.GridAxisStart, "line 3 is the third track")
}

func TestLayoutContainerBaselineShims(t *testing.T) {
	style := masonryContainerStyle(1)
	tr := tree.NewTree()
	root := tr.AddRoot(style)
	deep := tr.AddChild(root, &tree.Style{Height: px(50), AlignSelf: tree.AlignBaseline, FontSize: 40})
	shallow := tr.AddChild(root, &tree.Style{Height: px(50), AlignSelf: tree.AlignBaseline, FontSize: 10})

	res, err := LayoutContainer(tr, root, indefinite(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	byNode := make(map[grid.NodeID]ItemLayout, len(res.Items))
	for _, it := range res.Items {
		byNode[it.Node] = it
	}
	assert.Zero(t, byNode[deep].BaselineShim)
	assert.InDelta(t, 24.0, byNode[shallow].BaselineShim, 1e-9, "shallow baseline shifts down to the group line")
	assert.InDelta(t, byNode[shallow].Area.MasonryAxisPosition, byNode[shallow].Rect.Y, 1e-9)
}

func TestLayoutContainerAvailableWidens(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(masonryContainerStyle(1))
	tr.AddChild(root, &tree.Style{Height: px(30)})

	res, err := LayoutContainer(tr, root, grid.Size{Width: 500, Height: -1}, zap.NewNop())
	require.NoError(t, err)
	assert.InDelta(t, 500.0, res.ContainerSize.Width, 1e-9, "definite available only widens")
}

func TestLayoutContainerErrors(t *testing.T) {
	tr := tree.NewTree()
	missing := grid.NodeID(99)
	_, err := LayoutContainer(tr, missing, indefinite(), zap.NewNop())
	var preErr *grid.PreprocessingError
	require.ErrorAs(t, err, &preErr)

	bothAxes := tr.AddRoot(&tree.Style{
		Display:         tree.DisplayGrid,
		TemplateRows:    masonryTemplate(),
		TemplateColumns: masonryTemplate(),
	})
	_, err = LayoutContainer(tr, bothAxes, indefinite(), zap.NewNop())
	var axisErr *grid.AxisConfigError
	require.ErrorAs(t, err, &axisErr)
}
