// File: internal/grid/masonry/baseline_test.go
package masonry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// baselineSource adds a first-baseline capability on top of a tree.
type baselineSource struct {
	*tree.Tree
	baselines map[grid.NodeID]float64
}

func (b *baselineSource) FirstBaseline(id grid.NodeID) (float64, bool) {
	bl, ok := b.baselines[id]
	return bl, ok
}

func placedAt(node grid.NodeID, track int, size float64) PlacedItem {
	return PlacedItem{
		Item: node,
		Area: GridArea{GridAxisStart: track, GridAxisEnd: track + 1, MasonryAxisSize: size},
	}
}

func TestCollectItemBaselinesRowMasonry(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(masonryContainerStyle(2))
	aligned := tr.AddChild(root, &tree.Style{
		AlignSelf: tree.AlignBaseline,
		FontSize:  20,
		Margin:    tree.Edges{Top: 4, Left: 9},
	})
	crossAligned := tr.AddChild(root, &tree.Style{JustifySelf: tree.AlignBaseline})
	tr.AddChild(root, &tree.Style{AlignSelf: tree.AlignStart})

	cfg, err := ConfigFromStyle(masonryContainerStyle(2))
	require.NoError(t, err)

	placed := []PlacedItem{
		placedAt(aligned, 0, 50),
		placedAt(crossAligned, 1, 50),
	}
	out := CollectItemBaselines(tr, cfg, placed)
	require.Len(t, out, 1, "row masonry aligns on align-self only")
	assert.Equal(t, aligned, out[0].Node)
	require.NotNil(t, out[0].BaselineOffset)
	assert.InDelta(t, 16.0, *out[0].BaselineOffset, 1e-9, "font ascent estimate")
	assert.InDelta(t, 4.0, out[0].TopMargin, 1e-9)
	assert.InDelta(t, 50.0, out[0].ItemHeight, 1e-9)
}

func TestCollectItemBaselinesColumnMasonry(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(&tree.Style{Display: tree.DisplayGrid, TemplateColumns: masonryTemplate()})
	item := tr.AddChild(root, &tree.Style{
		JustifySelf: tree.AlignBaseline,
		FontSize:    10,
		Margin:      tree.Edges{Top: 4, Left: 9},
	})

	cfg := &Config{MasonryAxis: grid.AxisColumn, GridAxis: grid.AxisRow, TrackCount: 1}
	out := CollectItemBaselines(tr, cfg, []PlacedItem{placedAt(item, 0, 30)})
	require.Len(t, out, 1)
	assert.InDelta(t, 9.0, out[0].TopMargin, 1e-9, "leading margin is the left edge")
	require.NotNil(t, out[0].BaselineOffset)
	assert.InDelta(t, 8.0, *out[0].BaselineOffset, 1e-9)
}

func TestCollectItemBaselinesMeasuredWins(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(masonryContainerStyle(1))
	item := tr.AddChild(root, &tree.Style{AlignSelf: tree.AlignBaseline, FontSize: 20})

	src := &baselineSource{Tree: tr, baselines: map[grid.NodeID]float64{item: 33.5}}
	cfg, err := ConfigFromStyle(masonryContainerStyle(1))
	require.NoError(t, err)

	out := CollectItemBaselines(src, cfg, []PlacedItem{placedAt(item, 0, 40)})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].BaselineOffset)
	assert.InDelta(t, 33.5, *out[0].BaselineOffset, 1e-9)
}

func TestGroupBaselines(t *testing.T) {
	items := []ItemBaseline{
		{Node: 1, GridAxisTrack: 1, BaselineOffset: px(20), TopMargin: 5},
		{Node: 2, GridAxisTrack: 0, BaselineOffset: px(12)},
		{Node: 3, GridAxisTrack: 1, ItemHeight: 90},
		{Node: 4, GridAxisTrack: 1, BaselineOffset: px(math.Inf(1))},
		{Node: 5, GridAxisTrack: 1, BaselineOffset: px(-3)},
	}

	groups := GroupBaselines(items)
	require.Len(t, groups, 2)
	assert.Equal(t, 0, groups[0].Position, "groups sort by track")
	assert.InDelta(t, 12.0, groups[0].MaxBaseline, 1e-9)
	assert.Equal(t, 1, groups[1].Position)
	assert.Len(t, groups[1].Items, 4)
	assert.InDelta(t, 25.0, groups[1].MaxBaseline, 1e-9,
		"height fallbacks and invalid baselines never set the group maximum")
}

func TestCalculateBaselineAdjustments(t *testing.T) {
	items := []ItemBaseline{
		{Node: 1, GridAxisTrack: 0, BaselineOffset: px(30)},
		{Node: 2, GridAxisTrack: 0, BaselineOffset: px(10), TopMargin: 5},
		{Node: 3, GridAxisTrack: 0, ItemHeight: 40},
	}

	adjs := CalculateBaselineAdjustments(items)
	require.Len(t, adjs, 1, "items at or above the target get no shim")
	assert.Equal(t, 1, adjs[0].ItemIndex)
	assert.InDelta(t, 15.0, adjs[0].PositionAdjustment, 1e-9)
}

func TestCalculateBaselineAdjustmentsSingleItem(t *testing.T) {
	adjs := CalculateBaselineAdjustments([]ItemBaseline{
		{Node: 1, GridAxisTrack: 2, BaselineOffset: px(18)},
	})
	assert.Empty(t, adjs, "a lone item is already on its group baseline")
}

func TestCalculateBaselineAdjustmentsNoRealBaseline(t *testing.T) {
	adjs := CalculateBaselineAdjustments([]ItemBaseline{
		{Node: 1, GridAxisTrack: 0, ItemHeight: 60},
		{Node: 2, GridAxisTrack: 0, ItemHeight: 20},
	})
	assert.Empty(t, adjs, "groups without a valid baseline are left alone")
}
