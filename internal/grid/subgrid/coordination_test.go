// File: internal/grid/subgrid/coordination_test.go
package subgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/gridctx"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func subgridColumnsStyle(placement tree.Placement) *tree.Style {
	return &tree.Style{
		Display:         tree.DisplayGrid,
		TemplateColumns: &grid.TrackTemplate{Subgrid: true},
		GridColumn:      placement,
	}
}

func TestMergeChildCoordinationMapsContributions(t *testing.T) {
	rootParent := parentContextWithColumns(10, 20, 30, 40, 50, 60)

	parent := NewNestedSubgridCoordination(1)
	child := NewNestedSubgridCoordination(2)
	child.InheritanceChain = []TrackInheritanceLevel{
		{Subgrid: 2, Transform: grid.TransformForSpan(0, 2)},
		{Subgrid: 3, Transform: grid.TransformForSpan(0, 1)},
	}
	child.AddContribution(grid.TrackSizingContribution{
		Item: 9, TrackIndex: 1, Axis: grid.AxisColumn, MinSize: 80, MaxSize: 80,
	})
	child.AddLineNameMapping(LineNameMapping{Axis: grid.AxisColumn, LocalLine: 0, ParentLine: 3})

	require.NoError(t, parent.MergeChildCoordination(child, rootParent))

	require.Len(t, parent.Contributions, 1)
	assert.Equal(t, 4, parent.Contributions[0].TrackIndex, "offsets accumulate through the chain")
	assert.InDelta(t, 80.0, parent.Contributions[0].MinSize, 1e-9)
	assert.Len(t, parent.LineNameMappings, 1)
	assert.Equal(t, []grid.NodeID{1, 2}, parent.SubgridChain)
	assert.Equal(t, 2, parent.ChainDepth())
}

func TestMergeChildCoordinationRejectsOutOfBounds(t *testing.T) {
	rootParent := parentContextWithColumns(10, 20, 30)

	parent := NewNestedSubgridCoordination(1)
	child := NewNestedSubgridCoordination(2)
	child.InheritanceChain = []TrackInheritanceLevel{
		{Subgrid: 2, Transform: grid.TransformForSpan(0, 2)},
	}
	child.AddContribution(grid.TrackSizingContribution{
		Item: 9, TrackIndex: 2, Axis: grid.AxisColumn,
	})

	err := parent.MergeChildCoordination(child, rootParent)
	var mapping *grid.CoordinateMappingError
	require.ErrorAs(t, err, &mapping, "mapped index 4 exceeds 3 root tracks")
	assert.Empty(t, parent.Contributions, "nothing is merged on failure")
}

func TestMergeChildCoordinationNilArguments(t *testing.T) {
	parent := NewNestedSubgridCoordination(1)

	var coordErr *grid.CoordinationError
	require.ErrorAs(t, parent.MergeChildCoordination(nil, &gridctx.ParentGridContext{}), &coordErr)
	require.ErrorAs(t, parent.MergeChildCoordination(NewNestedSubgridCoordination(2), nil), &coordErr)
}

func TestCoordinateNestedSubgrids(t *testing.T) {
	tr := tree.NewTree()
	rootGrid := tr.AddRoot(&tree.Style{Display: tree.DisplayGrid})
	outer := tr.AddChild(rootGrid, subgridColumnsStyle(
		tree.Placement{Start: tree.LineAt(2), End: tree.LineAt(6)}))
	inner := tr.AddChild(outer, subgridColumnsStyle(
		tree.Placement{Start: tree.LineAt(2), End: tree.LineAt(4)}))
	tr.AddChild(inner, &tree.Style{}) // plain leaf, not coordinated

	rootParent := parentContextWithColumns(10, 20, 30, 40, 50, 60)
	rootParent.Parent = rootGrid

	coord, err := CoordinateNestedSubgrids(tr, outer, rootParent, rootParent, 1)
	require.NoError(t, err)

	assert.Equal(t, outer, coord.RootSubgrid)
	assert.Equal(t, []grid.NodeID{outer, inner}, coord.SubgridChain)
	require.Equal(t, 2, coord.ChainDepth())

	// Outer spans parent columns 1..5, inner spans outer's local 1..3.
	assert.Equal(t, Span{1, 5}, coord.InheritanceChain[0].ColumnSpan)
	assert.Equal(t, 1, coord.InheritanceChain[0].Transform.ColumnOffset)
	assert.Equal(t, Span{1, 3}, coord.InheritanceChain[1].ColumnSpan)

	// Effective tracks stay the outer subgrid's own inherited snapshot;
	// merged children never replace them.
	require.Len(t, coord.EffectiveColumnTracks, 4)
	assert.InDelta(t, 20.0, coord.EffectiveColumnTracks[0].Value, 1e-9)
}

func TestCoordinateNestedSubgridsDepthLimit(t *testing.T) {
	tr := tree.NewTree()
	node := tr.AddRoot(subgridColumnsStyle(tree.Placement{}))
	rootParent := parentContextWithColumns(10, 20)

	var depthErr *grid.NestingDepthError
	_, err := CoordinateNestedSubgrids(tr, node, rootParent, rootParent, MaxSubgridNestingDepth+1)
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, MaxSubgridNestingDepth, depthErr.MaxDepth)
}

func TestCoordinateNestedSubgridsInvalidChild(t *testing.T) {
	tr := tree.NewTree()
	rootGrid := tr.AddRoot(&tree.Style{Display: tree.DisplayGrid})
	outer := tr.AddChild(rootGrid, subgridColumnsStyle(
		tree.Placement{Start: tree.LineAt(1), End: tree.LineAt(3)}))
	// Child subgrid explicitly placed beyond the inherited tracks.
	tr.AddChild(outer, subgridColumnsStyle(
		tree.Placement{Start: tree.LineAt(4), End: tree.LineAt(6)}))

	rootParent := parentContextWithColumns(10, 20, 30)
	rootParent.Parent = rootGrid

	var mismatch *grid.TrackCountMismatchError
	_, err := CoordinateNestedSubgrids(tr, outer, rootParent, rootParent, 1)
	require.ErrorAs(t, err, &mismatch)
}
