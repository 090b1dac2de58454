// File: internal/grid/gridctx/resolver_test.go
package gridctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func fixedColumns(sizes ...float64) *grid.TrackTemplate {
	tpl := &grid.TrackTemplate{}
	for _, s := range sizes {
		tpl.Components = append(tpl.Components, grid.TemplateComponent{Track: grid.Fixed(s)})
	}
	return tpl
}

func gridContainerStyle(columns *grid.TrackTemplate) *tree.Style {
	return &tree.Style{Display: tree.DisplayGrid, TemplateColumns: columns}
}

// newGridFixture builds: grid root > plain wrapper > subgrid candidate.
func newGridFixture(t *testing.T) (*tree.Tree, grid.NodeID, grid.NodeID) {
	t.Helper()
	tr := tree.NewTree()
	root := tr.AddRoot(gridContainerStyle(fixedColumns(100, 200, 300)))
	wrapper := tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock})
	leaf := tr.AddChild(wrapper, &tree.Style{
		Display:         tree.DisplayGrid,
		TemplateColumns: &grid.TrackTemplate{Subgrid: true},
	})
	return tr, root, leaf
}

func TestResolveFindsNearestGridAncestor(t *testing.T) {
	tr, root, leaf := newGridFixture(t)
	r := NewResolver(tr, nil, nil)

	ctx, err := r.ResolveParentGridContext(leaf)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, root, ctx.Parent)
	assert.Equal(t, 3, ctx.ColumnTrackCount)
	assert.Zero(t, ctx.RowTrackCount)
	require.Len(t, ctx.ColumnTracks, 3)
	assert.InDelta(t, 200.0, ctx.ColumnTracks[1].Value, 1e-9)
}

func TestResolveNoGridAncestorIsNotAnError(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(&tree.Style{Display: tree.DisplayBlock})
	leaf := tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock})

	r := NewResolver(tr, nil, nil)
	ctx, err := r.ResolveParentGridContext(leaf)
	assert.NoError(t, err)
	assert.Nil(t, ctx)

	// The negative result is cached.
	assert.True(t, r.Cache().IsNotFound(leaf))
}

func TestResolveSecondLookupSkipsTraversal(t *testing.T) {
	tr, _, leaf := newGridFixture(t)
	r := NewResolver(tr, nil, nil)

	first, err := r.ResolveParentGridContext(leaf)
	require.NoError(t, err)
	require.NotNil(t, first)

	traversalsAfterFirst := tr.Traversals()
	second, err := r.ResolveParentGridContext(leaf)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, traversalsAfterFirst, tr.Traversals(),
		"cached resolution must not walk the tree again")

	stats := r.Cache().Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestResolveSkipsGridAncestorWithoutExplicitTracks(t *testing.T) {
	tr := tree.NewTree()
	outer := tr.AddRoot(gridContainerStyle(fixedColumns(50, 50)))
	// A grid container whose only templates are subgrid does not qualify
	// as a parent context provider.
	inner := tr.AddChild(outer, &tree.Style{
		Display:         tree.DisplayGrid,
		TemplateColumns: &grid.TrackTemplate{Subgrid: true},
	})
	leaf := tr.AddChild(inner, &tree.Style{Display: tree.DisplayGrid,
		TemplateColumns: &grid.TrackTemplate{Subgrid: true}})

	r := NewResolver(tr, nil, nil)
	ctx, err := r.ResolveParentGridContext(leaf)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, outer, ctx.Parent)
}

func TestResolveExtractionFailureKeepsParentLink(t *testing.T) {
	tr := tree.NewTree()
	// repeat() with no tracks makes extraction fail while the template
	// still counts as explicit.
	broken := &grid.TrackTemplate{Components: []grid.TemplateComponent{
		{Repeat: &grid.TrackRepeat{Mode: grid.RepeatCount, Count: 2}},
	}}
	root := tr.AddRoot(gridContainerStyle(broken))
	leaf := tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock})

	r := NewResolver(tr, nil, nil)
	_, err := r.ResolveParentGridContext(leaf)

	var extraction *grid.TrackExtractionError
	require.ErrorAs(t, err, &extraction)

	// Ancestor existence survives the failed extraction.
	parent, ok := r.Cache().LookupParent(leaf)
	require.True(t, ok)
	assert.Equal(t, root, parent)
	assert.False(t, r.Cache().IsNotFound(leaf))
}

func TestCheckParentGridContainerNonQualifying(t *testing.T) {
	tr := tree.NewTree()
	block := tr.AddRoot(&tree.Style{Display: tree.DisplayBlock})
	r := NewResolver(tr, nil, nil)

	ctx, err := r.CheckParentGridContainer(block)
	assert.NoError(t, err)
	assert.Nil(t, ctx)

	var styleErr *grid.StyleAccessError
	_, err = r.CheckParentGridContainer(grid.NodeID(99))
	require.ErrorAs(t, err, &styleErr)
}

func TestFindPotentialParentsPrefersAncestorChain(t *testing.T) {
	tr := tree.NewTree()
	outer := tr.AddRoot(gridContainerStyle(fixedColumns(10)))
	mid := tr.AddChild(outer, gridContainerStyle(fixedColumns(20)))
	leaf := tr.AddChild(mid, &tree.Style{Display: tree.DisplayBlock})

	r := NewResolver(tr, nil, nil)
	candidates := r.FindPotentialParentsConstrained(leaf)
	require.NotEmpty(t, candidates)
	assert.Equal(t, mid, candidates[0], "nearest grid ancestor comes first")
	assert.Contains(t, candidates, outer)
}

// computedSource wraps a tree with the computed-style capability so the
// resolver prefers its track data over template expansion.
type computedSource struct {
	*tree.Tree
	tracks map[grid.NodeID][]grid.TrackSize
}

func (s *computedSource) ComputedTracks(id grid.NodeID, axis grid.Axis) ([]grid.TrackSize, [][]string, bool) {
	if axis != grid.AxisColumn {
		return nil, nil, false
	}
	tracks, ok := s.tracks[id]
	if !ok {
		return nil, nil, false
	}
	names := make([][]string, len(tracks)+1)
	return tracks, names, true
}

func TestResolverUsesComputedStyleCapability(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(gridContainerStyle(fixedColumns(100)))
	leaf := tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock})

	src := &computedSource{Tree: tr, tracks: map[grid.NodeID][]grid.TrackSize{
		root: {grid.Fixed(640), grid.Fixed(640)},
	}}

	r := NewResolver(src, nil, nil)
	ctx, err := r.ResolveParentGridContext(leaf)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, 2, ctx.ColumnTrackCount)
	assert.InDelta(t, 640.0, ctx.ColumnTracks[0].Value, 1e-9)
}
