// File: internal/grid/gridctx/batch_test.go
package gridctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResolveBatch(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(gridContainerStyle(fixedColumns(100, 100)))
	var nodes []grid.NodeID
	for i := 0; i < 20; i++ {
		nodes = append(nodes, tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock}))
	}
	// One node with no grid ancestor.
	orphanRoot := tr.AddRoot(&tree.Style{Display: tree.DisplayBlock})
	orphan := tr.AddChild(orphanRoot, &tree.Style{Display: tree.DisplayBlock})
	nodes = append(nodes, orphan)

	results, stats, err := ResolveBatch(context.Background(), tr, nodes, 4, nil)
	require.NoError(t, err)
	require.Len(t, results, len(nodes))

	for i, res := range results[:20] {
		require.NoError(t, res.Err, "node %d", i)
		require.NotNil(t, res.Context, "node %d", i)
		assert.Equal(t, root, res.Context.Parent)
	}
	last := results[len(results)-1]
	assert.NoError(t, last.Err)
	assert.Nil(t, last.Context, "no grid ancestor resolves to nil context")

	assert.Equal(t, uint64(len(nodes)), stats.Hits+stats.Misses)
}

func TestResolveBatchEmpty(t *testing.T) {
	tr := tree.NewTree()
	results, _, err := ResolveBatch(context.Background(), tr, nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResolveBatchHonorsCancellation(t *testing.T) {
	tr := tree.NewTree()
	root := tr.AddRoot(gridContainerStyle(fixedColumns(100)))
	var nodes []grid.NodeID
	for i := 0; i < 1000; i++ {
		nodes = append(nodes, tr.AddChild(root, &tree.Style{Display: tree.DisplayBlock}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ResolveBatch(ctx, tr, nodes, 2, nil)
	// Workers may drain everything before noticing cancellation on tiny
	// inputs, but with a pre-cancelled context the feeder stops early.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
