// File: internal/grid/gridctx/batch.go
package gridctx

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// BatchResult is the outcome of resolving one node in a batch.
type BatchResult struct {
	Node    grid.NodeID
	Context *ParentGridContext
	Err     error
}

// ResolveBatch resolves parent grid contexts for many nodes concurrently.
// Each worker owns an independent cache, so no locking happens on the
// resolution hot path; per-worker cache statistics are summed afterwards.
// The tree source must be safe for concurrent reads, which the arena is
// once construction has finished.
func ResolveBatch(ctx context.Context, src tree.Source, nodes []grid.NodeID, workers int, log *zap.Logger) ([]BatchResult, CacheStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(nodes) && len(nodes) > 0 {
		workers = len(nodes)
	}

	results := make([]BatchResult, len(nodes))

	var mu sync.Mutex
	var total CacheStats

	g, ctx := errgroup.WithContext(ctx)
	indices := make(chan int)

	g.Go(func() error {
		defer close(indices)
		for i := range nodes {
			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			cache := NewCache()
			resolver := NewResolver(src, cache, log)
			for i := range indices {
				node := nodes[i]
				pgc, err := resolver.ResolveParentGridContext(node)
				results[i] = BatchResult{Node: node, Context: pgc, Err: err}
			}
			stats := cache.Stats()
			mu.Lock()
			total.Hits += stats.Hits
			total.Misses += stats.Misses
			total.ParentEntries += stats.ParentEntries
			total.ContextEntries += stats.ContextEntries
			total.NotFoundEntries += stats.NotFoundEntries
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, total, err
	}
	return results, total, nil
}
