// File: internal/grid/gridctx/cache.go
package gridctx

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

const (
	// DefaultMaxParentEntries bounds the node-to-parent map.
	DefaultMaxParentEntries = 1024
	// DefaultMaxContextEntries bounds the parent-to-context map. Contexts
	// are heavier than parent links, so the cap is tighter.
	DefaultMaxContextEntries = 256
)

// CacheStats is a snapshot of cache effectiveness counters.
type CacheStats struct {
	Hits            uint64
	Misses          uint64
	ParentEntries   int
	ContextEntries  int
	NotFoundEntries int
}

// HitRate returns hits over total lookups, or 0 before any lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache memoizes parent grid resolution. Each layout worker owns its own
// Cache; there is no internal locking. Three levels: node to parent grid,
// parent grid to extracted context, and a negative set for nodes known to
// have no grid ancestor.
type Cache struct {
	parents  map[grid.NodeID]grid.NodeID
	contexts map[grid.NodeID]*ParentGridContext
	notFound map[grid.NodeID]struct{}

	hits   uint64
	misses uint64

	maxParentEntries  int
	maxContextEntries int
}

// NewCache returns a cache with default size limits.
func NewCache() *Cache {
	return NewCacheWithLimits(DefaultMaxParentEntries, DefaultMaxContextEntries)
}

// NewCacheWithLimits returns a cache with explicit size limits. Limits
// below one are raised to one.
func NewCacheWithLimits(maxParents, maxContexts int) *Cache {
	if maxParents < 1 {
		maxParents = 1
	}
	if maxContexts < 1 {
		maxContexts = 1
	}
	return &Cache{
		parents:           make(map[grid.NodeID]grid.NodeID),
		contexts:          make(map[grid.NodeID]*ParentGridContext),
		notFound:          make(map[grid.NodeID]struct{}),
		maxParentEntries:  maxParents,
		maxContextEntries: maxContexts,
	}
}

// LookupParent returns the cached parent grid for a node.
func (c *Cache) LookupParent(node grid.NodeID) (grid.NodeID, bool) {
	p, ok := c.parents[node]
	return p, ok
}

// StoreParent records the resolved parent grid for a node.
func (c *Cache) StoreParent(node, parent grid.NodeID) {
	c.parents[node] = parent
	delete(c.notFound, node)
	c.enforceParentLimit()
}

// Context returns the cached extracted context for a parent grid node.
func (c *Cache) Context(parent grid.NodeID) (*ParentGridContext, bool) {
	ctx, ok := c.contexts[parent]
	return ctx, ok
}

// StoreContext records the extracted context for a parent grid node.
func (c *Cache) StoreContext(parent grid.NodeID, ctx *ParentGridContext) {
	c.contexts[parent] = ctx
	c.enforceContextLimit()
}

// MarkNotFound records that a node has no grid-container ancestor.
func (c *Cache) MarkNotFound(node grid.NodeID) {
	c.notFound[node] = struct{}{}
	delete(c.parents, node)
}

// IsNotFound reports whether a node is cached as having no grid ancestor.
func (c *Cache) IsNotFound(node grid.NodeID) bool {
	_, ok := c.notFound[node]
	return ok
}

// Invalidate drops all cached data involving the node, as a queried child,
// as a resolved parent, or as a negative entry.
func (c *Cache) Invalidate(node grid.NodeID) {
	delete(c.parents, node)
	delete(c.contexts, node)
	delete(c.notFound, node)
	for child, parent := range c.parents {
		if parent == node {
			delete(c.parents, child)
		}
	}
}

// InvalidateSubtree drops cached data for root and every descendant.
// Used after structural mutations below a node.
func (c *Cache) InvalidateSubtree(src tree.Source, root grid.NodeID) {
	c.Invalidate(root)
	for _, child := range src.Children(root) {
		c.InvalidateSubtree(src, child)
	}
}

// Reset clears all entries and counters.
func (c *Cache) Reset() {
	c.parents = make(map[grid.NodeID]grid.NodeID)
	c.contexts = make(map[grid.NodeID]*ParentGridContext)
	c.notFound = make(map[grid.NodeID]struct{})
	c.hits = 0
	c.misses = 0
}

// Stats returns a snapshot of the counters and entry counts.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:            c.hits,
		Misses:          c.misses,
		ParentEntries:   len(c.parents),
		ContextEntries:  len(c.contexts),
		NotFoundEntries: len(c.notFound),
	}
}

func (c *Cache) recordHit()  { c.hits++ }
func (c *Cache) recordMiss() { c.misses++ }

// enforceParentLimit evicts arbitrary parent entries above the cap. The
// cache is a performance aid; which entries survive does not matter.
func (c *Cache) enforceParentLimit() {
	for node := range c.parents {
		if len(c.parents) <= c.maxParentEntries {
			break
		}
		delete(c.parents, node)
	}
}

func (c *Cache) enforceContextLimit() {
	for parent := range c.contexts {
		if len(c.contexts) <= c.maxContextEntries {
			break
		}
		delete(c.contexts, parent)
	}
}
