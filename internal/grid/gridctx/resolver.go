// File: internal/grid/gridctx/resolver.go
package gridctx

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

const (
	// siblingWindow is the node id radius searched for cached sibling
	// parents before walking the tree.
	siblingWindow = 50
	// maxAncestorDepth bounds the direct ancestor walk.
	maxAncestorDepth = 256
	// bfsRootSeeds is how many low node ids are tried as search roots in
	// the fallback path. Roots are allocated first, so they cluster there.
	bfsRootSeeds = 10
	// bfsVisitLimit caps fallback search work on degenerate trees.
	bfsVisitLimit = 1000
)

// Resolver finds the nearest grid-container ancestor of a node and
// extracts its context. Resolution results are memoized in the supplied
// Cache, which the caller owns; a Resolver itself holds no hidden state
// and is cheap to construct per layout worker.
type Resolver struct {
	src   tree.Source
	cache *Cache
	log   *zap.Logger
}

// NewResolver builds a resolver over src using the given cache. A nil
// cache gets a private one with default limits; a nil logger is replaced
// with a no-op logger.
func NewResolver(src tree.Source, cache *Cache, log *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{src: src, cache: cache, log: log}
}

// Cache exposes the resolver's cache, mainly for stats and invalidation.
func (r *Resolver) Cache() *Cache { return r.cache }

// ResolveParentGridContext returns the context of the nearest ancestor
// that is a grid container with explicit tracks. A nil context with a nil
// error means no such ancestor exists, which is normal control flow, not
// an error.
func (r *Resolver) ResolveParentGridContext(node grid.NodeID) (*ParentGridContext, error) {
	if r.cache.IsNotFound(node) {
		r.cache.recordHit()
		return nil, nil
	}
	if parent, ok := r.cache.LookupParent(node); ok {
		r.cache.recordHit()
		if ctx, ok := r.cache.Context(parent); ok {
			return ctx, nil
		}
		ctx, err := r.CheckParentGridContainer(parent)
		if err != nil {
			return nil, err
		}
		if ctx != nil {
			r.cache.StoreContext(parent, ctx)
			return ctx, nil
		}
		// The cached parent no longer qualifies; fall through to a full
		// search below.
		r.cache.Invalidate(node)
	}
	r.cache.recordMiss()

	parent, found := r.findParentGrid(node)
	if !found {
		r.cache.MarkNotFound(node)
		return nil, nil
	}

	// Record ancestor existence before extraction so an extraction failure
	// only fails this query, not the cached parent link.
	r.cache.StoreParent(node, parent)

	ctx, err := r.CheckParentGridContainer(parent)
	if err != nil {
		r.log.Debug("parent grid context extraction failed",
			zap.Uint64("node", uint64(node)),
			zap.Uint64("parent", uint64(parent)),
			zap.Error(err))
		return nil, err
	}
	if ctx == nil {
		r.cache.MarkNotFound(node)
		return nil, nil
	}
	r.cache.StoreContext(parent, ctx)
	return ctx, nil
}

// findParentGrid locates the nearest grid-container ancestor, trying the
// locality heuristics first and falling back to a bounded breadth-first
// search from low-id roots.
func (r *Resolver) findParentGrid(node grid.NodeID) (grid.NodeID, bool) {
	for _, cand := range r.FindPotentialParentsConstrained(node) {
		if r.isGridContainer(cand) && r.isAncestor(cand, node) {
			return cand, true
		}
	}
	return r.bfsFallback(node)
}

// FindPotentialParentsConstrained returns candidate grid ancestors,
// nearest first, using two locality heuristics: cached parents of nodes
// with nearby ids, and the node's own ancestor chain. Node ids are
// allocated parents-before-children in practice, so both are cheap.
func (r *Resolver) FindPotentialParentsConstrained(node grid.NodeID) []grid.NodeID {
	var out []grid.NodeID
	seen := make(map[grid.NodeID]struct{})
	add := func(id grid.NodeID) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	// Direct ancestor chain, nearest first. Parents have lower ids than
	// their children under dense allocation, so this descends.
	cur := node
	for depth := 0; depth < maxAncestorDepth; depth++ {
		p, ok := r.src.Parent(cur)
		if !ok {
			break
		}
		if r.isGridContainer(p) {
			add(p)
		}
		cur = p
	}

	// Sibling locality: nodes with nearby ids often share a grid parent
	// already resolved in the cache.
	lo := int64(node) - siblingWindow
	if lo < 0 {
		lo = 0
	}
	hi := int64(node) + siblingWindow
	for id := lo; id <= hi; id++ {
		if grid.NodeID(id) == node {
			continue
		}
		if p, ok := r.cache.LookupParent(grid.NodeID(id)); ok {
			add(p)
		}
	}
	return out
}

// bfsFallback searches downward from low-id root candidates for the target
// node, remembering the nearest grid container on the path. It covers
// trees whose id allocation defeats the locality heuristics.
func (r *Resolver) bfsFallback(node grid.NodeID) (grid.NodeID, bool) {
	type frame struct {
		id          grid.NodeID
		nearestGrid grid.NodeID
		hasGrid     bool
	}

	visited := 0
	for seed := grid.NodeID(0); seed < bfsRootSeeds; seed++ {
		if _, hasParent := r.src.Parent(seed); hasParent {
			continue // not a root
		}
		if _, ok := r.src.Style(seed); !ok {
			continue
		}
		queue := []frame{{id: seed}}
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			visited++
			if visited > bfsVisitLimit {
				return 0, false
			}
			if f.id == node {
				return f.nearestGrid, f.hasGrid
			}
			childNearest := f.nearestGrid
			childHas := f.hasGrid
			if r.isGridContainer(f.id) {
				childNearest = f.id
				childHas = true
			}
			for _, child := range r.src.Children(f.id) {
				queue = append(queue, frame{id: child, nearestGrid: childNearest, hasGrid: childHas})
			}
		}
	}
	return 0, false
}

// isAncestor walks up from node looking for candidate, bounded by
// maxAncestorDepth.
func (r *Resolver) isAncestor(candidate, node grid.NodeID) bool {
	cur := node
	for depth := 0; depth < maxAncestorDepth; depth++ {
		p, ok := r.src.Parent(cur)
		if !ok {
			return false
		}
		if p == candidate {
			return true
		}
		cur = p
	}
	return false
}

// isGridContainer reports whether the node is a grid container declaring
// explicit tracks on at least one axis.
func (r *Resolver) isGridContainer(id grid.NodeID) bool {
	st, ok := r.src.Style(id)
	if !ok || !st.Display.IsGrid() {
		return false
	}
	return st.TemplateRows.HasExplicitTracks() || st.TemplateColumns.HasExplicitTracks()
}

// CheckParentGridContainer extracts a context from a candidate node. It
// returns nil with no error when the candidate is not a qualifying grid
// container. Track data comes from the computed-style capability when the
// source supports it, otherwise from expanding the raw template.
func (r *Resolver) CheckParentGridContainer(candidate grid.NodeID) (*ParentGridContext, error) {
	st, ok := r.src.Style(candidate)
	if !ok {
		return nil, &grid.StyleAccessError{Node: candidate, Reason: "style unavailable"}
	}
	if !st.Display.IsGrid() {
		return nil, nil
	}
	if !st.TemplateRows.HasExplicitTracks() && !st.TemplateColumns.HasExplicitTracks() {
		return nil, nil
	}

	rowTracks, rowNames, err := r.extractAxis(candidate, st, grid.AxisRow)
	if err != nil {
		return nil, err
	}
	colTracks, colNames, err := r.extractAxis(candidate, st, grid.AxisColumn)
	if err != nil {
		return nil, err
	}

	size := grid.Size{Width: -1, Height: -1}
	if st.Width != nil {
		size.Width = *st.Width
	}
	if st.Height != nil {
		size.Height = *st.Height
	}

	return &ParentGridContext{
		Parent:           candidate,
		RowTracks:        rowTracks,
		ColumnTracks:     colTracks,
		RowLineNames:     rowNames,
		ColumnLineNames:  colNames,
		SubgridRows:      st.SubgridAxis(grid.AxisRow),
		SubgridColumns:   st.SubgridAxis(grid.AxisColumn),
		RowTrackCount:    len(rowTracks),
		ColumnTrackCount: len(colTracks),
		ParentSize:       size,
	}, nil
}

// extractAxis pulls the track list and line names for one axis. Subgrid
// and masonry axes legitimately have no tracks of their own.
func (r *Resolver) extractAxis(id grid.NodeID, st *tree.Style, axis grid.Axis) ([]grid.TrackSize, [][]string, error) {
	tpl := st.Template(axis)
	if tpl == nil || tpl.Subgrid || tpl.Masonry {
		return nil, nil, nil
	}
	if cs, ok := r.src.(tree.ComputedStyler); ok {
		if tracks, names, ok := cs.ComputedTracks(id, axis); ok {
			return tracks, names, nil
		}
	}
	tracks, names, err := tpl.Expand()
	if err != nil {
		return nil, nil, err
	}
	return tracks, names, nil
}
