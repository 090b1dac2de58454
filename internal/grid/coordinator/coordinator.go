// File: internal/grid/coordinator/coordinator.go
package coordinator

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

// slab is a dense per-node store. Node ids are allocated densely by the
// tree arena, so a slice plus presence flags beats a map for the access
// pattern here: written once per pass, read by later passes.
type slab[T any] struct {
	entries []T
	present []bool
}

func (s *slab[T]) grow(id grid.NodeID) {
	for int(id) >= len(s.entries) {
		var zero T
		s.entries = append(s.entries, zero)
		s.present = append(s.present, false)
	}
}

func (s *slab[T]) get(id grid.NodeID) (*T, bool) {
	if int(id) >= len(s.entries) || !s.present[id] {
		return nil, false
	}
	return &s.entries[id], true
}

func (s *slab[T]) ensure(id grid.NodeID) *T {
	s.grow(id)
	s.present[id] = true
	return &s.entries[id]
}

func (s *slab[T]) count() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Coordinator owns all per-node state for one layout invocation. It is
// created fresh per invocation and dropped at the end; nothing persists
// across invocations. Single-writer-per-pass: a node's state is written
// only by the pass visiting it.
type Coordinator struct {
	passes        slab[PassState]
	subgrids      slab[SubgridState]
	autoPlacement slab[AutoPlacementState]
	intrinsic     slab[IntrinsicSizingState]
	masonry       slab[MasonryState]

	log *zap.Logger
}

// New returns a coordinator sized for the given node count. The capacity
// is a hint; slabs grow on demand.
func New(capacity int, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{log: log}
	if capacity > 0 {
		c.passes.grow(grid.NodeID(capacity - 1))
	}
	return c
}

// PassState returns a node's pass state if one was recorded.
func (c *Coordinator) PassState(node grid.NodeID) (*PassState, bool) {
	return c.passes.get(node)
}

// BeginPass marks a node as being visited by the given pass.
func (c *Coordinator) BeginPass(node grid.NodeID, pass int) *PassState {
	st := c.passes.ensure(node)
	st.CurrentPass = pass
	return st
}

// CompletePass records a pass as finished for the node.
func (c *Coordinator) CompletePass(node grid.NodeID, pass int) {
	st := c.passes.ensure(node)
	if pass >= 1 && pass <= passCount {
		st.PassesCompleted[pass-1] = true
	}
	if st.CurrentPass == pass {
		st.CurrentPass = 0
	}
}

// AddDependency records that node depends on dep's results; duplicate
// links are dropped.
func (c *Coordinator) AddDependency(node, dep grid.NodeID) {
	st := c.passes.ensure(node)
	for _, d := range st.Dependencies {
		if d == dep {
			return
		}
	}
	st.Dependencies = append(st.Dependencies, dep)
}

// MarkSizeChanged flags a node whose size moved this pass; its parent
// needs recomputation in the next pass.
func (c *Coordinator) MarkSizeChanged(node grid.NodeID) {
	st := c.passes.ensure(node)
	st.HasSizeChanges = true
	st.RequiresParentRecompute = true
}

// SubgridState returns a subgrid's recorded state.
func (c *Coordinator) SubgridState(node grid.NodeID) (*SubgridState, bool) {
	return c.subgrids.get(node)
}

// SetSubgridState stores (or replaces) a subgrid's state.
func (c *Coordinator) SetSubgridState(node grid.NodeID, st SubgridState) {
	*c.subgrids.ensure(node) = st
}

// AutoPlacement returns a node's placement state.
func (c *Coordinator) AutoPlacement(node grid.NodeID) (*AutoPlacementState, bool) {
	return c.autoPlacement.get(node)
}

// SetAutoPlacement stores a node's placement state.
func (c *Coordinator) SetAutoPlacement(node grid.NodeID, st AutoPlacementState) {
	*c.autoPlacement.ensure(node) = st
}

// MasonryState returns a masonry container's packing state.
func (c *Coordinator) MasonryState(node grid.NodeID) (*MasonryState, bool) {
	return c.masonry.get(node)
}

// SetMasonryState stores a masonry container's packing state.
func (c *Coordinator) SetMasonryState(node grid.NodeID, st MasonryState) {
	*c.masonry.ensure(node) = st
}

// RecordIntrinsicPass feeds one intrinsic sizing pass's track results for
// a node and reports whether sizing has converged. Exceeding the pass
// budget without convergence is an error; callers then stop iterating and
// use the latest sizes.
func (c *Coordinator) RecordIntrinsicPass(node grid.NodeID, rowSizes, columnSizes []float64) (bool, error) {
	st := c.intrinsic.ensure(node)
	st.PreviousRowSizes = st.CurrentRowSizes
	st.PreviousColumnSizes = st.CurrentColumnSizes
	st.CurrentRowSizes = append([]float64(nil), rowSizes...)
	st.CurrentColumnSizes = append([]float64(nil), columnSizes...)
	st.Pass++

	if st.Converged() {
		return true, nil
	}
	if st.Pass >= MaxCoordinationPasses {
		c.log.Warn("intrinsic sizing did not converge",
			zap.Uint64("node", uint64(node)),
			zap.Int("passes", st.Pass))
		return false, grid.NewPreprocessingFailed("intrinsic_sizing", node,
			"track sizes still changing after maximum coordination passes")
	}
	return false, nil
}

// IntrinsicState returns a node's sizing convergence state.
func (c *Coordinator) IntrinsicState(node grid.NodeID) (*IntrinsicSizingState, bool) {
	return c.intrinsic.get(node)
}

// TrackedNodes returns how many nodes carry any pass state, mainly for
// diagnostics.
func (c *Coordinator) TrackedNodes() int {
	return c.passes.count()
}
