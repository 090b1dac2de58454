// File: internal/grid/coordinator/states.go

// Package coordinator tracks per-node state across the passes of one grid
// layout invocation. State lives in slabs indexed by node id and is
// discarded with the coordinator when the invocation ends.
package coordinator

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/masonry"
	"github.com/xkilldash9x/gridcore/internal/grid/subgrid"
)

// Layout pass numbers, in execution order.
const (
	PassInitialPlacement = 1
	PassIntrinsicSizing  = 2
	PassBidirectional    = 3
	PassFinalLayout      = 4

	passCount = 4
)

const (
	// MaxCoordinationPasses bounds intrinsic sizing convergence loops.
	MaxCoordinationPasses = 5
	// ConvergenceTolerance is the per-track delta under which two
	// consecutive sizing passes count as converged.
	ConvergenceTolerance = 0.1
)

// PassState is a node's progress through the layout passes.
type PassState struct {
	CurrentPass             int
	PassesCompleted         [passCount]bool
	Dependencies            []grid.NodeID
	RequiresParentRecompute bool
	HasSizeChanges          bool
}

// Completed reports whether the given pass has finished for this node.
func (s *PassState) Completed(pass int) bool {
	if pass < 1 || pass > passCount {
		return false
	}
	return s.PassesCompleted[pass-1]
}

// SubgridState is a subgrid's coordination snapshot for the invocation.
type SubgridState struct {
	Parent        grid.NodeID
	HasParent     bool
	Inheritance   *subgrid.SubgridTrackInheritance
	Contributions []grid.TrackSizingContribution
	Pass          int
}

// AutoPlacementState carries a node's placement cursor and results
// between passes.
type AutoPlacementState struct {
	Cursor subgrid.AutoPlacementCursor
	Placed []subgrid.PlacedItem
}

// IntrinsicSizingState tracks convergence of content-based track sizing
// across coordination passes.
type IntrinsicSizingState struct {
	PreviousRowSizes    []float64
	PreviousColumnSizes []float64
	CurrentRowSizes     []float64
	CurrentColumnSizes  []float64
	Pass                int
}

// Converged reports whether the last two passes agree within the
// tolerance on both axes. A first pass never counts as converged.
func (s *IntrinsicSizingState) Converged() bool {
	if s.Pass < 2 {
		return false
	}
	return axisConverged(s.PreviousRowSizes, s.CurrentRowSizes) &&
		axisConverged(s.PreviousColumnSizes, s.CurrentColumnSizes)
}

func axisConverged(prev, cur []float64) bool {
	if len(prev) != len(cur) {
		return false
	}
	for i := range cur {
		d := cur[i] - prev[i]
		if d < 0 {
			d = -d
		}
		if d >= ConvergenceTolerance {
			return false
		}
	}
	return true
}

// MasonryState carries a masonry container's packing state between
// passes.
type MasonryState struct {
	TrackRunningPositions []float64
	ItemTolerance         float64
	VirtualItems          []masonry.VirtualPlacement
}
