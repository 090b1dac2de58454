// File: internal/grid/subgrid/coordination.go
package subgrid

import (
	"fmt"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/gridctx"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// MaxSubgridNestingDepth caps how deep subgrid chains may nest before
// coordination is rejected outright.
const MaxSubgridNestingDepth = 10

// TrackInheritanceLevel records one subgrid's position within a nested
// inheritance chain, ordered root to leaf inside the coordination.
type TrackInheritanceLevel struct {
	Subgrid   grid.NodeID
	Parent    grid.NodeID
	HasParent bool

	RowSpan    Span
	ColumnSpan Span

	Transform grid.CoordinateTransform
}

// LineNameMapping records one translated line name set for diagnostics
// and downstream placement by name.
type LineNameMapping struct {
	Axis       grid.Axis
	LocalLine  int
	ParentLine int
	Names      []string
}

// NestedSubgridCoordination accumulates a chain of nested subgrids and
// every track sizing contribution their items produce, re-expressed in
// the root parent's track coordinates.
type NestedSubgridCoordination struct {
	RootSubgrid      grid.NodeID
	SubgridChain     []grid.NodeID
	InheritanceChain []TrackInheritanceLevel

	EffectiveRowTracks    []grid.TrackSize
	EffectiveColumnTracks []grid.TrackSize
	EffectiveRowNames     [][]string
	EffectiveColumnNames  [][]string

	Contributions    []grid.TrackSizingContribution
	LineNameMappings []LineNameMapping
}

// NewNestedSubgridCoordination starts a coordination rooted at the given
// subgrid.
func NewNestedSubgridCoordination(root grid.NodeID) *NestedSubgridCoordination {
	return &NestedSubgridCoordination{
		RootSubgrid:  root,
		SubgridChain: []grid.NodeID{root},
	}
}

// AddLevel appends an inheritance level and refreshes the effective
// tracks from that level's snapshot.
func (n *NestedSubgridCoordination) AddLevel(level TrackInheritanceLevel, inh *SubgridTrackInheritance) {
	n.InheritanceChain = append(n.InheritanceChain, level)
	if inh != nil {
		n.EffectiveRowTracks = inh.RowTracks
		n.EffectiveColumnTracks = inh.ColumnTracks
		n.EffectiveRowNames = inh.RowLineNames
		n.EffectiveColumnNames = inh.ColumnLineNames
	}
}

// AddContribution records a contribution in this coordination's local
// coordinate space.
func (n *NestedSubgridCoordination) AddContribution(c grid.TrackSizingContribution) {
	n.Contributions = append(n.Contributions, c)
}

// AddLineNameMapping appends a translated line name record.
func (n *NestedSubgridCoordination) AddLineNameMapping(m LineNameMapping) {
	n.LineNameMappings = append(n.LineNameMappings, m)
}

// MergeChildCoordination folds a child subgrid's coordination into this
// one. The child's chain and levels are appended, every child
// contribution is mapped through the child's accumulated transform chain
// level by level, and the mapped index is validated against the root
// parent's track counts. Out-of-range results are an error, never
// clamped. Line name mappings append, they never replace.
func (n *NestedSubgridCoordination) MergeChildCoordination(child *NestedSubgridCoordination, rootParent *gridctx.ParentGridContext) error {
	if child == nil {
		return &grid.CoordinationError{Details: "nil child coordination"}
	}
	if rootParent == nil {
		return &grid.CoordinationError{Details: "missing root parent context"}
	}

	n.SubgridChain = append(n.SubgridChain, child.SubgridChain...)
	n.InheritanceChain = append(n.InheritanceChain, child.InheritanceChain...)

	for _, c := range child.Contributions {
		mapped := c
		// Apply leaf to root so each step lands in the next enclosing
		// coordinate space. Offsets are checked per step.
		for i := len(child.InheritanceChain) - 1; i >= 0; i-- {
			var err error
			mapped, err = child.InheritanceChain[i].Transform.Apply(mapped)
			if err != nil {
				return grid.WrapPreprocessing("merge_child_coordination", c.Item, err)
			}
		}
		if err := grid.ValidateContributionBounds(mapped, rootParent.RowTrackCount, rootParent.ColumnTrackCount); err != nil {
			return grid.WrapPreprocessing("merge_child_coordination", c.Item, err)
		}
		n.Contributions = append(n.Contributions, mapped)
	}

	n.LineNameMappings = append(n.LineNameMappings, child.LineNameMappings...)
	return nil
}

// ChainDepth returns the number of inheritance levels accumulated.
func (n *NestedSubgridCoordination) ChainDepth() int { return len(n.InheritanceChain) }

// CoordinateNestedSubgrids builds the coordination for a subgrid and all
// nested subgrids below it, bottom-up: each child chain is coordinated
// first and then merged into its parent's accumulator. parentCtx is the
// resolved context of the grid the subgrid lives in; rootParent is the
// outermost non-subgrid ancestor everything is validated against.
func CoordinateNestedSubgrids(src tree.Source, node grid.NodeID, parentCtx, rootParent *gridctx.ParentGridContext, depth int) (*NestedSubgridCoordination, error) {
	if depth > MaxSubgridNestingDepth {
		return nil, &grid.NestingDepthError{Depth: depth, MaxDepth: MaxSubgridNestingDepth}
	}
	st, ok := src.Style(node)
	if !ok {
		return nil, &grid.StyleAccessError{Node: node, Reason: "style unavailable"}
	}

	rowSpan := SpanInParent(st.GridRow, parentCtx.RowTrackCount)
	colSpan := SpanInParent(st.GridColumn, parentCtx.ColumnTrackCount)
	inh, err := BuildTrackInheritance(parentCtx, st, rowSpan, colSpan)
	if err != nil {
		return nil, err
	}

	coord := NewNestedSubgridCoordination(node)
	level := TrackInheritanceLevel{
		Subgrid:    node,
		Parent:     parentCtx.Parent,
		HasParent:  true,
		RowSpan:    rowSpan,
		ColumnSpan: colSpan,
		Transform:  inh.Transform,
	}
	coord.AddLevel(level, inh)

	// The subgrid itself acts as the parent context for nested subgrids.
	localCtx := contextFromInheritance(node, parentCtx, inh)

	for _, child := range src.Children(node) {
		cst, ok := src.Style(child)
		if !ok || !cst.Display.IsGrid() {
			continue
		}
		if !cst.SubgridAxis(grid.AxisRow) && !cst.SubgridAxis(grid.AxisColumn) {
			continue
		}
		childCoord, err := CoordinateNestedSubgrids(src, child, localCtx, rootParent, depth+1)
		if err != nil {
			return nil, err
		}
		if err := coord.MergeChildCoordination(childCoord, rootParent); err != nil {
			return nil, err
		}
	}
	return coord, nil
}

// contextFromInheritance derives the parent context a nested subgrid sees
// when its parent is itself a subgrid: the inherited tracks under the
// parent's identity.
func contextFromInheritance(node grid.NodeID, parent *gridctx.ParentGridContext, inh *SubgridTrackInheritance) *gridctx.ParentGridContext {
	ctx := &gridctx.ParentGridContext{
		Parent:           node,
		RowTracks:        inh.RowTracks,
		ColumnTracks:     inh.ColumnTracks,
		RowLineNames:     inh.RowLineNames,
		ColumnLineNames:  inh.ColumnLineNames,
		SubgridRows:      inh.UsesSubgridRows,
		SubgridColumns:   inh.UsesSubgridColumns,
		RowTrackCount:    len(inh.RowTracks),
		ColumnTrackCount: len(inh.ColumnTracks),
		ParentSize:       parent.ParentSize,
	}
	// An axis the parent does not subgrid keeps the outer grid's tracks
	// so nested children spanning that axis still resolve.
	if !inh.UsesSubgridRows {
		ctx.RowTracks = parent.RowTracks
		ctx.RowLineNames = parent.RowLineNames
		ctx.RowTrackCount = parent.RowTrackCount
	}
	if !inh.UsesSubgridColumns {
		ctx.ColumnTracks = parent.ColumnTracks
		ctx.ColumnLineNames = parent.ColumnLineNames
		ctx.ColumnTrackCount = parent.ColumnTrackCount
	}
	return ctx
}

// DescribeChain renders the subgrid chain for logs.
func (n *NestedSubgridCoordination) DescribeChain() string {
	return fmt.Sprintf("chain depth %d rooted at %s", len(n.InheritanceChain), n.RootSubgrid)
}
