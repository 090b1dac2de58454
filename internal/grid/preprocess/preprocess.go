// File: internal/grid/preprocess/preprocess.go

// Package preprocess drives grid preprocessing over a tree: it detects
// subgrid and masonry containers, resolves their parent contexts, runs
// the matching engine, and degrades to standard grid layout when a
// container's configuration cannot be honored.
package preprocess

import (
	"errors"

	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/coordinator"
	"github.com/xkilldash9x/gridcore/internal/grid/gridctx"
	"github.com/xkilldash9x/gridcore/internal/grid/masonry"
	"github.com/xkilldash9x/gridcore/internal/grid/subgrid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// Mode classifies what preprocessing did for a node.
type Mode int

const (
	// ModeStandard means the node needs no special handling.
	ModeStandard Mode = iota
	// ModeSubgrid means subgrid coordination ran.
	ModeSubgrid
	// ModeMasonry means the masonry engine ran.
	ModeMasonry
	// ModeFallback means a subgrid or masonry request degraded to
	// standard grid layout.
	ModeFallback
)

func (m Mode) String() string {
	switch m {
	case ModeSubgrid:
		return "subgrid"
	case ModeMasonry:
		return "masonry"
	case ModeFallback:
		return "fallback"
	default:
		return "standard"
	}
}

// Outcome is the preprocessing result for one container node.
type Outcome struct {
	Node           grid.NodeID
	Mode           Mode
	Subgrid        *subgrid.NestedSubgridCoordination
	Masonry        *masonry.Result
	FallbackReason string
}

// Preprocessor walks a tree and preprocesses every grid container. One
// instance serves one layout invocation; the resolver cache belongs to
// the caller and may outlive it.
type Preprocessor struct {
	src      tree.Source
	resolver *gridctx.Resolver
	coord    *coordinator.Coordinator
	log      *zap.Logger
}

// New builds a preprocessor. A nil cache gets a private one.
func New(src tree.Source, cache *gridctx.Cache, log *zap.Logger) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preprocessor{
		src:      src,
		resolver: gridctx.NewResolver(src, cache, log),
		coord:    coordinator.New(src.NodeCount(), log),
		log:      log,
	}
}

// Resolver exposes the parent context resolver, mainly for cache stats.
func (p *Preprocessor) Resolver() *gridctx.Resolver { return p.resolver }

// Coordinator exposes the per-invocation coordination state.
func (p *Preprocessor) Coordinator() *coordinator.Coordinator { return p.coord }

// PreprocessNode handles one container. Recoverable configuration
// problems (no parent grid, unsupported subgrid setup, extraction
// failures) degrade to standard layout with the reason recorded;
// programmer-contract violations and overflow errors surface as errors.
func (p *Preprocessor) PreprocessNode(node grid.NodeID, available grid.Size) (*Outcome, error) {
	st, ok := p.src.Style(node)
	if !ok {
		return nil, &grid.StyleAccessError{Node: node, Reason: "style unavailable"}
	}
	if !st.Display.IsGrid() {
		return &Outcome{Node: node, Mode: ModeStandard}, nil
	}

	if masonry.IsMasonryContainer(st) {
		return p.preprocessMasonry(node, available)
	}
	if st.SubgridAxis(grid.AxisRow) || st.SubgridAxis(grid.AxisColumn) {
		return p.preprocessSubgrid(node)
	}
	return &Outcome{Node: node, Mode: ModeStandard}, nil
}

func (p *Preprocessor) preprocessMasonry(node grid.NodeID, available grid.Size) (*Outcome, error) {
	p.coord.BeginPass(node, coordinator.PassInitialPlacement)
	result, err := masonry.LayoutContainer(p.src, node, available, p.log)
	if err != nil {
		if recoverable(err) {
			p.log.Debug("masonry fell back to standard grid",
				zap.Uint64("node", uint64(node)), zap.Error(err))
			return &Outcome{Node: node, Mode: ModeFallback, FallbackReason: err.Error()}, nil
		}
		return nil, err
	}
	p.coord.CompletePass(node, coordinator.PassInitialPlacement)
	p.coord.SetMasonryState(node, coordinator.MasonryState{
		TrackRunningPositions: result.TrackSizes,
		ItemTolerance:         result.Config.ItemTolerance,
	})
	p.coord.CompletePass(node, coordinator.PassFinalLayout)
	return &Outcome{Node: node, Mode: ModeMasonry, Masonry: result}, nil
}

func (p *Preprocessor) preprocessSubgrid(node grid.NodeID) (*Outcome, error) {
	parentCtx, err := p.resolver.ResolveParentGridContext(node)
	if err != nil {
		if recoverable(err) {
			return &Outcome{Node: node, Mode: ModeFallback, FallbackReason: err.Error()}, nil
		}
		return nil, err
	}
	if parentCtx == nil {
		// A subgrid without a grid ancestor lays out as a regular grid.
		return &Outcome{
			Node:           node,
			Mode:           ModeFallback,
			FallbackReason: "no parent grid container",
		}, nil
	}

	p.coord.BeginPass(node, coordinator.PassInitialPlacement)
	p.coord.AddDependency(node, parentCtx.Parent)

	coord, err := subgrid.CoordinateNestedSubgrids(p.src, node, parentCtx, parentCtx, 1)
	if err != nil {
		if recoverable(err) {
			p.log.Debug("subgrid fell back to standard grid",
				zap.Uint64("node", uint64(node)), zap.Error(err))
			return &Outcome{Node: node, Mode: ModeFallback, FallbackReason: err.Error()}, nil
		}
		return nil, err
	}
	p.coord.CompletePass(node, coordinator.PassInitialPlacement)

	p.coord.SetSubgridState(node, coordinator.SubgridState{
		Parent:        parentCtx.Parent,
		HasParent:     true,
		Contributions: coord.Contributions,
		Pass:          coordinator.PassInitialPlacement,
	})
	return &Outcome{Node: node, Mode: ModeSubgrid, Subgrid: coord}, nil
}

// PreprocessTree preprocesses every grid container under root, parents
// before children, and returns the outcomes in visit order.
func (p *Preprocessor) PreprocessTree(root grid.NodeID, available grid.Size) ([]*Outcome, error) {
	var outcomes []*Outcome
	var walk func(grid.NodeID) error
	walk = func(node grid.NodeID) error {
		if st, ok := p.src.Style(node); ok && st.Display.IsGrid() {
			out, err := p.PreprocessNode(node, available)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, out)
		}
		for _, child := range p.src.Children(node) {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// recoverable classifies errors the caller absorbs by falling back to
// standard grid layout, per the error handling contract: extraction and
// validation failures degrade, contract violations do not.
func recoverable(err error) bool {
	var (
		unsupported *grid.SubgridUnsupportedError
		noParent    *grid.NoParentGridError
		extraction  *grid.TrackExtractionError
		mismatch    *grid.TrackCountMismatchError
		inherit     *grid.InvalidTrackInheritanceError
		nesting     *grid.NestingDepthError
		axisCfg     *grid.AxisConfigError
		trackCount  *grid.InvalidTrackCountError
	)
	switch {
	case errors.As(err, &unsupported),
		errors.As(err, &noParent),
		errors.As(err, &extraction),
		errors.As(err, &mismatch),
		errors.As(err, &inherit),
		errors.As(err, &nesting),
		errors.As(err, &axisCfg),
		errors.As(err, &trackCount):
		return true
	}
	return false
}
