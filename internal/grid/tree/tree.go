// File: internal/grid/tree/tree.go

// Package tree provides the layout node arena the grid engines operate on.
// Nodes are stored in a slab indexed by their NodeID, so per-node engine
// state can live in dense slices instead of maps.
package tree

import (
	"sync/atomic"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

// Source is the read-only view of a node tree the grid engines consume.
// Implementations must tolerate unknown IDs by returning false.
type Source interface {
	// Parent returns the parent of the given node, if any.
	Parent(id grid.NodeID) (grid.NodeID, bool)
	// Children returns the node's children in document order.
	Children(id grid.NodeID) []grid.NodeID
	// Style returns the node's style, if the node exists.
	Style(id grid.NodeID) (*Style, bool)
	// NodeCount returns the number of allocated nodes.
	NodeCount() int
}

// ComputedStyler is an optional capability of a Source: it supplies fully
// computed track lists for an axis, which are richer than what raw template
// expansion can produce. Resolvers check for it with a type assertion and
// fall back to template expansion when it is absent.
type ComputedStyler interface {
	ComputedTracks(id grid.NodeID, axis grid.Axis) (tracks []grid.TrackSize, lineNames [][]string, ok bool)
}

// ContentMeasurer is an optional capability of a Source: it measures an
// item's content size under the given constraints. A negative constraint
// means unconstrained on that axis.
type ContentMeasurer interface {
	MeasureContent(id grid.NodeID, widthConstraint, heightConstraint float64) (grid.Size, bool)
}

// BaselineMeasurer is an optional capability of a Source: it reports the
// first baseline of a node's measured layout, when one exists.
type BaselineMeasurer interface {
	FirstBaseline(id grid.NodeID) (float64, bool)
}

type node struct {
	parent    grid.NodeID
	hasParent bool
	children  []grid.NodeID
	style     *Style
}

// Tree is the slab-backed Source implementation. It is not safe for
// concurrent mutation; concurrent reads are fine once construction ends.
type Tree struct {
	nodes []node

	// traversals counts structure lookups. Cache tests use it to verify
	// that repeated resolutions do not walk the tree again.
	traversals atomic.Uint64
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// AddRoot allocates a parentless node and returns its ID.
func (t *Tree) AddRoot(style *Style) grid.NodeID {
	id := grid.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{style: style})
	return id
}

// AddChild allocates a node under parent and returns its ID. Unknown
// parents make the node a root.
func (t *Tree) AddChild(parent grid.NodeID, style *Style) grid.NodeID {
	id := grid.NodeID(len(t.nodes))
	n := node{style: style}
	if int(parent) < len(t.nodes) {
		n.parent = parent
		n.hasParent = true
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Parent implements Source.
func (t *Tree) Parent(id grid.NodeID) (grid.NodeID, bool) {
	t.traversals.Add(1)
	if int(id) >= len(t.nodes) {
		return 0, false
	}
	n := t.nodes[id]
	return n.parent, n.hasParent
}

// Children implements Source.
func (t *Tree) Children(id grid.NodeID) []grid.NodeID {
	t.traversals.Add(1)
	if int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id].children
}

// Style implements Source.
func (t *Tree) Style(id grid.NodeID) (*Style, bool) {
	if int(id) >= len(t.nodes) || t.nodes[id].style == nil {
		return nil, false
	}
	return t.nodes[id].style, true
}

// NodeCount implements Source.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Traversals returns the number of structure lookups performed so far.
func (t *Tree) Traversals() uint64 { return t.traversals.Load() }
