// File: internal/grid/types.go
package grid

import "fmt"

// NodeID identifies a node in the layout tree. IDs are small integers
// assigned densely by the tree arena, which lets coordinator state live in
// slices instead of maps.
type NodeID uint64

func (id NodeID) String() string { return fmt.Sprintf("node(%d)", uint64(id)) }

// Axis selects one of the two grid axes.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == AxisRow {
		return AxisColumn
	}
	return AxisRow
}

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width  float64
	Height float64
}

// Get returns the size component along the given axis. Rows stack
// vertically, so the row axis measures height.
func (s Size) Get(axis Axis) float64 {
	if axis == AxisRow {
		return s.Height
	}
	return s.Width
}

// Set assigns the size component along the given axis.
func (s *Size) Set(axis Axis, v float64) {
	if axis == AxisRow {
		s.Height = v
	} else {
		s.Width = v
	}
}

// FlowDirection is the major axis for auto-placement.
type FlowDirection int

const (
	FlowRow FlowDirection = iota
	FlowColumn
)

func (d FlowDirection) String() string {
	if d == FlowRow {
		return "row"
	}
	return "column"
}
