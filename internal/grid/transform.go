// File: internal/grid/transform.go
package grid

import (
	"fmt"
	"math"
)

// TrackSizingContribution is one item's intrinsic size requirement against
// a single track of one axis. Track indices are local to the coordinate
// space the contribution currently lives in; transforms move them upward.
type TrackSizingContribution struct {
	Item         NodeID
	TrackIndex   int
	Axis         Axis
	MinSize      float64
	MaxSize      float64
	Preferred    float64
	HasPreferred bool
}

// CoordinateTransform maps track coordinates from a subgrid's local space
// into its parent's space. Offsets shift indices by the subgrid's start
// position; scales adjust size contributions and stay 1.0 until fractional
// track mapping is needed.
type CoordinateTransform struct {
	RowOffset    int
	ColumnOffset int
	RowScale     float64
	ColumnScale  float64
}

// IdentityTransform returns the no-op transform.
func IdentityTransform() CoordinateTransform {
	return CoordinateTransform{RowScale: 1.0, ColumnScale: 1.0}
}

// TransformForSpan builds the transform for a subgrid spanning the parent
// from rowStart/columnStart.
func TransformForSpan(rowStart, columnStart int) CoordinateTransform {
	return CoordinateTransform{
		RowOffset:    rowStart,
		ColumnOffset: columnStart,
		RowScale:     1.0,
		ColumnScale:  1.0,
	}
}

// offset returns the index shift for the given axis.
func (t CoordinateTransform) offset(axis Axis) int {
	if axis == AxisRow {
		return t.RowOffset
	}
	return t.ColumnOffset
}

// scale returns the size multiplier for the given axis.
func (t CoordinateTransform) scale(axis Axis) float64 {
	if axis == AxisRow {
		return t.RowScale
	}
	return t.ColumnScale
}

// Compose combines this transform with a child transform so that applying
// the result equals applying the child first and then this transform.
// Offset addition is overflow checked.
func (t CoordinateTransform) Compose(child CoordinateTransform) (CoordinateTransform, error) {
	rowOff, err := addOffsets(t.RowOffset, child.RowOffset)
	if err != nil {
		return CoordinateTransform{}, err
	}
	colOff, err := addOffsets(t.ColumnOffset, child.ColumnOffset)
	if err != nil {
		return CoordinateTransform{}, err
	}
	return CoordinateTransform{
		RowOffset:    rowOff,
		ColumnOffset: colOff,
		RowScale:     t.RowScale * child.RowScale,
		ColumnScale:  t.ColumnScale * child.ColumnScale,
	}, nil
}

// Apply maps a contribution from the child coordinate space into this
// transform's parent space. Index arithmetic that would overflow surfaces
// as a CoordinateMappingError rather than wrapping.
func (t CoordinateTransform) Apply(c TrackSizingContribution) (TrackSizingContribution, error) {
	idx, err := addOffsets(c.TrackIndex, t.offset(c.Axis))
	if err != nil {
		return TrackSizingContribution{}, err
	}
	s := t.scale(c.Axis)
	out := c
	out.TrackIndex = idx
	out.MinSize = c.MinSize * s
	out.MaxSize = c.MaxSize * s
	if c.HasPreferred {
		out.Preferred = c.Preferred * s
	}
	return out, nil
}

func addOffsets(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, &CoordinateMappingError{
			Details: fmt.Sprintf("track index overflow adding %d to %d", b, a),
		}
	}
	if b < 0 && a < math.MinInt-b {
		return 0, &CoordinateMappingError{
			Details: fmt.Sprintf("track index underflow adding %d to %d", b, a),
		}
	}
	return a + b, nil
}

// ValidateContributionBounds rejects contributions whose mapped track index
// falls outside the root grid's tracks for that axis. Out-of-range
// contributions are an error, never silently clamped.
func ValidateContributionBounds(c TrackSizingContribution, rootRowCount, rootColumnCount int) error {
	limit := rootColumnCount
	if c.Axis == AxisRow {
		limit = rootRowCount
	}
	if c.TrackIndex < 0 || c.TrackIndex >= limit {
		return &CoordinateMappingError{
			Details: fmt.Sprintf("track index %d exceeds parent grid track count %d", c.TrackIndex, limit),
		}
	}
	return nil
}
