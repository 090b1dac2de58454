// File: internal/grid/tree/style.go
package tree

import "github.com/xkilldash9x/gridcore/internal/grid"

// DefaultFontSize is the root font size used when a style does not set one.
const DefaultFontSize = 16.0

// Display is the subset of display values the grid engines care about.
type Display int

const (
	DisplayBlock Display = iota
	DisplayGrid
	DisplayInlineGrid
	DisplayNone
)

// IsGrid reports whether the node establishes a grid formatting context.
func (d Display) IsGrid() bool { return d == DisplayGrid || d == DisplayInlineGrid }

// Position is the positioning scheme of a node.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// OutOfFlow reports whether the node is removed from grid item placement.
func (p Position) OutOfFlow() bool { return p == PositionAbsolute || p == PositionFixed }

// LineKind discriminates grid line placement values.
type LineKind int

const (
	LineAuto LineKind = iota
	LineIndex
	LineSpan
)

// Line is one side of a grid-row or grid-column declaration.
type Line struct {
	Kind  LineKind
	Value int
}

// AutoLine returns the `auto` placement line.
func AutoLine() Line { return Line{Kind: LineAuto} }

// LineAt returns a 1-based grid line index placement.
func LineAt(n int) Line { return Line{Kind: LineIndex, Value: n} }

// SpanOf returns a `span n` placement.
func SpanOf(n int) Line { return Line{Kind: LineSpan, Value: n} }

// Placement is a grid-row or grid-column shorthand for one axis.
type Placement struct {
	Start Line
	End   Line
}

// Span resolves the number of tracks the placement covers. Definite
// line pairs use their absolute difference with a floor of one track;
// explicit spans use the span value; everything else spans one track.
func (p Placement) Span() int {
	if p.Start.Kind == LineIndex && p.End.Kind == LineIndex {
		d := p.End.Value - p.Start.Value
		if d < 0 {
			d = -d
		}
		if d < 1 {
			d = 1
		}
		return d
	}
	if p.Start.Kind == LineSpan && p.Start.Value > 0 {
		return p.Start.Value
	}
	if p.End.Kind == LineSpan && p.End.Value > 0 {
		return p.End.Value
	}
	return 1
}

// ExplicitStart returns the 0-based start track when the placement pins
// one, and false for auto-placed items.
func (p Placement) ExplicitStart() (int, bool) {
	if p.Start.Kind == LineIndex && p.Start.Value >= 1 {
		return p.Start.Value - 1, true
	}
	return 0, false
}

// AlignValue is the subset of self-alignment values relevant to masonry.
type AlignValue int

const (
	AlignAuto AlignValue = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignStretch
	AlignBaseline
)

// Edges holds per-side pixel values, used for margins.
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Style carries the grid-relevant computed style of a node.
type Style struct {
	Display  Display
	Position Position

	TemplateRows    *grid.TrackTemplate
	TemplateColumns *grid.TrackTemplate

	AutoFlow     grid.FlowDirection
	DensePacking bool
	RowGap       float64
	ColumnGap    float64

	GridRow    Placement
	GridColumn Placement

	AlignSelf   AlignValue
	JustifySelf AlignValue

	FontSize float64
	Margin   Edges

	// Width and Height are the used sizes when definite; nil means auto.
	Width  *float64
	Height *float64
}

// EffectiveFontSize returns the style's font size or the default.
func (s *Style) EffectiveFontSize() float64 {
	if s == nil || s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// Template returns the track template for the given axis.
func (s *Style) Template(axis grid.Axis) *grid.TrackTemplate {
	if s == nil {
		return nil
	}
	if axis == grid.AxisRow {
		return s.TemplateRows
	}
	return s.TemplateColumns
}

// Gap returns the gap along the given axis. The row axis gap separates
// rows, so it is the vertical gap.
func (s *Style) Gap(axis grid.Axis) float64 {
	if s == nil {
		return 0
	}
	if axis == grid.AxisRow {
		return s.RowGap
	}
	return s.ColumnGap
}

// PlacementFor returns the item placement for the given axis.
func (s *Style) PlacementFor(axis grid.Axis) Placement {
	if s == nil {
		return Placement{}
	}
	if axis == grid.AxisRow {
		return s.GridRow
	}
	return s.GridColumn
}

// SubgridAxis reports whether the style declares subgrid on the axis.
func (s *Style) SubgridAxis(axis grid.Axis) bool {
	t := s.Template(axis)
	return t != nil && t.Subgrid
}

// MasonryAxis reports whether the style declares masonry on the axis.
func (s *Style) MasonryAxis(axis grid.Axis) bool {
	t := s.Template(axis)
	return t != nil && t.Masonry
}
