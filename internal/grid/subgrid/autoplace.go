// File: internal/grid/subgrid/autoplace.go
package subgrid

import (
	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// AutoPlacementCursor walks candidate positions inside the inherited
// track grid. Flow selects the major axis; the minor axis wraps.
type AutoPlacementCursor struct {
	Row        int
	Column     int
	MaxRows    int
	MaxColumns int
	Flow       grid.FlowDirection
	Dense      bool
}

// NewAutoPlacementCursor returns a cursor at the origin of a grid with the
// given bounds.
func NewAutoPlacementCursor(maxRows, maxColumns int, flow grid.FlowDirection, dense bool) AutoPlacementCursor {
	return AutoPlacementCursor{MaxRows: maxRows, MaxColumns: maxColumns, Flow: flow, Dense: dense}
}

// Advance moves the cursor one position in flow order, wrapping the minor
// axis and stepping the major axis. It returns false once the grid is
// exhausted; the caller decides whether to grow or reject.
func (c *AutoPlacementCursor) Advance() bool {
	switch c.Flow {
	case grid.FlowColumn:
		c.Row++
		if c.Row >= c.MaxRows {
			c.Row = 0
			c.Column++
		}
		return c.Column < c.MaxColumns
	default:
		c.Column++
		if c.Column >= c.MaxColumns {
			c.Column = 0
			c.Row++
		}
		return c.Row < c.MaxRows
	}
}

// InBounds reports whether the cursor currently points inside the grid.
func (c *AutoPlacementCursor) InBounds() bool {
	return c.Row >= 0 && c.Row < c.MaxRows && c.Column >= 0 && c.Column < c.MaxColumns
}

// Reset returns the cursor to the origin.
func (c *AutoPlacementCursor) Reset() {
	c.Row = 0
	c.Column = 0
}

// PlacedItem is one item's resolved position inside the subgrid's local
// track space.
type PlacedItem struct {
	Item       grid.NodeID
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int
	Method     PlacementMethod
}

// AutoPlacer places subgrid items into the inherited tracks. Explicitly
// placed items claim their cells directly; auto-placed items take the
// first free cursor position that fits their span.
type AutoPlacer struct {
	cursor   AutoPlacementCursor
	rows     int
	cols     int
	occupied []bool
}

// NewAutoPlacer builds a placer over a rows-by-cols inherited grid.
func NewAutoPlacer(rows, cols int, flow grid.FlowDirection, dense bool) *AutoPlacer {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &AutoPlacer{
		cursor:   NewAutoPlacementCursor(rows, cols, flow, dense),
		rows:     rows,
		cols:     cols,
		occupied: make([]bool, rows*cols),
	}
}

// Cursor returns the current cursor state.
func (p *AutoPlacer) Cursor() AutoPlacementCursor { return p.cursor }

func (p *AutoPlacer) cell(row, col int) bool { return p.occupied[row*p.cols+col] }
func (p *AutoPlacer) setCell(row, col int)   { p.occupied[row*p.cols+col] = true }

func (p *AutoPlacer) areaFree(row, col, rowSpan, colSpan int) bool {
	if row < 0 || col < 0 || row+rowSpan > p.rows || col+colSpan > p.cols {
		return false
	}
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			if p.cell(r, c) {
				return false
			}
		}
	}
	return true
}

func (p *AutoPlacer) claim(row, col, rowSpan, colSpan int) {
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			p.setCell(r, c)
		}
	}
}

// PlaceExplicit claims a fixed position for an item. Spans larger than
// the inherited grid or overlapping claims are errors.
func (p *AutoPlacer) PlaceExplicit(item grid.NodeID, row, col, rowSpan, colSpan int) (PlacedItem, error) {
	if rowSpan < 1 {
		rowSpan = 1
	}
	if colSpan < 1 {
		colSpan = 1
	}
	if rowSpan > p.rows {
		return PlacedItem{}, &grid.SpanExceedsTracksError{Span: rowSpan, AvailableTracks: p.rows}
	}
	if colSpan > p.cols {
		return PlacedItem{}, &grid.SpanExceedsTracksError{Span: colSpan, AvailableTracks: p.cols}
	}
	if row < 0 || col < 0 || row+rowSpan > p.rows || col+colSpan > p.cols {
		return PlacedItem{}, grid.NewPlacementFailed(col, "explicit placement outside inherited tracks")
	}
	// Explicit placements win cell conflicts per CSS placement rules; the
	// cells are claimed regardless so auto items route around them.
	p.claim(row, col, rowSpan, colSpan)
	return PlacedItem{Item: item, Row: row, Column: col, RowSpan: rowSpan, ColumnSpan: colSpan, Method: PlacementExplicit}, nil
}

// PlaceAuto finds the next free area for an item at the cursor, advancing
// until one fits. Dense packing restarts the search from the origin for
// every item instead of resuming at the cursor.
func (p *AutoPlacer) PlaceAuto(item grid.NodeID, rowSpan, colSpan int) (PlacedItem, error) {
	if rowSpan < 1 {
		rowSpan = 1
	}
	if colSpan < 1 {
		colSpan = 1
	}
	if rowSpan > p.rows {
		return PlacedItem{}, &grid.SpanExceedsTracksError{Span: rowSpan, AvailableTracks: p.rows}
	}
	if colSpan > p.cols {
		return PlacedItem{}, &grid.SpanExceedsTracksError{Span: colSpan, AvailableTracks: p.cols}
	}

	method := PlacementAuto
	if p.cursor.Dense {
		p.cursor.Reset()
		method = PlacementDense
	}
	for {
		if p.cursor.InBounds() && p.areaFree(p.cursor.Row, p.cursor.Column, rowSpan, colSpan) {
			placed := PlacedItem{
				Item:       item,
				Row:        p.cursor.Row,
				Column:     p.cursor.Column,
				RowSpan:    rowSpan,
				ColumnSpan: colSpan,
				Method:     method,
			}
			p.claim(placed.Row, placed.Column, rowSpan, colSpan)
			return placed, nil
		}
		if !p.cursor.Advance() {
			return PlacedItem{}, &grid.CursorOverflowError{}
		}
	}
}

// PlaceSubgridItems places all in-flow children of the subgrid into the
// inherited track grid. Items carrying definite line placements on both
// axes bypass the cursor; everything else auto-places in document order.
func PlaceSubgridItems(src tree.Source, subgridNode grid.NodeID, inh *SubgridTrackInheritance, flow grid.FlowDirection, dense bool) ([]PlacedItem, error) {
	rows := len(inh.RowTracks)
	cols := len(inh.ColumnTracks)
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	placer := NewAutoPlacer(rows, cols, flow, dense)

	var placed []PlacedItem
	for _, child := range src.Children(subgridNode) {
		st, ok := src.Style(child)
		if !ok {
			return nil, &grid.ItemCollectionError{Reason: "child style unavailable"}
		}
		if st.Display == tree.DisplayNone || st.Position.OutOfFlow() {
			continue
		}

		rowSpan := st.GridRow.Span()
		colSpan := st.GridColumn.Span()
		rowStart, rowExplicit := st.GridRow.ExplicitStart()
		colStart, colExplicit := st.GridColumn.ExplicitStart()

		var (
			item PlacedItem
			err  error
		)
		if rowExplicit && colExplicit {
			item, err = placer.PlaceExplicit(child, rowStart, colStart, rowSpan, colSpan)
		} else {
			item, err = placer.PlaceAuto(child, rowSpan, colSpan)
		}
		if err != nil {
			return nil, grid.WrapPreprocessing("subgrid_auto_placement", child, err)
		}
		placed = append(placed, item)
	}
	return placed, nil
}
