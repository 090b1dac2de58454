// File: internal/grid/masonry/placement.go
package masonry

import (
	"sort"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

// GridArea is an item's resolved masonry position: a grid-axis track
// range plus a scalar position and size on the masonry axis.
type GridArea struct {
	GridAxisStart       int
	GridAxisEnd         int
	MasonryAxisPosition float64
	MasonryAxisSize     float64
}

// Span returns the number of grid-axis tracks the area covers.
func (a GridArea) Span() int { return a.GridAxisEnd - a.GridAxisStart }

// State is the transient packing state for one masonry sizing pass: the
// running extent of every grid-axis track. It carries no lifetime beyond
// the pass.
type State struct {
	Config         *Config
	TrackPositions []float64
	placedItems    []PlacedItem
}

// PlacedItem pairs an item with its resolved area.
type PlacedItem struct {
	Item grid.NodeID
	Area GridArea
}

// NewState returns a packing state with all track positions at zero.
func NewState(cfg *Config) *State {
	return &State{
		Config:         cfg,
		TrackPositions: make([]float64, cfg.TrackCount),
	}
}

// Placed returns the items placed so far, in placement order.
func (s *State) Placed() []PlacedItem { return s.placedItems }

// TrackPosition returns a track's running extent; out-of-range tracks
// read as zero.
func (s *State) TrackPosition(track int) float64 {
	if track < 0 || track >= len(s.TrackPositions) {
		return 0
	}
	return s.TrackPositions[track]
}

// MaxPosition returns the leading edge of the layout.
func (s *State) MaxPosition() float64 {
	max := 0.0
	for _, p := range s.TrackPositions {
		if p > max {
			max = p
		}
	}
	return max
}

// ShortestTrack returns the first track whose running position is within
// the tolerance of the minimum, preserving document order among ties.
func (s *State) ShortestTrack() int {
	min := s.TrackPositions[0]
	for _, p := range s.TrackPositions[1:] {
		if p < min {
			min = p
		}
	}
	for i, p := range s.TrackPositions {
		if p <= min+s.Config.ItemTolerance {
			return i
		}
	}
	return 0
}

// shortestSpanStart finds the start track minimizing the placement
// position for a span, which is the maximum running position over the
// spanned tracks. Ties resolve to the earliest start.
func (s *State) shortestSpanStart(span int) (start int, position float64) {
	best, bestPos := 0, -1.0
	for cand := 0; cand+span <= len(s.TrackPositions); cand++ {
		pos := 0.0
		for t := cand; t < cand+span; t++ {
			if s.TrackPositions[t] > pos {
				pos = s.TrackPositions[t]
			}
		}
		if bestPos < 0 || pos < bestPos {
			best, bestPos = cand, pos
		}
	}
	if bestPos < 0 {
		bestPos = 0
	}
	return best, bestPos
}

// PlaceItem packs one measured item: single-track items go to the
// shortest track, spanning items to the start minimizing their placement
// position. Dense packing first tries to backfill a compatible gap. The
// spanned tracks' running positions advance past the item plus the
// masonry-axis gap.
func (s *State) PlaceItem(m MeasuredItem, trackSizes []float64, gridGap, masonryGap float64, explicitStart int, hasExplicitStart bool) (GridArea, error) {
	span := m.Info.SpanOn(s.Config.GridAxis)
	if span < 1 {
		span = 1
	}
	if span > s.Config.TrackCount {
		return GridArea{}, &grid.SpanExceedsTracksError{Span: span, AvailableTracks: s.Config.TrackCount}
	}

	var start int
	var position float64
	switch {
	case hasExplicitStart:
		if explicitStart < 0 || explicitStart+span > s.Config.TrackCount {
			return GridArea{}, grid.NewPlacementFailed(explicitStart, "explicit start outside grid axis")
		}
		start = explicitStart
		position = s.spanPosition(start, span)
	default:
		if span == 1 {
			// Single-track items follow the tolerance-based track choice,
			// which preserves document order among near-equal tracks.
			start = s.ShortestTrack()
			position = s.TrackPosition(start)
		} else {
			start, position = s.shortestSpanStart(span)
		}
		if s.Config.DensePacking {
			normalTotal := spanExtent(trackSizes, start, span, 0)
			if gaps := DetectCompatibleGaps(s, trackSizes, span, m.IntrinsicSize, normalTotal, s.Config.ItemTolerance); len(gaps) > 0 {
				start = gaps[0].TrackIndex
				position = gaps[0].Position
			}
		}
	}

	area := GridArea{
		GridAxisStart:       start,
		GridAxisEnd:         start + span,
		MasonryAxisPosition: position,
		MasonryAxisSize:     m.IntrinsicSize,
	}
	next := position + m.IntrinsicSize + masonryGap
	for t := start; t < start+span; t++ {
		if next > s.TrackPositions[t] {
			s.TrackPositions[t] = next
		}
	}
	s.placedItems = append(s.placedItems, PlacedItem{Item: m.Info.Node, Area: area})
	return area, nil
}

// spanPosition is the placement position for a fixed start: the maximum
// running position over the spanned tracks.
func (s *State) spanPosition(start, span int) float64 {
	pos := 0.0
	for t := start; t < start+span && t < len(s.TrackPositions); t++ {
		if s.TrackPositions[t] > pos {
			pos = s.TrackPositions[t]
		}
	}
	return pos
}

// GapOpportunity is a candidate backfill position for dense packing.
type GapOpportunity struct {
	TrackIndex     int
	Position       float64
	Size           float64
	TrackTotalSize float64
	Span           int
}

// DetectCompatibleGaps finds gaps an item may backfill under dense
// packing: earlier than its normal placement, large enough for the item
// within tolerance, and with a spanned track total matching the normal
// placement so no re-layout is needed. Results sort earliest first.
// The normal position uses the tolerance-based shortest track, so a gap
// the tolerance skipped over is still reclaimable.
func DetectCompatibleGaps(s *State, trackSizes []float64, span int, itemMasonrySize, normalTrackTotal, tolerance float64) []GapOpportunity {
	var gaps []GapOpportunity

	normalPos := s.TrackPosition(s.ShortestTrack())
	maxPos := s.MaxPosition()

	for start := 0; start+span <= len(s.TrackPositions); start++ {
		pos := s.spanPosition(start, span)
		// Dense packing only backfills; forward positions are the normal
		// placement's job.
		if pos >= normalPos {
			continue
		}
		gapSize := maxPos - pos
		if gapSize < itemMasonrySize-tolerance {
			continue
		}
		total := spanExtent(trackSizes, start, span, 0)
		diff := total - normalTrackTotal
		if diff < 0 {
			diff = -diff
		}
		// The spanned tracks must match the normal placement's total used
		// size, or moving the item would change track sizing.
		if diff > 0.1 {
			continue
		}
		if gapSize > 0.1 {
			gaps = append(gaps, GapOpportunity{
				TrackIndex:     start,
				Position:       pos,
				Size:           gapSize,
				TrackTotalSize: total,
				Span:           span,
			})
		}
	}

	sort.SliceStable(gaps, func(a, b int) bool {
		if gaps[a].Position != gaps[b].Position {
			return gaps[a].Position < gaps[b].Position
		}
		return gaps[a].TrackIndex < gaps[b].TrackIndex
	})
	return gaps
}
