// File: internal/grid/subgrid/availability.go

// Package subgrid computes inherited tracks for subgrids, coordinates
// nested subgrid chains into their root parent's coordinate space, and
// auto-places subgrid items into inherited tracks.
package subgrid

import (
	"sort"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

// PlacementMethod records how an occupied range was claimed.
type PlacementMethod int

const (
	PlacementAuto PlacementMethod = iota
	PlacementExplicit
	PlacementDense
)

func (m PlacementMethod) String() string {
	switch m {
	case PlacementExplicit:
		return "explicit"
	case PlacementDense:
		return "dense"
	default:
		return "auto"
	}
}

// OccupiedRange is one claimed interval along a track, in track-relative
// positions.
type OccupiedRange struct {
	Start  float64
	End    float64
	Item   grid.NodeID
	Method PlacementMethod
}

// TrackAvailability tracks which intervals of a single inherited track are
// already claimed. Ranges stay sorted by start position and non-adjacent;
// overlapping or touching inserts merge immediately to bound growth.
type TrackAvailability struct {
	Occupied         []OccupiedRange
	TrackSize        float64
	ParentTrackIndex int
}

// NewTrackAvailability returns an empty availability for a track of the
// given size mapped to the given parent track.
func NewTrackAvailability(trackSize float64, parentTrackIndex int) *TrackAvailability {
	return &TrackAvailability{TrackSize: trackSize, ParentTrackIndex: parentTrackIndex}
}

// IsRangeAvailable reports whether [start, end) overlaps no occupied
// range. The scan is linear; occupancy lists are local to one subgrid's
// span and stay small.
func (t *TrackAvailability) IsRangeAvailable(start, end float64) bool {
	if end <= start {
		return true
	}
	for _, r := range t.Occupied {
		if end <= r.Start || start >= r.End {
			continue
		}
		return false
	}
	return true
}

// MarkRangeOccupied claims [start, end) for item. The range is inserted
// in sorted position and merged with any overlapping or adjacent
// neighbors.
func (t *TrackAvailability) MarkRangeOccupied(start, end float64, item grid.NodeID, method PlacementMethod) error {
	if end <= start {
		return grid.NewPlacementFailed(t.ParentTrackIndex, "empty occupancy range")
	}
	idx := sort.Search(len(t.Occupied), func(i int) bool {
		return t.Occupied[i].Start >= start
	})
	r := OccupiedRange{Start: start, End: end, Item: item, Method: method}
	t.Occupied = append(t.Occupied, OccupiedRange{})
	copy(t.Occupied[idx+1:], t.Occupied[idx:])
	t.Occupied[idx] = r
	t.mergeAdjacent()
	return nil
}

// mergeAdjacent collapses overlapping or touching neighbors in one pass.
// The merged range keeps the earlier range's item and method.
func (t *TrackAvailability) mergeAdjacent() {
	if len(t.Occupied) < 2 {
		return
	}
	merged := t.Occupied[:1]
	for _, next := range t.Occupied[1:] {
		last := &merged[len(merged)-1]
		if last.End >= next.Start {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	t.Occupied = merged
}

// OccupiedExtent returns the end of the furthest claimed range.
func (t *TrackAvailability) OccupiedExtent() float64 {
	if len(t.Occupied) == 0 {
		return 0
	}
	return t.Occupied[len(t.Occupied)-1].End
}
