// File: internal/grid/track.go
package grid

import "fmt"

// TrackSizeKind discriminates track sizing functions.
type TrackSizeKind int

const (
	TrackFixed TrackSizeKind = iota
	TrackPercent
	TrackFr
	TrackAuto
	TrackMinContent
	TrackMaxContent
	TrackFitContent
	TrackMinMax
)

// TrackSize is a single track sizing function. Value is interpreted per
// Kind: pixels for Fixed and FitContent, a 0-100 percentage for Percent,
// and a flex factor for Fr. MinPart and MaxPart are set only for MinMax.
type TrackSize struct {
	Kind    TrackSizeKind
	Value   float64
	MinPart *TrackSize
	MaxPart *TrackSize
}

// Fixed builds a pixel-sized track.
func Fixed(px float64) TrackSize { return TrackSize{Kind: TrackFixed, Value: px} }

// Percent builds a percentage track. The value is in the 0-100 range.
func Percent(pct float64) TrackSize { return TrackSize{Kind: TrackPercent, Value: pct} }

// Fr builds a flexible track with the given flex factor.
func Fr(factor float64) TrackSize { return TrackSize{Kind: TrackFr, Value: factor} }

// Auto builds an auto-sized track.
func Auto() TrackSize { return TrackSize{Kind: TrackAuto} }

// MinContent builds a min-content track.
func MinContent() TrackSize { return TrackSize{Kind: TrackMinContent} }

// MaxContent builds a max-content track.
func MaxContent() TrackSize { return TrackSize{Kind: TrackMaxContent} }

// FitContent builds a fit-content track clamped at the given pixel limit.
func FitContent(limit float64) TrackSize { return TrackSize{Kind: TrackFitContent, Value: limit} }

// MinMax builds a minmax() track from its two parts.
func MinMax(min, max TrackSize) TrackSize {
	return TrackSize{Kind: TrackMinMax, MinPart: &min, MaxPart: &max}
}

// Definite resolves the track to a pixel size when possible. Percentages
// resolve against containerSize; a negative containerSize marks it
// indefinite. Content-based and flexible tracks are never definite.
func (t TrackSize) Definite(containerSize float64) (float64, bool) {
	switch t.Kind {
	case TrackFixed:
		return t.Value, true
	case TrackPercent:
		if containerSize < 0 {
			return 0, false
		}
		return containerSize * t.Value / 100.0, true
	case TrackMinMax:
		if t.MaxPart != nil {
			return t.MaxPart.Definite(containerSize)
		}
		return 0, false
	default:
		return 0, false
	}
}

// IsIntrinsic reports whether the track size depends on content.
func (t TrackSize) IsIntrinsic() bool {
	switch t.Kind {
	case TrackAuto, TrackMinContent, TrackMaxContent, TrackFitContent:
		return true
	case TrackMinMax:
		return (t.MinPart != nil && t.MinPart.IsIntrinsic()) ||
			(t.MaxPart != nil && t.MaxPart.IsIntrinsic())
	default:
		return false
	}
}

func (t TrackSize) String() string {
	switch t.Kind {
	case TrackFixed:
		return fmt.Sprintf("%.2fpx", t.Value)
	case TrackPercent:
		return fmt.Sprintf("%.2f%%", t.Value)
	case TrackFr:
		return fmt.Sprintf("%.2ffr", t.Value)
	case TrackAuto:
		return "auto"
	case TrackMinContent:
		return "min-content"
	case TrackMaxContent:
		return "max-content"
	case TrackFitContent:
		return fmt.Sprintf("fit-content(%.2fpx)", t.Value)
	case TrackMinMax:
		min, max := "auto", "auto"
		if t.MinPart != nil {
			min = t.MinPart.String()
		}
		if t.MaxPart != nil {
			max = t.MaxPart.String()
		}
		return fmt.Sprintf("minmax(%s, %s)", min, max)
	default:
		return "unknown"
	}
}

// RepeatMode discriminates repeat() notations.
type RepeatMode int

const (
	RepeatCount RepeatMode = iota
	RepeatAutoFill
	RepeatAutoFit
)

const (
	// maxRepeatCount caps repeat() expansion to keep pathological
	// declarations from allocating unbounded track lists.
	maxRepeatCount = 1000
	// autoRepeatEstimate stands in for auto-fill and auto-fit repetitions
	// when the definite container size needed to resolve them is unknown.
	autoRepeatEstimate = 3
)

// TrackRepeat is a repeat() component of a track template.
type TrackRepeat struct {
	Mode      RepeatMode
	Count     int
	Tracks    []TrackSize
	LineNames [][]string
}

// TemplateComponent is one entry of a grid-template declaration: either a
// single track or a repeat() group. LineNames are the names declared on
// the line preceding this component.
type TemplateComponent struct {
	LineNames []string
	Track     TrackSize
	Repeat    *TrackRepeat
}

// TrackTemplate is a parsed grid-template-rows or grid-template-columns
// declaration for one axis.
type TrackTemplate struct {
	// Subgrid marks `grid-template-*: subgrid`. SubgridNames carry the
	// declared line names, one slice per inherited line.
	Subgrid      bool
	SubgridNames [][]string

	// Masonry marks `grid-template-*: masonry`.
	Masonry bool

	Components    []TemplateComponent
	TrailingNames []string
}

// HasExplicitTracks reports whether the template declares any concrete
// tracks of its own. Subgrid and masonry axes do not.
func (t *TrackTemplate) HasExplicitTracks() bool {
	return t != nil && !t.Subgrid && !t.Masonry && len(t.Components) > 0
}

// Expand flattens the template into per-track sizing functions and per-line
// name lists. The returned names slice has len(tracks)+1 entries. Repeat
// counts clamp at maxRepeatCount; auto-fill and auto-fit expand to
// autoRepeatEstimate repetitions.
func (t *TrackTemplate) Expand() ([]TrackSize, [][]string, error) {
	if t == nil {
		return nil, nil, NewTrackExtractionFailed("nil track template")
	}
	if t.Subgrid {
		return nil, nil, &TrackExtractionError{Kind: SubgridInheritanceRequired}
	}
	if t.Masonry {
		return nil, nil, &TrackExtractionError{Kind: MasonryAxisHasNoTracks}
	}

	var tracks []TrackSize
	var names [][]string

	appendLine := func(line []string) {
		names = append(names, append([]string(nil), line...))
	}

	for _, comp := range t.Components {
		if comp.Repeat == nil {
			appendLine(comp.LineNames)
			tracks = append(tracks, comp.Track)
			continue
		}

		rep := comp.Repeat
		if len(rep.Tracks) == 0 {
			return nil, nil, &TrackExtractionError{Kind: InvalidTrackSize, Detail: "repeat() with no tracks"}
		}
		count := rep.Count
		switch rep.Mode {
		case RepeatAutoFill, RepeatAutoFit:
			count = autoRepeatEstimate
		default:
			if count < 0 {
				return nil, nil, &TrackExtractionError{Kind: InvalidTrackSize,
					Detail: fmt.Sprintf("negative repeat count %d", count)}
			}
			if count > maxRepeatCount {
				count = maxRepeatCount
			}
		}

		for i := 0; i < count; i++ {
			for j, tr := range rep.Tracks {
				var lineNames []string
				if j < len(rep.LineNames) {
					lineNames = rep.LineNames[j]
				}
				if i == 0 && j == 0 {
					lineNames = append(append([]string(nil), comp.LineNames...), lineNames...)
				}
				appendLine(lineNames)
				tracks = append(tracks, tr)
			}
		}
	}

	appendLine(t.TrailingNames)
	return tracks, names, nil
}

// TrackCount returns the number of tracks the template expands to, or 0
// for subgrid and masonry axes.
func (t *TrackTemplate) TrackCount() int {
	tracks, _, err := t.Expand()
	if err != nil {
		return 0
	}
	return len(tracks)
}
