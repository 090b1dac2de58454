// File: internal/grid/errors.go
package grid

import "fmt"

// -- Subgrid errors --

// SubgridError is the marker interface for failures raised while resolving
// or coordinating a subgrid. Callers match concrete variants with errors.As.
type SubgridError interface {
	error
	subgridError()
}

// NoParentGridError reports a subgrid whose ancestors contain no grid
// container with explicit tracks.
type NoParentGridError struct {
	Node NodeID
}

func (e *NoParentGridError) Error() string {
	return fmt.Sprintf("no parent grid found for subgrid %s", e.Node)
}
func (*NoParentGridError) subgridError() {}

// StyleAccessError reports that a node's style information could not be read.
type StyleAccessError struct {
	Node   NodeID
	Reason string
}

func (e *StyleAccessError) Error() string {
	return fmt.Sprintf("failed to access styles for %s: %s", e.Node, e.Reason)
}
func (*StyleAccessError) subgridError() {}

// InvalidTrackInheritanceError reports inherited track data that cannot be
// applied to the subgrid.
type InvalidTrackInheritanceError struct {
	Reason string
}

func (e *InvalidTrackInheritanceError) Error() string {
	return fmt.Sprintf("invalid track inheritance: %s", e.Reason)
}
func (*InvalidTrackInheritanceError) subgridError() {}

// LineNameMappingError reports a failed line name translation between
// parent and subgrid coordinate spaces.
type LineNameMappingError struct {
	SourceLine int
	TargetLine int
	Reason     string
}

func (e *LineNameMappingError) Error() string {
	return fmt.Sprintf("line name mapping failed from line %d to line %d: %s",
		e.SourceLine, e.TargetLine, e.Reason)
}
func (*LineNameMappingError) subgridError() {}

// SubgridUnsupportedError reports a subgrid configuration outside the
// supported feature set.
type SubgridUnsupportedError struct {
	Reason string
}

func (e *SubgridUnsupportedError) Error() string {
	return fmt.Sprintf("subgrid not supported: %s", e.Reason)
}
func (*SubgridUnsupportedError) subgridError() {}

// TrackCountMismatchError reports a subgrid span that does not match the
// number of inherited tracks.
type TrackCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *TrackCountMismatchError) Error() string {
	return fmt.Sprintf("track count mismatch: expected %d, got %d", e.Expected, e.Actual)
}
func (*TrackCountMismatchError) subgridError() {}

// NestingDepthError reports a subgrid chain deeper than the configured
// maximum. Deep chains are rejected rather than partially coordinated.
type NestingDepthError struct {
	Depth    int
	MaxDepth int
}

func (e *NestingDepthError) Error() string {
	return fmt.Sprintf("excessive subgrid nesting depth %d exceeds maximum %d", e.Depth, e.MaxDepth)
}
func (*NestingDepthError) subgridError() {}

// ParentContextValidationError reports an internally inconsistent parent
// grid context.
type ParentContextValidationError struct {
	Reason string
}

func (e *ParentContextValidationError) Error() string {
	return fmt.Sprintf("parent grid context validation failed: %s", e.Reason)
}
func (*ParentContextValidationError) subgridError() {}

// CoordinateMappingError reports a track coordinate that cannot be mapped
// into an ancestor's coordinate space. Out-of-range contributions surface
// as this error instead of being clamped or dropped.
type CoordinateMappingError struct {
	Details string
}

func (e *CoordinateMappingError) Error() string {
	return fmt.Sprintf("coordinate mapping failed: %s", e.Details)
}
func (*CoordinateMappingError) subgridError() {}

// CoordinationError reports a failure while merging nested subgrid state.
type CoordinationError struct {
	Details string
}

func (e *CoordinationError) Error() string {
	return fmt.Sprintf("subgrid coordination failed: %s", e.Details)
}
func (*CoordinationError) subgridError() {}

// -- Masonry errors --

// MasonryError is the marker interface for masonry layout failures.
type MasonryError interface {
	error
	masonryError()
}

// InvalidTrackCountError reports a grid-axis track count outside the
// accepted range.
type InvalidTrackCountError struct {
	TrackCount int
	Min        int
	Max        int
}

func (e *InvalidTrackCountError) Error() string {
	return fmt.Sprintf("invalid track count %d: must be between %d and %d",
		e.TrackCount, e.Min, e.Max)
}
func (*InvalidTrackCountError) masonryError() {}

// PlacementError reports a failed item placement attempt.
type PlacementError struct {
	TrackIndex int
	Reason     string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("item placement failed at track %d: %s", e.TrackIndex, e.Reason)
}
func (*PlacementError) masonryError() {}

// ContentSizingError reports that an item's intrinsic size could not be
// measured.
type ContentSizingError struct {
	Node   NodeID
	Reason string
}

func (e *ContentSizingError) Error() string {
	return fmt.Sprintf("content sizing failed for item %s: %s", e.Node, e.Reason)
}
func (*ContentSizingError) masonryError() {}

// ItemCollectionError reports a failure while gathering in-flow grid items.
type ItemCollectionError struct {
	Reason string
}

func (e *ItemCollectionError) Error() string {
	return fmt.Sprintf("item collection failed: %s", e.Reason)
}
func (*ItemCollectionError) masonryError() {}

// SpanExceedsTracksError reports an item spanning more tracks than the
// grid axis provides.
type SpanExceedsTracksError struct {
	Span            int
	AvailableTracks int
}

func (e *SpanExceedsTracksError) Error() string {
	return fmt.Sprintf("track span %d exceeds available tracks %d", e.Span, e.AvailableTracks)
}
func (*SpanExceedsTracksError) masonryError() {}

// CursorOverflowError reports that the auto-placement cursor ran past the
// end of the grid.
type CursorOverflowError struct{}

func (e *CursorOverflowError) Error() string {
	return "auto-placement cursor overflow"
}
func (*CursorOverflowError) masonryError() {}

// AxisConfigError reports an inconsistent masonry axis configuration, such
// as masonry requested on both axes.
type AxisConfigError struct {
	Reason string
}

func (e *AxisConfigError) Error() string {
	return fmt.Sprintf("invalid masonry axis configuration: %s", e.Reason)
}
func (*AxisConfigError) masonryError() {}

// -- Track extraction errors --

// TrackExtractionErrorKind discriminates track extraction failures.
type TrackExtractionErrorKind int

const (
	// ExtractionFailed covers general template-to-track conversion failures.
	ExtractionFailed TrackExtractionErrorKind = iota
	// SubgridInheritanceRequired marks an axis whose tracks must come from
	// the parent grid rather than the node's own template.
	SubgridInheritanceRequired
	// MasonryAxisHasNoTracks marks a request for tracks on the masonry axis.
	MasonryAxisHasNoTracks
	// UnsupportedCalcExpression marks a calc() the engine cannot resolve.
	UnsupportedCalcExpression
	// InvalidTrackSize marks a malformed track sizing function.
	InvalidTrackSize
)

// TrackExtractionError reports a failure converting a track template into
// concrete sizing functions.
type TrackExtractionError struct {
	Kind   TrackExtractionErrorKind
	Detail string
}

func (e *TrackExtractionError) Error() string {
	switch e.Kind {
	case SubgridInheritanceRequired:
		return "track extraction requires subgrid inheritance"
	case MasonryAxisHasNoTracks:
		return "masonry axis has no extractable tracks"
	case UnsupportedCalcExpression:
		return fmt.Sprintf("unsupported calc expression: %s", e.Detail)
	case InvalidTrackSize:
		return fmt.Sprintf("invalid track size: %s", e.Detail)
	default:
		return fmt.Sprintf("track extraction failed: %s", e.Detail)
	}
}

// -- Preprocessing errors --

// PreprocessingError wraps lower-level failures with the preprocessing
// operation and node they occurred on. It unwraps to the underlying cause
// so errors.As reaches the subgrid and masonry variants.
type PreprocessingError struct {
	Operation string
	Node      NodeID
	Details   string
	Err       error
}

func (e *PreprocessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("preprocessing failed in %s for %s: %v", e.Operation, e.Node, e.Err)
	}
	return fmt.Sprintf("preprocessing failed in %s for %s: %s", e.Operation, e.Node, e.Details)
}

func (e *PreprocessingError) Unwrap() error { return e.Err }

// -- Constructor helpers --

// NewTrackExtractionFailed builds a general track extraction error.
func NewTrackExtractionFailed(reason string) error {
	return &TrackExtractionError{Kind: ExtractionFailed, Detail: reason}
}

// NewParentContextFailed builds a resolution failure for the given node.
func NewParentContextFailed(node NodeID, reason string) error {
	return &PreprocessingError{Operation: "parent_context_resolution", Node: node, Details: reason}
}

// NewPreprocessingFailed builds a general preprocessing failure.
func NewPreprocessingFailed(operation string, node NodeID, details string) error {
	return &PreprocessingError{Operation: operation, Node: node, Details: details}
}

// WrapPreprocessing attaches operation and node context to an underlying
// subgrid or masonry error.
func WrapPreprocessing(operation string, node NodeID, err error) error {
	if err == nil {
		return nil
	}
	return &PreprocessingError{Operation: operation, Node: node, Err: err}
}

// NewNotSupported builds a subgrid feature gap error.
func NewNotSupported(reason string) error {
	return &SubgridUnsupportedError{Reason: reason}
}

// NewLineNameMappingFailed builds a line name translation error.
func NewLineNameMappingFailed(sourceLine, targetLine int, reason string) error {
	return &LineNameMappingError{SourceLine: sourceLine, TargetLine: targetLine, Reason: reason}
}

// NewInvalidLineNameSpan reports a subgrid span that exceeds the parent's
// line name range.
func NewInvalidLineNameSpan(start, end int, reason string) error {
	return &LineNameMappingError{SourceLine: start, TargetLine: end, Reason: reason}
}

// NewPlacementFailed builds a masonry placement error.
func NewPlacementFailed(trackIndex int, reason string) error {
	return &PlacementError{TrackIndex: trackIndex, Reason: reason}
}
