// File: internal/grid/gridctx/linenames.go
package gridctx

import (
	"hash/fnv"
	"strings"

	"github.com/xkilldash9x/gridcore/internal/grid"
)

// reservedLineNames are CSS-wide keywords that cannot be custom idents.
var reservedLineNames = []string{"auto", "inherit", "initial", "unset", "none"}

// ValidLineName reports whether a string is a usable CSS custom identifier
// for a grid line: first character a letter, underscore or non-ASCII, the
// rest letters, digits, hyphens or underscores, and not a reserved word.
func ValidLineName(name string) bool {
	if name == "" {
		return false
	}
	for _, reserved := range reservedLineNames {
		if strings.EqualFold(name, reserved) {
			return false
		}
	}
	for i, r := range name {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r > 127
		if i == 0 {
			if !letter {
				return false
			}
			continue
		}
		if !letter && !(r >= '0' && r <= '9') && r != '-' {
			return false
		}
	}
	return true
}

type lineNameKey struct {
	node grid.NodeID
	axis grid.Axis
	hash uint64
}

// LineNameMapper translates parent grid line names into a subgrid's local
// line space and merges the subgrid's own declared names on top. Results
// are cached per (node, axis, parent-name-content) so repeated layout
// passes over an unchanged parent are cheap.
type LineNameMapper struct {
	cache map[lineNameKey][][]string
}

// NewLineNameMapper returns an empty mapper.
func NewLineNameMapper() *LineNameMapper {
	return &LineNameMapper{cache: make(map[lineNameKey][][]string)}
}

// Invalidate drops cached mappings for the node.
func (m *LineNameMapper) Invalidate(node grid.NodeID) {
	for k := range m.cache {
		if k.node == node {
			delete(m.cache, k)
		}
	}
}

// CachedEntries returns the number of cached mappings.
func (m *LineNameMapper) CachedEntries() int { return len(m.cache) }

// ExtractParentNamesForSpan slices the parent's line names down to the
// lines a subgrid spans: lines start through end inclusive. Spans outside
// the parent's line range are an error, never truncated.
func ExtractParentNamesForSpan(parentNames [][]string, start, end int) ([][]string, error) {
	if start >= end {
		return nil, grid.NewInvalidLineNameSpan(start, end, "span start must precede span end")
	}
	if start < 0 || end >= len(parentNames) {
		return nil, grid.NewInvalidLineNameSpan(start, end, "subgrid span exceeds parent grid line count")
	}
	out := make([][]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, append([]string(nil), parentNames[i]...))
	}
	return out, nil
}

// MergeWithDeclaredNames overlays the subgrid's declared line names on the
// inherited ones. Declared names are appended per line when valid and not
// already present; declared entries beyond the inherited line count are
// ignored per the subgrid line name rules.
func MergeWithDeclaredNames(inherited [][]string, declared [][]string) [][]string {
	out := make([][]string, len(inherited))
	for i := range inherited {
		out[i] = append([]string(nil), inherited[i]...)
		if i >= len(declared) {
			continue
		}
		for _, name := range declared[i] {
			if !ValidLineName(name) {
				continue
			}
			if containsName(out[i], name) {
				continue
			}
			out[i] = append(out[i], name)
		}
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// MapForSubgrid extracts the parent names for the subgrid's span and
// merges its declared names, caching the result.
func (m *LineNameMapper) MapForSubgrid(node grid.NodeID, axis grid.Axis,
	parentNames [][]string, spanStart, spanEnd int, declared [][]string) ([][]string, error) {

	key := lineNameKey{node: node, axis: axis, hash: hashNames(parentNames, spanStart, spanEnd)}
	if cached, ok := m.cache[key]; ok {
		return cached, nil
	}

	inherited, err := ExtractParentNamesForSpan(parentNames, spanStart, spanEnd)
	if err != nil {
		return nil, err
	}
	merged := MergeWithDeclaredNames(inherited, declared)
	m.cache[key] = merged
	return merged, nil
}

// SpanStep is one level of a nested subgrid chain for line name purposes.
type SpanStep struct {
	Start int
	End   int
}

// ResolveNestedSubgridLineNames walks a chain of nested subgrid spans from
// the root parent's line names down to the leaf, then merges the leaf's
// declared names over the final span.
func ResolveNestedSubgridLineNames(rootNames [][]string, chain []SpanStep, declared [][]string) ([][]string, error) {
	names := rootNames
	for _, step := range chain {
		sliced, err := ExtractParentNamesForSpan(names, step.Start, step.End)
		if err != nil {
			return nil, err
		}
		names = sliced
	}
	return MergeWithDeclaredNames(names, declared), nil
}

func hashNames(names [][]string, start, end int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeInt(start)
	writeInt(end)
	for _, line := range names {
		writeInt(len(line))
		for _, name := range line {
			h.Write([]byte(name))
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
