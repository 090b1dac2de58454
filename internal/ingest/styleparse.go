// File: internal/ingest/styleparse.go

// Package ingest builds layout trees from external descriptions: HTML
// documents with inline style attributes, or JSON scene files. Only the
// grid-relevant subset of CSS is interpreted.
package ingest

import (
	"strconv"
	"strings"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// ParseInlineStyle interprets a style attribute value into the style
// model. Unknown properties and unparsable values are skipped; ingestion
// is permissive the way browsers are.
func ParseInlineStyle(s string) *tree.Style {
	st := &tree.Style{FontSize: tree.DefaultFontSize}
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		applyDeclaration(st, strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(value))
	}
	return st
}

func applyDeclaration(st *tree.Style, name, value string) {
	lower := strings.ToLower(value)
	switch name {
	case "display":
		switch lower {
		case "grid":
			st.Display = tree.DisplayGrid
		case "inline-grid":
			st.Display = tree.DisplayInlineGrid
		case "none":
			st.Display = tree.DisplayNone
		default:
			st.Display = tree.DisplayBlock
		}
	case "position":
		switch lower {
		case "absolute":
			st.Position = tree.PositionAbsolute
		case "fixed":
			st.Position = tree.PositionFixed
		case "relative":
			st.Position = tree.PositionRelative
		}
	case "grid-template-rows":
		st.TemplateRows = parseTrackTemplate(value)
	case "grid-template-columns":
		st.TemplateColumns = parseTrackTemplate(value)
	case "grid-auto-flow":
		st.DensePacking = strings.Contains(lower, "dense")
		if strings.Contains(lower, "column") {
			st.AutoFlow = grid.FlowColumn
		} else {
			st.AutoFlow = grid.FlowRow
		}
	case "gap", "grid-gap":
		parts := strings.Fields(value)
		if len(parts) > 0 {
			if px, ok := parseLength(parts[0]); ok {
				st.RowGap = px
				st.ColumnGap = px
			}
		}
		if len(parts) > 1 {
			if px, ok := parseLength(parts[1]); ok {
				st.ColumnGap = px
			}
		}
	case "row-gap":
		if px, ok := parseLength(value); ok {
			st.RowGap = px
		}
	case "column-gap":
		if px, ok := parseLength(value); ok {
			st.ColumnGap = px
		}
	case "grid-row":
		st.GridRow = parsePlacement(value)
	case "grid-column":
		st.GridColumn = parsePlacement(value)
	case "align-self":
		st.AlignSelf = parseAlign(lower)
	case "justify-self":
		st.JustifySelf = parseAlign(lower)
	case "font-size":
		if px, ok := parseLength(value); ok && px > 0 {
			st.FontSize = px
		}
	case "margin-top":
		if px, ok := parseLength(value); ok {
			st.Margin.Top = px
		}
	case "margin-left":
		if px, ok := parseLength(value); ok {
			st.Margin.Left = px
		}
	case "width":
		if px, ok := parseLength(value); ok {
			st.Width = &px
		}
	case "height":
		if px, ok := parseLength(value); ok {
			st.Height = &px
		}
	}
}

func parseAlign(value string) tree.AlignValue {
	switch value {
	case "start", "flex-start", "self-start":
		return tree.AlignStart
	case "end", "flex-end", "self-end":
		return tree.AlignEnd
	case "center":
		return tree.AlignCenter
	case "stretch":
		return tree.AlignStretch
	case "baseline", "first baseline":
		return tree.AlignBaseline
	default:
		return tree.AlignAuto
	}
}

// parseLength resolves px and em lengths. em resolves against the default
// font size; everything else fails.
func parseLength(value string) (float64, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	switch {
	case strings.HasSuffix(v, "px"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		return f, err == nil
	case strings.HasSuffix(v, "em"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64)
		return f * tree.DefaultFontSize, err == nil
	case v == "0":
		return 0, true
	default:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
}

// parsePlacement handles the grid-row/grid-column shorthand: "auto",
// "2", "span 3", "1 / 4", "2 / span 2".
func parsePlacement(value string) tree.Placement {
	parts := strings.SplitN(value, "/", 2)
	p := tree.Placement{Start: parseLine(parts[0]), End: tree.AutoLine()}
	if len(parts) == 2 {
		p.End = parseLine(parts[1])
	}
	return p
}

func parseLine(s string) tree.Line {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return tree.AutoLine()
	}
	if rest, ok := strings.CutPrefix(s, "span"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n > 0 {
			return tree.SpanOf(n)
		}
		return tree.AutoLine()
	}
	if n, err := strconv.Atoi(s); err == nil {
		return tree.LineAt(n)
	}
	return tree.AutoLine()
}

// parseTrackTemplate handles the template subset the engine understands:
// the subgrid and masonry keywords, track size lists with optional
// [line-name] groups, repeat(), and minmax().
func parseTrackTemplate(value string) *grid.TrackTemplate {
	toks := tokenizeTracks(value)
	if len(toks) == 0 {
		return nil
	}
	tpl := &grid.TrackTemplate{}

	if strings.EqualFold(toks[0], "subgrid") {
		tpl.Subgrid = true
		for _, tok := range toks[1:] {
			if names, ok := bracketNames(tok); ok {
				tpl.SubgridNames = append(tpl.SubgridNames, names)
			}
		}
		return tpl
	}
	if strings.EqualFold(toks[0], "masonry") {
		tpl.Masonry = true
		return tpl
	}

	var pending []string
	for _, tok := range toks {
		if names, ok := bracketNames(tok); ok {
			pending = append(pending, names...)
			continue
		}
		if rep := parseRepeat(tok); rep != nil {
			tpl.Components = append(tpl.Components, grid.TemplateComponent{LineNames: pending, Repeat: rep})
			pending = nil
			continue
		}
		if ts, ok := parseTrackSize(tok); ok {
			tpl.Components = append(tpl.Components, grid.TemplateComponent{LineNames: pending, Track: ts})
			pending = nil
		}
	}
	tpl.TrailingNames = pending
	if len(tpl.Components) == 0 {
		return nil
	}
	return tpl
}

func bracketNames(tok string) ([]string, bool) {
	if !strings.HasPrefix(tok, "[") || !strings.HasSuffix(tok, "]") {
		return nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]")
	return strings.Fields(inner), true
}

func parseRepeat(tok string) *grid.TrackRepeat {
	lower := strings.ToLower(tok)
	if !strings.HasPrefix(lower, "repeat(") || !strings.HasSuffix(tok, ")") {
		return nil
	}
	inner := tok[len("repeat(") : len(tok)-1]
	countStr, trackStr, ok := strings.Cut(inner, ",")
	if !ok {
		return nil
	}
	rep := &grid.TrackRepeat{}
	switch strings.TrimSpace(strings.ToLower(countStr)) {
	case "auto-fill":
		rep.Mode = grid.RepeatAutoFill
	case "auto-fit":
		rep.Mode = grid.RepeatAutoFit
	default:
		n, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || n < 0 {
			return nil
		}
		rep.Mode = grid.RepeatCount
		rep.Count = n
	}
	for _, sub := range tokenizeTracks(trackStr) {
		if names, ok := bracketNames(sub); ok {
			for len(rep.LineNames) < len(rep.Tracks) {
				rep.LineNames = append(rep.LineNames, nil)
			}
			rep.LineNames = append(rep.LineNames, names)
			continue
		}
		if ts, ok := parseTrackSize(sub); ok {
			rep.Tracks = append(rep.Tracks, ts)
		}
	}
	if len(rep.Tracks) == 0 {
		return nil
	}
	return rep
}

func parseTrackSize(tok string) (grid.TrackSize, bool) {
	lower := strings.ToLower(tok)
	switch lower {
	case "auto":
		return grid.Auto(), true
	case "min-content":
		return grid.MinContent(), true
	case "max-content":
		return grid.MaxContent(), true
	}
	if strings.HasPrefix(lower, "minmax(") && strings.HasSuffix(lower, ")") {
		inner := tok[len("minmax(") : len(tok)-1]
		minStr, maxStr, ok := strings.Cut(inner, ",")
		if !ok {
			return grid.TrackSize{}, false
		}
		min, okMin := parseTrackSize(strings.TrimSpace(minStr))
		max, okMax := parseTrackSize(strings.TrimSpace(maxStr))
		if !okMin || !okMax {
			return grid.TrackSize{}, false
		}
		return grid.MinMax(min, max), true
	}
	if strings.HasPrefix(lower, "fit-content(") && strings.HasSuffix(lower, ")") {
		inner := tok[len("fit-content(") : len(tok)-1]
		if px, ok := parseLength(inner); ok {
			return grid.FitContent(px), true
		}
		return grid.TrackSize{}, false
	}
	switch {
	case strings.HasSuffix(lower, "fr"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(lower, "fr"), 64)
		if err != nil {
			return grid.TrackSize{}, false
		}
		return grid.Fr(f), true
	case strings.HasSuffix(lower, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(lower, "%"), 64)
		if err != nil {
			return grid.TrackSize{}, false
		}
		return grid.Percent(f), true
	default:
		if px, ok := parseLength(lower); ok {
			return grid.Fixed(px), true
		}
	}
	return grid.TrackSize{}, false
}

// tokenizeTracks splits a track list on whitespace while keeping
// bracketed name groups and function calls intact.
func tokenizeTracks(s string) []string {
	var toks []string
	var cur strings.Builder
	depthParen, depthBracket := 0, 0
	for _, r := range s {
		switch r {
		case '(':
			depthParen++
		case ')':
			depthParen--
		case '[':
			depthBracket++
		case ']':
			depthBracket--
		}
		if (r == ' ' || r == '\t' || r == '\n') && depthParen == 0 && depthBracket == 0 {
			if cur.Len() > 0 {
				toks = append(toks, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		toks = append(toks, cur.String())
	}
	return toks
}
