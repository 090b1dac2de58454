// File: internal/ingest/html.go

package ingest

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

// Document is an ingested layout tree plus the id attribute index used to
// address nodes from the outside. Viewport is set when the source declares
// its own available space; nil means the caller decides.
type Document struct {
	Tree     *tree.Tree
	IDs      map[string]grid.NodeID
	Viewport *grid.Size
}

// ParseHTML reads an HTML document and converts its element tree into a
// layout tree. Styles come exclusively from inline style attributes; head,
// script and other non-layout subtrees are skipped.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, grid.WrapPreprocessing("html_ingest", 0, err)
	}
	doc := &Document{
		Tree: tree.NewTree(),
		IDs:  make(map[string]grid.NodeID),
	}
	body := findBody(root)
	if body == nil {
		// Fragment parses still produce a body; this guards malformed input.
		return doc, nil
	}
	rootID := doc.Tree.AddRoot(styleForElement(body))
	doc.indexAttrs(body, rootID)
	doc.ingestChildren(body, rootID)
	return doc, nil
}

func (d *Document) ingestChildren(parent *html.Node, parentID grid.NodeID) {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || skipElement(c.Data) {
			continue
		}
		id := d.Tree.AddChild(parentID, styleForElement(c))
		d.indexAttrs(c, id)
		d.ingestChildren(c, id)
	}
}

func (d *Document) indexAttrs(n *html.Node, id grid.NodeID) {
	if v := attr(n, "id"); v != "" {
		d.IDs[v] = id
	}
}

func styleForElement(n *html.Node) *tree.Style {
	if raw := attr(n, "style"); raw != "" {
		return ParseInlineStyle(raw)
	}
	return &tree.Style{Display: tree.DisplayBlock, FontSize: tree.DefaultFontSize}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "head", "meta", "link", "title", "template":
		return true
	}
	return false
}
