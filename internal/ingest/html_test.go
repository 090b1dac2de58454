// File: internal/ingest/html_test.go
package ingest

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

func TestParseHTMLBuildsTree(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>ignored</title><style>.x{color:red}</style></head>
<body style="display: grid; grid-template-columns: 100px 100px">
  <div id="first" style="height: 40px"></div>
  <script>ignored();</script>
  <div id="wrapper">
    <span id="inner" style="display: inline-grid"></span>
  </div>
</body>
</html>`

	doc, err := ParseHTML(strings.NewReader(input))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 4, doc.Tree.NodeCount(), "body plus three layout elements")
	assert.Nil(t, doc.Viewport)

	rootStyle, ok := doc.Tree.Style(0)
	require.True(t, ok)
	assert.Equal(t, tree.DisplayGrid, rootStyle.Display)
	require.NotNil(t, rootStyle.TemplateColumns)
	assert.Equal(t, 2, rootStyle.TemplateColumns.TrackCount())

	first, ok := doc.IDs["first"]
	require.True(t, ok)
	firstStyle, ok := doc.Tree.Style(first)
	require.True(t, ok)
	require.NotNil(t, firstStyle.Height)
	assert.InDelta(t, 40.0, *firstStyle.Height, 1e-9)

	inner, ok := doc.IDs["inner"]
	require.True(t, ok)
	wrapper := doc.IDs["wrapper"]
	parent, hasParent := doc.Tree.Parent(inner)
	require.True(t, hasParent)
	assert.Equal(t, wrapper, parent)
}

func TestParseHTMLFragment(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(`<div id="only"></div>`))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Tree.NodeCount(), "the implied body becomes the root")
	_, ok := doc.IDs["only"]
	assert.True(t, ok)
}

func TestParseHTMLElementsWithoutStyleDefault(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(`<body><div id="plain"></div></body>`))
	require.NoError(t, err)
	st, ok := doc.Tree.Style(doc.IDs["plain"])
	require.True(t, ok)
	assert.Equal(t, tree.DisplayBlock, st.Display)
	assert.InDelta(t, tree.DefaultFontSize, st.FontSize, 1e-9)
}

func TestParseHTMLReaderFailure(t *testing.T) {
	_, err := ParseHTML(iotest.ErrReader(errors.New("disk gone")))
	var preErr *grid.PreprocessingError
	require.ErrorAs(t, err, &preErr)
}
