// File: internal/ingest/scene.go

package ingest

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/tree"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SceneNode is one node of a JSON scene file. Style uses the same
// declaration syntax as an HTML style attribute.
type SceneNode struct {
	ID       string      `json:"id,omitempty"`
	Style    string      `json:"style,omitempty"`
	Children []SceneNode `json:"children,omitempty"`
}

// Scene is the root of a JSON scene file.
type Scene struct {
	Viewport *struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"viewport,omitempty"`
	Root SceneNode `json:"root"`
}

// ParseSceneJSON decodes a JSON scene into a layout tree.
func ParseSceneJSON(data []byte) (*Document, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, grid.WrapPreprocessing("scene_ingest", 0, err)
	}
	doc := &Document{
		Tree: tree.NewTree(),
		IDs:  make(map[string]grid.NodeID),
	}
	if vp := scene.Viewport; vp != nil {
		doc.Viewport = &grid.Size{Width: vp.Width, Height: vp.Height}
	}
	rootID := doc.Tree.AddRoot(sceneStyle(scene.Root))
	doc.indexScene(scene.Root, rootID)
	doc.buildScene(scene.Root, rootID)
	return doc, nil
}

func (d *Document) buildScene(n SceneNode, id grid.NodeID) {
	for _, child := range n.Children {
		childID := d.Tree.AddChild(id, sceneStyle(child))
		d.indexScene(child, childID)
		d.buildScene(child, childID)
	}
}

func (d *Document) indexScene(n SceneNode, id grid.NodeID) {
	if n.ID != "" {
		d.IDs[n.ID] = id
	}
}

func sceneStyle(n SceneNode) *tree.Style {
	if n.Style != "" {
		return ParseInlineStyle(n.Style)
	}
	return &tree.Style{Display: tree.DisplayBlock, FontSize: tree.DefaultFontSize}
}
