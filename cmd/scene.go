// File: cmd/scene.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xkilldash9x/gridcore/internal/ingest"
)

// loadDocument reads an HTML document or a JSON scene depending on the
// file extension.
func loadDocument(path string) (*ingest.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading scene file: %w", err)
		}
		return ingest.ParseSceneJSON(data)
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()
		return ingest.ParseHTML(f)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .html or .json)", filepath.Ext(path))
	}
}
