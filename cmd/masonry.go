// File: cmd/masonry.go
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/masonry"
	"github.com/xkilldash9x/gridcore/internal/observability"
)

var (
	masonryInput string
	masonryNode  string
)

type masonryReport struct {
	RunID         string             `json:"run_id,omitempty"`
	MasonryAxis   string             `json:"masonry_axis"`
	TrackCount    int                `json:"track_count"`
	TrackSizes    []float64          `json:"track_sizes"`
	ContainerSize sizeReport         `json:"container_size"`
	Items         []masonryItemEntry `json:"items"`
}

type sizeReport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type masonryItemEntry struct {
	Node         uint64  `json:"node"`
	ElementID    string  `json:"element_id,omitempty"`
	TrackStart   int     `json:"track_start"`
	TrackEnd     int     `json:"track_end"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	BaselineShim float64 `json:"baseline_shim,omitempty"`
}

func newMasonryReport(res *masonry.Result, elementIDs map[grid.NodeID]string) *masonryReport {
	rep := &masonryReport{
		MasonryAxis: res.Config.MasonryAxis.String(),
		TrackCount:  res.Config.TrackCount,
		TrackSizes:  res.TrackSizes,
		ContainerSize: sizeReport{
			Width:  res.ContainerSize.Width,
			Height: res.ContainerSize.Height,
		},
	}
	for _, item := range res.Items {
		rep.Items = append(rep.Items, masonryItemEntry{
			Node:         uint64(item.Node),
			ElementID:    elementIDs[item.Node],
			TrackStart:   item.Area.GridAxisStart,
			TrackEnd:     item.Area.GridAxisEnd,
			X:            item.Rect.X,
			Y:            item.Rect.Y,
			Width:        item.Rect.Width,
			Height:       item.Rect.Height,
			BaselineShim: item.BaselineShim,
		})
	}
	return rep
}

var masonryCmd = &cobra.Command{
	Use:   "masonry",
	Short: "Lay out a single masonry container from a scene.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()
		doc, err := loadDocument(masonryInput)
		if err != nil {
			return err
		}

		container := grid.NodeID(0)
		if masonryNode != "" {
			id, ok := doc.IDs[masonryNode]
			if !ok {
				return fmt.Errorf("no element with id %q in %s", masonryNode, masonryInput)
			}
			container = id
		}

		layout := appCfg.Layout()
		available := grid.Size{Width: layout.ViewportWidth, Height: layout.ViewportHeight}
		if doc.Viewport != nil {
			available = *doc.Viewport
		}
		res, err := masonry.LayoutContainer(doc.Tree, container, available, log)
		if err != nil {
			return fmt.Errorf("masonry layout of %s: %w", container, err)
		}

		rep := newMasonryReport(res, invertIDs(doc))
		rep.RunID = uuid.NewString()

		log.Info("Masonry container laid out",
			zap.String("run_id", rep.RunID),
			zap.Stringer("container", container),
			zap.Int("items", len(rep.Items)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	},
}

func init() {
	masonryCmd.Flags().StringVarP(&masonryInput, "input", "i", "", "scene file (.html or .json)")
	masonryCmd.Flags().StringVarP(&masonryNode, "node", "n", "", "element id of the masonry container (default: root)")
	_ = masonryCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(masonryCmd)
}
