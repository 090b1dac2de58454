// File: cmd/resolve.go
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridcore/internal/grid"
	"github.com/xkilldash9x/gridcore/internal/grid/gridctx"
	"github.com/xkilldash9x/gridcore/internal/grid/preprocess"
	"github.com/xkilldash9x/gridcore/internal/ingest"
	"github.com/xkilldash9x/gridcore/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var resolveInput string

// resolveReport is the JSON document the resolve command emits.
type resolveReport struct {
	RunID      string             `json:"run_id"`
	Input      string             `json:"input"`
	Containers []containerReport  `json:"containers"`
	CacheStats gridctx.CacheStats `json:"cache_stats"`
}

type containerReport struct {
	Node           uint64         `json:"node"`
	ElementID      string         `json:"element_id,omitempty"`
	Mode           string         `json:"mode"`
	FallbackReason string         `json:"fallback_reason,omitempty"`
	SubgridDepth   int            `json:"subgrid_depth,omitempty"`
	EffectiveRows  int            `json:"effective_row_tracks,omitempty"`
	EffectiveCols  int            `json:"effective_column_tracks,omitempty"`
	Masonry        *masonryReport `json:"masonry,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Preprocess every grid container in a scene and report the outcome.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()
		doc, err := loadDocument(resolveInput)
		if err != nil {
			return err
		}
		if doc.Tree.NodeCount() == 0 {
			return fmt.Errorf("scene %q contains no nodes", resolveInput)
		}

		layout := appCfg.Layout()
		engine := appCfg.Engine()
		available := grid.Size{Width: layout.ViewportWidth, Height: layout.ViewportHeight}
		if doc.Viewport != nil {
			available = *doc.Viewport
		}
		cache := gridctx.NewCacheWithLimits(engine.CacheMaxParents, engine.CacheMaxContexts)

		pre := preprocess.New(doc.Tree, cache, log)
		outcomes, err := pre.PreprocessTree(0, available)
		if err != nil {
			return fmt.Errorf("preprocessing scene: %w", err)
		}

		report := resolveReport{
			RunID:      uuid.NewString(),
			Input:      resolveInput,
			CacheStats: cache.Stats(),
		}
		elementIDs := invertIDs(doc)
		for _, out := range outcomes {
			cr := containerReport{
				Node:           uint64(out.Node),
				ElementID:      elementIDs[out.Node],
				Mode:           out.Mode.String(),
				FallbackReason: out.FallbackReason,
			}
			if out.Subgrid != nil {
				cr.SubgridDepth = out.Subgrid.ChainDepth()
				cr.EffectiveRows = len(out.Subgrid.EffectiveRowTracks)
				cr.EffectiveCols = len(out.Subgrid.EffectiveColumnTracks)
			}
			if out.Masonry != nil {
				cr.Masonry = newMasonryReport(out.Masonry, elementIDs)
			}
			report.Containers = append(report.Containers, cr)
		}

		log.Info("Scene resolved",
			zap.String("run_id", report.RunID),
			zap.Int("containers", len(report.Containers)),
			zap.Uint64("cache_hits", report.CacheStats.Hits),
			zap.Uint64("cache_misses", report.CacheStats.Misses))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func invertIDs(doc *ingest.Document) map[grid.NodeID]string {
	out := make(map[grid.NodeID]string, len(doc.IDs))
	for name, id := range doc.IDs {
		out[id] = name
	}
	return out
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveInput, "input", "i", "", "scene file (.html or .json)")
	_ = resolveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(resolveCmd)
}
