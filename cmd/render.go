package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/liyang-lab/ConSite/config"
	"github.com/liyang-lab/ConSite/internal/report"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the domain map and per-hit panels for a run directory",
	Long: `Render the raster artifacts for one run directory.

The directory is expected to hold the upstream outputs: query.fasta,
hits.json from the domain search, scores.tsv from the conservation
scoring step, and one "<idx>_<family>_aligned.sto" Stockholm alignment
per hit. For each alignment the query row is mapped back onto ungapped
query coordinates, and the renders are written next to their inputs:

  domain_map.png            whole-sequence map with hit bands and
                            conserved-site markers
  conservation.png          per-position conservation track
  <idx>_<family>_panel.png  zoomed per-hit character panel
  <idx>_<family>_msa.png    aligned sequences with match columns shaded`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil || dir == "" {
			stderr.Fatalf("failed to parse run directory: %v", err)
		}

		logger := newLogger()
		defer logger.Sync()

		c := config.New()
		if err := report.RenderRun(logger, c.Options(), dir); err != nil {
			logger.Fatal("render failed", zap.String("dir", dir), zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("dir", "d", "", "Path to the run directory with query.fasta, hits.json and *_aligned.sto files")
	renderCmd.MarkFlagRequired("dir")

	viper.BindPFlag("dir", renderCmd.Flags().Lookup("dir"))
}
