package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liyang-lab/ConSite/config"
	"github.com/liyang-lab/ConSite/internal/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble a static HTML report for a rendered run directory",
	Long: `Assemble report.html for one run directory.

The page links whatever artifacts the directory holds: the domain map,
per-domain panels and alignments discovered by their
"<idx>_<family>_*" names, the hits table, and a preview of the
conservation scores. Missing artifacts degrade to absent cards, so a
partially rendered run still produces a usable page.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil || dir == "" {
			stderr.Fatalf("failed to parse run directory: %v", err)
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(dir, "report.html")
		}

		logger := newLogger()
		defer logger.Sync()

		c := config.New()
		b := report.NewBuilder(logger, c.Report.MaxScoreRows)
		if err := b.Build(dir, out); err != nil {
			logger.Fatal("report failed", zap.String("dir", dir), zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("dir", "d", "", "Path to the run directory to report on")
	reportCmd.Flags().StringP("out", "o", "", "Output HTML path (default: report.html in the run directory)")
	reportCmd.MarkFlagRequired("dir")
}
