package report

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/liyang-lab/ConSite/internal/msa"
	"github.com/liyang-lab/ConSite/internal/viz"
)

// RenderRun renders every raster artifact for one run directory: the
// whole-sequence domain map, the conservation track when scores exist,
// and a hit panel plus seed-MSA panel for every "<idx>_<family>_aligned.sto"
// found. Each alignment is an independent read-parse-map-render chain;
// the first failure aborts the run.
func RenderRun(log *zap.Logger, o viz.Options, runDir string) error {
	query, err := ReadQueryFasta(filepath.Join(runDir, "query.fasta"))
	if err != nil {
		return fmt.Errorf("failed to read query: %w", err)
	}
	hits, err := LoadHits(filepath.Join(runDir, "hits.json"))
	if err != nil {
		return fmt.Errorf("failed to load hits: %w", err)
	}
	scores, err := LoadScores(filepath.Join(runDir, "scores.tsv"))
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	conserved := Conserved(scores)

	if query.Len() == 0 {
		// nothing to draw against, the renderer contract needs length >= 1
		log.Warn("query.fasta missing or empty, skipping renders", zap.String("dir", runDir))
		return nil
	}

	im, err := viz.DomainMap(o, query.Len(), hits, conserved)
	if err != nil {
		return fmt.Errorf("failed to render domain map: %w", err)
	}
	if err := viz.SavePNG(filepath.Join(runDir, "domain_map.png"), im); err != nil {
		return fmt.Errorf("failed to save domain map: %w", err)
	}
	log.Info("rendered domain map",
		zap.Int("length", query.Len()),
		zap.Int("hits", len(hits)),
		zap.Int("conserved", len(conserved)))

	if len(scores) > 0 {
		track, err := viz.Track(o, JSD(scores), "Conservation (JSD)")
		if err != nil {
			return fmt.Errorf("failed to render conservation track: %w", err)
		}
		if err := viz.SavePNG(filepath.Join(runDir, "conservation.png"), track); err != nil {
			return fmt.Errorf("failed to save conservation track: %w", err)
		}
	}

	return renderAlignments(log, o, runDir, query, hits, conserved)
}

// renderAlignments renders the per-hit panel and seed-MSA panel for
// every aligned Stockholm file in the run directory
func renderAlignments(log *zap.Logger, o viz.Options, runDir string, query Query, hits []viz.Hit, conserved []int) error {
	stos, err := filepath.Glob(filepath.Join(runDir, "*_aligned.sto"))
	if err != nil {
		return err
	}
	sort.Strings(stos)

	for _, sto := range stos {
		name := filepath.Base(sto)
		idx, family, ok := parseArtifact(name, "_aligned.sto")
		if !ok {
			continue
		}
		if idx < 1 || idx > len(hits) {
			log.Warn("alignment without a matching hit, skipping",
				zap.String("file", name), zap.Int("hits", len(hits)))
			continue
		}
		hit := hits[idx-1]
		start, _ := hit.Bounds()

		aln, err := msa.Read(sto)
		if err != nil {
			return fmt.Errorf("failed to read alignment %s: %w", name, err)
		}

		prefix := filepath.Join(runDir, fmt.Sprintf("%d_%s", idx, family))

		panel, err := viz.HitPanel(o, query.Seq, hit, conserved)
		if err != nil {
			return fmt.Errorf("failed to render panel for %s: %w", family, err)
		}
		if err := viz.SavePNG(prefix+"_panel.png", panel); err != nil {
			return fmt.Errorf("failed to save panel for %s: %w", family, err)
		}

		msaPanel, err := viz.MSAPanel(o, aln, conserved, start-1)
		if err != nil {
			return fmt.Errorf("failed to render MSA panel for %s: %w", family, err)
		}
		if err := viz.SavePNG(prefix+"_msa.png", msaPanel); err != nil {
			return fmt.Errorf("failed to save MSA panel for %s: %w", family, err)
		}

		log.Info("rendered domain",
			zap.Int("index", idx),
			zap.String("family", family),
			zap.Int("sequences", len(aln.Matrix.IDs)),
			zap.Int("matchColumns", aln.Mask.Matches()))
	}
	return nil
}
