package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "query.fasta", ">sp|P00533|EGFR_HUMAN test query\nMRPSGTAGAALLALLAALCPASRA\n")
	writeFile(t, dir, "hits.json",
		`[{"family":"PF00069","ali_start":3,"ali_end":20,"evalue":1e-12,"score":44.1}]`)
	writeFile(t, dir, "scores.tsv", scoresTSV)
	writeFile(t, dir, "domain_map.png", "")
	writeFile(t, dir, "1_PF00069_panel.png", "")
	writeFile(t, dir, "1_PF00069_msa.png", "")

	out := filepath.Join(dir, "report.html")
	b := NewBuilder(zap.NewNop(), 100)
	require.NoError(t, b.Build(dir, out))

	dat, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(dat)

	assert.Contains(t, page, "ConSite report")
	assert.Contains(t, page, "sp|P00533|EGFR_HUMAN test query")
	assert.Contains(t, page, "PF00069")
	assert.Contains(t, page, "domain_map.png")
	assert.Contains(t, page, "1_PF00069_panel.png")
	assert.Contains(t, page, "1_PF00069_msa.png")
	assert.Contains(t, page, `href="scores.tsv"`)
	assert.NotContains(t, page, "hmmsearch.domtblout", "absent files must not be linked")
}

func TestBuilder_Build_emptyRunDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")

	b := NewBuilder(zap.NewNop(), 100)
	require.NoError(t, b.Build(dir, out))

	dat, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(dat)

	// degrades to placeholders, never errors
	assert.Contains(t, page, "No hits")
	assert.Contains(t, page, "scores.tsv missing")
}

func TestBuilder_Build_scoreRowCap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scores.tsv", scoresTSV)

	out := filepath.Join(dir, "report.html")
	b := NewBuilder(zap.NewNop(), 2)
	require.NoError(t, b.Build(dir, out))

	dat, err := os.ReadFile(out)
	require.NoError(t, err)

	// rows 3 and 4 are beyond the cap
	assert.NotContains(t, string(dat), "<td>3</td>")
}

func TestBuilder_Build_escapesQueryHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "query.fasta", ">query <script>alert(1)</script>\nACGT\n")

	out := filepath.Join(dir, "report.html")
	b := NewBuilder(zap.NewNop(), 100)
	require.NoError(t, b.Build(dir, out))

	dat, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(dat), "<script>alert(1)</script>")
}
