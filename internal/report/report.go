package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/liyang-lab/ConSite/internal/viz"
)

// Builder assembles report.html for one run directory
type Builder struct {
	log *zap.Logger

	// MaxScoreRows caps the scores preview table
	MaxScoreRows int
}

// NewBuilder returns a Builder logging through log
func NewBuilder(log *zap.Logger, maxScoreRows int) *Builder {
	return &Builder{log: log, MaxScoreRows: maxScoreRows}
}

// pageData is everything the report template needs
type pageData struct {
	Title     string
	RunDir    string
	Query     Query
	DomainMap string
	Hits      []viz.Hit
	Domains   []Domain
	Scores    []ScoreRow

	// download links, empty when the file is absent
	HitsJSON   string
	Domtbl     string
	ScoresTSV  string
	QueryFasta string
}

// Build gathers the run directory's artifacts and writes the report
// page to outPath. Missing optional artifacts degrade to absent cards
// and links, never errors.
func (b *Builder) Build(runDir, outPath string) error {
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
	if len(scores) > b.MaxScoreRows {
		scores = scores[:b.MaxScoreRows]
	}

	domains, err := DiscoverDomains(runDir)
	if err != nil {
		return fmt.Errorf("failed to discover domain artifacts: %w", err)
	}

	data := pageData{
		Title:      "ConSite report — " + filepath.Base(runDir),
		RunDir:     runDir,
		Query:      query,
		DomainMap:  siblingIfExists(runDir, "domain_map.png"),
		Hits:       hits,
		Domains:    domains,
		Scores:     scores,
		HitsJSON:   siblingIfExists(runDir, "hits.json"),
		Domtbl:     siblingIfExists(runDir, "hmmsearch.domtblout"),
		ScoresTSV:  siblingIfExists(runDir, "scores.tsv"),
		QueryFasta: siblingIfExists(runDir, "query.fasta"),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0666); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	b.log.Info("wrote report",
		zap.String("path", outPath),
		zap.Int("hits", len(hits)),
		zap.Int("domains", len(domains)))
	return nil
}

var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width,initial-scale=1">
<style>
body { font-family: ui-sans-serif, system-ui, sans-serif; margin: 24px; color: #111; }
h1 { font-size: 1.6rem; margin: 0 0 4px 0; }
.sub { color: #666; font-size: 0.95rem; }
.section { margin: 26px 0; }
.grid { display: grid; gap: 14px; }
.two { grid-template-columns: 1fr 1fr; }
img { max-width: 100%; height: auto; border: 1px solid #e5e7eb; border-radius: 10px; }
.card { border: 1px solid #e5e7eb; border-radius: 12px; padding: 14px; background: #fff; }
.muted { color: #6b7280; }
.kvs { display: grid; grid-template-columns: max-content 1fr; gap: 6px 12px; }
.k { color: #6b7280; }
details summary { cursor: pointer; font-weight: 600; }
table { border-collapse: collapse; width: 100%; font-size: 0.9rem; }
th, td { border-bottom: 1px solid #eee; padding: 6px 8px; text-align: left; }
footer { margin-top: 28px; color: #6b7280; font-size: 0.85rem; }
.pf { font-weight: 600; }
#viewer { position: fixed; inset: 0; background: rgba(0,0,0,.6); display: none;
  align-items: center; justify-content: center; z-index: 9999; }
#viewer.open { display: flex; }
#viewer .frame { background: #fff; border-radius: 12px; max-width: 96vw; max-height: 90vh;
  display: flex; flex-direction: column; }
#viewer header { display: flex; align-items: center; justify-content: space-between;
  padding: 10px 14px; border-bottom: 1px solid #eee; }
#viewer .scroller { overflow: auto; padding: 10px; }
#viewer img { height: auto; max-height: 75vh; display: block; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="sub">{{.RunDir}}</div>
</header>

<section class="section card">
  <div class="kvs">
    <div class="k">Query</div><div>{{.Query.Header}}</div>
    <div class="k">Length</div><div>{{.Query.Len}}</div>
  </div>
</section>

<section class="section">
  <h2>Overview</h2>
  <div class="grid two">
    <div class="card">
      <div class="muted">Domain map</div>
      {{if .DomainMap}}<a class="zoom" href="{{.DomainMap}}" data-title="Domain map"><img src="{{.DomainMap}}" alt="domain_map"></a>{{end}}
    </div>
    <div class="card">
      <div class="muted">Hits</div>
      <table>
        <thead><tr><th>Pfam</th><th>Aligned range</th><th>i-Evalue</th><th>Score</th></tr></thead>
        <tbody>
        {{range .Hits}}<tr><td class="pf">{{.Family}}</td><td>{{.AliStart}}-{{.AliEnd}}</td><td>{{.Evalue}}</td><td>{{.Score}}</td></tr>
        {{else}}<tr><td colspan="4" class="muted">No hits</td></tr>{{end}}
        </tbody>
      </table>
      <div style="margin-top:8px" class="muted">
        Downloads:
        {{if .HitsJSON}}<a href="{{.HitsJSON}}" download>hits.json</a>{{end}}
        {{if .Domtbl}}<a href="{{.Domtbl}}" download>hmmsearch.domtblout</a>{{end}}
        {{if .ScoresTSV}}<a href="{{.ScoresTSV}}" download>scores.tsv</a>{{end}}
        {{if .QueryFasta}}<a href="{{.QueryFasta}}" download>query.fasta</a>{{end}}
      </div>
    </div>
  </div>
</section>

{{range .Domains}}
<section class="section">
  <h3>Domain {{.Index}}: <span class="pf">{{.Family}}</span></h3>
  <div class="grid two">
    <div class="card"><div class="muted">Per-domain panel</div>
      <a class="zoom" href="{{.Panel}}" data-title="Per-domain panel — {{.Family}}"><img src="{{.Panel}}" alt="{{.Panel}}"></a>
    </div>
    {{if .MSA}}<div class="card"><div class="muted">SEED MSA panel</div>
      <a class="zoom" href="{{.MSA}}" data-title="SEED MSA panel — {{.Family}}"><img src="{{.MSA}}" alt="{{.MSA}}"></a>
    </div>{{end}}
    {{if .SimPNG}}<div class="card"><div class="muted">Similarity matrix</div>
      <a class="zoom" href="{{.SimPNG}}" data-title="Similarity matrix — {{.Family}}"><img src="{{.SimPNG}}" alt="{{.SimPNG}}"></a>
      {{if .SimTSV}}<div class="muted" style="margin-top:8px;"><a href="{{.SimTSV}}" download>matrix.tsv</a></div>{{end}}
    </div>{{end}}
  </div>
  {{if .Sto}}<div class="muted" style="margin-top:8px;"><a href="{{.Sto}}" download>{{.Sto}}</a></div>{{end}}
</section>
{{end}}

<section class="section card">
  <details>
    <summary>Scores preview</summary>
    <div style="margin-top:10px; max-height:320px; overflow:auto;">
      <table>
        <thead><tr><th>pos</th><th>in_domain</th><th>jsd</th><th>entropy</th><th>is_conserved</th></tr></thead>
        <tbody>
        {{range .Scores}}<tr><td>{{.Pos}}</td><td>{{.InDomain}}</td><td>{{.JSD}}</td><td>{{.Entropy}}</td><td>{{.IsConserved}}</td></tr>
        {{else}}<tr><td colspan="5" class="muted">scores.tsv missing</td></tr>{{end}}
        </tbody>
      </table>
    </div>
  </details>
</section>

<footer>Generated by the ConSite report builder.</footer>

<div id="viewer" aria-modal="true" role="dialog">
  <div class="frame">
    <header>
      <div class="ttl" id="viewer-ttl"></div>
      <button class="close" id="viewer-close">Close</button>
    </header>
    <div class="scroller"><img id="viewer-img" src="" alt=""></div>
  </div>
</div>

<script>
(function () {
  const viewer = document.getElementById('viewer');
  const vimg = document.getElementById('viewer-img');
  const vttl = document.getElementById('viewer-ttl');
  const close = document.getElementById('viewer-close');

  function openViewer(src, title) {
    vimg.src = src;
    vimg.alt = title || '';
    vttl.textContent = title || '';
    viewer.classList.add('open');
    viewer.querySelector('.scroller').scrollLeft = 0;
  }
  function dismiss() {
    viewer.classList.remove('open');
    vimg.src = '';
  }

  document.addEventListener('click', function (e) {
    const a = e.target.closest('a.zoom');
    if (!a) return;
    e.preventDefault();
    openViewer(a.getAttribute('href'), a.dataset.title || a.getAttribute('href'));
  });

  close.addEventListener('click', dismiss);
  viewer.addEventListener('click', (e) => { if (e.target === viewer) dismiss(); });
  document.addEventListener('keydown', (e) => { if (e.key === 'Escape') dismiss(); });
})();
</script>
</body>
</html>
`))
