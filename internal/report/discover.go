package report

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Domain is the set of per-domain artifacts found in a run directory,
// grouped by the "<idx>_<family>_*" filename convention. Optional
// artifacts are empty strings when absent. All names are relative to
// the run directory so the report page can link them directly.
type Domain struct {
	Index  int
	Family string

	Panel  string
	MSA    string
	Sto    string
	SimPNG string
	SimTSV string
}

// parseArtifact splits "<idx>_<family><suffix>" into its index and
// family. ok is false for names outside the convention.
func parseArtifact(name, suffix string) (idx int, family string, ok bool) {
	stem, found := strings.CutSuffix(name, suffix)
	if !found {
		return 0, "", false
	}
	parts := strings.SplitN(stem, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", false
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}
	return idx, parts[1], true
}

// DiscoverDomains scans a run directory for per-domain panels and
// their sibling artifacts, ordered by domain index
func DiscoverDomains(runDir string) ([]Domain, error) {
	panels, err := filepath.Glob(filepath.Join(runDir, "*_panel.png"))
	if err != nil {
		return nil, err
	}

	var domains []Domain
	for _, panel := range panels {
		name := filepath.Base(panel)
		idx, family, ok := parseArtifact(name, "_panel.png")
		if !ok {
			continue
		}

		prefix := strconv.Itoa(idx) + "_" + family
		d := Domain{
			Index:  idx,
			Family: family,
			Panel:  name,
			MSA:    siblingIfExists(runDir, prefix+"_msa.png"),
			Sto:    siblingIfExists(runDir, prefix+"_aligned.sto"),
			SimPNG: siblingIfExists(runDir, prefix+"_sim.png"),
			SimTSV: siblingIfExists(runDir, prefix+"_sim.tsv"),
		}
		domains = append(domains, d)
	}

	sort.Slice(domains, func(i, j int) bool {
		return domains[i].Index < domains[j].Index
	})
	return domains, nil
}

// siblingIfExists returns name when runDir/name exists, else ""
func siblingIfExists(runDir, name string) string {
	if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
		return ""
	}
	return name
}
