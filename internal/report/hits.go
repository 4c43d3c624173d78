// Package report assembles a ConSite run directory into its rendered
// artifacts and a static HTML report page. It owns the collaborator
// boundary: hits and conservation scores are produced by external
// search and scoring steps and only loaded here.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/liyang-lab/ConSite/internal/viz"
)

// LoadHits reads the externally produced hits.json: a JSON array of
// family/ali_start/ali_end/evalue/score records. A missing file is not
// an error, it reads as no hits.
func LoadHits(path string) ([]viz.Hit, error) {
	dat, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hits []viz.Hit
	if err := json.Unmarshal(dat, &hits); err != nil {
		return nil, fmt.Errorf("failed to parse hits from %s: %w", path, err)
	}
	return hits, nil
}
