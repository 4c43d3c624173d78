package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ScoreRow is one row of the externally produced scores.tsv: one
// ungapped query position with its conservation statistics.
type ScoreRow struct {
	Pos         int
	InDomain    bool
	JSD         float64
	Entropy     float64
	IsConserved bool
}

// LoadScores reads a scores.tsv with a pos/in_domain/jsd/entropy/
// is_conserved header. A missing file is not an error, it reads as no
// scores.
func LoadScores(path string) ([]ScoreRow, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores header from %s: %w", path, err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"pos", "in_domain", "jsd", "entropy", "is_conserved"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("scores file %s is missing the %q column", path, name)
		}
	}

	var rows []ScoreRow
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores from %s: %w", path, err)
	}
	for _, rec := range records {
		pos, err := strconv.Atoi(rec[col["pos"]])
		if err != nil {
			return nil, fmt.Errorf("bad pos %q in %s: %w", rec[col["pos"]], path, err)
		}
		jsd, err := strconv.ParseFloat(rec[col["jsd"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad jsd %q in %s: %w", rec[col["jsd"]], path, err)
		}
		entropy, err := strconv.ParseFloat(rec[col["entropy"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad entropy %q in %s: %w", rec[col["entropy"]], path, err)
		}

		rows = append(rows, ScoreRow{
			Pos:         pos,
			InDomain:    parseFlag(rec[col["in_domain"]]),
			JSD:         jsd,
			Entropy:     entropy,
			IsConserved: parseFlag(rec[col["is_conserved"]]),
		})
	}
	return rows, nil
}

// parseFlag accepts the truthy spellings different scorers emit
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Conserved returns the ungapped query positions flagged as conserved
func Conserved(rows []ScoreRow) []int {
	var positions []int
	for _, row := range rows {
		if row.IsConserved {
			positions = append(positions, row.Pos)
		}
	}
	return positions
}

// JSD returns the per-position JSD values in row order
func JSD(rows []ScoreRow) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row.JSD
	}
	return out
}
