package report

import (
	"bufio"
	"os"
	"strings"
)

// Query is the first record of a run directory's query.fasta
type Query struct {
	Header string
	Seq    string
}

// Len returns the ungapped query length
func (q Query) Len() int { return len(q.Seq) }

// ReadQueryFasta reads the first FASTA record from path. A missing
// file reads as an unknown query with no sequence, matching how the
// report degrades when a run directory is incomplete.
func ReadQueryFasta(path string) (Query, error) {
	q := Query{Header: "?"}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return q, nil
	}
	if err != nil {
		return q, err
	}
	defer f.Close()

	sawHeader := false
	var seq strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			if sawHeader {
				break // only the first record is the query
			}
			sawHeader = true
			q.Header = strings.TrimSpace(line[1:])
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return q, err
	}

	q.Seq = strings.ToUpper(seq.String())
	return q, nil
}
