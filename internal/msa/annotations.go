package msa

import (
	"bufio"
	"io"
	"strings"
)

// Meta holds the recognized per-sequence annotation fields from #=GS
// lines. A nil pointer means the field was never annotated, which is
// distinct from an annotated empty value.
type Meta struct {
	// Species from the OS key
	Species *string

	// Accession from the AC key
	Accession *string
}

// merge applies one #=GS key/value pair. Later lines overwrite earlier
// ones for the same key (last write wins). Unrecognized keys are
// dropped: Stockholm permits arbitrary extension keys.
func (m *Meta) merge(key, value string) {
	switch key {
	case "OS":
		m.Species = &value
	case "AC":
		m.Accession = &value
	}
}

// MatchMask flags each alignment column as a match column (true) or an
// insert column (false). Its length always equals the alignment width.
type MatchMask []bool

// Columns returns the 1-based alignment columns flagged as match columns
func (m MatchMask) Columns() []int {
	var cols []int
	for i, match := range m {
		if match {
			cols = append(cols, i+1)
		}
	}
	return cols
}

// Matches returns the number of match columns
func (m MatchMask) Matches() (n int) {
	for _, match := range m {
		if match {
			n++
		}
	}
	return
}

// classifyRF decides whether one reference-annotation character marks a
// match column. 'x' and uppercase letters are match columns; '.', '-',
// lowercase letters and every other character fall through to insert.
func classifyRF(c byte) bool {
	switch {
	case c == 'x':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	}
	return false
}

// readAnnotations is the second pass over a Stockholm file. It collects
// #=GS key/value metadata for the given identifiers and builds the
// match-column mask from the #=GC RF line. With no RF line present the
// mask defaults to all-true: every column counts as a match column.
func readAnnotations(r io.Reader, ids []string, width int) (map[string]Meta, MatchMask, error) {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	meta := map[string]Meta{}
	rf := ""
	rfLine := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "#=GS"):
			fields := strings.Fields(line)
			if len(fields) < 4 {
				continue // id or key without a value, nothing to keep
			}
			id, key := fields[1], fields[2]
			if !known[id] {
				continue
			}
			m := meta[id]
			m.merge(key, strings.Join(fields[3:], " "))
			meta[id] = m

		case strings.HasPrefix(line, "#=GC"):
			fields := strings.Fields(line)
			if len(fields) >= 3 && fields[1] == "RF" {
				// a later RF line overwrites an earlier one
				rf = fields[2]
				rfLine = lineNum
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if rf == "" {
		mask := make(MatchMask, width)
		for i := range mask {
			mask[i] = true
		}
		return meta, mask, nil
	}

	if len(rf) != width {
		return nil, nil, formatErrf(rfLine,
			"#=GC RF annotation has %d characters, alignment has %d columns", len(rf), width)
	}

	mask := make(MatchMask, width)
	for i := 0; i < len(rf); i++ {
		mask[i] = classifyRF(rf[i])
	}
	return meta, mask, nil
}
