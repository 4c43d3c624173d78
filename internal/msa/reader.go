// Package msa reads Stockholm multiple sequence alignments and maps
// alignment columns onto ungapped sequence positions.
//
// Reading is done in two passes over the same file contents: one pass
// collects the sequence matrix, a second collects the per-sequence and
// per-column annotation lines. The two passes keep their invariants
// separate: the matrix pass knows nothing about annotations and the
// annotation pass nothing about row order.
package msa

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// Matrix is a dense residue matrix. Rows are sequences in file order,
// columns are alignment positions (gaps included). Every row has the
// same width; residues are normalized to uppercase.
type Matrix struct {
	// IDs are the sequence identifiers in order of first appearance
	IDs []string

	// Rows holds one residue slice per identifier, same order as IDs
	Rows [][]byte
}

// Width returns the number of alignment columns
func (m *Matrix) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Row returns the residue row for an identifier and whether it exists
func (m *Matrix) Row(id string) ([]byte, bool) {
	for i, mid := range m.IDs {
		if mid == id {
			return m.Rows[i], true
		}
	}
	return nil, false
}

// Alignment is one fully parsed Stockholm file: the residue matrix,
// the recognized per-sequence annotations, and the match-column mask.
// It is immutable after Read returns.
type Alignment struct {
	Matrix *Matrix

	// Meta maps a sequence identifier to its recognized annotations.
	// Identifiers without any annotation line have no entry
	Meta map[string]Meta

	// Mask flags the match columns, one entry per alignment column
	Mask MatchMask
}

// Read parses the Stockholm file at path. The file is read once and
// scanned twice: matrix first, annotations second. Either scan failing
// returns an error and no partial Alignment.
func Read(path string) (*Alignment, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	matrix, err := ReadMatrix(bytes.NewReader(dat))
	if err != nil {
		return nil, tagPath(err, path)
	}

	meta, mask, err := readAnnotations(bytes.NewReader(dat), matrix.IDs, matrix.Width())
	if err != nil {
		return nil, tagPath(err, path)
	}

	return &Alignment{Matrix: matrix, Meta: meta, Mask: mask}, nil
}

// tagPath attaches the file path to a FormatError for nicer messages
func tagPath(err error, path string) error {
	if fe, ok := err.(*FormatError); ok {
		fe.Path = path
	}
	return err
}

// ReadMatrix scans the sequence lines of a Stockholm alignment into a
// Matrix. Annotation lines (#-prefixed) are skipped, "//" ends the
// alignment. A sequence split across blocks is concatenated in order.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	if !scanHeader(scanner, &lineNum) {
		return nil, formatErrf(1, "missing '# STOCKHOLM 1.0' header")
	}

	matrix := &Matrix{}
	rowIndex := map[string]int{}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "//") {
			break
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, formatErrf(lineNum, "sequence line %q has no residues", line)
		}
		id := fields[0]
		residues := strings.ToUpper(strings.Join(fields[1:], ""))

		i, seen := rowIndex[id]
		if !seen {
			i = len(matrix.IDs)
			rowIndex[id] = i
			matrix.IDs = append(matrix.IDs, id)
			matrix.Rows = append(matrix.Rows, nil)
		}
		matrix.Rows[i] = append(matrix.Rows[i], residues...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(matrix.IDs) == 0 {
		return nil, formatErrf(0, "no sequences in alignment")
	}

	// all rows must span the full alignment width
	width := len(matrix.Rows[0])
	for i, row := range matrix.Rows {
		if len(row) != width {
			return nil, formatErrf(0, "sequence %q has length %d, others have length %d",
				matrix.IDs[i], len(row), width)
		}
	}

	return matrix, nil
}

// scanHeader consumes lines up to and including the Stockholm header,
// tolerating leading blank lines. Returns false if the first non-blank
// line is not the header.
func scanHeader(scanner *bufio.Scanner, lineNum *int) bool {
	for scanner.Scan() {
		*lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return strings.HasPrefix(strings.ToUpper(line), "# STOCKHOLM")
	}
	return false
}
