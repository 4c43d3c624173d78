package msa

import "sort"

// gap symbols Stockholm uses in sequence rows
func isGap(c byte) bool {
	return c == '-' || c == '.'
}

// Mapper is the bijection between alignment columns and the ungapped
// positions of one reference row, usually the query. It is built once
// per alignment and never mutated: every translation of column-indexed
// conservation results into query coordinates goes through it.
type Mapper struct {
	// colToPos[i] is the 1-based ungapped position of column i+1,
	// 0 where the reference row holds a gap
	colToPos []int

	// posToCol[j] is the 1-based column of ungapped position j+1
	posToCol []int
}

// NewMapper scans the reference row left to right, assigning the next
// ungapped position to each non-gap column. A row of all gaps yields an
// empty mapping.
func NewMapper(row []byte) *Mapper {
	m := &Mapper{colToPos: make([]int, len(row))}
	pos := 0
	for i, c := range row {
		if isGap(c) {
			continue
		}
		pos++
		m.colToPos[i] = pos
		m.posToCol = append(m.posToCol, i+1)
	}
	return m
}

// Width returns the number of alignment columns
func (m *Mapper) Width() int { return len(m.colToPos) }

// UngappedLen returns the number of residues in the reference row
func (m *Mapper) UngappedLen() int { return len(m.posToCol) }

// Pos translates a 1-based alignment column to the 1-based ungapped
// position of the reference row. ok is false for gap columns and for
// columns outside the alignment.
func (m *Mapper) Pos(col int) (pos int, ok bool) {
	if col < 1 || col > len(m.colToPos) {
		return 0, false
	}
	pos = m.colToPos[col-1]
	return pos, pos != 0
}

// Col translates a 1-based ungapped position back to its 1-based
// alignment column
func (m *Mapper) Col(pos int) (col int, ok bool) {
	if pos < 1 || pos > len(m.posToCol) {
		return 0, false
	}
	return m.posToCol[pos-1], true
}

// Positions translates a set of 1-based alignment columns into the
// sorted set of ungapped positions they map to. Gap columns and
// out-of-range columns contribute nothing.
func (m *Mapper) Positions(cols []int) []int {
	seen := map[int]bool{}
	var positions []int
	for _, col := range cols {
		pos, ok := m.Pos(col)
		if !ok || seen[pos] {
			continue
		}
		seen[pos] = true
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// Ungapped returns the gap-free residues of a row
func Ungapped(row []byte) string {
	out := make([]byte, 0, len(row))
	for _, c := range row {
		if !isGap(c) {
			out = append(out, c)
		}
	}
	return string(out)
}

// QueryMapper builds the Mapper for the alignment's first row, the
// conventional spot for the query sequence
func (a *Alignment) QueryMapper() *Mapper {
	return NewMapper(a.Matrix.Rows[0])
}
