package viz

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/liyang-lab/ConSite/internal/msa"
)

// HitPanel draws the zoomed per-hit panel: one glyph per residue of the
// query substring [start, end], a light cell outline per position, a
// translucent band behind the text, and a hollow marker above each
// conserved position. Markers are scoped to the panel's own range:
// conserved positions outside [start, end] are never drawn. The panel
// widens with the region so characters stay legible.
func HitPanel(o Options, querySeq string, hit Hit, conserved []int) (image.Image, error) {
	start, end := hit.Bounds()
	if start < 1 {
		start = 1
	}
	if end > len(querySeq) {
		end = len(querySeq)
	}
	if len(querySeq) == 0 || start > end {
		return nil, &ContractError{Msg: fmt.Sprintf(
			"hit %s [%d, %d] outside query of length %d", hit.Family, hit.AliStart, hit.AliEnd, len(querySeq))}
	}

	n := end - start + 1
	w := maxInt(o.PanelBaseWidth, int(o.PerChar*float64(n)))
	h := o.PanelHeight

	const (
		marginT = 32
		marginB = 10
		marginX = 12
	)
	plotW := float64(w - 2*marginX)
	plotH := float64(h - marginT - marginB)
	centerY := float64(marginT) + plotH/2
	cw := plotW / float64(n)
	cellX := func(i int) float64 { return float64(marginX) + float64(i)*cw }

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// translucent domain band behind the text
	dc.SetRGBA255(0x77, 0xb3, 0xd5, 64)
	dc.DrawRectangle(float64(marginX), float64(marginT), plotW, plotH)
	dc.Fill()

	// light cell outlines so the eye can track positions
	cellH := 0.58 * plotH
	dc.SetHexColor(colCell)
	dc.SetLineWidth(1)
	for i := 0; i < n; i++ {
		dc.DrawRectangle(cellX(i), centerY-cellH/2, cw, cellH)
		dc.Stroke()
	}

	// letters: white fill over a dark stroke so they pop on any band
	for i := 0; i < n; i++ {
		glyph := string(querySeq[start-1+i])
		gx := cellX(i) + cw/2
		strokeString(dc, glyph, gx, centerY)
	}

	// conserved markers above the baseline, only inside [start, end]
	inPanel := map[int]bool{}
	for _, p := range conserved {
		if p >= start && p <= end {
			inPanel[p] = true
		}
	}
	dc.SetHexColor(colMarker)
	dc.SetLineWidth(1.5)
	for p := start; p <= end; p++ {
		if !inPanel[p] {
			continue
		}
		dc.DrawCircle(cellX(p-start)+cw/2, centerY-0.38*plotH, 4.5)
		dc.Stroke()
	}

	dc.SetHexColor(colText)
	dc.DrawStringAnchored(fmt.Sprintf("%s  %d-%d", hit.Family, start, end), float64(w)/2, float64(marginT)/2, 0.5, 0.5)

	return dc.Image(), nil
}

// MSAPanel draws the aligned sequences of one hit as a character grid:
// match columns get a shaded background, insert columns stay white, and
// a marker row flags the columns whose query position (offset by
// posOffset into whole-query coordinates) is conserved. At most
// o.MaxMSARows sequences are drawn.
func MSAPanel(o Options, aln *msa.Alignment, conserved []int, posOffset int) (image.Image, error) {
	cols := aln.Matrix.Width()
	if cols == 0 {
		return nil, &ContractError{Msg: "alignment has zero columns"}
	}
	rows := minInt(len(aln.Matrix.Rows), o.MaxMSARows)

	labelW := 16
	for _, id := range aln.Matrix.IDs[:rows] {
		labelW = maxInt(labelW, 7*len(id)+16)
	}
	labelW = minInt(labelW, 200)

	const (
		marginT = 30
		marginB = 10
		marginR = 10
	)
	cw, rh := o.MSAColWidth, o.MSARowHeight
	w := labelW + cols*cw + marginR
	h := marginT + rows*rh + marginB
	colX := func(c int) float64 { return float64(labelW + c*cw) }

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// shade the match columns
	dc.SetRGBA255(0x7f, 0xb3, 0xd5, 64)
	for c, match := range aln.Mask {
		if !match {
			continue
		}
		dc.DrawRectangle(colX(c), marginT, float64(cw), float64(rows*rh))
		dc.Fill()
	}

	// conserved marker row above the grid, translated through the
	// query-row mapper into whole-query coordinates
	set := map[int]bool{}
	for _, p := range conserved {
		set[p] = true
	}
	mapper := aln.QueryMapper()
	dc.SetHexColor(colMarker)
	dc.SetLineWidth(1.5)
	for c := 1; c <= cols; c++ {
		pos, ok := mapper.Pos(c)
		if !ok || !set[posOffset+pos] {
			continue
		}
		dc.DrawCircle(colX(c-1)+float64(cw)/2, float64(marginT)-7, 3.5)
		dc.Stroke()
	}

	// identifier labels and residue glyphs
	for r := 0; r < rows; r++ {
		rowY := float64(marginT + r*rh + rh/2)

		dc.SetHexColor(colText)
		dc.DrawStringAnchored(aln.Matrix.IDs[r], float64(labelW)-8, rowY, 1, 0.5)
		for c := 0; c < cols; c++ {
			dc.DrawStringAnchored(string(aln.Matrix.Rows[r][c]), colX(c)+float64(cw)/2, rowY, 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// strokeString draws s centered at (x, y) in white over a dark outline.
// gg has no path effects, so the outline is the same string drawn at
// the eight surrounding offsets.
func strokeString(dc *gg.Context, s string, x, y float64) {
	dc.SetRGBA255(0, 0, 0, 153)
	for dx := -1.0; dx <= 1; dx++ {
		for dy := -1.0; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawStringAnchored(s, x+dx, y+dy, 0.5, 0.5)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}
