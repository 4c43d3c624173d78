package viz

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// DomainMap draws the whole-sequence linear map: a baseline spanning
// positions 1..seqLen, one translucent band per hit, and an open-circle
// marker per conserved position. Overlapping bands are drawn in input
// order and simply blend. An empty hit list or conserved set degrades
// to a bare baseline; seqLen below 1 violates the caller contract.
func DomainMap(o Options, seqLen int, hits []Hit, conserved []int) (image.Image, error) {
	if seqLen < 1 {
		return nil, &ContractError{Msg: fmt.Sprintf("sequence length %d, need >= 1", seqLen)}
	}

	const (
		marginL = 40
		marginR = 20
		marginT = 34
		marginB = 34
	)
	w, h := o.MapWidth, o.MapHeight
	plotW := float64(w - marginL - marginR)
	plotH := float64(h - marginT - marginB)
	midY := float64(marginT) + plotH/2

	// x maps a 1-based ungapped position to a pixel, with positions
	// occupying [p-0.5, p+0.5] cells so seqLen == 1 still has width
	x := func(p float64) float64 {
		return float64(marginL) + (p-0.5)/float64(seqLen)*plotW
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// hit bands under the baseline
	dc.SetRGBA255(0x7f, 0xb3, 0xd5, 204)
	for _, hit := range hits {
		start, end := hit.Bounds()
		dc.DrawRectangle(x(float64(start)-0.5), midY-plotH/4, x(float64(end)+0.5)-x(float64(start)-0.5), plotH/2)
		dc.Fill()
	}

	// baseline
	dc.SetHexColor(colBaseline)
	dc.SetLineWidth(1.5)
	dc.DrawLine(x(1), midY, x(float64(seqLen)), midY)
	dc.Stroke()

	// conserved markers: hollow circles on the baseline
	dc.SetHexColor(colMarker)
	dc.SetLineWidth(1.5)
	for _, p := range conserved {
		dc.DrawCircle(x(float64(p)), midY, 4.5)
		dc.Stroke()
	}

	dc.SetHexColor(colText)
	dc.DrawStringAnchored("Domain map with conserved sites", float64(w)/2, float64(marginT)/2, 0.5, 0.5)
	dc.DrawStringAnchored("Sequence position", float64(w)/2, float64(h)-float64(marginB)/2, 0.5, 0.5)

	return dc.Image(), nil
}
