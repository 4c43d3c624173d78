package viz

import (
	"image"

	"github.com/fogleman/gg"
)

// Track draws the per-position conservation score line, one score per
// ungapped position, on a fixed [0, 1] y axis. An empty score slice
// degrades to bare axes.
func Track(o Options, scores []float64, title string) (image.Image, error) {
	const (
		marginL = 40
		marginR = 20
		marginT = 34
		marginB = 34
	)
	w, h := o.TrackWidth, o.TrackHeight
	plotW := float64(w - marginL - marginR)
	plotH := float64(h - marginT - marginB)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// axes box
	dc.SetHexColor(colCell)
	dc.SetLineWidth(1)
	dc.DrawRectangle(marginL, marginT, plotW, plotH)
	dc.Stroke()

	if len(scores) > 0 {
		x := func(i int) float64 {
			if len(scores) == 1 {
				return marginL + plotW/2
			}
			return marginL + float64(i)/float64(len(scores)-1)*plotW
		}
		y := func(s float64) float64 {
			if s < 0 {
				s = 0
			}
			if s > 1 {
				s = 1
			}
			return float64(marginT) + (1-s)*plotH
		}

		dc.SetHexColor("#1f77b4")
		dc.SetLineWidth(1.5)
		dc.MoveTo(x(0), y(scores[0]))
		for i := 1; i < len(scores); i++ {
			dc.LineTo(x(i), y(scores[i]))
		}
		dc.Stroke()
	}

	dc.SetHexColor(colText)
	dc.DrawStringAnchored(title, float64(w)/2, float64(marginT)/2, 0.5, 0.5)
	dc.DrawStringAnchored("Sequence position (aligned)", float64(w)/2, float64(h)-float64(marginB)/2, 0.5, 0.5)

	return dc.Image(), nil
}
