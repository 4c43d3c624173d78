// Package viz renders the ConSite raster artifacts: the whole-sequence
// domain map, per-hit character panels, seed alignment panels, and the
// conservation track. Every renderer is a pure function from typed
// inputs to an image.Image; callers decide file placement.
package viz

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Hit is one reported region of the query sequence matching a known
// family model. It is produced by an external search step and read-only
// here. AliStart/AliEnd are 1-based inclusive ungapped query positions
// and may arrive reversed.
type Hit struct {
	Family   string  `json:"family"`
	AliStart int     `json:"ali_start"`
	AliEnd   int     `json:"ali_end"`
	Evalue   float64 `json:"evalue"`
	Score    float64 `json:"score"`
}

// Bounds returns the hit's normalized start and end, swapping the pair
// when the end is numerically before the start
func (h Hit) Bounds() (start, end int) {
	start, end = h.AliStart, h.AliEnd
	if end < start {
		start, end = end, start
	}
	return
}

// ContractError reports invalid geometry passed by the caller, like a
// non-positive sequence length or a hit entirely outside the query.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string {
	return "renderer contract violation: " + e.Msg
}

// Options are the renderer's geometry settings. Zero values are not
// usable; start from DefaultOptions.
type Options struct {
	// MapWidth and MapHeight size the domain map in pixels
	MapWidth  int
	MapHeight int

	// PanelBaseWidth is the minimum hit panel width; PerChar widens the
	// panel per residue so characters stay legible at any hit size
	PanelBaseWidth int
	PerChar        float64
	PanelHeight    int

	// seed alignment panel geometry
	MSAColWidth  int
	MSARowHeight int
	MaxMSARows   int

	// conservation track geometry
	TrackWidth  int
	TrackHeight int
}

// DefaultOptions mirrors the proportions of the original figures
func DefaultOptions() Options {
	return Options{
		MapWidth:       1000,
		MapHeight:      180,
		PanelBaseWidth: 1000,
		PerChar:        14,
		PanelHeight:    180,
		MSAColWidth:    12,
		MSARowHeight:   16,
		MaxMSARows:     40,
		TrackWidth:     1000,
		TrackHeight:    220,
	}
}

// SavePNG writes an image to path atomically: the encode goes to a
// temp file in the same directory which is renamed over the target, so
// a failed render never leaves a partial file behind.
func SavePNG(path string, im image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".consite-*.png")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := png.Encode(tmp, im); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// palette shared by the renderers, matching the original figures
const (
	colBaseline = "#444444"
	colBand     = "#7fb3d5"
	colMarker   = "#d62728"
	colCell     = "#cccccc"
	colText     = "#222222"
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
