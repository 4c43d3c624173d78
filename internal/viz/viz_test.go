package viz

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liyang-lab/ConSite/internal/msa"
)

// pix extracts the raw pixel buffer so two renders can be compared
func pix(t *testing.T, im image.Image) []byte {
	t.Helper()
	rgba, ok := im.(*image.RGBA)
	require.True(t, ok, "renderer should produce an RGBA image")
	return rgba.Pix
}

func TestHit_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		hit       Hit
		wantStart int
		wantEnd   int
	}{
		{"ordered", Hit{AliStart: 10, AliEnd: 50}, 10, 50},
		{"reversed pair is swapped", Hit{AliStart: 50, AliEnd: 10}, 10, 50},
		{"single position", Hit{AliStart: 7, AliEnd: 7}, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.hit.Bounds()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Bounds() = %d, %d, want %d, %d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestDomainMap(t *testing.T) {
	o := DefaultOptions()

	t.Run("empty inputs degrade to a bare baseline", func(t *testing.T) {
		im, err := DomainMap(o, 200, nil, nil)
		require.NoError(t, err)

		b := im.Bounds()
		assert.Equal(t, o.MapWidth, b.Dx())
		assert.Equal(t, o.MapHeight, b.Dy())
	})

	t.Run("non-positive length violates the contract", func(t *testing.T) {
		for _, n := range []int{0, -5} {
			_, err := DomainMap(o, n, nil, nil)

			var ce *ContractError
			require.Error(t, err)
			assert.True(t, errors.As(err, &ce))
		}
	})

	t.Run("reversed hit bounds render identically", func(t *testing.T) {
		a, err := DomainMap(o, 200, []Hit{{Family: "PF00001", AliStart: 50, AliEnd: 10}}, nil)
		require.NoError(t, err)
		b, err := DomainMap(o, 200, []Hit{{Family: "PF00001", AliStart: 10, AliEnd: 50}}, nil)
		require.NoError(t, err)

		assert.True(t, bytes.Equal(pix(t, a), pix(t, b)))
	})

	t.Run("conserved markers change the render", func(t *testing.T) {
		plain, err := DomainMap(o, 200, nil, nil)
		require.NoError(t, err)
		marked, err := DomainMap(o, 200, nil, []int{25, 100})
		require.NoError(t, err)

		assert.False(t, bytes.Equal(pix(t, plain), pix(t, marked)))
	})
}

func TestHitPanel(t *testing.T) {
	o := DefaultOptions()
	seq := strings.Repeat("ACDEFGHIKL", 20) // 200 residues

	t.Run("reversed hit bounds render identically", func(t *testing.T) {
		a, err := HitPanel(o, seq, Hit{Family: "PF00001", AliStart: 50, AliEnd: 10}, nil)
		require.NoError(t, err)
		b, err := HitPanel(o, seq, Hit{Family: "PF00001", AliStart: 10, AliEnd: 50}, nil)
		require.NoError(t, err)

		assert.True(t, bytes.Equal(pix(t, a), pix(t, b)))
	})

	t.Run("markers never leave the panel's own range", func(t *testing.T) {
		hit := Hit{Family: "PF00001", AliStart: 10, AliEnd: 50}

		plain, err := HitPanel(o, seq, hit, nil)
		require.NoError(t, err)

		// everything out of range: must render exactly like no markers
		outside, err := HitPanel(o, seq, hit, []int{1, 9, 51, 199, 1000})
		require.NoError(t, err)
		assert.True(t, bytes.Equal(pix(t, plain), pix(t, outside)))

		// an in-range position must show up
		inside, err := HitPanel(o, seq, hit, []int{30})
		require.NoError(t, err)
		assert.False(t, bytes.Equal(pix(t, plain), pix(t, inside)))
	})

	t.Run("panel width scales with region length", func(t *testing.T) {
		small, err := HitPanel(o, seq, Hit{Family: "PF00001", AliStart: 1, AliEnd: 20}, nil)
		require.NoError(t, err)
		large, err := HitPanel(o, seq, Hit{Family: "PF00001", AliStart: 1, AliEnd: 200}, nil)
		require.NoError(t, err)

		assert.Equal(t, o.PanelBaseWidth, small.Bounds().Dx())
		assert.Equal(t, int(o.PerChar*200), large.Bounds().Dx())
	})

	t.Run("hit outside the query violates the contract", func(t *testing.T) {
		tests := []struct {
			name string
			seq  string
			hit  Hit
		}{
			{"empty query", "", Hit{AliStart: 1, AliEnd: 5}},
			{"hit beyond the query", "ACGT", Hit{AliStart: 10, AliEnd: 20}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := HitPanel(o, tt.seq, tt.hit, nil)

				var ce *ContractError
				require.Error(t, err)
				assert.True(t, errors.As(err, &ce))
			})
		}
	})

	t.Run("hit overlapping the query end is clamped", func(t *testing.T) {
		im, err := HitPanel(o, "ACGTACGT", Hit{Family: "PF00001", AliStart: 5, AliEnd: 20}, nil)
		require.NoError(t, err)
		assert.NotNil(t, im)
	})
}

func testAlignment() *msa.Alignment {
	return &msa.Alignment{
		Matrix: &msa.Matrix{
			IDs:  []string{"query", "seq2", "seq3"},
			Rows: [][]byte{[]byte("AC-GT"), []byte("ACAGT"), []byte("AC-G-")},
		},
		Meta: map[string]msa.Meta{},
		Mask: msa.MatchMask{true, true, false, true, true},
	}
}

func TestMSAPanel(t *testing.T) {
	o := DefaultOptions()

	t.Run("renders a grid for every row", func(t *testing.T) {
		im, err := MSAPanel(o, testAlignment(), nil, 0)
		require.NoError(t, err)
		assert.NotNil(t, im)
	})

	t.Run("conserved query positions change the render", func(t *testing.T) {
		plain, err := MSAPanel(o, testAlignment(), nil, 0)
		require.NoError(t, err)
		marked, err := MSAPanel(o, testAlignment(), []int{2}, 0)
		require.NoError(t, err)

		assert.False(t, bytes.Equal(pix(t, plain), pix(t, marked)))
	})

	t.Run("offset shifts which positions are marked", func(t *testing.T) {
		// with offset 9, query position 2 of the panel is whole-query 11
		marked, err := MSAPanel(o, testAlignment(), []int{11}, 9)
		require.NoError(t, err)
		markedNoOffset, err := MSAPanel(o, testAlignment(), []int{2}, 0)
		require.NoError(t, err)

		assert.True(t, bytes.Equal(pix(t, marked), pix(t, markedNoOffset)))
	})

	t.Run("zero columns violate the contract", func(t *testing.T) {
		empty := &msa.Alignment{Matrix: &msa.Matrix{}, Mask: msa.MatchMask{}}
		_, err := MSAPanel(o, empty, nil, 0)

		var ce *ContractError
		require.Error(t, err)
		assert.True(t, errors.As(err, &ce))
	})
}

func TestTrack(t *testing.T) {
	o := DefaultOptions()

	t.Run("empty scores degrade to bare axes", func(t *testing.T) {
		im, err := Track(o, nil, "Conservation (JSD)")
		require.NoError(t, err)
		assert.Equal(t, o.TrackWidth, im.Bounds().Dx())
	})

	t.Run("scores draw a line", func(t *testing.T) {
		bare, err := Track(o, nil, "Conservation (JSD)")
		require.NoError(t, err)
		lined, err := Track(o, []float64{0.1, 0.9, 0.4, 0.7}, "Conservation (JSD)")
		require.NoError(t, err)

		assert.False(t, bytes.Equal(pix(t, bare), pix(t, lined)))
	})
}

func TestSavePNG(t *testing.T) {
	o := DefaultOptions()
	im, err := DomainMap(o, 50, nil, nil)
	require.NoError(t, err)

	t.Run("writes a decodable PNG and no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "domain_map.png")
		require.NoError(t, SavePNG(path, im))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		decoded, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, im.Bounds(), decoded.Bounds())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory leaves nothing behind", func(t *testing.T) {
		err := SavePNG(filepath.Join(t.TempDir(), "nope", "out.png"), im)
		assert.Error(t, err)
	})
}
