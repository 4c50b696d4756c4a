package filter

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func TestStepKnown(t *testing.T) {
	tables := []struct {
		name  string
		known bool
	}{
		{"VHS", true},
		{"vhs", true},
		{" VHS 3 ", true},
		{"VHSX", false},
		{"Sepia", false},
		{"", false},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.known, Step{Name: table.name}.Known())
		})
	}
}

func TestChainSkips(t *testing.T) {
	m := uniform(4, 4, color.NRGBA{R: 100, A: 255})
	out := Chain(m, []Step{
		{Name: "VHS", Enabled: false, Amount: 1},
		{Name: "Sepia", Enabled: true, Amount: 1},
	})
	assert.Same(t, m, out)
}

func TestChainRuns(t *testing.T) {
	m := uniform(16, 16, color.NRGBA{R: 100, G: 120, B: 140, A: 255})
	out := Chain(m, []Step{{Name: "vhs", Enabled: true, Amount: 0.5}})
	assert.NotSame(t, m, out)
	assert.Equal(t, VHS(m, 0.5).Pix, out.Pix)
}

func TestVHS(t *testing.T) {
	m := uniform(20, 12, color.NRGBA{R: 90, G: 160, B: 210, A: 255})
	m.SetNRGBA(3, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 10})

	for _, amount := range []float64{-1, 0, 0.3, 0.7, 1, 5} {
		out := VHS(m, amount)
		require.Equal(t, m.Bounds(), out.Bounds())

		for y := 0; y < 12; y++ {
			for x := 0; x < 20; x++ {
				assert.Equal(t, m.NRGBAAt(x, y).A, out.NRGBAAt(x, y).A)
			}
		}

		// Seeded grain makes the chain repeatable
		assert.Equal(t, out.Pix, VHS(m, amount).Pix)
	}

	assert.Nil(t, VHS(nil, 1))
}

func TestScanlines(t *testing.T) {
	m := uniform(2, 4, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	scanlines(m, 0.5)

	assert.Equal(t, uint8(200), m.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(188), m.NRGBAAt(0, 1).R)
	assert.Equal(t, uint8(200), m.NRGBAAt(1, 2).G)
	assert.Equal(t, uint8(188), m.NRGBAAt(1, 3).B)
	assert.Equal(t, uint8(255), m.NRGBAAt(1, 3).A)
}

func TestChromaShift(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	m.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 11, B: 12, A: 255})
	m.SetNRGBA(1, 0, color.NRGBA{R: 20, G: 21, B: 22, A: 255})
	m.SetNRGBA(2, 0, color.NRGBA{R: 30, G: 31, B: 32, A: 255})

	out := chromaShift(m, 0)
	assert.Equal(t, color.NRGBA{R: 10, G: 11, B: 22, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 21, B: 32, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 20, G: 31, B: 32, A: 255}, out.NRGBAAt(2, 0))

	out = chromaShift(m, 1)
	assert.Equal(t, color.NRGBA{R: 10, G: 21, B: 32, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 31, B: 32, A: 255}, out.NRGBAAt(2, 0))
}

func TestVignette(t *testing.T) {
	m := uniform(3, 3, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	vignette(m, 0)

	assert.Equal(t, uint8(100), m.NRGBAAt(1, 1).R)
	assert.Equal(t, uint8(92), m.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(92), m.NRGBAAt(2, 2).B)
	assert.True(t, m.NRGBAAt(1, 0).R > 92 && m.NRGBAAt(1, 0).R < 100)

	single := uniform(1, 1, color.NRGBA{R: 100, A: 255})
	vignette(single, 1)
	assert.Equal(t, uint8(100), single.NRGBAAt(0, 0).R)
}

func TestGrain(t *testing.T) {
	m := uniform(8, 8, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	grain(m, 1)

	var changed bool
	for i := 0; i < len(m.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, 128, int(m.Pix[i+c]), 6)
			if m.Pix[i+c] != 128 {
				changed = true
			}
		}
		assert.Equal(t, uint8(255), m.Pix[i+3])
	}
	assert.True(t, changed)
}

func TestBloom(t *testing.T) {
	dark := uniform(8, 8, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	assert.Equal(t, dark.Pix, bloom(dark, 1).Pix)

	bright := uniform(9, 9, color.NRGBA{A: 255})
	bright.SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out := bloom(bright, 0)
	assert.Greater(t, out.NRGBAAt(5, 4).R, uint8(0))
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).R)
}

func TestWorking(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1280, 640))
	m := Working(big, MaxWorkingSize)
	assert.Equal(t, image.Rect(0, 0, 640, 320), m.Bounds())

	small := image.NewRGBA(image.Rect(10, 10, 110, 60))
	m = Working(small, MaxWorkingSize)
	assert.Equal(t, image.Rect(0, 0, 100, 50), m.Bounds())
}

func TestFit(t *testing.T) {
	tables := []struct {
		name       string
		w, h, size int
		want       image.Rectangle
	}{
		{"enlarge", 10, 5, 560, image.Rect(0, 0, 560, 280)},
		{"enlarge uneven", 100, 30, 560, image.Rect(0, 0, 500, 150)},
		{"shrink", 1000, 500, 560, image.Rect(0, 0, 560, 280)},
		{"exact", 560, 560, 560, image.Rect(0, 0, 560, 560)},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := uniform(table.w, table.h, color.NRGBA{R: 1, A: 255})
			out := Fit(m, table.size)
			assert.Equal(t, table.want, out.Bounds())
			assert.Equal(t, uint8(1), out.NRGBAAt(out.Bounds().Dx()-1, 0).R)
		})
	}
}
