package adjust

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

func TestFilters(t *testing.T) {
	tables := []struct {
		name    string
		options Options
		filters int
	}{
		{"zero", Options{}, 0},
		{"tiny sigma", Options{DenoiseSigma: 0.01}, 0},
		{"denoise", Options{DenoiseSigma: 0.5}, 1},
		{"unit gamma", Options{ToneGamma: 1.0005}, 0},
		{"gamma", Options{ToneGamma: 1.2}, 1},
		{"everything", Options{DenoiseSigma: 1, ToneGamma: 0.8, Contrast: 10, Saturation: -20, Hue: 45, Invert: true}, 6},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Len(t, table.options.Filters(), table.filters)
			assert.Equal(t, table.filters == 0, table.options.IsZero())
		})
	}
}

func TestGammaClamp(t *testing.T) {
	g, ok := Options{ToneGamma: 0.001}.gamma()
	assert.True(t, ok)
	assert.Equal(t, minGamma, g)

	_, ok = Options{}.gamma()
	assert.False(t, ok)
}

func TestApplyZero(t *testing.T) {
	m := uniform(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	assert.Same(t, m, Apply(m, Options{}))
	assert.Nil(t, Apply(nil, Options{Invert: true}))
}

func TestInvert(t *testing.T) {
	m := uniform(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	out := Apply(m, Options{Invert: true})

	require.Equal(t, m.Bounds(), out.Bounds())
	c := out.NRGBAAt(1, 1)
	assert.InDelta(t, 245, int(c.R), 1)
	assert.InDelta(t, 235, int(c.G), 1)
	assert.InDelta(t, 225, int(c.B), 1)
	assert.Equal(t, uint8(128), c.A)

	// The source is untouched
	assert.Equal(t, uint8(10), m.NRGBAAt(1, 1).R)
}

func TestToneGamma(t *testing.T) {
	m := uniform(1, 1, color.NRGBA{R: 64, G: 0, B: 255, A: 255})
	out := Apply(m, Options{ToneGamma: 2})

	c := out.NRGBAAt(0, 0)
	// (64/255)^(1/2) * 255
	assert.InDelta(t, 128, int(c.R), 1)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(255), c.B)
}

func TestDesaturate(t *testing.T) {
	m := uniform(1, 1, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	c := Apply(m, Options{Saturation: -100}).NRGBAAt(0, 0)

	assert.InDelta(t, int(c.R), int(c.G), 1)
	assert.InDelta(t, int(c.G), int(c.B), 1)
}

func TestHueKeepsGrey(t *testing.T) {
	m := uniform(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	c := Apply(m, Options{Hue: 90}).NRGBAAt(0, 0)

	assert.InDelta(t, 100, int(c.R), 1)
	assert.InDelta(t, 100, int(c.G), 1)
	assert.InDelta(t, 100, int(c.B), 1)
}

func TestDenoiseFlat(t *testing.T) {
	m := uniform(9, 9, color.NRGBA{R: 50, G: 150, B: 250, A: 255})
	out := Apply(m, Options{DenoiseSigma: 1.5})

	c := out.NRGBAAt(4, 4)
	assert.InDelta(t, 50, int(c.R), 1)
	assert.InDelta(t, 150, int(c.G), 1)
	assert.InDelta(t, 250, int(c.B), 1)
}

func TestDenoiseSmooths(t *testing.T) {
	m := uniform(9, 1, color.NRGBA{A: 255})
	m.SetNRGBA(4, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out := Apply(m, Options{DenoiseSigma: 1})

	assert.Less(t, out.NRGBAAt(4, 0).R, uint8(255))
	assert.Greater(t, out.NRGBAAt(3, 0).R, uint8(0))
	assert.Greater(t, out.NRGBAAt(5, 0).R, uint8(0))
}
