package dither

import (
	"image"
	"math"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

// Nearest maps every pixel of m to its closest color in p using metric mt.
// There is no error diffusion.
func Nearest(m *image.NRGBA, p palette.Palette, mt colorspace.Metric) {
	if m == nil || p.Empty() {
		return
	}

	matcher := palette.NewMatcher(p, mt)

	mapPixels(m, func(_, _ int, c palette.Color) palette.Color {
		return matcher.Nearest(c)
	})
}

func stretch(v uint8) uint8 {
	return clampFloat((float64(v)-128)*1.2 + 128)
}

// Artistic boosts the contrast of each pixel by 20% and then maps it to the
// closest color in p by Euclidean Lab distance plus a small position
// dependent term.
func Artistic(m *image.NRGBA, p palette.Palette) {
	if m == nil || p.Empty() {
		return
	}

	labs := make([]colorspace.Lab, len(p.Colors))
	for i, c := range p.Colors {
		labs[i] = c.Lab()
	}

	mapPixels(m, func(x, y int, c palette.Color) palette.Color {
		lab := colorspace.ToLab(stretch(c.R), stretch(c.G), stretch(c.B))
		spatial := (math.Sin(float64(x)*0.7) + math.Cos(float64(y)*0.5)) * 2

		best, bestD := 0, math.Inf(1)
		for i, pl := range labs {
			if d := colorspace.Euclidean(lab, pl) + spatial; d < bestD {
				best, bestD = i, d
			}
		}
		return p.Colors[best]
	})
}
