package dither

import (
	"image"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

func clampFloat(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

// snapshot returns a copy of the pixel data of m. Offsets computed with
// m.PixOffset are valid for the copy.
func snapshot(m *image.NRGBA) []uint8 {
	return append(m.Pix[:0:0], m.Pix...)
}

// Diffuse quantizes m to the colors of p in place using the error diffusion
// kernel k, matching colors with metric mt.
//
// Colors are read from a working copy of the image which accumulates the
// error pushed forward from each visited pixel; the chosen palette color is
// written to m. A pixel of m is therefore never changed once it has been
// visited. The alpha channel is left untouched.
func Diffuse(m *image.NRGBA, p palette.Palette, k Kernel, mt colorspace.Metric) {
	if m == nil || p.Empty() || k.Denominator == 0 {
		return
	}

	matcher := palette.NewMatcher(p, mt)
	work := snapshot(m)

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		taps := k.Offsets(y)
		reversed := k.reversed(y)

		for i := 0; i < w; i++ {
			x := i
			if reversed {
				x = w - 1 - i
			}

			o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			r, g, bl := work[o], work[o+1], work[o+2]

			c := matcher.Nearest(palette.Color{R: r, G: g, B: bl})
			m.Pix[o+0] = c.R
			m.Pix[o+1] = c.G
			m.Pix[o+2] = c.B

			er := int(r) - int(c.R)
			eg := int(g) - int(c.G)
			eb := int(bl) - int(c.B)
			if er == 0 && eg == 0 && eb == 0 {
				continue
			}

			for _, t := range taps {
				nx, ny := x+t.DX, y+t.DY
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := m.PixOffset(b.Min.X+nx, b.Min.Y+ny)
				work[n+0] = clamp(int(work[n+0]) + er*t.Weight/k.Denominator)
				work[n+1] = clamp(int(work[n+1]) + eg*t.Weight/k.Denominator)
				work[n+2] = clamp(int(work[n+2]) + eb*t.Weight/k.Denominator)
			}
		}
	}
}
