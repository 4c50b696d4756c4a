package filter

import (
	"image"
	"math"
	"math/rand"

	"github.com/disintegration/gift"
)

const grainSeed = 0xdeadbeef

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

func clamp(v float64) uint8 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

func clone(m *image.NRGBA) *image.NRGBA {
	dup := image.NewNRGBA(m.Bounds())
	copy(dup.Pix, m.Pix)
	return dup
}

func render(m *image.NRGBA, filters ...gift.Filter) *image.NRGBA {
	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

// softPixelate shrinks m by up to 18% with linear filtering and scales it
// back up with nearest neighbour, losing fine detail
func softPixelate(m *image.NRGBA, amount float64) *image.NRGBA {
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	scale := 1 - 0.18*amount
	tw := int(math.Max(float64(w)*scale, 1))
	th := int(math.Max(float64(h)*scale, 1))

	small := render(m, gift.Resize(tw, th, gift.LinearResampling))
	return render(small, gift.Resize(w, h, gift.NearestNeighborResampling))
}

// grade applies a slight contrast boost, a warm tint and a gamma lift
func grade(m *image.NRGBA, amount float64) *image.NRGBA {
	contrast := 1 + 0.06*amount
	gamma := 1 - 0.08*amount
	warmR, warmB := 1+0.05*amount, 1-0.05*amount

	channel := func(v float32, warm float64) float32 {
		c := ((float64(v)*255-128)*contrast + 128) * warm
		return float32(math.Pow(math.Max(c/255, 0), 1/gamma))
	}

	return render(m, gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
		return channel(r, warmR), channel(g, 1), channel(b, warmB), a
	}))
}

// chromaShift offsets the red channel right and the blue channel left by one
// or two pixels
func chromaShift(m *image.NRGBA, amount float64) *image.NRGBA {
	shift := 1
	if amount >= 0.5 {
		shift = 2
	}

	out := clone(m)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			xr := x - shift
			if xr < b.Min.X {
				xr = b.Min.X
			}
			xb := x + shift
			if xb >= b.Max.X {
				xb = b.Max.X - 1
			}

			o := out.PixOffset(x, y)
			out.Pix[o+0] = m.Pix[m.PixOffset(xr, y)+0]
			out.Pix[o+2] = m.Pix[m.PixOffset(xb, y)+2]
		}
	}

	return out
}

// scanlines darkens every odd row by up to 12%
func scanlines(m *image.NRGBA, amount float64) {
	darken := 1 - 0.12*amount
	b := m.Bounds()
	for y := 1; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			for i := 0; i < 3; i++ {
				m.Pix[o+i] = clamp(float64(m.Pix[o+i]) * darken)
			}
		}
	}
}

func luma(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// bloom adds a blurred copy of the brightest pixels back on top of m
func bloom(m *image.NRGBA, amount float64) *image.NRGBA {
	threshold := 200 - 60*amount

	mask := image.NewNRGBA(m.Bounds())
	for i := 0; i < len(m.Pix); i += 4 {
		if luma(m.Pix[i], m.Pix[i+1], m.Pix[i+2]) > threshold {
			copy(mask.Pix[i:i+4], m.Pix[i:i+4])
		}
	}

	radius := 2
	if amount >= 0.5 {
		radius = 3
	}
	blurred := render(mask, gift.Mean(2*radius+1, false))

	strength := 0.18 + 0.2*amount
	out := clone(m)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = clamp(float64(out.Pix[i+c]) + strength*float64(blurred.Pix[i+c]))
		}
	}

	return out
}

// grain adds uniform noise of up to ±6 levels. The generator is seeded so
// the same input always produces the same output.
func grain(m *image.NRGBA, amount float64) {
	r := rand.New(rand.NewSource(grainSeed))
	limit := 6 * clamp01(amount)
	for i := 0; i < len(m.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			delta := (r.Float64()*2 - 1) * limit
			m.Pix[i+c] = clamp(float64(m.Pix[i+c]) + delta)
		}
	}
}

// vignette darkens pixels by up to 20% with the square of their distance
// from the centre
func vignette(m *image.NRGBA, amount float64) {
	b := m.Bounds()
	cx := (float64(b.Dx()) - 1) / 2
	cy := (float64(b.Dy()) - 1) / 2
	maxR := math.Hypot(cx, cy)
	if maxR == 0 {
		return
	}
	strength := 0.08 + 0.12*amount

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r := math.Hypot(float64(x)-cx, float64(y)-cy) / maxR
			v := 1 - strength*r*r
			o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			for i := 0; i < 3; i++ {
				m.Pix[o+i] = clamp(float64(m.Pix[o+i]) * v)
			}
		}
	}
}

// VHS returns a copy of m made to look like a frame of worn video tape.
// Amount is clamped to [0, 1]. The alpha channel is kept.
func VHS(m *image.NRGBA, amount float64) *image.NRGBA {
	if m == nil || m.Bounds().Empty() {
		return m
	}
	amount = clamp01(amount)

	work := softPixelate(m, amount)
	work = grade(work, amount)
	work = chromaShift(work, amount)
	scanlines(work, amount)
	work = bloom(work, amount)
	grain(work, 0.6+0.4*amount)
	vignette(work, amount)

	// Resampling may have touched alpha
	restoreAlpha(work, m)

	return work
}

func restoreAlpha(dst, src *image.NRGBA) {
	sb := src.Bounds()
	db := dst.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			dst.Pix[dst.PixOffset(db.Min.X+x, db.Min.Y+y)+3] = src.Pix[src.PixOffset(sb.Min.X+x, sb.Min.Y+y)+3]
		}
	}
}
