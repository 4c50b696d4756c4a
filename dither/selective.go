package dither

import (
	"image"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

const (
	// DefaultOrderedThreshold is the Lab distance above which the ordered
	// selective variant starts mixing colors
	DefaultOrderedThreshold = 25.0
	// DefaultRandomizedThreshold is the equivalent for the randomized
	// selective variant
	DefaultRandomizedThreshold = 30.0

	noiseSeed = 12345
)

// noise returns a deterministic pseudo-random value in [0, 1] for (x, y).
// All arithmetic wraps at 32 bits.
func noise(x, y, seed uint32) float64 {
	n := x*73 + y*37 + seed
	n ^= n << 13
	n = n - (n*(n*15731+789221) + 1376312589)
	return float64(n&0x7fffffff) / float64(0x7fffffff)
}

// selective maps each pixel to its closest palette color unless that color
// is further than limit away, in which case signal decides between the two
// closest colors. The second color is chosen when signal exceeds the
// proportion d1 / (d1 + d2).
func selective(m *image.NRGBA, p palette.Palette, limit float64, signal func(x, y int) float64) {
	if m == nil || p.Empty() {
		return
	}

	matcher := palette.NewMatcher(p, colorspace.MetricEuclidean)

	mapPixels(m, func(x, y int, c palette.Color) palette.Color {
		c1, d1, c2, d2 := matcher.TwoNearest(c)
		if d1 <= limit {
			return c1
		}

		ratio := 0.5
		if d1+d2 > 0 {
			ratio = d1 / (d1 + d2)
		}

		if signal(x, y) > ratio {
			return c2
		}
		return c1
	})
}

// OrderedSelective quantizes m to the colors of p in place. Pixels further
// than limit from their closest color are mixed with the second closest
// color using a fixed 8x8 threshold matrix.
func OrderedSelective(m *image.NRGBA, p palette.Palette, limit float64) {
	selective(m, p, limit, func(x, y int) float64 {
		return threshold(ordered8, x, y)
	})
}

// RandomizedSelective is like OrderedSelective but uses a deterministic
// noise function in place of the matrix
func RandomizedSelective(m *image.NRGBA, p palette.Palette, limit float64) {
	selective(m, p, limit, func(x, y int) float64 {
		return noise(uint32(x), uint32(y), noiseSeed)
	})
}

// DualColor quantizes m to the colors of p in place, using the closest color
// for pixels brighter than one half and the second closest otherwise
func DualColor(m *image.NRGBA, p palette.Palette) {
	if m == nil || p.Empty() {
		return
	}

	matcher := palette.NewMatcher(p, colorspace.MetricEuclidean)

	mapPixels(m, func(_, _ int, c palette.Color) palette.Color {
		c1, _, c2, _ := matcher.TwoNearest(c)
		if colorspace.Brightness(c.R, c.G, c.B) > 0.5 {
			return c1
		}
		return c2
	})
}
