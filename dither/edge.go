package dither

import (
	"image"
	"math"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

type edgeTap struct {
	dx, dy int
	weight float64
}

// Floyd-Steinberg weights, scaled per pixel by the local edge direction
var edgeTaps = []edgeTap{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// Below this gradient magnitude the weights are used unchanged
const edgeMinGradient = 0.01

// sobel returns the horizontal and vertical gradient of the luma of the
// working buffer at (x, y). Samples outside the image read as zero.
func sobel(m *image.NRGBA, work []uint8, x, y int) (float64, float64) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
		return colorspace.Luminance(work[o], work[o+1], work[o+2]) / 255
	}

	tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
	ml, mr := at(x-1, y), at(x+1, y)
	bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

	gx := -tl + tr - 2*ml + 2*mr - bl + br
	gy := -tl - 2*tc - tr + bl + 2*bc + br

	return gx, gy
}

// Edge quantizes m to the colors of p in place using Floyd-Steinberg error
// diffusion where each tap weight is scaled by up to 2x depending on how
// closely its offset follows the local edge, so error flows along edges
// rather than across them. Colors are matched with CIEDE2000.
func Edge(m *image.NRGBA, p palette.Palette) {
	if m == nil || p.Empty() {
		return
	}

	matcher := palette.NewMatcher(p, colorspace.MetricCIEDE2000)
	work := snapshot(m)

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			r, g, bl := work[o], work[o+1], work[o+2]

			c := matcher.Nearest(palette.Color{R: r, G: g, B: bl})
			m.Pix[o+0] = c.R
			m.Pix[o+1] = c.G
			m.Pix[o+2] = c.B

			gx, gy := sobel(m, work, x, y)
			mag := math.Hypot(gx, gy)

			// Edge tangent, perpendicular to the gradient
			tx, ty := -gy, gx

			er := float64(r) - float64(c.R)
			eg := float64(g) - float64(c.G)
			eb := float64(bl) - float64(c.B)

			for _, t := range edgeTaps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}

				steer := 1.0
				if mag > edgeMinGradient {
					steer = math.Min(1+math.Abs(float64(t.dx)*tx+float64(t.dy)*ty), 2)
				}
				weight := t.weight * steer

				n := m.PixOffset(b.Min.X+nx, b.Min.Y+ny)
				work[n+0] = clampFloat(float64(work[n+0]) + er*weight)
				work[n+1] = clampFloat(float64(work[n+1]) + eg*weight)
				work[n+2] = clampFloat(float64(work[n+2]) + eb*weight)
			}
		}
	}
}
