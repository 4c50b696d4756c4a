package dither

import (
	"image"
	"math"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

var (
	bayer2 = [][]uint8{
		{0, 2},
		{3, 1},
	}

	bayer4 = [][]uint8{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	}

	bayer8 = [][]uint8{
		{0, 48, 12, 60, 3, 51, 15, 63},
		{32, 16, 44, 28, 35, 19, 47, 31},
		{8, 56, 4, 52, 11, 59, 7, 55},
		{40, 24, 36, 20, 43, 27, 39, 23},
		{2, 50, 14, 62, 1, 49, 13, 61},
		{34, 18, 46, 30, 33, 17, 45, 29},
		{10, 58, 6, 54, 9, 57, 5, 53},
		{42, 26, 38, 22, 41, 25, 37, 21},
	}

	// Used by the ordered selective variant; not a Bayer matrix
	ordered8 = [][]uint8{
		{0, 32, 8, 40, 2, 34, 10, 42},
		{48, 16, 56, 24, 50, 18, 58, 26},
		{12, 44, 4, 36, 14, 46, 6, 38},
		{60, 28, 52, 20, 62, 30, 54, 22},
		{3, 35, 11, 43, 1, 33, 9, 41},
		{51, 19, 59, 27, 49, 17, 57, 25},
		{15, 47, 7, 39, 13, 45, 5, 37},
		{63, 31, 55, 23, 61, 29, 53, 21},
	}
)

// bayerMatrix returns the Bayer matrix of the given size. Sizes other than 2
// and 8 get the 4x4 matrix.
func bayerMatrix(size int) [][]uint8 {
	switch size {
	case 2:
		return bayer2
	case 8:
		return bayer8
	default:
		return bayer4
	}
}

// threshold returns the cell of matrix for (x, y) normalised to [0, 1)
func threshold(matrix [][]uint8, x, y int) float64 {
	n := len(matrix)
	return float64(matrix[y%n][x%n]) / float64(n*n)
}

// Bayer quantizes m to the colors of p in place using an NxN Bayer matrix.
//
// Each pixel is mapped to either its closest or second closest palette color
// (by Euclidean Lab distance). The second color is chosen only when the
// matrix threshold is below the brightness gap to the closest color and the
// second color's brightness gap is less than 1.5 times that.
func Bayer(m *image.NRGBA, p palette.Palette, size int) {
	if m == nil || p.Empty() {
		return
	}

	matrix := bayerMatrix(size)
	matcher := palette.NewMatcher(p, colorspace.MetricEuclidean)

	mapPixels(m, func(x, y int, c palette.Color) palette.Color {
		c1, _, c2, _ := matcher.TwoNearest(c)

		br := colorspace.Brightness(c.R, c.G, c.B)
		diff1 := math.Abs(br - colorspace.Brightness(c1.R, c1.G, c1.B))
		diff2 := math.Abs(br - colorspace.Brightness(c2.R, c2.G, c2.B))

		if threshold(matrix, x, y) < diff1 && diff2 < diff1*1.5 {
			return c2
		}
		return c1
	})
}
