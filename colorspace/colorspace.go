/*
Package colorspace implements the conversion of 8-bit sRGB values into CIE
L*a*b* using the D65 reference white, along with the color difference metrics
used to match pixels against a palette.

Three metrics are provided; plain Euclidean distance in Lab, a weighted
variant that favours hue and chroma over lightness, and the full CIEDE2000
formula with unit parametric weights.
*/
package colorspace

import "math"

// D65 reference white tristimulus values
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

const (
	labEpsilon = 0.008856
	labKappa   = 7.787
	labOffset  = 16.0 / 116.0
)

// Lab is a color in the CIE L*a*b* color space
type Lab struct {
	L, A, B float64
}

func linearize(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func f(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}

// ToLab converts an 8-bit sRGB triple to Lab
func ToLab(r, g, b uint8) Lab {
	rn := linearize(float64(r) / 255)
	gn := linearize(float64(g) / 255)
	bn := linearize(float64(b) / 255)

	x := (rn*0.4124564 + gn*0.3575761 + bn*0.1804375) / whiteX
	y := (rn*0.2126729 + gn*0.7151522 + bn*0.0721750) / whiteY
	z := (rn*0.0193339 + gn*0.1191920 + bn*0.9503041) / whiteZ

	fx, fy, fz := f(x), f(y), f(z)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// Brightness returns the perceived brightness of an 8-bit sRGB triple in the
// range [0, 1] using the Rec. 601 luma coefficients
func Brightness(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// Luminance returns the Rec. 709 luma of an 8-bit sRGB triple in the range
// [0, 255]
func Luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}
