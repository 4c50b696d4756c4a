/*
Package adjust implements the cosmetic adjustments applied to the working grid
before it is reduced to a palette.
*/
package adjust

import (
	"image"
	"math"

	"github.com/disintegration/gift"
)

const (
	minDenoiseSigma = 0.01
	gammaTolerance  = 0.001
	minGamma        = 0.05
)

// Options holds the adjustments to apply. The zero value changes nothing.
type Options struct {
	// DenoiseSigma is the standard deviation of a Gaussian blur, applied
	// only when greater than 0.01
	DenoiseSigma float64 `json:"denoise_sigma,omitempty" toml:"denoise_sigma"`
	// ToneGamma raises each channel to the power 1/ToneGamma. Zero is
	// treated as 1. Values below 0.05 are clamped.
	ToneGamma float64 `json:"tone_gamma,omitempty" toml:"tone_gamma"`
	// Contrast, in percent, from -100 to 100
	Contrast float64 `json:"contrast,omitempty" toml:"contrast"`
	// Saturation, in percent, from -100 to 500
	Saturation float64 `json:"saturation,omitempty" toml:"saturation"`
	// Hue rotation in degrees, from -180 to 180
	Hue    float64 `json:"hue,omitempty" toml:"hue"`
	Invert bool    `json:"invert,omitempty" toml:"invert"`
}

func (o Options) gamma() (float64, bool) {
	g := o.ToneGamma
	if g == 0 || math.Abs(g-1) <= gammaTolerance {
		return 1, false
	}
	return math.Max(g, minGamma), true
}

// Filters returns the gift filters for o in the order they are applied:
// denoise, tone gamma, contrast, saturation, hue and finally inversion.
func (o Options) Filters() []gift.Filter {
	var filters []gift.Filter

	if o.DenoiseSigma > minDenoiseSigma {
		filters = append(filters, gift.GaussianBlur(float32(o.DenoiseSigma)))
	}
	if g, ok := o.gamma(); ok {
		filters = append(filters, gift.Gamma(float32(g)))
	}
	if o.Contrast != 0 {
		filters = append(filters, gift.Contrast(float32(o.Contrast)))
	}
	if o.Saturation != 0 {
		filters = append(filters, gift.Saturation(float32(o.Saturation)))
	}
	if o.Hue != 0 {
		filters = append(filters, gift.Hue(float32(o.Hue)))
	}
	if o.Invert {
		filters = append(filters, gift.Invert())
	}

	return filters
}

// IsZero reports whether o would leave an image unchanged
func (o Options) IsZero() bool {
	return len(o.Filters()) == 0
}

// Apply returns m with the adjustments in o applied. If there is nothing to
// do m itself is returned, otherwise a new image of the same bounds.
func Apply(m *image.NRGBA, o Options) *image.NRGBA {
	filters := o.Filters()
	if m == nil || len(filters) == 0 {
		return m
	}

	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)

	return dst
}
