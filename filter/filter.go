/*
Package filter implements the cosmetic filter chain applied to whole images,
independent of any palette.
*/
package filter

import (
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/gift"
)

const (
	// MaxWorkingSize caps the longest side of the image the chain runs on
	MaxWorkingSize = 640

	vhsPrefix = "VHS"
)

// Step is one entry of a filter chain
type Step struct {
	Name    string  `json:"name" toml:"name"`
	Enabled bool    `json:"enabled" toml:"enabled"`
	Amount  float64 `json:"amount" toml:"amount"`
}

// Known reports whether the step names a filter this package implements.
// Names are matched case-insensitively; "VHS" and numbered variants such as
// "VHS 2" are all the VHS filter.
func (s Step) Known() bool {
	name := strings.ToUpper(strings.TrimSpace(s.Name))
	return name == vhsPrefix || strings.HasPrefix(name, vhsPrefix+" ")
}

// ToNRGBA converts img to an *image.NRGBA with its origin at (0, 0)
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), img, b.Min, draw.Src)
	return m
}

// Working returns img converted to NRGBA and, if either side is longer than
// limit, shrunk with linear filtering so that it fits
func Working(img image.Image, limit int) *image.NRGBA {
	m := ToNRGBA(img)
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	if limit < 1 || (w <= limit && h <= limit) {
		return m
	}

	scale := math.Min(float64(limit)/float64(w), float64(limit)/float64(h))
	tw := int(math.Max(math.Floor(float64(w)*scale), 1))
	th := int(math.Max(math.Floor(float64(h)*scale), 1))

	return render(m, gift.Resize(tw, th, gift.LinearResampling))
}

// Chain runs every enabled, known step over m in order. Unknown steps are
// ignored.
func Chain(m *image.NRGBA, steps []Step) *image.NRGBA {
	for _, s := range steps {
		if !s.Enabled || !s.Known() {
			continue
		}
		m = VHS(m, s.Amount)
	}
	return m
}

// Fit scales m for display. Images that fit within size are enlarged by the
// largest whole factor that keeps them within size; larger images are shrunk
// to fit. Nearest neighbour sampling is used throughout.
func Fit(m *image.NRGBA, size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	if w == 0 || h == 0 {
		return m
	}

	var tw, th int
	if w <= size && h <= size {
		factor := size / w
		if f := size / h; f < factor {
			factor = f
		}
		if factor < 1 {
			factor = 1
		}
		tw, th = w*factor, h*factor
	} else {
		scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
		tw = int(math.Max(math.Floor(float64(w)*scale), 1))
		th = int(math.Max(math.Floor(float64(h)*scale), 1))
	}

	if tw == w && th == h {
		return m
	}
	return render(m, gift.Resize(tw, th, gift.NearestNeighborResampling))
}
