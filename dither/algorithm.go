/*
Package dither implements the algorithms that reduce an image to the colors of
a fixed palette.

Every algorithm works in place on an *image.NRGBA, rewriting only the red,
green and blue channels. An empty palette leaves the image unchanged.

Error diffusion kernels must visit pixels in scan order and so run on a single
goroutine. The remaining algorithms only ever look at one pixel at a time and
process rows in parallel.
*/
package dither

import (
	"fmt"
	"image"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/bodgit/pixelize/palette"
)

// Kind identifies the family of an Algorithm
type Kind int

const (
	// KindNearest maps each pixel to its closest palette color.
	KindNearest Kind = iota
	// KindDiffusion uses an error diffusion Kernel.
	KindDiffusion
	// KindBayer uses an ordered Bayer threshold matrix.
	KindBayer
	// KindSelective mixes the two closest colors only for pixels poorly
	// served by the closest.
	KindSelective
	// KindDualColor picks between the two closest colors by brightness.
	KindDualColor

	kindCount
)

var kindNames = [kindCount]string{
	"Nearest", "Diffusion", "Bayer", "Selective", "DualColor",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Mode selects the secondary signal used by a KindSelective algorithm
type Mode int

const (
	// ModeOrdered uses a fixed 8x8 matrix.
	ModeOrdered Mode = iota
	// ModeRandomized uses deterministic per-pixel noise.
	ModeRandomized
	// ModeEdgeAware steers Floyd-Steinberg diffusion along image edges.
	ModeEdgeAware
)

// Algorithm is a fully configured dithering algorithm. Only the fields
// relevant to Kind are used.
type Algorithm struct {
	Name string
	Kind Kind

	// KindNearest
	Metric   colorspace.Metric
	Artistic bool

	// KindDiffusion
	Kernel Kernel

	// KindBayer
	MatrixSize int

	// KindSelective
	Mode      Mode
	Threshold float64
}

// Parallel reports whether the algorithm processes rows concurrently
func (a Algorithm) Parallel() bool {
	switch a.Kind {
	case KindDiffusion:
		return false
	case KindSelective:
		return a.Mode != ModeEdgeAware
	}
	return true
}

// Apply runs the algorithm over m using the colors of p
func (a Algorithm) Apply(m *image.NRGBA, p palette.Palette) {
	if m == nil || p.Empty() {
		return
	}

	switch a.Kind {
	case KindDiffusion:
		Diffuse(m, p, a.Kernel, a.Metric)
	case KindBayer:
		Bayer(m, p, a.MatrixSize)
	case KindSelective:
		switch a.Mode {
		case ModeRandomized:
			RandomizedSelective(m, p, a.Threshold)
		case ModeEdgeAware:
			Edge(m, p)
		default:
			OrderedSelective(m, p, a.Threshold)
		}
	case KindDualColor:
		DualColor(m, p)
	default:
		if a.Artistic {
			Artistic(m, p)
			return
		}
		Nearest(m, p, a.Metric)
	}
}

// Standard is the fallback algorithm used for unknown names
var Standard = Algorithm{Name: "Standard", Kind: KindNearest, Metric: colorspace.MetricCIEDE2000}

func diffusion(k Kernel) Algorithm {
	return Algorithm{Name: k.Name, Kind: KindDiffusion, Kernel: k, Metric: colorspace.MetricCIEDE2000}
}

func bayer(name string, size int) Algorithm {
	return Algorithm{Name: name, Kind: KindBayer, MatrixSize: size}
}

var algorithms = []Algorithm{
	Standard,
	{Name: "Enhanced", Kind: KindNearest, Metric: colorspace.MetricWeighted},
	{Name: "Artistic", Kind: KindNearest, Metric: colorspace.MetricEuclidean, Artistic: true},
	{Name: "Selective", Kind: KindNearest, Metric: colorspace.MetricEuclidean},
	diffusion(FloydSteinberg),
	bayer("Bayer", 4),
	bayer("Bayer 2x2", 2),
	bayer("Bayer 4x4", 4),
	bayer("Bayer 8x8", 8),
	diffusion(Stucki),
	diffusion(Atkinson),
	diffusion(Burkes),
	diffusion(Sierra),
	diffusion(TwoRowSierra),
	diffusion(SierraLite),
	diffusion(JarvisJudiceNinke),
	{Name: "Ordered Selective", Kind: KindSelective, Mode: ModeOrdered, Threshold: DefaultOrderedThreshold},
	{Name: "Randomized Selective", Kind: KindSelective, Mode: ModeRandomized, Threshold: DefaultRandomizedThreshold},
	{Name: "Edge Dithering", Kind: KindSelective, Mode: ModeEdgeAware},
	{Name: "Dual Color Dithering", Kind: KindDualColor},
}

var aliases = map[string]string{
	"Floyd–Steinberg":           FloydSteinberg.Name,
	"Jarvis, Judice, and Ninke": JarvisJudiceNinke.Name,
}

// Names returns the canonical name of every algorithm
func Names() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.Name
	}
	return names
}

// Find returns the algorithm with the given name
func Find(name string) (Algorithm, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	for _, a := range algorithms {
		if a.Name == name {
			return a, true
		}
	}
	return Algorithm{}, false
}

// Lookup returns the algorithm with the given name, or Standard if there is
// no such algorithm
func Lookup(name string) Algorithm {
	if a, ok := Find(name); ok {
		return a
	}
	return Standard
}

// Apply runs the named algorithm over m using the colors of p
func Apply(m *image.NRGBA, p palette.Palette, name string) {
	Lookup(name).Apply(m, p)
}
