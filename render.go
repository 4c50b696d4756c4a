package pixelize

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/bodgit/pixelize/adjust"
	"github.com/bodgit/pixelize/dither"
	"github.com/bodgit/pixelize/filter"
	"golang.org/x/image/draw"
)

func resizeToGrid(img image.Image, w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(m, m.Bounds(), img, img.Bounds(), draw.Src, nil)
	return m
}

// UpscaleCenter enlarges m by the largest whole factor that fits within a
// size by size square, never less than one, and centres it on a transparent
// canvas of that size. Anything that does not fit is cropped.
func UpscaleCenter(m image.Image, size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return canvas
	}

	factor := size / w
	if f := size / h; f < factor {
		factor = f
	}
	if factor < 1 {
		factor = 1
	}

	sw, sh := w*factor, h*factor
	x, y := (size-sw)/2, (size-sh)/2
	draw.NearestNeighbor.Scale(canvas, image.Rect(x, y, x+sw, y+sh), m, b, draw.Src, nil)

	return canvas
}

// Render reduces img to the grid, adjustments, palette and algorithm
// described by req, ignoring req.ImageDataURL. The result is grid sized.
func (r *Renderer) Render(img image.Image, req Request) *image.NRGBA {
	w, h := ResolveGrid(req)

	grid := resizeToGrid(img, w, h)
	grid = adjust.Apply(grid, req.Options)
	dither.Apply(grid, r.Palette(req), req.Algorithm)

	return grid
}

type fingerprint struct {
	Width, Height int
	Algorithm     string
	Palette       []string
	Options       adjust.Options
	Preview       bool
	DisplaySize   int
}

// key returns the cache key for rendering src with req
func (r *Renderer) key(src []byte, req Request, preview bool) (string, error) {
	fp := fingerprint{
		Algorithm: dither.Lookup(req.Algorithm).Name,
		Options:   req.Options,
		Preview:   preview,
	}
	fp.Width, fp.Height = ResolveGrid(req)
	if preview {
		fp.DisplaySize = displaySize(req.DisplaySize)
	}
	for _, c := range r.Palette(req).Colors {
		fp.Palette = append(fp.Palette, c.Hex())
	}

	b, err := json.Marshal(fp)
	if err != nil {
		return "", err
	}

	h := sha1.New()
	h.Write(src)
	h.Write(b)

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// renderPNG renders the encoded image src and returns the result as a PNG,
// consulting the cache first if there is one
func (r *Renderer) renderPNG(src []byte, req Request, preview bool) ([]byte, error) {
	sha, err := r.key(src, req, preview)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		b, err := r.cache.Get(sha)
		if err != nil {
			return nil, err
		}
		if b != nil {
			r.logger.Printf("Cache hit for %s\n", sha)
			return b, nil
		}
	}

	img, err := decodeImage(src)
	if err != nil {
		return nil, err
	}

	var m image.Image = r.Render(img, req)
	if preview {
		m = UpscaleCenter(m, displaySize(req.DisplaySize))
	}

	b, err := encodePNG(m)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Put(sha, b); err != nil {
			return nil, err
		}
		r.logger.Printf("Cached %s\n", sha)
	}

	return b, nil
}

// RenderBase renders req and returns the grid sized result as a PNG data URL
func (r *Renderer) RenderBase(req Request) (string, error) {
	src, err := decodeDataURL(req.ImageDataURL)
	if err != nil {
		return "", err
	}

	b, err := r.renderPNG(src, req, false)
	if err != nil {
		return "", err
	}

	return pngDataURL(b), nil
}

// RenderPreview renders req and returns the result enlarged and centred on
// a square canvas of req.DisplaySize as a PNG data URL
func (r *Renderer) RenderPreview(req Request) (string, error) {
	src, err := decodeDataURL(req.ImageDataURL)
	if err != nil {
		return "", err
	}

	b, err := r.renderPNG(src, req, true)
	if err != nil {
		return "", err
	}

	return pngDataURL(b), nil
}

// RenderFile renders the image in file, ignoring req.ImageDataURL, and
// returns the result as a PNG
func (r *Renderer) RenderFile(file string, req Request, preview bool) ([]byte, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	b, err := r.renderPNG(src, req, preview)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return b, nil
}

func filterImage(img image.Image, steps []filter.Step, size int) *image.NRGBA {
	m := filter.Working(img, filter.MaxWorkingSize)
	m = filter.Chain(m, steps)
	return filter.Fit(m, displaySize(size))
}

// RenderFilters runs the filter chain in req over its image and returns the
// result scaled for display as a PNG data URL
func (r *Renderer) RenderFilters(req FilterRequest) (string, error) {
	img, err := DecodeDataURL(req.ImageDataURL)
	if err != nil {
		return "", err
	}

	return EncodeDataURL(filterImage(img, req.Steps, req.DisplaySize))
}

// FilterFile runs the filter chain in req over the image in file, ignoring
// req.ImageDataURL, and returns the result as a PNG
func (r *Renderer) FilterFile(file string, req FilterRequest) ([]byte, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return encodePNG(filterImage(img, req.Steps, req.DisplaySize))
}
