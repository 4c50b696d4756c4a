package dither

import (
	"image"
	"runtime"
	"sync"

	"github.com/bodgit/pixelize/palette"
)

// eachRow calls fn for every row in [0, h). Rows are split into contiguous
// blocks, one per worker.
func eachRow(h int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		for y := 0; y < h; y++ {
			fn(y)
		}
		return
	}

	block := (h + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < h; start += block {
		end := start + block
		if end > h {
			end = h
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for y := start; y < end; y++ {
				fn(y)
			}
		}(start, end)
	}
	wg.Wait()
}

// pointFunc maps the color of the pixel at (x, y), relative to the image
// origin, to its replacement
type pointFunc func(x, y int, c palette.Color) palette.Color

// mapPixels replaces every pixel of m with the result of fn. Each output
// pixel depends only on the same input pixel so rows are processed in
// parallel. The alpha channel is left untouched.
func mapPixels(m *image.NRGBA, fn pointFunc) {
	b := m.Bounds()
	w := b.Dx()

	eachRow(b.Dy(), func(y int) {
		for x := 0; x < w; x++ {
			o := m.PixOffset(b.Min.X+x, b.Min.Y+y)
			c := fn(x, y, palette.Color{R: m.Pix[o], G: m.Pix[o+1], B: m.Pix[o+2]})
			m.Pix[o+0] = c.R
			m.Pix[o+1] = c.G
			m.Pix[o+2] = c.B
		}
	})
}
