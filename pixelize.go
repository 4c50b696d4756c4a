/*
Package pixelize is a library for turning images into pixel art rendered with
a fixed palette.
*/
package pixelize

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/pixelize/palette"
)

// Renderer renders images. It is safe for concurrent use.
type Renderer struct {
	cache   *Cache
	library *palette.Library
	logger  *log.Logger
}

// New returns a Renderer. The cache is optional. If library is nil only the
// built-in palettes are available.
func New(cache *Cache, library *palette.Library, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if library == nil {
		library = palette.NewLibrary(logger)
	}
	return &Renderer{
		cache:   cache,
		library: library,
		logger:  logger,
	}
}

// Palettes returns every palette the Renderer knows about
func (r *Renderer) Palettes() []palette.Palette {
	return r.library.All()
}

// Palette returns the palette to use for req. Explicit colors win over the
// palette name; an unknown name resolves to the default palette.
func (r *Renderer) Palette(req Request) palette.Palette {
	if len(req.PaletteColors) > 0 {
		p := palette.Palette{Name: req.PaletteName}
		for _, s := range req.PaletteColors {
			c, err := palette.ParseHex(s)
			if err != nil {
				r.logger.Printf("Skipping color \"%s\": %s\n", s, err)
				continue
			}
			p.Colors = append(p.Colors, c)
		}
		if !p.Empty() {
			return p.Dedup()
		}
	}

	return r.library.Resolve(req.PaletteName)
}
