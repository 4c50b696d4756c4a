/*
Package palette implements fixed color palettes and the lookup of the closest
palette entries for a given color.

Palette order is significant; when two entries are equally close to a color
the entry that appears first in the palette is chosen.
*/
package palette

import (
	"image/color"

	"github.com/bodgit/pixelize/colorspace"
)

// Color is an opaque 8-bit sRGB color
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Lab returns the color converted to CIE L*a*b*
func (c Color) Lab() colorspace.Lab {
	return colorspace.ToLab(c.R, c.G, c.B)
}

// Palette is a named, ordered list of colors
type Palette struct {
	Name   string
	Colors []Color
}

// Len returns the number of colors in the palette
func (p Palette) Len() int {
	return len(p.Colors)
}

// Empty reports whether the palette has no colors
func (p Palette) Empty() bool {
	return len(p.Colors) == 0
}

// ColorPalette returns the palette as a color.Palette suitable for use with
// image.Paletted
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		cp[i] = c
	}
	return cp
}

// Dedup returns a copy of the palette with repeated colors removed, keeping
// the first occurrence of each
func (p Palette) Dedup() Palette {
	seen := make(map[Color]struct{}, len(p.Colors))
	colors := make([]Color, 0, len(p.Colors))
	for _, c := range p.Colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	return Palette{
		Name:   p.Name,
		Colors: colors,
	}
}
