package palette

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	errBadHex       = errors.New("palette: invalid hex color")
	errBadHeader    = errors.New("palette: missing GIMP Palette header")
	errUnknownKind  = errors.New("palette: unknown palette file type")
	errNoColors     = errors.New("palette: no colors defined")
	errBadComponent = errors.New("palette: color component out of range")
)

// ParseHex parses a color of the form "#rrggbb" or "rrggbb"
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, errBadHex
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, errBadHex
	}
	return Color{b[0], b[1], b[2]}, nil
}

// Hex returns the color formatted as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseComponent(s string) (uint8, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 255 {
		return 0, errBadComponent
	}
	return uint8(v), nil
}

// DecodeGPL reads a GIMP palette. If the file doesn't carry a Name line then
// name is used instead.
func DecodeGPL(r io.Reader, name string) (Palette, error) {
	s := bufio.NewScanner(r)

	if !s.Scan() {
		if err := s.Err(); err != nil {
			return Palette{}, err
		}
		return Palette{}, errBadHeader
	}
	if strings.TrimSpace(strings.TrimPrefix(s.Text(), "\ufeff")) != "GIMP Palette" {
		return Palette{}, errBadHeader
	}

	p := Palette{Name: name}
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "Name:"):
			if n := strings.TrimSpace(strings.TrimPrefix(line, "Name:")); n != "" {
				p.Name = n
			}
			continue
		case strings.HasPrefix(line, "Columns:"):
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Palette{}, fmt.Errorf("palette: malformed line %q", line)
		}

		var rgb [3]uint8
		for i := range rgb {
			v, err := parseComponent(fields[i])
			if err != nil {
				return Palette{}, fmt.Errorf("palette: malformed line %q: %w", line, err)
			}
			rgb[i] = v
		}
		p.Colors = append(p.Colors, Color{rgb[0], rgb[1], rgb[2]})
	}
	if err := s.Err(); err != nil {
		return Palette{}, err
	}

	if p.Empty() {
		return Palette{}, errNoColors
	}

	return p, nil
}

type tomlPalette struct {
	Name   string   `toml:"name"`
	Colors []string `toml:"colors"`
}

// DecodeTOML reads a palette of the form:
//
//	name = "Game Boy"
//	colors = ["#0f380f", "#306230", "#8bac0f", "#9bbc0f"]
//
// Entries that aren't valid hex colors are skipped.
func DecodeTOML(r io.Reader, name string) (Palette, error) {
	var tp tomlPalette
	if _, err := toml.NewDecoder(r).Decode(&tp); err != nil {
		return Palette{}, err
	}

	p := Palette{Name: name}
	if tp.Name != "" {
		p.Name = tp.Name
	}
	for _, h := range tp.Colors {
		c, err := ParseHex(h)
		if err != nil {
			continue
		}
		p.Colors = append(p.Colors, c)
	}

	if p.Empty() {
		return Palette{}, errNoColors
	}

	return p, nil
}

// Load reads a palette file, choosing the decoder based on the file
// extension. The palette name defaults to the base name of the file.
// Repeated colors are removed.
func Load(file string) (Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return Palette{}, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	var p Palette
	switch strings.ToLower(filepath.Ext(file)) {
	case ".gpl":
		p, err = DecodeGPL(f, name)
	case ".toml":
		p, err = DecodeTOML(f, name)
	default:
		return Palette{}, errUnknownKind
	}
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", file, err)
	}

	return p.Dedup(), nil
}
