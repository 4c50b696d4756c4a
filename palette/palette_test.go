package palette

import (
	"image"
	"image/color"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/pixelize/colorspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = Color{0, 0, 0}
	white = Color{255, 255, 255}
	red   = Color{255, 0, 0}
	green = Color{0, 255, 0}
	blue  = Color{0, 0, 255}
)

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{0x12, 0x34, 0x56}.RGBA()
	assert.Equal(t, uint32(0x1212), r)
	assert.Equal(t, uint32(0x3434), g)
	assert.Equal(t, uint32(0x5656), b)
	assert.Equal(t, uint32(0xffff), a)

	var _ color.Color = Color{}
}

func TestParseHex(t *testing.T) {
	tables := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ff0000", red, true},
		{"00FF00", green, true},
		{"  #0000ff ", blue, true},
		{"#fff", Color{}, false},
		{"#gg0000", Color{}, false},
		{"", Color{}, false},
		{"#12345678", Color{}, false},
	}

	for _, table := range tables {
		t.Run(table.in, func(t *testing.T) {
			c, err := ParseHex(table.in)
			if !table.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.want, c)
			assert.Equal(t, strings.ToLower(strings.TrimPrefix(strings.TrimSpace(table.in), "#")), c.Hex()[1:])
		})
	}
}

func TestDedup(t *testing.T) {
	p := Palette{Name: "dup", Colors: []Color{red, black, red, white, black}}
	d := p.Dedup()
	assert.Equal(t, "dup", d.Name)
	assert.Equal(t, []Color{red, black, white}, d.Colors)
	assert.Len(t, p.Colors, 5)
}

func TestColorPalette(t *testing.T) {
	p := Palette{Name: "rgb", Colors: []Color{red, green, blue, black}}
	cp := p.ColorPalette()
	require.Len(t, cp, 4)

	m := image.NewPaletted(image.Rect(0, 0, 4, 1), cp)
	for x, c := range p.Colors {
		m.Set(x, 0, c)
	}

	for x, c := range p.Colors {
		assert.Equal(t, uint8(x), m.ColorIndexAt(x, 0))
		assert.Equal(t, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, color.NRGBAModel.Convert(m.At(x, 0)))
	}

	assert.Empty(t, Palette{}.ColorPalette())
}

func TestNearest(t *testing.T) {
	p := Palette{Colors: []Color{black, white, red, green, blue}}

	for _, m := range []colorspace.Metric{colorspace.MetricEuclidean, colorspace.MetricWeighted, colorspace.MetricCIEDE2000} {
		t.Run(m.String(), func(t *testing.T) {
			matcher := NewMatcher(p, m)
			assert.Equal(t, m, matcher.Metric())
			assert.Equal(t, 5, matcher.Len())

			assert.Equal(t, red, matcher.Nearest(Color{250, 10, 10}))
			assert.Equal(t, black, matcher.Nearest(Color{5, 5, 5}))
			assert.Equal(t, white, matcher.Nearest(Color{250, 250, 250}))

			// Exact palette members always map to themselves
			for i, c := range p.Colors {
				assert.Equal(t, i, matcher.NearestIndex(c))
			}
		})
	}
}

func TestNearestMinimises(t *testing.T) {
	p := Builtin()[2]
	matcher := NewMatcher(p, colorspace.MetricCIEDE2000)

	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				c := Color{uint8(r), uint8(g), uint8(b)}
				got := matcher.Nearest(c)
				d := colorspace.CIEDE2000(c.Lab(), got.Lab())
				for _, other := range p.Colors {
					assert.LessOrEqual(t, d, colorspace.CIEDE2000(c.Lab(), other.Lab()))
				}
			}
		}
	}
}

func TestNearestTieBreak(t *testing.T) {
	// Duplicate entries tie so the first occurrence wins
	p := Palette{Colors: []Color{black, white, white, black}}
	matcher := NewMatcher(p, colorspace.MetricEuclidean)
	assert.Equal(t, 1, matcher.NearestIndex(Color{250, 250, 250}))
	assert.Equal(t, 0, matcher.NearestIndex(Color{5, 5, 5}))

	p = Palette{Colors: []Color{{100, 100, 100}, {100, 100, 100}}}
	assert.Equal(t, 0, NewMatcher(p, colorspace.MetricCIEDE2000).NearestIndex(Color{90, 90, 90}))
}

func TestNearestEmpty(t *testing.T) {
	matcher := NewMatcher(Palette{}, colorspace.MetricCIEDE2000)
	c := Color{1, 2, 3}
	assert.Equal(t, -1, matcher.NearestIndex(c))
	assert.Equal(t, c, matcher.Nearest(c))

	c1, d1, c2, d2 := matcher.TwoNearest(c)
	assert.Equal(t, c, c1)
	assert.Equal(t, c, c2)
	assert.Zero(t, d1)
	assert.Zero(t, d2)
}

func TestTwoNearest(t *testing.T) {
	p := Palette{Colors: []Color{white, {200, 0, 0}, black, red}}
	matcher := NewMatcher(p, colorspace.MetricEuclidean)

	c1, d1, c2, d2 := matcher.TwoNearest(Color{250, 0, 0})
	assert.Equal(t, red, c1)
	assert.Equal(t, Color{200, 0, 0}, c2)
	assert.LessOrEqual(t, d1, d2)

	// Best found first then demoted
	p = Palette{Colors: []Color{{200, 0, 0}, red}}
	c1, c2 = TwoNearest(Color{250, 0, 0}, p, colorspace.MetricEuclidean)
	assert.Equal(t, red, c1)
	assert.Equal(t, Color{200, 0, 0}, c2)
}

func TestTwoNearestSingle(t *testing.T) {
	c1, d1, c2, d2 := NewMatcher(Palette{Colors: []Color{red}}, colorspace.MetricEuclidean).TwoNearest(blue)
	assert.Equal(t, red, c1)
	assert.Equal(t, red, c2)
	assert.Greater(t, d1, 0.0)
	assert.True(t, math.IsInf(d2, 1))
}

func TestTwoNearestTie(t *testing.T) {
	c1, _, c2, _ := NewMatcher(Palette{Colors: []Color{red, red, blue}}, colorspace.MetricEuclidean).TwoNearest(red)
	assert.Equal(t, red, c1)
	assert.Equal(t, red, c2)
}

func TestPackageNearest(t *testing.T) {
	p := Palette{Colors: []Color{black, white}}
	assert.Equal(t, white, Nearest(Color{255, 0, 0}, p, colorspace.MetricCIEDE2000))
}

const gpl = `GIMP Palette
Name: Game Boy
Columns: 4
#
 15  56  15	darkest
 48  98  48	dark
139 172  15	light
155 188  15	lightest
 48  98  48	duplicate
`

func TestDecodeGPL(t *testing.T) {
	p, err := DecodeGPL(strings.NewReader(gpl), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Game Boy", p.Name)
	assert.Len(t, p.Colors, 5)
	assert.Equal(t, Color{15, 56, 15}, p.Colors[0])
	assert.Equal(t, Color{155, 188, 15}, p.Colors[3])

	p, err = DecodeGPL(strings.NewReader("GIMP Palette\n0 0 0\n255 255 255\n"), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", p.Name)
	assert.Equal(t, []Color{black, white}, p.Colors)
}

func TestDecodeGPLErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"JASC-PAL\n0 0 0\n",
		"GIMP Palette\n",
		"GIMP Palette\n0 0\n",
		"GIMP Palette\n0 0 256\n",
		"GIMP Palette\nred green blue\n",
	} {
		_, err := DecodeGPL(strings.NewReader(in), "x")
		assert.Error(t, err, in)
	}
}

func TestDecodeTOML(t *testing.T) {
	p, err := DecodeTOML(strings.NewReader(`
name = "Primaries"
colors = ["#ff0000", "00ff00", "nonsense", "#0000ff"]
`), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Primaries", p.Name)
	assert.Equal(t, []Color{red, green, blue}, p.Colors)

	p, err = DecodeTOML(strings.NewReader(`colors = ["#000000"]`), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", p.Name)

	_, err = DecodeTOML(strings.NewReader(`colors = []`), "fallback")
	assert.Error(t, err)

	_, err = DecodeTOML(strings.NewReader(`colors = [`), "fallback")
	assert.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	palettes := Builtin()
	require.NotEmpty(t, palettes)
	assert.Equal(t, DefaultName, palettes[0].Name)
	assert.Len(t, palettes[0].Colors, 10)
	for _, p := range palettes {
		assert.False(t, p.Empty(), p.Name)
	}

	// Copies are independent
	palettes[0].Colors[0] = white
	assert.Equal(t, black, Builtin()[0].Colors[0])
}

func TestLibrary(t *testing.T) {
	dir, err := ioutil.TempDir("", "palette")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "gameboy.gpl"), []byte(gpl), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "mono.toml"), []byte(`colors = ["#000000", "#ffffff", "#000000"]`), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "bw.toml"), []byte(`name = "Black & White"
colors = ["#ff0000"]`), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "broken.gpl"), []byte("not a palette"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0644))

	l := NewLibrary(nil)
	require.NoError(t, l.LoadDir(dir))

	p, ok := l.Lookup("Game Boy")
	require.True(t, ok)
	assert.Len(t, p.Colors, 4)

	p, ok = l.Lookup("mono")
	require.True(t, ok)
	assert.Equal(t, []Color{black, white}, p.Colors)

	// Built-ins win over loaded palettes with the same name
	p, ok = l.Lookup("Black & White")
	require.True(t, ok)
	assert.Equal(t, []Color{black, white}, p.Colors)

	_, ok = l.Lookup("broken")
	assert.False(t, ok)

	assert.Equal(t, DefaultName, l.Resolve("no such palette").Name)
	assert.Len(t, l.All(), len(Builtin())+2)

	assert.False(t, l.Add(Palette{Name: "empty"}))
	assert.NoError(t, l.LoadDir(filepath.Join(dir, "missing")))
}
