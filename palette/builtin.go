package palette

// DefaultName is the palette used when a requested palette cannot be found
const DefaultName = "Flying Tiger"

var builtins = []struct {
	name string
	hex  []string
}{
	{DefaultName, []string{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ffa500", "#800080", "#ff69b4", "#00ffff"}},
	{"Black & White", []string{"#000000", "#ffffff"}},
	{"Cozy 8", []string{"#2e294e", "#541388", "#f1e9da", "#ffd400", "#d90368", "#0081a7", "#00afb9", "#fed9b7"}},
	{"Retro Gaming", []string{"#0f0f23", "#262b44", "#3e4a5c", "#5a6988", "#738699", "#8ea3b0", "#a4c0c7", "#c0dddd"}},
	{"Sunset Vibes", []string{"#2d1b69", "#11296b", "#0f4c75", "#3282b8", "#bbe1fa", "#ff6b6b", "#ffa726", "#ffcc02"}},
	{"Forest Dreams", []string{"#1a3a2e", "#16423c", "#0f3460", "#533a71", "#6a994e", "#a7c957", "#f2e8cf", "#bc4749"}},
}

// Builtin returns a fresh copy of the built-in palettes
func Builtin() []Palette {
	palettes := make([]Palette, 0, len(builtins))
	for _, b := range builtins {
		p := Palette{Name: b.name}
		for _, h := range b.hex {
			if c, err := ParseHex(h); err == nil {
				p.Colors = append(p.Colors, c)
			}
		}
		palettes = append(palettes, p)
	}
	return palettes
}
