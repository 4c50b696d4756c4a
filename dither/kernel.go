package dither

// Tap is a single error diffusion target relative to the current pixel
type Tap struct {
	DX, DY int
	Weight int
}

// Kernel describes an error diffusion algorithm. Each tap receives
// Weight/Denominator of the quantization error. The taps are given for a
// left-to-right scan; serpentine kernels scan odd rows right-to-left with the
// horizontal offsets mirrored.
type Kernel struct {
	Name        string
	Taps        []Tap
	Denominator int
	Serpentine  bool
}

// Offsets returns the taps in effect when scanning the given row
func (k Kernel) Offsets(row int) []Tap {
	if !k.Serpentine || row%2 == 0 {
		return k.Taps
	}
	mirrored := make([]Tap, len(k.Taps))
	for i, t := range k.Taps {
		mirrored[i] = Tap{DX: -t.DX, DY: t.DY, Weight: t.Weight}
	}
	return mirrored
}

// reversed reports whether the given row is scanned right-to-left
func (k Kernel) reversed(row int) bool {
	return k.Serpentine && row%2 == 1
}

// Sum returns the total of all tap weights. For most kernels this equals the
// denominator; Atkinson only distributes 6/8 of the error.
func (k Kernel) Sum() int {
	var sum int
	for _, t := range k.Taps {
		sum += t.Weight
	}
	return sum
}

var (
	// FloydSteinberg is the classic four tap kernel
	//
	//	    X  7
	//	 3  5  1    / 16
	FloydSteinberg = Kernel{
		Name: "Floyd-Steinberg",
		Taps: []Tap{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
		Denominator: 16,
	}

	// Atkinson deliberately discards a quarter of the error
	//
	//	    X  1  1
	//	 1  1  1
	//	    1         / 8
	Atkinson = Kernel{
		Name: "Atkinson",
		Taps: []Tap{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
		Denominator: 8,
	}

	// Stucki
	//
	//	       X  8  4
	//	 2  4  8  4  2
	//	 1  2  4  2  1    / 42
	Stucki = Kernel{
		Name: "Stucki",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
		Denominator: 42,
		Serpentine:  true,
	}

	// Burkes
	//
	//	       X  8  4
	//	 2  4  8  4  2    / 32
	Burkes = Kernel{
		Name: "Burkes",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		},
		Denominator: 32,
		Serpentine:  true,
	}

	// Sierra is the three row variant
	//
	//	       X  5  3
	//	 2  4  5  4  2
	//	    2  3  2       / 32
	Sierra = Kernel{
		Name: "Sierra",
		Taps: []Tap{
			{1, 0, 5}, {2, 0, 3},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
			{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
		},
		Denominator: 32,
		Serpentine:  true,
	}

	// TwoRowSierra
	//
	//	       X  4  3
	//	 1  2  3  2  1    / 16
	TwoRowSierra = Kernel{
		Name: "Two-Row Sierra",
		Taps: []Tap{
			{1, 0, 4}, {2, 0, 3},
			{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
		},
		Denominator: 16,
		Serpentine:  true,
	}

	// SierraLite
	//
	//	    X  2
	//	 1  1       / 4
	SierraLite = Kernel{
		Name: "Sierra Lite",
		Taps: []Tap{
			{1, 0, 2},
			{-1, 1, 1}, {0, 1, 1},
		},
		Denominator: 4,
		Serpentine:  true,
	}

	// JarvisJudiceNinke
	//
	//	       X  7  5
	//	 3  5  7  5  3
	//	 1  3  5  3  1    / 48
	JarvisJudiceNinke = Kernel{
		Name: "Jarvis-Judice-Ninke",
		Taps: []Tap{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
		Denominator: 48,
		Serpentine:  true,
	}
)

// Kernels lists every error diffusion kernel
var Kernels = []Kernel{
	FloydSteinberg,
	Atkinson,
	Stucki,
	Burkes,
	Sierra,
	TwoRowSierra,
	SierraLite,
	JarvisJudiceNinke,
}
