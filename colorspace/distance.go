package colorspace

import (
	"fmt"
	"math"
)

// Metric selects the color difference formula used when comparing two Lab
// colors.
type Metric int

const (
	// MetricEuclidean is the straight-line distance in Lab space.
	MetricEuclidean Metric = iota
	// MetricWeighted scales the a* and b* axes to emphasise hue and chroma.
	MetricWeighted
	// MetricCIEDE2000 is the CIE 2000 color difference formula.
	MetricCIEDE2000

	metricCount
)

var metricNames = [metricCount]string{
	"Euclidean", "Weighted", "CIEDE2000",
}

// String returns the name of the metric.
func (m Metric) String() string {
	if m.Valid() {
		return metricNames[m]
	}
	return fmt.Sprintf("Metric(%d)", m)
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m >= 0 && m < metricCount
}

// Distance returns the difference between a and b using the metric. Unknown
// metrics fall back to CIEDE2000.
func (m Metric) Distance(a, b Lab) float64 {
	switch m {
	case MetricEuclidean:
		return Euclidean(a, b)
	case MetricWeighted:
		return Weighted(a, b)
	default:
		return CIEDE2000(a, b)
	}
}

// Euclidean returns the straight-line distance between a and b
func Euclidean(a, b Lab) float64 {
	dl, da, db := a.L-b.L, a.A-b.A, a.B-b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Weighted returns sqrt(2ΔL² + 4Δa² + Δb²)
func Weighted(a, b Lab) float64 {
	dl, da, db := a.L-b.L, a.A-b.A, a.B-b.B
	return math.Sqrt(2*dl*dl + 4*da*da + db*db)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func hueAngle(b, a float64) float64 {
	h := degrees(math.Atan2(b, a))
	if h < 0 {
		h += 360
	}
	return h
}

var pow25to7 = math.Pow(25, 7)

// CIEDE2000 returns the ΔE00 color difference between a and b with
// kL = kC = kH = 1
func CIEDE2000(a, b Lab) float64 {
	l1, a1, b1 := a.L, a.A, a.B
	l2, a2, b2 := b.L, b.A, b.B

	avgL := 0.5 * (l1 + l2)
	c1 := math.Sqrt(a1*a1 + b1*b1)
	c2 := math.Sqrt(a2*a2 + b2*b2)
	avgC := 0.5 * (c1 + c2)

	avgC7 := math.Pow(avgC, 7)
	g := 0.5 * (1 - math.Sqrt(avgC7/(avgC7+pow25to7)))

	a1p := (1 + g) * a1
	a2p := (1 + g) * a2
	c1p := math.Sqrt(a1p*a1p + b1*b1)
	c2p := math.Sqrt(a2p*a2p + b2*b2)

	h1p := hueAngle(b1, a1p)
	h2p := hueAngle(b2, a2p)

	deltaL := l2 - l1
	deltaC := c2p - c1p

	// With either chroma at zero the hue angle is undefined
	achromatic := c1p*c2p == 0

	var deltah, avgH float64
	switch {
	case achromatic:
		deltah = 0
		avgH = h1p + h2p
	default:
		switch d := h2p - h1p; {
		case math.Abs(d) <= 180:
			deltah = d
		case h2p <= h1p:
			deltah = d + 360
		default:
			deltah = d - 360
		}

		switch {
		case math.Abs(h1p-h2p) <= 180:
			avgH = 0.5 * (h1p + h2p)
		case h1p+h2p < 360:
			avgH = 0.5 * (h1p + h2p + 360)
		default:
			avgH = 0.5 * (h1p + h2p - 360)
		}
	}

	var deltaH float64
	if !achromatic {
		deltaH = 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(deltah)/2)
	}

	t := 1 -
		0.17*math.Cos(radians(avgH-30)) +
		0.24*math.Cos(radians(2*avgH)) +
		0.32*math.Cos(radians(3*avgH+6)) -
		0.20*math.Cos(radians(4*avgH-63))

	avgCp := 0.5 * (c1p + c2p)
	avgCp7 := math.Pow(avgCp, 7)

	deltaRo := 30 * math.Exp(-math.Pow((avgH-275)/25, 2))
	rc := 2 * math.Sqrt(avgCp7/(avgCp7+pow25to7))

	l50 := (avgL - 50) * (avgL - 50)
	sl := 1 + 0.015*l50/math.Sqrt(20+l50)
	sc := 1 + 0.045*avgCp
	sh := 1 + 0.015*avgCp*t
	rt := -rc * math.Sin(radians(2*deltaRo))

	tl := deltaL / sl
	tc := deltaC / sc
	th := deltaH / sh

	sum := tl*tl + tc*tc + th*th + rt*tc*th
	if sum <= 0 {
		return 0
	}
	return math.Sqrt(sum)
}
