package palette

import (
	"math"

	"github.com/bodgit/pixelize/colorspace"
)

// Matcher finds the closest palette entries to a color using a chosen
// metric. The Lab value of each palette entry is computed once when the
// Matcher is created. A Matcher is safe for concurrent use.
type Matcher struct {
	colors []Color
	labs   []colorspace.Lab
	metric colorspace.Metric
}

// NewMatcher returns a Matcher for the colors in p using metric m
func NewMatcher(p Palette, m colorspace.Metric) *Matcher {
	labs := make([]colorspace.Lab, len(p.Colors))
	for i, c := range p.Colors {
		labs[i] = c.Lab()
	}
	return &Matcher{
		colors: p.Colors,
		labs:   labs,
		metric: m,
	}
}

// Metric returns the metric used by the Matcher
func (m *Matcher) Metric() colorspace.Metric {
	return m.metric
}

// Len returns the number of palette entries
func (m *Matcher) Len() int {
	return len(m.colors)
}

// NearestIndex returns the index of the palette entry closest to c, or -1 if
// the palette is empty
func (m *Matcher) NearestIndex(c Color) int {
	return m.NearestIndexLab(c.Lab())
}

// NearestIndexLab is like NearestIndex but takes an already converted color
func (m *Matcher) NearestIndexLab(lab colorspace.Lab) int {
	best, bestD := -1, math.Inf(1)
	for i, pl := range m.labs {
		if d := m.metric.Distance(lab, pl); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Nearest returns the palette entry closest to c. If the palette is empty, c
// is returned unchanged.
func (m *Matcher) Nearest(c Color) Color {
	if i := m.NearestIndex(c); i >= 0 {
		return m.colors[i]
	}
	return c
}

// TwoNearest returns the closest and second closest palette entries to c,
// along with their distances. With a single color palette both results are
// that color. If the palette is empty, c is returned for both with zero
// distances.
func (m *Matcher) TwoNearest(c Color) (Color, float64, Color, float64) {
	if len(m.colors) == 0 {
		return c, 0, c, 0
	}

	lab := c.Lab()

	best1, best2 := m.colors[0], m.colors[0]
	d1, d2 := math.Inf(1), math.Inf(1)
	for i, pl := range m.labs {
		d := m.metric.Distance(lab, pl)
		switch {
		case d < d1:
			best2, d2 = best1, d1
			best1, d1 = m.colors[i], d
		case d < d2:
			best2, d2 = m.colors[i], d
		}
	}

	return best1, d1, best2, d2
}

// Nearest returns the entry of p closest to c using metric m
func Nearest(c Color, p Palette, m colorspace.Metric) Color {
	return NewMatcher(p, m).Nearest(c)
}

// TwoNearest returns the two entries of p closest to c using metric m
func TwoNearest(c Color, p Palette, m colorspace.Metric) (Color, Color) {
	c1, _, c2, _ := NewMatcher(p, m).TwoNearest(c)
	return c1, c2
}
