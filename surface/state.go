package surface

import (
	"image/color"
	"math"
)

type layer struct {
	pts   []Point
	style MarkerStyle
}

type label struct {
	pt    Point
	text  string
	style TextStyle
}

// state records the calls made on a Surface so that a backend can build its
// figure once the final pixel size is known.
type state struct {
	xmin, xmax float64
	ymin, ymax float64
	hasX, hasY bool

	ylabel     string
	ylabelSize float64
	title      string
	titleSize  float64

	layers []layer
	labels []label
}

func (s *state) SetXRange(min, max float64) {
	s.xmin, s.xmax, s.hasX = min, max, true
}

func (s *state) SetYRange(min, max float64) {
	s.ymin, s.ymax, s.hasY = min, max, true
}

func (s *state) SetYLabel(text string, size float64) {
	s.ylabel, s.ylabelSize = text, size
}

func (s *state) SetTitle(text string, size float64) {
	s.title, s.titleSize = text, size
}

func (s *state) Scatter(pts []Point, style MarkerStyle) {
	s.layers = append(s.layers, layer{pts: append([]Point(nil), pts...), style: style})
}

func (s *state) Text(pt Point, text string, style TextStyle) {
	s.labels = append(s.labels, label{pt: pt, text: text, style: style})
}

// xBounds returns the x limits, falling back to the extent of the data.
func (s *state) xBounds() (lo, hi float64) {
	if s.hasX {
		lo, hi = s.xmin, s.xmax
	} else {
		lo, hi = s.extent(func(p Point) float64 { return p.X })
	}
	return widen(lo, hi)
}

// yBounds returns ascending y limits and whether the axis is inverted.
func (s *state) yBounds() (lo, hi float64, inverted bool) {
	if s.hasY {
		lo, hi = s.ymin, s.ymax
		if lo > hi {
			lo, hi, inverted = hi, lo, true
		}
	} else {
		lo, hi = s.extent(func(p Point) float64 { return p.Y })
	}
	lo, hi = widen(lo, hi)
	return lo, hi, inverted
}

func (s *state) extent(f func(Point) float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range s.layers {
		for _, p := range l.pts {
			v := f(p)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// widen turns a degenerate range into one every backend can draw.
func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

func orBlack(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	return c
}
