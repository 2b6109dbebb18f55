// Package surface is the drawing side of a track: a small 2-D plotting
// interface in data coordinates, and three backends for it (gonum/plot,
// go-chart and a gg raster canvas).
package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// Point is a location in data coordinates: x is a base-pair position and y is
// the plotted statistic.
type Point struct {
	X, Y float64
}

// Marker is the glyph drawn for each scatter point.
type Marker int

const (
	Circle Marker = iota
	Hexagon
	Square
	Triangle
)

var markerNames = map[Marker]string{
	Circle:   "circle",
	Hexagon:  "hexagon",
	Square:   "square",
	Triangle: "triangle",
}

func (m Marker) String() string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Marker(%d)", int(m))
}

// ParseMarker accepts a marker name, or a matplotlib marker code (o, h, s, ^).
func ParseMarker(s string) (Marker, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "o":
		return Circle, nil
	case "hexagon", "h":
		return Hexagon, nil
	case "square", "s":
		return Square, nil
	case "triangle", "^":
		return Triangle, nil
	}
	return Circle, fmt.Errorf("unknown marker %q", s)
}

// MarkerStyle describes a scatter layer. Size is the marker area in points²,
// the same unit as matplotlib's scatter s.
type MarkerStyle struct {
	Color  color.Color
	Size   float64
	Marker Marker
}

// Radius returns the marker radius in points.
func (s MarkerStyle) Radius() float64 {
	if s.Size <= 0 {
		return 0
	}
	return math.Sqrt(s.Size) / 2
}

type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

type VAlign int

const (
	AlignBottom VAlign = iota
	AlignMiddle
	AlignTop
)

// TextStyle describes a text label. Size is in points.
type TextStyle struct {
	Color  color.Color
	Size   float64
	HAlign HAlign
	VAlign VAlign
}

// Surface is the plotting area a track draws onto. It is scoped to one
// genomic window: SetXRange receives the window bounds in base pairs.
type Surface interface {
	SetXRange(min, max float64)

	// SetYRange sets the y axis limits. A min greater than max draws the
	// axis inverted.
	SetYRange(min, max float64)

	SetYLabel(text string, size float64)
	SetTitle(text string, size float64)

	// Scatter adds a layer of markers. Later layers are drawn on top.
	Scatter(pts []Point, style MarkerStyle)

	// Text adds a label anchored at pt.
	Text(pt Point, text string, style TextStyle)
}

// Renderer is a Surface that can rasterize what was drawn onto it.
type Renderer interface {
	Surface
	Image(width, height int) (image.Image, error)
}

const (
	BackendPlot   = "plot"
	BackendChart  = "chart"
	BackendRaster = "raster"
)

// Backends lists the names accepted by New.
var Backends = []string{BackendPlot, BackendChart, BackendRaster}

// New returns an empty Renderer for the named backend. An empty name selects
// the gonum/plot backend.
func New(backend string) (Renderer, error) {
	switch backend {
	case BackendPlot, "":
		return NewPlot(), nil
	case BackendChart:
		return NewChart(), nil
	case BackendRaster:
		return NewRaster(), nil
	}

	return nil, fmt.Errorf("unknown backend %q. Valid backends include: %s", backend, strings.Join(Backends, ", "))
}
