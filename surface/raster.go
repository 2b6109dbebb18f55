package surface

import (
	"image"
	"math"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/plot"
)

// Raster draws directly onto a gg canvas at twice the requested resolution
// and downsamples the result.
type Raster struct {
	state

	// Supersample is the oversampling factor. Values below 1 are treated
	// as 1.
	Supersample int
}

func NewRaster() *Raster {
	return &Raster{Supersample: 2}
}

var (
	regularOnce sync.Once
	regularFont *truetype.Font
	regularErr  error
)

func goRegular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = truetype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

const (
	defaultTickFontSize  = 8
	defaultLabelFontSize = 10
	defaultTitleFontSize = 12
)

func (s *Raster) Image(width, height int) (image.Image, error) {
	ss := s.Supersample
	if ss < 1 {
		ss = 1
	}

	ttf, err := goRegular()
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Pixels per point on the supersampled canvas.
	scale := float64(ss) * screenDPI / 72
	face := func(points float64) font.Face {
		return truetype.NewFace(ttf, &truetype.Options{Size: points * scale})
	}

	W, H := float64(width*ss), float64(height*ss)
	dc := gg.NewContext(width*ss, height*ss)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	titleSize := orDefault(s.titleSize, defaultTitleFontSize)
	ylabelSize := orDefault(s.ylabelSize, defaultLabelFontSize)

	top := 6 * scale
	if s.title != "" {
		top += titleSize * scale * 1.4
	}
	left := 6*scale + defaultTickFontSize*scale*4
	if s.ylabel != "" {
		left += ylabelSize * scale * 1.4
	}
	bottom := defaultTickFontSize*scale*2 + 6*scale
	right := 8 * scale

	area := frame{
		x0: left, x1: W - right,
		y0: top, y1: H - bottom,
	}
	if area.x1 <= area.x0 || area.y1 <= area.y0 {
		// Too small for axes; use the whole canvas.
		area = frame{x0: 0, x1: W, y0: 0, y1: H}
	}
	area.xmin, area.xmax = s.xBounds()
	area.ymin, area.ymax, area.inverted = s.yBounds()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(scale * 0.75)
	dc.DrawRectangle(area.x0, area.y0, area.x1-area.x0, area.y1-area.y0)
	dc.Stroke()

	dc.SetFontFace(face(defaultTickFontSize))
	tickLen := 3 * scale
	var ticker plot.DefaultTicks
	for _, t := range ticker.Ticks(area.xmin, area.xmax) {
		if t.Label == "" || t.Value < area.xmin || t.Value > area.xmax {
			continue
		}
		x := area.px(t.Value)
		dc.DrawLine(x, area.y1, x, area.y1+tickLen)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, x, area.y1+tickLen*1.5, 0.5, 1)
	}
	for _, t := range ticker.Ticks(area.ymin, area.ymax) {
		if t.Label == "" || t.Value < area.ymin || t.Value > area.ymax {
			continue
		}
		y := area.py(t.Value)
		dc.DrawLine(area.x0-tickLen, y, area.x0, y)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, area.x0-tickLen*1.5, y, 1, 0.35)
	}

	if s.title != "" {
		dc.SetFontFace(face(titleSize))
		dc.DrawStringAnchored(s.title, (area.x0+area.x1)/2, top/2, 0.5, 0.35)
	}
	if s.ylabel != "" {
		dc.SetFontFace(face(ylabelSize))
		x, y := ylabelSize*scale*0.8, (area.y0+area.y1)/2
		dc.Push()
		dc.RotateAbout(-math.Pi/2, x, y)
		dc.DrawStringAnchored(s.ylabel, x, y, 0.5, 0.35)
		dc.Pop()
	}

	dc.DrawRectangle(area.x0, area.y0, area.x1-area.x0, area.y1-area.y0)
	dc.Clip()
	for _, l := range s.layers {
		dc.SetColor(orBlack(l.style.Color))
		r := l.style.Radius() * scale
		for _, pt := range l.pts {
			if !finite(pt) {
				continue
			}
			drawMarker(dc, l.style.Marker, area.px(pt.X), area.py(pt.Y), r)
		}
		dc.Fill()
	}
	dc.ResetClip()

	for _, lb := range s.labels {
		if !finite(lb.pt) || !area.contains(lb.pt) {
			continue
		}
		dc.SetFontFace(face(orDefault(lb.style.Size, defaultLabelFontSize)))
		dc.SetColor(orBlack(lb.style.Color))
		ax, ay := rasterAnchor(lb.style)
		dc.DrawStringAnchored(lb.text, area.px(lb.pt.X), area.py(lb.pt.Y), ax, ay)
	}

	if ss == 1 {
		return dc.Image(), nil
	}
	return imaging.Resize(dc.Image(), width, height, imaging.Lanczos), nil
}

func drawMarker(dc *gg.Context, m Marker, x, y, r float64) {
	switch m {
	case Hexagon:
		dc.DrawRegularPolygon(6, x, y, r, math.Pi/6)
	case Square:
		dc.DrawRegularPolygon(4, x, y, r, 0)
	case Triangle:
		dc.DrawRegularPolygon(3, x, y, r, 0)
	default:
		dc.DrawCircle(x, y, r)
	}
}

// rasterAnchor converts an alignment into gg's anchor convention, where the
// anchor is a fraction of the text box measured from its left edge and from
// its baseline upward.
func rasterAnchor(st TextStyle) (ax, ay float64) {
	switch st.HAlign {
	case AlignLeft:
		ax = 0
	case AlignRight:
		ax = 1
	default:
		ax = 0.5
	}
	switch st.VAlign {
	case AlignTop:
		ay = 1
	case AlignMiddle:
		ay = 0.5
	default:
		ay = 0
	}
	return ax, ay
}

// frame maps data coordinates onto a pixel rectangle.
type frame struct {
	x0, x1, y0, y1 float64
	xmin, xmax     float64
	ymin, ymax     float64
	inverted       bool
}

func (f frame) px(x float64) float64 {
	return f.x0 + (x-f.xmin)/(f.xmax-f.xmin)*(f.x1-f.x0)
}

func (f frame) py(y float64) float64 {
	frac := (y - f.ymin) / (f.ymax - f.ymin)
	if f.inverted {
		return f.y0 + frac*(f.y1-f.y0)
	}
	return f.y1 - frac*(f.y1-f.y0)
}

func (f frame) contains(p Point) bool {
	return p.X >= f.xmin && p.X <= f.xmax && p.Y >= f.ymin && p.Y <= f.ymax
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
