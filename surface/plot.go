package surface

import (
	"image"
	"math"

	"github.com/carbocation/pfx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// screenDPI maps the pixel sizes a caller asks for onto the point-based
// lengths used for marker and font sizes.
const screenDPI = 96

// Plot draws with gonum.org/v1/plot.
type Plot struct {
	state
}

func NewPlot() *Plot {
	return &Plot{}
}

func (s *Plot) Image(width, height int) (image.Image, error) {
	p := plot.New()

	p.Title.Text = s.title
	if s.titleSize > 0 {
		p.Title.TextStyle.Font.Size = vg.Points(s.titleSize)
	}
	p.Y.Label.Text = s.ylabel
	if s.ylabelSize > 0 {
		p.Y.Label.TextStyle.Font.Size = vg.Points(s.ylabelSize)
	}

	for _, l := range s.layers {
		xys := make(plotter.XYs, 0, len(l.pts))
		for _, pt := range l.pts {
			if !finite(pt) {
				continue
			}
			xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
		}
		if len(xys) == 0 {
			continue
		}

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, pfx.Err(err)
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  orBlack(l.style.Color),
			Radius: vg.Points(l.style.Radius()),
			Shape:  glyphFor(l.style.Marker),
		}
		p.Add(sc)
	}

	for _, lb := range s.labels {
		if !finite(lb.pt) {
			continue
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: lb.pt.X, Y: lb.pt.Y}},
			Labels: []string{lb.text},
		})
		if err != nil {
			return nil, pfx.Err(err)
		}
		labels.TextStyle[0].Color = orBlack(lb.style.Color)
		if lb.style.Size > 0 {
			labels.TextStyle[0].Font.Size = vg.Points(lb.style.Size)
		}
		labels.TextStyle[0].XAlign = plotXAlign(lb.style.HAlign)
		labels.TextStyle[0].YAlign = plotYAlign(lb.style.VAlign)
		p.Add(labels)
	}

	// Add widens the axes to the data, so the window is applied afterwards.
	p.X.Min, p.X.Max = s.xBounds()
	ymin, ymax, inverted := s.yBounds()
	p.Y.Min, p.Y.Max = ymin, ymax
	if inverted {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img), vgimg.UseDPI(screenDPI))
	p.Draw(draw.New(c))

	return c.Image(), nil
}

func glyphFor(m Marker) draw.GlyphDrawer {
	switch m {
	case Hexagon:
		return hexagonGlyph{}
	case Square:
		return draw.BoxGlyph{}
	case Triangle:
		return draw.PyramidGlyph{}
	}
	return draw.CircleGlyph{}
}

// hexagonGlyph draws a filled hexagon with a vertex pointing up.
type hexagonGlyph struct{}

func (hexagonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	p := make(vg.Path, 0, 7)
	for i := 0; i < 6; i++ {
		theta := math.Pi/2 + float64(i)*math.Pi/3
		v := vg.Point{
			X: pt.X + sty.Radius*vg.Length(math.Cos(theta)),
			Y: pt.Y + sty.Radius*vg.Length(math.Sin(theta)),
		}
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	c.Fill(p)
}

func plotXAlign(a HAlign) text.XAlignment {
	switch a {
	case AlignLeft:
		return text.XLeft
	case AlignRight:
		return text.XRight
	}
	return text.XCenter
}

func plotYAlign(a VAlign) text.YAlignment {
	switch a {
	case AlignMiddle:
		return text.YCenter
	case AlignTop:
		return text.YTop
	}
	return text.YBottom
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
