package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart draws with github.com/wcharczuk/go-chart. go-chart only knows circular
// dots, so every marker is drawn as a circle of the requested area, and labels
// are drawn as annotation boxes beside their anchor.
type Chart struct {
	state
}

func NewChart() *Chart {
	return &Chart{}
}

func (s *Chart) Image(width, height int) (image.Image, error) {
	xmin, xmax := s.xBounds()
	ymin, ymax, inverted := s.yBounds()
	inWindow := func(p Point) bool {
		return finite(p) && p.X >= xmin && p.X <= xmax && p.Y >= ymin && p.Y <= ymax
	}

	graph := chart.Chart{
		Title:  s.title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:  s.ylabel,
			Range: &chart.ContinuousRange{Min: ymin, Max: ymax, Descending: inverted},
		},
	}
	if s.titleSize > 0 {
		graph.TitleStyle = chart.Style{FontSize: s.titleSize}
	}
	if s.ylabelSize > 0 {
		graph.YAxis.NameStyle = chart.Style{FontSize: s.ylabelSize}
	}

	for _, l := range s.layers {
		series := chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    l.style.Radius() * screenDPI / 72,
				DotColor:    chartColor(l.style.Color),
			},
		}
		for _, pt := range l.pts {
			if !inWindow(pt) {
				continue
			}
			series.XValues = append(series.XValues, pt.X)
			series.YValues = append(series.YValues, pt.Y)
		}
		if len(series.XValues) == 0 {
			continue
		}
		graph.Series = append(graph.Series, series)
	}

	// go-chart refuses to render without a visible series.
	if len(graph.Series) == 0 {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    chart.Disabled,
			},
			XValues: []float64{xmin},
			YValues: []float64{ymin},
		})
	}

	annotations := chart.AnnotationSeries{}
	for _, lb := range s.labels {
		if !inWindow(lb.pt) {
			continue
		}
		annotations.Annotations = append(annotations.Annotations, chart.Value2{
			Label:  lb.text,
			XValue: lb.pt.X,
			YValue: lb.pt.Y,
			Style: chart.Style{
				FontSize:  lb.style.Size,
				FontColor: chartColor(lb.style.Color),
			},
		})
	}
	if len(annotations.Annotations) > 0 {
		graph.Series = append(graph.Series, annotations)
	}

	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, pfx.Err(err)
	}

	img, err := png.Decode(buf)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return img, nil
}

func chartColor(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(orBlack(c)).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
