package surface

import (
	"image"
	"image/color"
	"testing"
)

func TestParseMarker(t *testing.T) {
	cases := []struct {
		in      string
		want    Marker
		wantErr bool
	}{
		{"circle", Circle, false},
		{"o", Circle, false},
		{"Hexagon", Hexagon, false},
		{"h", Hexagon, false},
		{"square", Square, false},
		{"^", Triangle, false},
		{"star", Circle, true},
	}

	for _, c := range cases {
		got, err := ParseMarker(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseMarker(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("ParseMarker(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMarkerStyleRadius(t *testing.T) {
	if r := (MarkerStyle{Size: 40}).Radius(); r < 3.16 || r > 3.17 {
		t.Errorf("radius of a 40pt² marker: got %v", r)
	}
	if r := (MarkerStyle{}).Radius(); r != 0 {
		t.Errorf("radius of an empty marker: got %v", r)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00FF00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000ff80", color.NRGBA{0, 0, 255, 128}, false},
		{"red", color.NRGBA{255, 0, 0, 255}, false},
		{"Grey", color.NRGBA{128, 128, 128, 255}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
		{"notacolor", color.NRGBA{}, true},
	}

	for _, c := range cases {
		got, err := ParseColor(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if n := color.NRGBAModel.Convert(got).(color.NRGBA); n != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, n, c.want)
		}
	}
}

func TestStateBounds(t *testing.T) {
	s := &state{}
	s.Scatter([]Point{{X: 10, Y: 2}, {X: 30, Y: 5}}, MarkerStyle{})

	if lo, hi := s.xBounds(); lo != 10 || hi != 30 {
		t.Errorf("x bounds from data: got [%v, %v]", lo, hi)
	}

	s.SetXRange(0, 100)
	if lo, hi := s.xBounds(); lo != 0 || hi != 100 {
		t.Errorf("x bounds from window: got [%v, %v]", lo, hi)
	}

	s.SetYRange(1, 0)
	lo, hi, inverted := s.yBounds()
	if lo != 0 || hi != 1 || !inverted {
		t.Errorf("inverted y bounds: got [%v, %v] inverted=%v", lo, hi, inverted)
	}

	empty := &state{}
	if lo, hi := empty.xBounds(); lo >= hi {
		t.Errorf("empty surface has degenerate x bounds [%v, %v]", lo, hi)
	}

	single := &state{}
	single.SetXRange(500, 500)
	if lo, hi := single.xBounds(); lo >= hi {
		t.Errorf("single-position window was not widened: [%v, %v]", lo, hi)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("svg"); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestBackendsRender(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}

	for _, name := range Backends {
		name := name
		t.Run(name, func(t *testing.T) {
			r, err := New(name)
			if err != nil {
				t.Fatal(err)
			}

			r.SetXRange(0, 100)
			r.SetYRange(0, 1)
			r.SetYLabel("PP", 8)
			r.SetTitle("locus", 10)
			r.Scatter([]Point{{X: 20, Y: 0.2}, {X: 80, Y: 0.4}}, MarkerStyle{Color: color.Gray{128}, Size: 10})
			r.Scatter([]Point{{X: 50, Y: 0.5}}, MarkerStyle{Color: red, Size: 900, Marker: Hexagon})
			r.Text(Point{X: 50, Y: 0.52}, "rs1", TextStyle{Size: 8})

			img, err := r.Image(300, 200)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
				t.Fatalf("image is %dx%d, want 300x200", b.Dx(), b.Dy())
			}
			if countReddish(img) == 0 {
				t.Error("no highlighted marker was drawn")
			}
		})
	}
}

func TestBackendsRenderEmpty(t *testing.T) {
	for _, name := range Backends {
		name := name
		t.Run(name, func(t *testing.T) {
			r, err := New(name)
			if err != nil {
				t.Fatal(err)
			}
			r.SetXRange(1000, 2000)
			r.SetYRange(0, 1)

			img, err := r.Image(120, 80)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
				t.Fatalf("image is %dx%d, want 120x80", b.Dx(), b.Dy())
			}
		})
	}
}

func countReddish(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R > 200 && c.G < 80 && c.B < 80 {
				n++
			}
		}
	}
	return n
}
