package gwas

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/surface"
	"gopkg.in/guregu/null.v3"
)

// recorder is a surface.Surface that keeps every call.
type recorder struct {
	xmin, xmax float64
	hasX       bool
	ymin, ymax float64
	ylabel     string
	title      string
	layers     [][]surface.Point
	styles     []surface.MarkerStyle
	texts      []string
	anchors    []surface.Point
}

func (r *recorder) SetXRange(min, max float64) { r.xmin, r.xmax, r.hasX = min, max, true }
func (r *recorder) SetYRange(min, max float64) { r.ymin, r.ymax = min, max }
func (r *recorder) SetYLabel(text string, size float64) {
	r.ylabel = text
}
func (r *recorder) SetTitle(text string, size float64) {
	r.title = text
}
func (r *recorder) Scatter(pts []surface.Point, style surface.MarkerStyle) {
	r.layers = append(r.layers, pts)
	r.styles = append(r.styles, style)
}
func (r *recorder) Text(pt surface.Point, text string, style surface.TextStyle) {
	r.texts = append(r.texts, text)
	r.anchors = append(r.anchors, pt)
}

type memLog struct {
	lines []string
}

func (m *memLog) Print(v ...interface{}) {}
func (m *memLog) Printf(format string, v ...interface{}) {
	m.lines = append(m.lines, format)
}
func (m *memLog) Println(v ...interface{}) {}

func writeTrack(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.gwas")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	path := writeTrack(t, threeRecords)

	track, err := New(Config{File: path, YLabel: "PP", Title: "fine-mapping"})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := track.Render(context.Background(), rec, chrpos.Locus{})
	if err != nil {
		t.Fatal(err)
	}

	if res.Base != 3 || res.Highlight != 1 || res.Labels != 1 {
		t.Errorf("result %+v, want 3 base, 1 highlight, 1 label", res)
	}
	if len(rec.layers) != 2 || len(rec.layers[0]) != 3 || len(rec.layers[1]) != 1 {
		t.Fatalf("drew layers %v", rec.layers)
	}
	if rec.styles[1].Marker != surface.Hexagon {
		t.Errorf("credible set drawn with %v", rec.styles[1].Marker)
	}
	if len(rec.texts) != 1 || rec.texts[0] != "rs2" {
		t.Errorf("labels %v, want [rs2]", rec.texts)
	}
	if rec.ymin != 0 || rec.ymax != 1 {
		t.Errorf("y range [%v, %v], want [0, 1]", rec.ymin, rec.ymax)
	}
	if rec.hasX {
		t.Error("an unbounded locus should leave the x range to the surface")
	}
	if rec.ylabel != "PP" || rec.title != "fine-mapping" {
		t.Errorf("ylabel %q title %q", rec.ylabel, rec.title)
	}
}

func TestRenderCorrectsPPAxisMax(t *testing.T) {
	path := writeTrack(t, threeRecords)
	log := &memLog{}

	track, err := New(Config{File: path, YAxisMaxVal: null.FloatFrom(2)}, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := track.Render(context.Background(), rec, chrpos.Locus{})
	if err != nil {
		t.Fatal(err)
	}

	if res.YMax != 1 || rec.ymax != 1 {
		t.Errorf("effective max %v (surface %v), want 1", res.YMax, rec.ymax)
	}
	if len(res.Warnings) != 1 || len(log.lines) != 1 {
		t.Errorf("warnings %v, logged %d", res.Warnings, len(log.lines))
	}
}

func TestRenderWindow(t *testing.T) {
	path := writeTrack(t, "CHR\tBP\tSNP\tP\tCS\tINT\n"+
		"chr1\t100\trs1\t0.2\tNO\tNO\n"+
		"1\t200\trs2\t0.9\tYES\tYES\n"+
		"2\t300\trs3\t0.8\tYES\tYES\n")

	track, err := New(Config{File: path})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := track.Render(context.Background(), rec, chrpos.Locus{Chrom: "1", Start: 50, End: 500})
	if err != nil {
		t.Fatal(err)
	}

	if res.Records != 2 || res.Highlight != 1 {
		t.Errorf("window on chr1 drew %+v", res)
	}
	if !rec.hasX || rec.xmin != 50 || rec.xmax != 500 {
		t.Errorf("x range [%v, %v], want [50, 500]", rec.xmin, rec.xmax)
	}
}

func TestRenderCountsOnlyWindowRecords(t *testing.T) {
	path := writeTrack(t, threeRecords)
	track, err := New(Config{File: path})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := track.Render(context.Background(), rec, chrpos.Locus{Chrom: "1", Start: 150, End: 250})
	if err != nil {
		t.Fatal(err)
	}

	if res.Records != 1 || res.Base != 1 || res.Highlight != 1 || res.Labels != 1 {
		t.Errorf("window 150-250 reported %+v, want only rs2", res)
	}
	if len(rec.layers[0]) != 1 || rec.layers[0][0].X != 200 {
		t.Errorf("base layer %v, want only BP 200", rec.layers[0])
	}
	if res.YMax != 1 {
		t.Errorf("y max %v, want the file-wide ceiling 1", res.YMax)
	}
}

func TestRenderOpenEndedWindow(t *testing.T) {
	path := writeTrack(t, threeRecords)
	track, err := New(Config{File: path})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	if _, err := track.Render(context.Background(), rec, chrpos.Locus{Chrom: "1", Start: 150}); err != nil {
		t.Fatal(err)
	}
	if rec.xmin != 150 || rec.xmax != 300 {
		t.Errorf("x range [%v, %v], want [150, 300]", rec.xmin, rec.xmax)
	}
}

func TestRenderNegLog10(t *testing.T) {
	path := writeTrack(t, "CHR\tBP\tSNP\tP\n1\t1\trs1\t3e-6\n1\t2\trs2\t0.5\n")
	track, err := New(Config{File: path, YValuesFormat: "-log10"})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := track.Render(context.Background(), rec, chrpos.Locus{})
	if err != nil {
		t.Fatal(err)
	}
	if res.YMax != 6 {
		t.Errorf("y max %v, want ceil(5.52) = 6", res.YMax)
	}
	if len(rec.layers) != 1 {
		t.Errorf("drew %d layers without a CS column, want 1", len(rec.layers))
	}
	if y := rec.layers[0][0].Y; y < 5.52 || y > 5.53 {
		t.Errorf("rs1 plotted at %v, want 5.52", y)
	}
}

func TestRenderLabelLimits(t *testing.T) {
	var b strings.Builder
	b.WriteString("CHR\tBP\tSNP\tP\tCS\tINT\n")
	for i := 0; i < 5; i++ {
		b.WriteString("1\t" + strings.Repeat("9", i+1) + "\trs\t0.5\tYES\tYES\n")
	}
	path := writeTrack(t, b.String())

	limited, err := New(Config{File: path, MaxLabels: null.IntFrom(2)})
	if err != nil {
		t.Fatal(err)
	}
	res, err := limited.Render(context.Background(), &recorder{}, chrpos.Locus{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Labels != 2 || len(res.Warnings) != 1 {
		t.Errorf("max_labels=2 drew %d labels with warnings %v", res.Labels, res.Warnings)
	}

	off, err := New(Config{File: path, Labels: null.BoolFrom(false)})
	if err != nil {
		t.Fatal(err)
	}
	res, err = off.Render(context.Background(), &recorder{}, chrpos.Locus{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Labels != 0 || res.Highlight != 5 {
		t.Errorf("labels=false drew %+v", res)
	}
}

func TestRenderInverted(t *testing.T) {
	path := writeTrack(t, threeRecords)
	track, err := New(Config{File: path, Orientation: "inverted"})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	if _, err := track.Render(context.Background(), rec, chrpos.Locus{}); err != nil {
		t.Fatal(err)
	}
	if rec.ymin != 1 || rec.ymax != 0 {
		t.Errorf("inverted y range [%v, %v], want [1, 0]", rec.ymin, rec.ymax)
	}
}

func TestRenderSchemaErrorDrawsNothing(t *testing.T) {
	path := writeTrack(t, "CHR\tBP\tSNP\tP\n1\t1\trs1\t0.5\n1\t2\trs2\t\n")
	track, err := New(Config{File: path})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	_, err = track.Render(context.Background(), rec, chrpos.Locus{})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want a *SchemaError", err)
	}
	if len(rec.layers) != 0 {
		t.Error("a failed load must not draw a partial track")
	}
}
