// Package gwas draws the GWAS track of a genome-browser figure. A .gwas file
// (CHR, BP, SNP, P and optional CS and INT columns) is loaded, transformed and
// clamped for display, then split into a base layer, a credible-set layer and
// variant labels.
package gwas

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/surface"
)

// labelOffsetFraction lifts labels above their marker by this fraction of the
// y axis.
const labelOffsetFraction = 1.0 / 50

// Track is a validated GWAS track. It is safe for concurrent use: Render keeps
// all of its state local.
type Track struct {
	settings

	log    Logger
	client *storage.Client
}

type Option func(*Track)

// WithLogger sends warnings to l in addition to returning them.
func WithLogger(l Logger) Option {
	return func(t *Track) {
		if l != nil {
			t.log = l
		}
	}
}

// WithStorageClient enables gs:// track files.
func WithStorageClient(client *storage.Client) Option {
	return func(t *Track) {
		t.client = client
	}
}

// New validates cfg. Any invalid option is reported as a *ConfigError.
func New(cfg Config, opts ...Option) (*Track, error) {
	s, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	t := &Track{settings: s, log: Discard}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *Track) File() string   { return t.file }
func (t *Track) Title() string  { return t.title }
func (t *Track) Height() int    { return t.height }
func (t *Track) Format() Format { return t.format }

// Result describes what Render drew. Counts cover the records inside the
// locus only.
type Result struct {
	Records   int
	Base      int
	Highlight int
	Labels    int

	// YMin and YMax are the y limits passed to the surface, before any
	// inversion.
	YMin, YMax float64

	Warnings []string
}

// Render loads the track file and draws it onto s. Only records inside the
// locus are drawn. The file is read afresh on every call.
func (t *Track) Render(ctx context.Context, s surface.Surface, locus chrpos.Locus) (Result, error) {
	var res Result

	table, err := LoadFile(ctx, t.file, t.client, LoadOptions{
		Delimiter:      t.delimiter,
		SniffDelimiter: t.sniff,
		Format:         t.format,
	})
	if err != nil {
		return res, err
	}

	return t.Draw(s, table, locus)
}

// Draw plots an already loaded table.
func (t *Track) Draw(s surface.Surface, table *Table, locus chrpos.Locus) (Result, error) {
	var res Result
	warn := func(msg string) {
		res.Warnings = append(res.Warnings, msg)
		t.log.Printf("%s: %s", t.file, msg)
	}

	table = table.InWindow(locus)
	res.Records = table.Len()

	maxY, warning := EffectiveMax(t.format, table.MaxStatistic, t.maxY)
	if warning != "" {
		warn(warning)
	}
	clamper := Clamper{Format: t.format, MaxY: maxY}

	ov := Select(table, clamper, maxY*labelOffsetFraction)

	if !t.labels {
		ov.Labels = nil
	} else if len(ov.Labels) > t.maxLabels {
		warn(fmt.Sprintf("%d labels exceed max_labels=%d; only the first %d are drawn", len(ov.Labels), t.maxLabels, t.maxLabels))
		ov.Labels = ov.Labels[:t.maxLabels]
	}

	if xmin, xmax, ok := xWindow(locus, table); ok {
		s.SetXRange(xmin, xmax)
	}

	res.YMin, res.YMax = 0, maxY
	if t.inverted {
		s.SetYRange(maxY, 0)
	} else {
		s.SetYRange(0, maxY)
	}

	if t.ylabel != "" {
		s.SetYLabel(t.ylabel, t.fontSize)
	}
	if t.title != "" {
		s.SetTitle(t.title, t.fontSize)
	}

	s.Scatter(ov.Base, t.base)
	res.Base = len(ov.Base)

	if table.HasCS {
		s.Scatter(ov.Highlight, t.highlight)
		res.Highlight = len(ov.Highlight)
	}

	labelStyle := surface.TextStyle{
		Size:   t.idFontSize,
		HAlign: surface.AlignCenter,
		VAlign: surface.AlignBottom,
	}
	for _, l := range ov.Labels {
		s.Text(l.Point, l.Text, labelStyle)
	}
	res.Labels = len(ov.Labels)

	return res, nil
}

// xWindow returns the x range for a locus. An open-ended locus extends to the
// last record; a locus with neither bound leaves the range to the surface.
func xWindow(locus chrpos.Locus, table *Table) (xmin, xmax float64, ok bool) {
	if locus.End > 0 {
		return float64(locus.Start), float64(locus.End), true
	}
	if locus.Start == 0 {
		return 0, 0, false
	}

	last := locus.Start
	for _, r := range table.Records {
		if r.Position > last {
			last = r.Position
		}
	}
	if last == locus.Start {
		return 0, 0, false
	}

	return float64(locus.Start), float64(last), true
}
