// Package figure renders a stack of GWAS tracks over one genomic window into a
// single image.
package figure

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/carbocation/gwastrack/surface"
	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
)

const DefaultWidth = 800

// Figure is a validated figure configuration. Render does not modify it, so a
// Figure may serve concurrent requests.
type Figure struct {
	locus   chrpos.Locus
	width   int
	backend string
	skip    bool
	tracks  []*gwas.Track

	log gwas.Logger
}

type Option func(*figureOptions)

type figureOptions struct {
	log    gwas.Logger
	client *storage.Client
}

func WithLogger(l gwas.Logger) Option {
	return func(o *figureOptions) { o.log = l }
}

func WithStorageClient(client *storage.Client) Option {
	return func(o *figureOptions) { o.client = client }
}

// New validates every part of the configuration, including each track's
// options, before anything is rendered.
func New(cfg JSONConfig, opts ...Option) (*Figure, error) {
	o := figureOptions{log: gwas.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = gwas.Discard
	}

	locus, err := chrpos.ParseLocus(cfg.Region)
	if err != nil {
		return nil, err
	}

	f := &Figure{
		locus:   locus,
		width:   DefaultWidth,
		backend: cfg.Backend,
		skip:    cfg.SkipFailedTracks,
		log:     o.log,
	}

	if cfg.Width.Valid {
		if cfg.Width.Int64 <= 0 {
			return nil, fmt.Errorf("width must be positive, got %d", cfg.Width.Int64)
		}
		f.width = int(cfg.Width.Int64)
	}

	// Fail on an unknown backend now rather than on the first render.
	if _, err := surface.New(cfg.Backend); err != nil {
		return nil, err
	}

	if len(cfg.Tracks) == 0 {
		return nil, fmt.Errorf("figure has no tracks")
	}

	for i, tc := range cfg.Tracks {
		track, err := gwas.New(tc, gwas.WithLogger(o.log), gwas.WithStorageClient(o.client))
		if err != nil {
			return nil, fmt.Errorf("track %d (%s): %w", i+1, tc.File, err)
		}
		f.tracks = append(f.tracks, track)
	}

	return f, nil
}

// Locus returns the configured region.
func (f *Figure) Locus() chrpos.Locus { return f.locus }

func (f *Figure) Width() int { return f.width }

// TrackReport is the outcome of one track in a render.
type TrackReport struct {
	File   string
	Result gwas.Result
	Err    error
}

// Render draws every track over locus and stacks them top to bottom. A
// failing track fails the whole figure unless skip_failed_tracks is set.
func (f *Figure) Render(ctx context.Context, locus chrpos.Locus) (image.Image, []TrackReport, error) {
	reports := make([]TrackReport, 0, len(f.tracks))
	images := make([]image.Image, 0, len(f.tracks))

	for _, track := range f.tracks {
		if err := ctx.Err(); err != nil {
			return nil, reports, err
		}

		report := TrackReport{File: track.File()}
		img, err := f.renderTrack(ctx, track, locus, &report)
		report.Err = err
		reports = append(reports, report)

		if err != nil {
			if !f.skip {
				return nil, reports, fmt.Errorf("%s: %w", track.File(), err)
			}
			f.log.Printf("Skipping track %s: %v", track.File(), err)
			continue
		}

		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, reports, fmt.Errorf("no track could be rendered")
	}

	return Stack(images), reports, nil
}

func (f *Figure) renderTrack(ctx context.Context, track *gwas.Track, locus chrpos.Locus, report *TrackReport) (image.Image, error) {
	r, err := surface.New(f.backend)
	if err != nil {
		return nil, err
	}

	report.Result, err = track.Render(ctx, r, locus)
	if err != nil {
		return nil, err
	}

	return r.Image(f.width, track.Height())
}

// RenderPNG renders locus and writes it as a PNG.
func (f *Figure) RenderPNG(ctx context.Context, w io.Writer, locus chrpos.Locus) ([]TrackReport, error) {
	img, reports, err := f.Render(ctx, locus)
	if err != nil {
		return reports, err
	}

	if err := png.Encode(w, img); err != nil {
		return reports, pfx.Err(err)
	}

	return reports, nil
}

// Stack draws images top to bottom on a white canvas as wide as the widest
// image.
func Stack(images []image.Image) image.Image {
	width, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := 0
	for _, img := range images {
		b := img.Bounds()
		dc.DrawImage(img, -b.Min.X, y-b.Min.Y)
		y += b.Dy()
	}

	return dc.Image()
}
