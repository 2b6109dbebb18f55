package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/compileinfo"
	"github.com/carbocation/gwastrack/figure"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/carbocation/gwastrack/surface"
	"github.com/exascience/pargo/parallel"
	"gopkg.in/guregu/null.v3"
)

func main() {
	var (
		configPath string
		region     string
		out        string
		backend    string
		width      int
		chunk      int
		version    bool
		skipFailed bool

		trackCfg gwas.Config
		format   string
		ymax     float64
		height   int
		noLabels bool
		csMarker string
	)

	flag.StringVar(&configPath, "config", "", "JSON figure configuration. If empty, a single track is built from -file and the track flags.")
	flag.StringVar(&region, "region", "", "Region to draw, e.g. chr1:1,000,000-2,000,000. Overrides the region in -config.")
	flag.StringVar(&out, "out", "gwastrack.png", "Path of the PNG to write. With -chunk, one PNG per chunk is written with the chunk appended to the name.")
	flag.StringVar(&backend, "backend", "", fmt.Sprintf("Drawing backend when -config is not used. One of: %s", strings.Join(surface.Backends, ", ")))
	flag.IntVar(&width, "width", figure.DefaultWidth, "Figure width in pixels when -config is not used.")
	flag.IntVar(&chunk, "chunk", 0, "(Optional) If positive, split -region into windows of this many base pairs and render each one.")
	flag.BoolVar(&skipFailed, "skip-failed-tracks", false, "Leave out tracks that fail to load instead of aborting the figure.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")

	flag.StringVar(&trackCfg.File, "file", "", ".gwas file with CHR, BP, SNP, P and optional CS and INT columns. May be gzip/bzip2/xz/zip compressed or a gs:// path.")
	flag.StringVar(&format, "format", string(gwas.FormatPP), "How to read P: PP, -log10 or pval.")
	flag.Float64Var(&ymax, "ymax", 0, "(Optional) y axis maximum. Values above 1 are corrected to 1 for PP.")
	flag.StringVar(&trackCfg.YLabel, "ylabel", "", "y axis label")
	flag.StringVar(&trackCfg.Title, "title", "", "Track title")
	flag.IntVar(&height, "height", gwas.DefaultHeight, "Track height in pixels")
	flag.BoolVar(&noLabels, "no-labels", false, "Do not label INT variants of the credible set.")
	flag.StringVar(&csMarker, "cs-marker", gwas.DefaultCSMarker, "Marker of credible-set variants: hexagon, circle, square or triangle.")
	flag.StringVar(&trackCfg.Delimiter, "delimiter", "tab", "Field delimiter of -file: tab, comma, space, auto, or a single character.")
	flag.Parse()

	if version {
		compileinfo.Fprint(os.Stdout, "gwastrack")
		return
	}

	var cfg figure.JSONConfig
	if configPath != "" {
		var err error
		cfg, err = figure.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	} else {
		if trackCfg.File == "" {
			fmt.Fprintln(os.Stderr, "gwastrack: draws GWAS tracks (credible sets highlighted, variants of interest labelled) to PNG.")
			flag.PrintDefaults()
			os.Exit(1)
		}

		trackCfg.YValuesFormat = format
		trackCfg.Height = null.IntFrom(int64(height))
		trackCfg.CSMarker = csMarker
		if ymax > 0 {
			trackCfg.YAxisMaxVal = null.FloatFrom(ymax)
		}
		if noLabels {
			trackCfg.Labels = null.BoolFrom(false)
		}

		cfg = figure.JSONConfig{
			Region:  region,
			Width:   null.IntFrom(int64(width)),
			Backend: backend,
			Tracks:  []gwas.Config{trackCfg},
		}
	}
	if region != "" {
		cfg.Region = region
	}
	if skipFailed {
		cfg.SkipFailedTracks = true
	}

	ctx := context.Background()

	var client *storage.Client
	if needsStorage(cfg) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	logger := log.New(os.Stderr, log.Prefix(), log.LstdFlags)

	fig, err := figure.New(cfg, figure.WithLogger(logger), figure.WithStorageClient(client))
	if err != nil {
		log.Fatalln(err)
	}

	loci := []chrpos.Locus{fig.Locus()}
	if chunk > 0 {
		loci, err = chrpos.ChunkLocus(fig.Locus(), chunk)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Rendering", len(loci), "chunks of", fig.Locus())
	}

	// Chunks are independent renders of the same immutable figure.
	errs := make([]error, len(loci))
	parallel.Range(0, len(loci), 0, func(low, high int) {
		for i := low; i < high; i++ {
			path := out
			if chunk > 0 {
				path = chunkPath(out, loci[i])
			}

			if errs[i] = render(ctx, fig, loci[i], path); errs[i] == nil {
				log.Println("Wrote", loci[i], "to", path)
			}
		}
	})

	for i, err := range errs {
		if err != nil {
			log.Fatalln(loci[i], err)
		}
	}
}

func render(ctx context.Context, fig *figure.Figure, locus chrpos.Locus, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	reports, err := fig.RenderPNG(ctx, f, locus)
	if err != nil {
		f.Close()
		return err
	}

	for _, report := range reports {
		for _, warning := range report.Result.Warnings {
			log.Println("Warning:", report.File, warning)
		}
	}

	return f.Close()
}

// chunkPath turns out.png into out.chr1_1-1000.png.
func chunkPath(out string, locus chrpos.Locus) string {
	stem := strings.TrimSuffix(out, ".png")
	name := strings.NewReplacer(":", "_", ",", "").Replace(locus.String())
	return fmt.Sprintf("%s.%s.png", stem, name)
}

func needsStorage(cfg figure.JSONConfig) bool {
	for _, t := range cfg.Tracks {
		if gwastrack.IsGoogleStoragePath(t.File) {
			return true
		}
	}
	return false
}
