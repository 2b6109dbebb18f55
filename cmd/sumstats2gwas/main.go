package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/compileinfo"
	"github.com/carbocation/gwastrack/sumstats"
)

func main() {
	var (
		input       string
		layout      string
		credibleSet string
		region      string
		out         string
		version     bool
	)

	flag.StringVar(&input, "input", "", "Summary statistics to convert. May be compressed or a gs:// path.")
	flag.StringVar(&layout, "layout", "BOLT", fmt.Sprintf("Layout of -input. One of: %s", sumstats.LayoutNames()))
	flag.StringVar(&credibleSet, "credible-set", "", "(Optional) File with a SNP column and an optional INT column. Listed SNPs get CS=YES, and INT=YES where flagged.")
	flag.StringVar(&region, "region", "", "(Optional) Only keep variants in this region, e.g. chr1:1,000,000-2,000,000")
	flag.StringVar(&out, "out", "", "(Optional) Output .gwas path. Defaults to STDOUT.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		compileinfo.Fprint(os.Stdout, "sumstats2gwas")
		return
	}

	if input == "" {
		fmt.Fprintln(os.Stderr, "sumstats2gwas converts BOLT, REGENIE, SAIGE or GWAS summary statistics into a .gwas track file.")
		flag.PrintDefaults()
		os.Exit(1)
	}

	locus, err := chrpos.ParseLocus(region)
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()

	var client *storage.Client
	if gwastrack.IsGoogleStoragePath(input) || gwastrack.IsGoogleStoragePath(credibleSet) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	var cs sumstats.CredibleSet
	if credibleSet != "" {
		cs, err = readCredibleSet(ctx, credibleSet, client)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Read", len(cs), "credible-set variants from", credibleSet)
	}

	f, err := gwastrack.Open(ctx, input, client)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	records, err := convert(f, layout, locus, cs)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Kept", len(records), "variants from", input)

	var w io.Writer = os.Stdout
	if out != "" {
		outFile, err := os.Create(out)
		if err != nil {
			log.Fatalln(err)
		}
		defer outFile.Close()
		w = outFile
	}

	if err := sumstats.WriteGWAS(w, records, cs != nil); err != nil {
		log.Fatalln(err)
	}
}

func readCredibleSet(ctx context.Context, path string, client *storage.Client) (sumstats.CredibleSet, error) {
	f, err := gwastrack.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sumstats.ReadCredibleSet(f)
}

// convert reads every variant of the given layout that falls in locus. When cs
// is non-nil each record is annotated from it.
func convert(r io.Reader, layout string, locus chrpos.Locus, cs sumstats.CredibleSet) ([]sumstats.Variant, error) {
	sr, err := sumstats.NewReader(r, layout)
	if err != nil {
		return nil, err
	}

	var records []sumstats.Variant
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if !locus.Contains(rec.Chromosome, rec.Position) {
			continue
		}

		if cs != nil {
			cs.Mark(&rec.Record)
		}

		records = append(records, rec)
	}

	return records, nil
}
