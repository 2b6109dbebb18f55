package main

import (
	"testing"

	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/figure"
	"github.com/carbocation/gwastrack/gwas"
)

func TestChunkPath(t *testing.T) {
	got := chunkPath("out/locus.png", chrpos.Locus{Chrom: "chr1", Start: 1, End: 1000})
	if got != "out/locus.chr1_1-1000.png" {
		t.Errorf("got %q", got)
	}
}

func TestNeedsStorage(t *testing.T) {
	local := figure.JSONConfig{Tracks: []gwas.Config{{File: "a.gwas"}}}
	if needsStorage(local) {
		t.Error("local tracks should not need a storage client")
	}

	remote := figure.JSONConfig{Tracks: []gwas.Config{{File: "a.gwas"}, {File: "gs://bucket/b.gwas"}}}
	if !needsStorage(remote) {
		t.Error("gs:// tracks need a storage client")
	}
}
