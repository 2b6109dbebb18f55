package main

import (
	"strings"
	"testing"

	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/sumstats"
)

const bolt = "SNP\tCHR\tBP\tP_BOLT_LMM\n" +
	"rs1\t1\t100\t0.5\n" +
	"rs2\t1\t200\t1e-9\n" +
	"rs3\t2\t300\t0.01\n"

func TestConvert(t *testing.T) {
	cases := []struct {
		name   string
		locus  chrpos.Locus
		cs     sumstats.CredibleSet
		want   []string
		wantCS map[string]bool
	}{
		{"everything", chrpos.Locus{}, nil, []string{"rs1", "rs2", "rs3"}, nil},
		{"one chromosome", chrpos.Locus{Chrom: "chr1"}, nil, []string{"rs1", "rs2"}, nil},
		{"window", chrpos.Locus{Chrom: "1", Start: 150, End: 250}, nil, []string{"rs2"}, nil},
		{"credible set", chrpos.Locus{}, sumstats.CredibleSet{"rs2": true, "rs3": false}, []string{"rs1", "rs2", "rs3"}, map[string]bool{"rs2": true, "rs3": true}},
	}

	for _, c := range cases {
		records, err := convert(strings.NewReader(bolt), "BOLT", c.locus, c.cs)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if len(records) != len(c.want) {
			t.Fatalf("%s: got %d records, want %d", c.name, len(records), len(c.want))
		}
		for i, rec := range records {
			if rec.SNP != c.want[i] {
				t.Errorf("%s: record %d is %s, want %s", c.name, i, rec.SNP, c.want[i])
			}
			if rec.CS != c.wantCS[rec.SNP] {
				t.Errorf("%s: %s CS=%v", c.name, rec.SNP, rec.CS)
			}
		}
	}

	if records, _ := convert(strings.NewReader(bolt), "BOLT", chrpos.Locus{}, sumstats.CredibleSet{"rs2": true}); !records[1].INT || records[0].INT {
		t.Errorf("INT not carried from the credible set: %+v", records)
	}
}

func TestConvertBadLayout(t *testing.T) {
	if _, err := convert(strings.NewReader(bolt), "REGENIE", chrpos.Locus{}, nil); err == nil {
		t.Error("expected a missing column error")
	}
}
