package sumstats

import (
	"sort"
	"strings"
)

// Layout names the summary statistic columns that feed a .gwas record.
// Columns are found by header name, so extra or reordered columns are
// tolerated.
type Layout struct {
	// Delimiter separates fields. Zero sniffs the delimiter from the first
	// lines of the file.
	Delimiter rune
	Comment   rune

	ColChromosome string
	ColPosition   string
	ColSNP        string
	ColP          string

	// PIsNegLog10 marks a P column that holds -log10(P).
	PIsNegLog10 bool
}

var Layouts = map[string]Layout{
	"BOLT": {
		Delimiter:     '\t',
		ColChromosome: "CHR",
		ColPosition:   "BP",
		ColSNP:        "SNP",
		ColP:          "P_BOLT_LMM",
	},
	"REGENIE": {
		Delimiter:     ' ',
		Comment:       '#',
		ColChromosome: "CHROM",
		ColPosition:   "GENPOS",
		ColSNP:        "ID",
		ColP:          "LOG10P",
		PIsNegLog10:   true,
	},
	"SAIGE": {
		ColChromosome: "CHR",
		ColPosition:   "POS",
		ColSNP:        "SNPID",
		ColP:          "p.value",
	},
	"GWAS": {
		Delimiter:     '\t',
		ColChromosome: "CHR",
		ColPosition:   "BP",
		ColSNP:        "SNP",
		ColP:          "P",
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
