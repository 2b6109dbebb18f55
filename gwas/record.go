package gwas

import (
	"github.com/carbocation/gwastrack/chrpos"
)

// Record is one association row of a .gwas file.
type Record struct {
	Chromosome string
	Position   int
	SNP        string
	P          float64

	// CS marks membership of a credible set.
	CS bool

	// INT marks a variant of interest, labelled when it is also in a
	// credible set.
	INT bool
}

// Table is a fully loaded .gwas file. P holds the transformed statistic when
// the file was loaded with FormatNegLog10.
type Table struct {
	Path    string
	Format  Format
	Records []Record

	// HasCS and HasINT record whether the optional columns were present in
	// the header.
	HasCS  bool
	HasINT bool

	// MaxStatistic is the ceiling of the largest P after any transform, or 0
	// for an empty table.
	MaxStatistic float64
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// InWindow returns a table holding only the records inside the locus.
// Column presence and MaxStatistic are carried over unchanged.
func (t *Table) InWindow(locus chrpos.Locus) *Table {
	out := *t
	if !locus.HasChrom() && locus.Start == 0 && locus.End == 0 {
		return &out
	}

	out.Records = make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if locus.Contains(r.Chromosome, r.Position) {
			out.Records = append(out.Records, r)
		}
	}

	return &out
}
