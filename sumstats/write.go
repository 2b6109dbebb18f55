package sumstats

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Row is a .gwas line without credible-set annotation.
type Row struct {
	CHR string `csv:"CHR"`
	BP  int    `csv:"BP"`
	SNP string `csv:"SNP"`
	P   PValue `csv:"P"`
}

// AnnotatedRow is a .gwas line with CS and INT columns.
type AnnotatedRow struct {
	CHR string `csv:"CHR"`
	BP  int    `csv:"BP"`
	SNP string `csv:"SNP"`
	P   PValue `csv:"P"`
	CS  Flag   `csv:"CS"`
	INT Flag   `csv:"INT"`
}

// WriteGWAS writes variants as a tab-delimited .gwas file. When annotated is
// true the CS and INT columns are included.
func WriteGWAS(w io.Writer, variants []Variant, annotated bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	out := gocsv.NewSafeCSVWriter(cw)

	var err error
	if annotated {
		rows := make([]AnnotatedRow, len(variants))
		for i, v := range variants {
			rows[i] = AnnotatedRow{CHR: v.Chromosome, BP: v.Position, SNP: v.SNP, P: pValue(v), CS: Flag(v.CS), INT: Flag(v.INT)}
		}
		err = gocsv.MarshalCSV(rows, out)
	} else {
		rows := make([]Row, len(variants))
		for i, v := range variants {
			rows[i] = Row{CHR: v.Chromosome, BP: v.Position, SNP: v.SNP, P: pValue(v)}
		}
		err = gocsv.MarshalCSV(rows, out)
	}

	if err != nil {
		return pfx.Err(err)
	}

	return nil
}

func pValue(v Variant) PValue {
	return PValue{P: v.P, NegLog10: v.NegLog10P}
}

func strconvG(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
