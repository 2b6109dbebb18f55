package sumstats

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

type credibleSetRow struct {
	SNP string `csv:"SNP"`
	INT Flag   `csv:"INT"`
}

// CredibleSet maps the SNPs of a credible set to their INT flag.
type CredibleSet map[string]bool

// ReadCredibleSet reads a delimited file with a SNP column and an optional INT
// column. The delimiter is sniffed.
func ReadCredibleSet(r io.Reader) (CredibleSet, error) {
	br := bufio.NewReader(r)

	cr := csv.NewReader(br)
	cr.Comma = gwastrack.SniffDelimiter(br, '\t')
	cr.FieldsPerRecord = -1

	var rows []credibleSetRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(CredibleSet, len(rows))
	for _, row := range rows {
		if row.SNP == "" {
			continue
		}
		out[row.SNP] = out[row.SNP] || bool(row.INT)
	}

	return out, nil
}

// Mark sets CS (and INT, when flagged) on a record whose SNP is in the set.
func (cs CredibleSet) Mark(rec *gwas.Record) {
	interest, ok := cs[rec.SNP]
	if !ok {
		return
	}
	rec.CS = true
	rec.INT = interest
}
