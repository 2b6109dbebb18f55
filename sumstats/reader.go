// Package sumstats converts GWAS summary statistics from common association
// tools into .gwas track rows.
package sumstats

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// Variant is one summary statistic row. NegLog10P is set for tools that
// report -log10(P); it stays exact where P underflows to zero.
type Variant struct {
	gwas.Record
	NegLog10P null.Float
}

// Reader yields one record per summary statistic row.
type Reader struct {
	Layout Layout

	cr                *csv.Reader
	chr, pos, snp, pv int
	line              int
}

// NewReader looks up a named layout and reads the header from r.
func NewReader(r io.Reader, layout string) (*Reader, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewReaderWithLayout(r, l)
}

func NewReaderWithLayout(r io.Reader, layout Layout) (*Reader, error) {
	br := bufio.NewReader(r)

	if layout.Delimiter == 0 {
		layout.Delimiter = chooseDelimiter(br, layout)
	}

	cr := csv.NewReader(br)
	cr.Comma = layout.Delimiter
	cr.Comment = layout.Comment
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true
	if layout.Delimiter == ' ' {
		cr.TrimLeadingSpace = true
	}

	sr := &Reader{Layout: layout, cr: cr, chr: -1, pos: -1, snp: -1, pv: -1}

	header, err := cr.Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("reading header: %w", err))
	}
	sr.line = 1

	for k, col := range header {
		switch strings.TrimSpace(col) {
		case layout.ColChromosome:
			sr.chr = k
		case layout.ColPosition:
			sr.pos = k
		case layout.ColSNP:
			sr.snp = k
		case layout.ColP:
			sr.pv = k
		}
	}

	if sr.chr < 0 || sr.pos < 0 || sr.snp < 0 || sr.pv < 0 {
		return nil, fmt.Errorf("did not find all columns (%s, %s, %s, %s) in header %v", layout.ColChromosome, layout.ColPosition, layout.ColSNP, layout.ColP, header)
	}

	return sr, nil
}

// Read returns the next variant, or io.EOF.
func (sr *Reader) Read() (Variant, error) {
	row, err := sr.cr.Read()
	if err != nil {
		if err == io.EOF {
			return Variant{}, err
		}
		return Variant{}, pfx.Err(err)
	}
	sr.line++

	rec, err := sr.ParseRow(row)
	if err != nil {
		return rec, fmt.Errorf("line %d: %w", sr.line, err)
	}

	return rec, nil
}

// ParseRow maps one data row onto a variant.
func (sr *Reader) ParseRow(row []string) (Variant, error) {
	var v Variant
	rec := &v.Record

	for _, idx := range []int{sr.chr, sr.pos, sr.snp, sr.pv} {
		if idx >= len(row) {
			return v, fmt.Errorf("row has %d fields, expected at least %d", len(row), idx+1)
		}
	}

	// Remove preceding zeroes from CHR
	rec.Chromosome = strings.TrimSpace(row[sr.chr])
	if trimmed := strings.TrimLeft(rec.Chromosome, "0"); trimmed != "" {
		rec.Chromosome = trimmed
	}
	rec.SNP = strings.TrimSpace(row[sr.snp])

	if pos, err := strconv.Atoi(strings.TrimSpace(row[sr.pos])); err != nil {
		return v, err
	} else {
		rec.Position = pos
	}

	p, err := strconv.ParseFloat(strings.TrimSpace(row[sr.pv]), 64)
	if err != nil {
		return v, err
	}
	if sr.Layout.PIsNegLog10 {
		v.NegLog10P = null.FloatFrom(p)
		p = math.Pow(10, -p)
	}
	rec.P = p

	return v, nil
}

// chooseDelimiter sniffs the delimiter, then confirms it against the header:
// if the sniffed rune does not expose every layout column, space, tab and
// comma are tried in turn.
func chooseDelimiter(br *bufio.Reader, layout Layout) rune {
	sniffed := gwastrack.SniffDelimiter(br, '\t')

	head, _ := br.Peek(4096)
	header, _, _ := strings.Cut(string(head), "\n")
	header = strings.TrimRight(header, "\r")

	for _, delim := range []rune{sniffed, ' ', '\t', ','} {
		var fields []string
		if delim == ' ' {
			fields = strings.Fields(header)
		} else {
			fields = strings.Split(header, string(delim))
		}

		found := 0
		for _, f := range fields {
			switch strings.TrimSpace(f) {
			case layout.ColChromosome, layout.ColPosition, layout.ColSNP, layout.ColP:
				found++
			}
		}
		if found >= 4 {
			return delim
		}
	}

	return sniffed
}
