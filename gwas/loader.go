package gwas

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// Column names of the .gwas layout.
const (
	ColumnChr = "CHR"
	ColumnBP  = "BP"
	ColumnSNP = "SNP"
	ColumnP   = "P"
	ColumnCS  = "CS"
	ColumnINT = "INT"
)

// LoadOptions controls how a .gwas file is read.
type LoadOptions struct {
	// Delimiter separates fields. Zero means tab.
	Delimiter rune

	// SniffDelimiter guesses the delimiter from the first lines of the
	// file, falling back to Delimiter.
	SniffDelimiter bool

	Format Format

	// Path is only used to annotate errors.
	Path string
}

// LoadFile opens path (local, gs://, optionally compressed) and loads it.
func LoadFile(ctx context.Context, path string, client *storage.Client, opts LoadOptions) (*Table, error) {
	f, err := gwastrack.Open(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	opts.Path = path
	return Load(f, opts)
}

// Load reads an entire .gwas table. Any row with a missing or malformed
// CHR, BP, SNP or P fails the whole load with a *SchemaError; a P that
// cannot be -log10 transformed fails it with a *NumericError.
func Load(r io.Reader, opts LoadOptions) (*Table, error) {
	if opts.Format == "" {
		opts.Format = FormatPP
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = '\t'
	}

	br := bufio.NewReader(r)
	if opts.SniffDelimiter {
		delim = gwastrack.SniffDelimiter(br, delim)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	table := &Table{
		Path:   opts.Path,
		Format: opts.Format,
	}

	var chr, bp, snp, p, cs, interest int = -1, -1, -1, -1, -1, -1
	ncols := 0

	i := 0
	for ; ; i++ {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if i == 0 {
			for k, col := range cols {
				col = strings.TrimSpace(col)
				if k == 0 {
					col = strings.TrimPrefix(col, "\ufeff")
				}
				switch col {
				case ColumnChr:
					chr = k
				case ColumnBP:
					bp = k
				case ColumnSNP:
					snp = k
				case ColumnP:
					p = k
				case ColumnCS:
					cs = k
				case ColumnINT:
					interest = k
				}
			}

			for _, required := range []struct {
				name string
				idx  int
			}{{ColumnChr, chr}, {ColumnBP, bp}, {ColumnSNP, snp}, {ColumnP, p}} {
				if required.idx < 0 {
					return nil, &SchemaError{Path: opts.Path, Column: required.name, Reason: "required column is missing from the header"}
				}
			}

			table.HasCS = cs >= 0
			table.HasINT = interest >= 0
			ncols = len(cols)
			continue
		}

		line := i + 1
		if len(cols) == 1 && strings.TrimSpace(cols[0]) == "" && ncols > 1 {
			// Blank line.
			continue
		}
		if len(cols) < ncols {
			return nil, &SchemaError{Path: opts.Path, Line: line, Column: "*", Reason: fmt.Sprintf("expected %d fields, found %d", ncols, len(cols))}
		}

		rec, err := parseRecord(cols, line, opts.Path, chr, bp, snp, p, cs, interest)
		if err != nil {
			return nil, err
		}

		if opts.Format.Transformed() {
			v, ok := negLog10(rec.P, strings.TrimSpace(cols[p]))
			if !ok {
				return nil, &NumericError{Path: opts.Path, Line: line, SNP: rec.SNP, P: rec.P}
			}
			rec.P = v
		}

		table.Records = append(table.Records, rec)
	}

	if i == 0 {
		return nil, &SchemaError{Path: opts.Path, Column: ColumnChr, Reason: "file is empty; a header is required"}
	}

	if len(table.Records) > 0 {
		ps := make(stats.Float64Data, len(table.Records))
		for i, rec := range table.Records {
			ps[i] = rec.P
		}
		max, err := stats.Max(ps)
		if err != nil {
			return nil, pfx.Err(err)
		}
		table.MaxStatistic = math.Ceil(max)
	}

	return table, nil
}

func parseRecord(cols []string, line int, path string, chr, bp, snp, p, cs, interest int) (Record, error) {
	var rec Record

	schemaErr := func(column, value, reason string) error {
		return &SchemaError{Path: path, Line: line, Column: column, Value: value, Reason: reason}
	}

	rec.Chromosome = strings.TrimSpace(cols[chr])
	if isNull(rec.Chromosome) {
		return rec, schemaErr(ColumnChr, rec.Chromosome, "value is required")
	}

	rec.SNP = strings.TrimSpace(cols[snp])
	if isNull(rec.SNP) {
		return rec, schemaErr(ColumnSNP, rec.SNP, "value is required")
	}

	bpText := strings.TrimSpace(cols[bp])
	if isNull(bpText) {
		return rec, schemaErr(ColumnBP, bpText, "value is required")
	}
	pos, err := strconv.Atoi(bpText)
	if err != nil || pos < 0 {
		return rec, schemaErr(ColumnBP, bpText, "not a non-negative integer position")
	}
	rec.Position = pos

	pText := strings.TrimSpace(cols[p])
	if isNull(pText) {
		return rec, schemaErr(ColumnP, pText, "value is required")
	}
	pval, err := strconv.ParseFloat(pText, 64)
	if err != nil || math.IsNaN(pval) || math.IsInf(pval, 0) {
		return rec, schemaErr(ColumnP, pText, "not a finite number")
	}
	rec.P = pval

	if cs >= 0 {
		if rec.CS, err = parseFlag(cols[cs]); err != nil {
			return rec, schemaErr(ColumnCS, cols[cs], err.Error())
		}
	}
	if interest >= 0 {
		if rec.INT, err = parseFlag(cols[interest]); err != nil {
			return rec, schemaErr(ColumnINT, cols[interest], err.Error())
		}
	}

	return rec, nil
}

// isNull reports whether a field holds no value. R and pandas write missing
// values as NA or NaN.
func isNull(s string) bool {
	switch strings.ToUpper(s) {
	case "", "NA", "NAN", "NULL", ".":
		return true
	}
	return false
}

// parseFlag reads a CS or INT cell. Empty cells are false.
func parseFlag(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "YES", "TRUE", "T", "Y":
		return true, nil
	case "", "0", "NO", "FALSE", "F", "N":
		return false, nil
	}
	return false, fmt.Errorf("not a flag (expected YES/NO, TRUE/FALSE or 1/0)")
}

// negLog10 returns -log10(p). A positive P written too small for a float64,
// such as 1.0E-420, parses as zero; its -log10 is then taken from the text.
func negLog10(p float64, text string) (float64, bool) {
	if p > 0 {
		return -math.Log10(p), true
	}
	if p < 0 {
		return 0, false
	}

	f, ok := new(big.Float).SetString(text)
	if !ok || f.Sign() <= 0 {
		return 0, false
	}

	mant := new(big.Float)
	exp := f.MantExp(mant)
	m, _ := mant.Float64()

	return -(math.Log10(m) + float64(exp)*math.Log10(2)), true
}
