// Package chrpos describes genomic windows: parsing region strings such as
// chr1:1,000-2,000, comparing chromosome names across naming conventions, and
// tiling a window into chunks.
package chrpos

import (
	"fmt"
	"strconv"
	"strings"
)

// Locus is a genomic window. Start and End are 1-based, inclusive base-pair
// positions. A zero End leaves the window open to the end of the chromosome,
// and an empty Chrom matches every chromosome.
type Locus struct {
	Chrom string
	Start int
	End   int
}

// ParseLocus accepts "", "chr1", "chr1:1000", and "chr1:1,000-2,000".
func ParseLocus(region string) (Locus, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return Locus{}, nil
	}

	chrom, span, hasSpan := strings.Cut(region, ":")
	if chrom == "" {
		return Locus{}, fmt.Errorf("region %q has no chromosome", region)
	}

	l := Locus{Chrom: chrom}
	if !hasSpan {
		return l, nil
	}

	startText, endText, hasEnd := strings.Cut(span, "-")

	var err error
	if l.Start, err = parsePosition(startText); err != nil {
		return Locus{}, fmt.Errorf("region %q: start: %w", region, err)
	}

	if hasEnd {
		if l.End, err = parsePosition(endText); err != nil {
			return Locus{}, fmt.Errorf("region %q: end: %w", region, err)
		}
		if l.End < l.Start {
			return Locus{}, fmt.Errorf("region %q: end %d is before start %d", region, l.End, l.Start)
		}
	}

	return l, nil
}

func parsePosition(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if pos < 0 {
		return 0, fmt.Errorf("position %d is negative", pos)
	}

	return pos, nil
}

// NormalizeChrom strips a chr prefix and leading zeros so that "chr01", "01"
// and "1" compare equal. Letters are upper-cased ("chrx" is "X").
func NormalizeChrom(chrom string) string {
	c := strings.TrimSpace(chrom)
	if len(c) >= 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}

	if trimmed := strings.TrimLeft(c, "0"); trimmed != "" {
		c = trimmed
	}

	return strings.ToUpper(c)
}

// SameChrom reports whether two chromosome names refer to the same chromosome.
func SameChrom(a, b string) bool {
	return NormalizeChrom(a) == NormalizeChrom(b)
}

// HasChrom reports whether the locus is restricted to one chromosome.
func (l Locus) HasChrom() bool { return l.Chrom != "" }

// Contains reports whether the position on chrom falls inside the locus.
func (l Locus) Contains(chrom string, pos int) bool {
	if l.HasChrom() && !SameChrom(l.Chrom, chrom) {
		return false
	}
	if pos < l.Start {
		return false
	}
	if l.End > 0 && pos > l.End {
		return false
	}

	return true
}

// OnChrom reports whether chrom is covered by the locus, ignoring positions.
func (l Locus) OnChrom(chrom string) bool {
	return !l.HasChrom() || SameChrom(l.Chrom, chrom)
}

// Len returns the number of base pairs spanned, or 0 when the locus is open
// ended.
func (l Locus) Len() int {
	if l.End == 0 {
		return 0
	}
	start := l.Start
	if start < 1 {
		start = 1
	}

	return l.End - start + 1
}

func (l Locus) String() string {
	switch {
	case !l.HasChrom():
		return "all"
	case l.Start == 0 && l.End == 0:
		return l.Chrom
	case l.End == 0:
		return fmt.Sprintf("%s:%d", l.Chrom, l.Start)
	}

	return fmt.Sprintf("%s:%d-%d", l.Chrom, l.Start, l.End)
}
