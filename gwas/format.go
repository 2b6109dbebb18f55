package gwas

import (
	"strings"
)

// Format names how the P column is read and displayed.
type Format string

const (
	// FormatPP is a posterior probability in [0, 1]. It is plotted as is,
	// but clamped for display.
	FormatPP Format = "PP"

	// FormatNegLog10 is a raw P-value that is transformed to -log10(P) on
	// load.
	FormatNegLog10 Format = "-log10"

	// FormatPValue is plotted as is.
	FormatPValue Format = "pval"
)

// Formats lists every accepted y_values_format.
var Formats = []Format{FormatPP, FormatNegLog10, FormatPValue}

// ParseFormat maps a y_values_format option onto a Format. Matching ignores
// case; an empty string selects FormatPP.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FormatPP, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}

	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", &ConfigError{
		Option: "y_values_format",
		Value:  s,
		Reason: "must be one of " + strings.Join(names, ", "),
	}
}

func (f Format) String() string { return string(f) }

// Transformed reports whether values are rewritten when loaded.
func (f Format) Transformed() bool { return f == FormatNegLog10 }

// Clamped reports whether displayed values are bounded.
func (f Format) Clamped() bool { return f == FormatPP }
