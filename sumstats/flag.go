package sumstats

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Flag is a YES/NO cell of a .gwas file.
type Flag bool

func (f Flag) MarshalCSV() (string, error) {
	if f {
		return "YES", nil
	}
	return "NO", nil
}

func (f *Flag) UnmarshalCSV(s string) error {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "YES", "TRUE", "T", "Y":
		*f = true
	case "", "0", "NO", "FALSE", "F", "N":
		*f = false
	default:
		return fmt.Errorf("%q is not a flag", s)
	}
	return nil
}

// minNormalP is the smallest normal float64. Below it P has lost precision
// or underflowed to zero.
const minNormalP = 2.2250738585072014e-308

// PValue keeps scientific notation when written; gocsv formats plain floats
// without an exponent. A P too small for a float64 is written from its
// -log10 instead.
type PValue struct {
	P        float64
	NegLog10 null.Float
}

func (p PValue) MarshalCSV() (string, error) {
	if p.NegLog10.Valid && p.P < minNormalP {
		return negLogPToScientificNotation(p.NegLog10.Float64), nil
	}
	return strconvG(p.P), nil
}

// negLogPToScientificNotation writes 10^-negLogP as mantissa and exponent
// without ever forming the float, e.g. 420.5 becomes 3.2E-421.
func negLogPToScientificNotation(negLogP float64) string {
	mantissa := math.Pow(10.0, math.Mod(-1*negLogP, 1.0))
	exponent := math.Ceil(-1 * negLogP)

	// Get the mantissa into the 1-10 range.
	if mantissa < 1.0 {
		mantissa *= 10.0
		exponent -= 1.0
	}

	// Otherwise a -log10(P) of 2.001 prints as 10.0E-3.
	if math.Round(mantissa*10) >= 100 {
		mantissa /= 10.0
		exponent += 1.0
	}

	return fmt.Sprintf("%.1fE%.0f", mantissa, exponent)
}
