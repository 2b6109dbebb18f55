package gwas

import (
	"fmt"
	"math"

	"gopkg.in/guregu/null.v3"
)

const (
	// ppCeiling pins posterior probabilities below the top of the axis so
	// markers at PP=1 are not cut in half by the plot edge. It is a display
	// accommodation only.
	ppCeiling = 0.95

	// ppFloorDivisor sets the lowest displayed PP to maxY/20.
	ppFloorDivisor = 20
)

// EffectiveMax returns the y axis ceiling: the override when it is set,
// otherwise the table's MaxStatistic. For FormatPP a ceiling above 1 is
// corrected to 1 and a warning is returned. A ceiling that is not positive
// (an empty table, or every P at zero) falls back to 1.
func EffectiveMax(format Format, maxStatistic float64, override null.Float) (maxY float64, warning string) {
	maxY = maxStatistic
	if override.Valid {
		maxY = override.Float64
	}

	if format == FormatPP && maxY > 1 {
		warning = fmt.Sprintf("y axis max %v is above 1, which is not meaningful for PP values; using 1", maxY)
		maxY = 1
	}

	if !(maxY > 0) || math.IsInf(maxY, 0) {
		maxY = 1
	}

	return maxY, warning
}

// Clamper maps a loaded statistic onto the value that is drawn.
type Clamper struct {
	Format Format
	MaxY   float64
}

// Bounds returns the display range applied by Display. ok is false when the
// format is not clamped.
func (c Clamper) Bounds() (lo, hi float64, ok bool) {
	if !c.Format.Clamped() {
		return 0, 0, false
	}
	return c.MaxY / ppFloorDivisor, ppCeiling, true
}

// Display returns the value to plot for v.
func (c Clamper) Display(v float64) float64 {
	lo, hi, ok := c.Bounds()
	if !ok {
		return v
	}
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
