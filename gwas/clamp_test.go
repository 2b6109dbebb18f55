package gwas

import (
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestClamperPP(t *testing.T) {
	c := Clamper{Format: FormatPP, MaxY: 1}

	cases := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{0.96, 0.95},
		{1, 0.95},
		{0.01, 0.05},
		{0, 0.05},
		{0.05, 0.05},
		{0.95, 0.95},
	}
	for _, tc := range cases {
		if got := c.Display(tc.in); got != tc.want {
			t.Errorf("Display(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClamperFloorFollowsMaxY(t *testing.T) {
	c := Clamper{Format: FormatPP, MaxY: 0.4}
	if got := c.Display(0); got != 0.02 {
		t.Errorf("floor for maxY 0.4 = %v, want 0.02", got)
	}
}

func TestClamperUnclampedFormats(t *testing.T) {
	for _, f := range []Format{FormatPValue, FormatNegLog10} {
		c := Clamper{Format: f, MaxY: 1}
		for _, v := range []float64{0, 0.001, 0.96, 1, 7.3} {
			if got := c.Display(v); got != v {
				t.Errorf("%v: Display(%v) = %v, want unchanged", f, v, got)
			}
		}
		if _, _, ok := c.Bounds(); ok {
			t.Errorf("%v reports clamp bounds", f)
		}
	}
}

func TestEffectiveMax(t *testing.T) {
	cases := []struct {
		name     string
		format   Format
		maxStat  float64
		override null.Float
		want     float64
		warns    bool
	}{
		{"PP override above 1", FormatPP, 1, null.FloatFrom(2), 1, true},
		{"PP statistic above 1", FormatPP, 3, null.Float{}, 1, true},
		{"PP override below 1", FormatPP, 1, null.FloatFrom(0.5), 0.5, false},
		{"PP from statistic", FormatPP, 1, null.Float{}, 1, false},
		{"-log10 keeps statistic", FormatNegLog10, 12, null.Float{}, 12, false},
		{"-log10 override", FormatNegLog10, 12, null.FloatFrom(20), 20, false},
		{"empty table", FormatPValue, 0, null.Float{}, 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, warning := EffectiveMax(c.format, c.maxStat, c.override)
			if got != c.want {
				t.Errorf("EffectiveMax = %v, want %v", got, c.want)
			}
			if (warning != "") != c.warns {
				t.Errorf("warning = %q, want warning: %v", warning, c.warns)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPP, false},
		{"PP", FormatPP, false},
		{"pp", FormatPP, false},
		{"-log10", FormatNegLog10, false},
		{"pval", FormatPValue, false},
		{"log10", "", true},
		{"zscore", "", true},
	}

	for _, c := range cases {
		got, err := ParseFormat(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
