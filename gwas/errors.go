package gwas

import (
	"fmt"
)

// SchemaError reports a table that does not satisfy the .gwas layout: a
// required column is missing, or a required value is empty or malformed. A
// SchemaError always fails the whole load.
type SchemaError struct {
	Path   string
	Line   int // 1-based; 0 when the problem is with the header
	Column string
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s line %d", where, e.Line)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: column %s: %s (value %q)", where, e.Column, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: column %s: %s", where, e.Column, e.Reason)
}

// NumericError reports a statistic that cannot be transformed, such as a P of
// zero under -log10.
type NumericError struct {
	Path string
	Line int
	SNP  string
	P    float64
}

func (e *NumericError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	return fmt.Sprintf("%s line %d: cannot take -log10 of P=%v for %s", where, e.Line, e.P, e.SNP)
}

// ConfigError reports an invalid track option. It is returned by New, before
// anything is loaded or drawn.
type ConfigError struct {
	Option string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("option %s", e.Option)
	if e.Value != "" {
		msg = fmt.Sprintf("%s=%q", msg, e.Value)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
