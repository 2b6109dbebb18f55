package gwas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/carbocation/gwastrack/surface"
	"gopkg.in/guregu/null.v3"
)

// Config holds the options of one GWAS track as they appear in a JSON track
// or figure file. Unset optional values take the defaults below.
type Config struct {
	File  string `json:"file"`
	Title string `json:"title"`

	// Height is the track height in pixels when stacked into a figure.
	Height null.Int `json:"height"`

	YValuesFormat string     `json:"y_values_format"`
	YAxisMaxVal   null.Float `json:"y_axis_max_val"`

	Color     string     `json:"color"`
	DotSize   null.Float `json:"dotsize"`
	CSColor   string     `json:"cs_color"`
	CSDotSize null.Float `json:"cs_dotsize"`
	CSMarker  string     `json:"cs_marker"`

	IDFontSize null.Float `json:"id_fontsize"`
	FontSize   null.Float `json:"fontsize"`
	YLabel     string     `json:"ylabel"`

	Labels    null.Bool `json:"labels"`
	MaxLabels null.Int  `json:"max_labels"`

	// Orientation is empty or "inverted".
	Orientation string `json:"orientation"`

	// Delimiter is "tab" (the default), "comma", "auto", or a single
	// character.
	Delimiter string `json:"delimiter"`
}

// Defaults applied by New to options left unset.
const (
	DefaultColor      = "grey"
	DefaultCSColor    = "red"
	DefaultDotSize    = 10
	DefaultCSDotSize  = 40
	DefaultCSMarker   = "hexagon"
	DefaultIDFontSize = 12
	DefaultFontSize   = 6
	DefaultMaxLabels  = 60
	DefaultHeight     = 150
)

// ParseConfig decodes a single track configuration. Unknown keys are an
// error.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return cfg, &ConfigError{Option: "json", Reason: fmt.Sprintf("syntax error at byte offset %d", syntaxErr.Offset), Err: err}
		}
		return cfg, &ConfigError{Option: "json", Err: err}
	}

	return cfg, nil
}

// settings is a validated Config with defaults applied.
type settings struct {
	file   string
	title  string
	height int

	format Format
	maxY   null.Float

	base      surface.MarkerStyle
	highlight surface.MarkerStyle

	idFontSize float64
	fontSize   float64
	ylabel     string

	labels    bool
	maxLabels int
	inverted  bool

	delimiter rune
	sniff     bool
}

func (cfg Config) validate() (settings, error) {
	var s settings
	var err error

	s.file = strings.TrimSpace(cfg.File)
	if s.file == "" {
		return s, &ConfigError{Option: "file", Reason: "is required"}
	}
	s.title = cfg.Title

	s.height = DefaultHeight
	if cfg.Height.Valid {
		if cfg.Height.Int64 <= 0 {
			return s, &ConfigError{Option: "height", Value: fmt.Sprint(cfg.Height.Int64), Reason: "must be positive"}
		}
		s.height = int(cfg.Height.Int64)
	}

	if s.format, err = ParseFormat(cfg.YValuesFormat); err != nil {
		return s, err
	}

	if cfg.YAxisMaxVal.Valid {
		if v := cfg.YAxisMaxVal.Float64; !(v > 0) || math.IsInf(v, 0) {
			return s, &ConfigError{Option: "y_axis_max_val", Value: fmt.Sprint(v), Reason: "must be a positive number"}
		}
	}
	s.maxY = cfg.YAxisMaxVal

	if s.base.Color, err = colorOption("color", cfg.Color, DefaultColor); err != nil {
		return s, err
	}
	if s.base.Size, err = positiveOption("dotsize", cfg.DotSize, DefaultDotSize); err != nil {
		return s, err
	}
	s.base.Marker = surface.Circle

	if s.highlight.Color, err = colorOption("cs_color", cfg.CSColor, DefaultCSColor); err != nil {
		return s, err
	}
	if s.highlight.Size, err = positiveOption("cs_dotsize", cfg.CSDotSize, DefaultCSDotSize); err != nil {
		return s, err
	}
	marker := cfg.CSMarker
	if marker == "" {
		marker = DefaultCSMarker
	}
	if s.highlight.Marker, err = surface.ParseMarker(marker); err != nil {
		return s, &ConfigError{Option: "cs_marker", Value: marker, Err: err}
	}

	if s.idFontSize, err = positiveOption("id_fontsize", cfg.IDFontSize, DefaultIDFontSize); err != nil {
		return s, err
	}
	if s.fontSize, err = positiveOption("fontsize", cfg.FontSize, DefaultFontSize); err != nil {
		return s, err
	}
	s.ylabel = cfg.YLabel

	s.labels = true
	if cfg.Labels.Valid {
		s.labels = cfg.Labels.Bool
	}
	s.maxLabels = DefaultMaxLabels
	if cfg.MaxLabels.Valid {
		if cfg.MaxLabels.Int64 < 0 {
			return s, &ConfigError{Option: "max_labels", Value: fmt.Sprint(cfg.MaxLabels.Int64), Reason: "must not be negative"}
		}
		s.maxLabels = int(cfg.MaxLabels.Int64)
	}

	switch strings.ToLower(cfg.Orientation) {
	case "", "normal":
	case "inverted":
		s.inverted = true
	default:
		return s, &ConfigError{Option: "orientation", Value: cfg.Orientation, Reason: "must be empty or inverted"}
	}

	switch d := cfg.Delimiter; {
	case d == "" || strings.EqualFold(d, "tab") || d == `\t`:
		s.delimiter = '\t'
	case strings.EqualFold(d, "comma"):
		s.delimiter = ','
	case strings.EqualFold(d, "space"):
		s.delimiter = ' '
	case strings.EqualFold(d, "auto"):
		s.delimiter = '\t'
		s.sniff = true
	case len([]rune(d)) == 1:
		s.delimiter = []rune(d)[0]
	default:
		return s, &ConfigError{Option: "delimiter", Value: d, Reason: "must be tab, comma, space, auto or a single character"}
	}

	return s, nil
}

func colorOption(option, value, def string) (color.Color, error) {
	if value == "" {
		value = def
	}
	c, err := surface.ParseColor(value)
	if err != nil {
		return nil, &ConfigError{Option: option, Value: value, Err: err}
	}
	return c, nil
}

func positiveOption(option string, value null.Float, def float64) (float64, error) {
	if !value.Valid {
		return def, nil
	}
	if v := value.Float64; !(v > 0) || math.IsInf(v, 0) {
		return 0, &ConfigError{Option: option, Value: fmt.Sprint(v), Reason: "must be a positive number"}
	}
	return value.Float64, nil
}
