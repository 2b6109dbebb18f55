package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG color name ("grey", "red") or a hex code with or
// without a leading '#', in RRGGBB or RRGGBBAA form.
func ParseColor(code string) (color.Color, error) {
	code = strings.TrimSpace(code)
	if c, ok := colornames.Map[strings.ToLower(code)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(code, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("unrecognized color %q", code)
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("unrecognized color %q: %w", code, err)
		}
		channels[i] = uint8(v)
	}

	// color.RGBA is alpha-premultiplied.
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}
